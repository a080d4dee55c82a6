package http

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/vncsmyrnk/jarvis/internal/bearer"
	"github.com/vncsmyrnk/jarvis/internal/core/domain"
	"github.com/vncsmyrnk/jarvis/internal/core/ports"
	"github.com/vncsmyrnk/jarvis/internal/logging"
)

const maxBodyBytes = 1 << 20

type AuthHandler struct {
	authService ports.AuthService
	log         logging.Logger
}

func NewAuthHandler(authService ports.AuthService, log logging.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log,
	}
}

type signupRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
}

type signupResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Signup godoc
// @Summary      Registers a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "New account"
// @Success      201   {object}  signupResponse
// @Failure      400   {object}  errorResponse  "Username already registered"
// @Failure      422   {object}  errorResponse
// @Router       /signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	id, err := h.authService.Signup(r.Context(), ports.SignupInput{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, signupResponse{Message: "User created successfully", UserID: id})
}

// Token godoc
// @Summary      Exchanges username and password for a token pair
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      200  {object}  domain.TokenPair
// @Failure      401  {object}  errorResponse  "Incorrect username or password"
// @Router       /token [post]
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		writeError(w, r, h.log, fmt.Errorf("%w: invalid form body", domain.ErrInvalidInput))
		return
	}

	username, password := r.PostFormValue("username"), r.PostFormValue("password")
	if username == "" || password == "" {
		writeError(w, r, h.log, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput))
		return
	}

	pair, err := h.authService.Login(r.Context(), username, password)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, pair)
}

// Refresh godoc
// @Summary      Mints a new token pair from a refresh token
// @Description  The token is read from the refresh_token query parameter, a JSON body or a form field.
// @Tags         auth
// @Produce      json
// @Param        refresh_token  query  string  false  "Refresh token"
// @Success      200  {object}  domain.TokenPair
// @Failure      401  {object}  errorResponse
// @Router       /refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	tok, err := refreshTokenFrom(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	pair, err := h.authService.Refresh(r.Context(), tok)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, pair)
}

// Profile godoc
// @Summary      Returns the authenticated user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Identity
// @Failure      401  {object}  errorResponse
// @Router       /profile [get]
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	tok, err := bearer.FromRequest(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	ident, err := h.authService.Profile(r.Context(), tok)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, ident)
}

// Validate godoc
// @Summary      Resolves an access token to its user
// @Description  Used by other services to trust their callers.
// @Tags         auth
// @Produce      json
// @Param        token  query  string  true  "Access token"
// @Success      200  {object}  domain.Identity
// @Failure      401  {object}  errorResponse
// @Router       /validate [get]
func (h *AuthHandler) Validate(w http.ResponseWriter, r *http.Request) {
	tok := r.URL.Query().Get("token")
	if tok == "" {
		writeError(w, r, h.log, domain.ErrUnauthorized)
		return
	}

	ident, err := h.authService.Validate(r.Context(), tok)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, ident)
}

func refreshTokenFrom(r *http.Request) (string, error) {
	if tok := r.URL.Query().Get("refresh_token"); tok != "" {
		return tok, nil
	}

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch ct {
	case "application/json":
		var req refreshRequest
		if err := decodeJSON(r, &req); err != nil {
			return "", err
		}
		if req.RefreshToken != "" {
			return req.RefreshToken, nil
		}
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err == nil {
			if tok := r.PostFormValue("refresh_token"); tok != "" {
				return tok, nil
			}
		}
	}
	return "", fmt.Errorf("%w: refresh_token is required", domain.ErrInvalidInput)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	return nil
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vncsmyrnk/jarvis/internal/core/domain"
	"github.com/vncsmyrnk/jarvis/internal/logging"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

type apiError struct {
	status int
	detail string
	bearer bool
}

// classify is the only place where domain errors become HTTP statuses.
func classify(err error) apiError {
	switch {
	case errors.Is(err, domain.ErrUsernameTaken):
		return apiError{status: http.StatusBadRequest, detail: "Username already registered"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return apiError{status: http.StatusUnauthorized, detail: "Incorrect username or password", bearer: true}
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrAccountNotFound):
		return apiError{status: http.StatusUnauthorized, detail: "Could not validate credentials", bearer: true}
	case errors.Is(err, domain.ErrUnauthenticated):
		return apiError{status: http.StatusUnauthorized, detail: "Not authenticated", bearer: true}
	case errors.Is(err, domain.ErrNoteNotFound):
		return apiError{status: http.StatusNotFound, detail: "Note not found"}
	case errors.Is(err, domain.ErrInvalidInput):
		return apiError{status: http.StatusUnprocessableEntity, detail: err.Error()}
	case errors.Is(err, domain.ErrRateLimited):
		return apiError{status: http.StatusTooManyRequests, detail: "Too many requests"}
	case errors.Is(err, domain.ErrUpstreamTimeout):
		return apiError{status: http.StatusGatewayTimeout, detail: "Service timeout"}
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return apiError{status: http.StatusServiceUnavailable, detail: "Service unavailable"}
	case errors.Is(err, domain.ErrUpstreamError):
		return apiError{status: http.StatusBadGateway, detail: "Service error"}
	default:
		return apiError{status: http.StatusInternalServerError, detail: "Internal server error"}
	}
}

func writeError(w http.ResponseWriter, r *http.Request, log logging.Logger, err error) {
	e := classify(err)
	if e.status >= http.StatusInternalServerError {
		log.Error(r.Context(), "request failed", "path", r.URL.Path, "status", e.status, "error", err)
	} else {
		log.Debug(r.Context(), "request rejected", "path", r.URL.Path, "status", e.status, "error", err)
	}

	if e.bearer {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	writeJSON(w, e.status, errorResponse{Detail: e.detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

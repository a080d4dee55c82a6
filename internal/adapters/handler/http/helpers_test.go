package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vncsmyrnk/jarvis/internal/adapters/authclient"
	"github.com/vncsmyrnk/jarvis/internal/adapters/hasher"
	"github.com/vncsmyrnk/jarvis/internal/adapters/repository"
	"github.com/vncsmyrnk/jarvis/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/jarvis/internal/adapters/token"
	"github.com/vncsmyrnk/jarvis/internal/config"
	"github.com/vncsmyrnk/jarvis/internal/core/services"
	"github.com/vncsmyrnk/jarvis/internal/logging"
)

type testEnv struct {
	auth  *httptest.Server
	notes *httptest.Server
	codec *token.Codec
}

type envOptions struct {
	loginPerMinute int
	trustProxy     bool
}

func newTestEnv(t *testing.T, opts envOptions) *testEnv {
	t.Helper()
	ctx := context.Background()
	log := logging.Nop()

	authStore, err := repository.Open(ctx, "sqlite://")
	require.NoError(t, err)
	t.Cleanup(func() { _ = authStore.Close() })
	require.NoError(t, authStore.Migrate(ctx, postgres.SchemaAuth))

	notesStore, err := repository.Open(ctx, "sqlite://")
	require.NoError(t, err)
	t.Cleanup(func() { _ = notesStore.Close() })
	require.NoError(t, notesStore.Migrate(ctx, postgres.SchemaNotes))

	codec, err := token.NewCodec([]byte("test-secret"), "HS256")
	require.NoError(t, err)
	cfg := &config.AuthConfig{AccessTokenTTL: 30 * time.Minute, RefreshTokenTTL: 30 * 24 * time.Hour}
	authSvc := services.NewAuthService(authStore.Accounts(), hasher.NewBcrypt(bcrypt.MinCost), codec, cfg, log)

	authRouter := NewAuthRouter(
		NewAuthHandler(authSvc, log),
		NewHealthHandler("jarvis-auth", authStore.Accounts(), log),
		NewRateLimiter(opts.loginPerMinute),
		RouterOptions{Log: log, AllowedOrigins: []string{"http://localhost:3000"}, TrustProxy: opts.trustProxy},
	)
	authSrv := httptest.NewServer(authRouter)
	t.Cleanup(authSrv.Close)

	client := authclient.New(authSrv.URL, 5*time.Second, log)
	notesRouter := NewNotesRouter(
		NewNoteHandler(services.NewNoteService(notesStore.Notes()), log),
		client,
		NewHealthHandler("jarvis-notes", notesStore.Notes(), log),
		RouterOptions{Log: log},
	)
	notesSrv := httptest.NewServer(notesRouter)
	t.Cleanup(notesSrv.Close)

	return &testEnv{auth: authSrv, notes: notesSrv, codec: codec}
}

type response struct {
	status int
	header http.Header
	body   []byte
}

func (r response) decode(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.body, v), string(r.body))
}

func (r response) detail(t *testing.T) string {
	t.Helper()
	var e errorResponse
	r.decode(t, &e)
	return e.Detail
}

func do(t *testing.T, method, target, contentType string, body io.Reader, bearerToken string) response {
	t.Helper()
	req, err := http.NewRequest(method, target, body)
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+bearerToken)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return response{status: resp.StatusCode, header: resp.Header, body: b}
}

func doJSON(t *testing.T, method, target, body, bearerToken string) response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	return do(t, method, target, "application/json", r, bearerToken)
}

func (e *testEnv) signup(t *testing.T, username, password, firstName string) response {
	t.Helper()
	body, err := json.Marshal(map[string]string{"username": username, "password": password, "first_name": firstName})
	require.NoError(t, err)
	return doJSON(t, http.MethodPost, e.auth.URL+"/auth/signup", string(body), "")
}

func (e *testEnv) login(t *testing.T, username, password string) response {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	return do(t, http.MethodPost, e.auth.URL+"/auth/token", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()), "")
}

type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (e *testEnv) loginPair(t *testing.T, username, password string) tokenPair {
	t.Helper()
	resp := e.login(t, username, password)
	require.Equal(t, http.StatusOK, resp.status, string(resp.body))
	var p tokenPair
	resp.decode(t, &p)
	return p
}

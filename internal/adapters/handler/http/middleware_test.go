package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/jarvis/internal/bearer"
	"github.com/vncsmyrnk/jarvis/internal/core/domain"
	"github.com/vncsmyrnk/jarvis/internal/logging"
)

type stubResolver struct {
	ident *domain.Identity
	err   error
	calls int
}

func (s *stubResolver) ResolveIdentity(r *http.Request) (*domain.Identity, error) {
	s.calls++
	if _, err := bearer.FromRequest(r); err != nil {
		return nil, err
	}
	return s.ident, s.err
}

func (s *stubResolver) Validate(context.Context, string) (*domain.Identity, error) {
	return s.ident, s.err
}

func TestRequireIdentity(t *testing.T) {
	var seen *domain.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	res := &stubResolver{ident: &domain.Identity{ID: 7}}
	h := RequireIdentity(res, logging.Nop())(next)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, seen)

	r.Header.Set("Authorization", "Bearer t")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusNoContent, w.Code)
	require.NotNil(t, seen)
	assert.Equal(t, int64(7), seen.ID)

	res.err = domain.ErrUpstreamTimeout
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestIdentityFromContext_Missing(t *testing.T) {
	_, ok := IdentityFromContext(context.Background())
	assert.False(t, ok)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	h := middleware.RequestID(RequestLogger(logging.New(&buf, "test", false))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/brew", nil))
	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), `"path":"/brew"`)
	assert.Regexp(t, `"request_id":"[^"]+"`, buf.String())
}

func TestRateLimiter_PerKeyAndRefill(t *testing.T) {
	rl := NewRateLimiter(60)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	for i := 0; i < 60; i++ {
		require.True(t, rl.Allow("1.2.3.4"), "request %d", i)
	}
	assert.False(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("5.6.7.8"))

	now = now.Add(time.Second)
	assert.True(t, rl.Allow("1.2.3.4"))
}

func TestRateLimiter_SweepsIdle(t *testing.T) {
	rl := NewRateLimiter(10)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.Allow("a")
	now = now.Add(2 * limiterIdleTTL)
	rl.Allow("b")

	assert.NotContains(t, rl.visitors, "a")
	assert.Contains(t, rl.visitors, "b")
}

func TestAllowedOrigins(t *testing.T) {
	assert.Nil(t, AllowedOrigins(""))
	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"},
		AllowedOrigins(" http://localhost:3000/ ,https://app.example.com"))
}

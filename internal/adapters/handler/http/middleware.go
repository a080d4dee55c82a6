package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/vncsmyrnk/jarvis/internal/core/domain"
	"github.com/vncsmyrnk/jarvis/internal/core/ports"
	"github.com/vncsmyrnk/jarvis/internal/logging"
)

type identityKey struct{}

func withIdentity(ctx context.Context, ident *domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, ident)
}

// IdentityFromContext returns the caller resolved by RequireIdentity.
func IdentityFromContext(ctx context.Context) (*domain.Identity, bool) {
	ident, ok := ctx.Value(identityKey{}).(*domain.Identity)
	return ident, ok && ident != nil
}

// RequireIdentity resolves the caller before any handler runs and rejects the
// request when that fails.
func RequireIdentity(resolver ports.IdentityResolver, log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident, err := resolver.ResolveIdentity(r)
			if err != nil {
				writeError(w, r, log, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), ident)))
		})
	}
}

// RequestLogger writes one structured line per request.
func RequestLogger(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log.With("request_id", middleware.GetReqID(r.Context())).Info(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		})
	}
}

func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

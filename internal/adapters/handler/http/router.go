package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/vncsmyrnk/jarvis/docs"
	"github.com/vncsmyrnk/jarvis/internal/core/ports"
	"github.com/vncsmyrnk/jarvis/internal/logging"
)

const (
	AuthPrefix  = "/auth"
	NotesPrefix = "/note"
)

type RouterOptions struct {
	Log            logging.Logger
	AllowedOrigins []string
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Without it the rate limiter keys on the socket peer.
	TrustProxy bool
}

// AllowedOrigins turns FRONTEND_URL (comma separated) into a CORS origin list.
func AllowedOrigins(frontendURL string) []string {
	var out []string
	for _, o := range strings.Split(frontendURL, ",") {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func newBaseRouter(opts RouterOptions, health *HealthHandler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if opts.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.StripSlashes)
	r.Use(RequestLogger(opts.Log))
	r.Use(middleware.Recoverer)
	r.Use(SecurityHeaders)
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/", health.Root)
	r.Get("/health", health.Health)
	r.Get("/ready", health.Ready)
	return r
}

func NewAuthRouter(authHandler *AuthHandler, health *HealthHandler, limiter *RateLimiter, opts RouterOptions) http.Handler {
	r := newBaseRouter(opts, health)

	r.Route(AuthPrefix, func(r chi.Router) {
		r.Get("/", health.Root)
		r.Post("/signup", authHandler.Signup)
		r.With(limiter.Middleware(opts.Log)).Post("/token", authHandler.Token)
		r.Post("/refresh", authHandler.Refresh)
		r.Get("/profile", authHandler.Profile)
		r.Get("/validate", authHandler.Validate)
		r.Get("/docs/*", httpSwagger.Handler(
			httpSwagger.URL(AuthPrefix+"/docs/doc.json"),
			httpSwagger.InstanceName(docs.AuthInstance),
		))
	})

	return otelhttp.NewHandler(r, "jarvis-auth")
}

func NewNotesRouter(noteHandler *NoteHandler, resolver ports.IdentityResolver, health *HealthHandler, opts RouterOptions) http.Handler {
	r := newBaseRouter(opts, health)

	r.Route(NotesPrefix, func(r chi.Router) {
		r.Get("/", health.Root)
		r.Get("/docs/*", httpSwagger.Handler(
			httpSwagger.URL(NotesPrefix+"/docs/doc.json"),
			httpSwagger.InstanceName(docs.NotesInstance),
		))

		r.Route("/notes", func(r chi.Router) {
			r.Use(RequireIdentity(resolver, opts.Log))
			r.Get("/", noteHandler.ListNotes)
			r.Post("/", noteHandler.CreateNote)
			r.Get("/{id}", noteHandler.GetNote)
			r.Put("/{id}", noteHandler.UpdateNote)
			r.Delete("/{id}", noteHandler.DeleteNote)
		})
	})

	return otelhttp.NewHandler(r, "jarvis-notes")
}

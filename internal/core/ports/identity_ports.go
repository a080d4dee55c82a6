package ports

import (
	"context"
	"net/http"

	"github.com/vncsmyrnk/jarvis/internal/core/domain"
)

// IdentityResolver turns an incoming request's bearer token into the caller's
// identity by asking the auth service.
type IdentityResolver interface {
	ResolveIdentity(r *http.Request) (*domain.Identity, error)
	Validate(ctx context.Context, token string) (*domain.Identity, error)
}

package ports

import (
	"context"
	"time"

	"github.com/vncsmyrnk/jarvis/internal/core/domain"
)

type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Verify(ctx context.Context, plaintext, hash string) (bool, error)
}

type TokenCodec interface {
	Mint(subject string, kind domain.TokenKind, ttl time.Duration) (string, error)
	// Verify returns the token subject. Every failure wraps domain.ErrInvalidToken.
	Verify(token string, expected domain.TokenKind) (string, error)
}

type SignupInput struct {
	Username  string
	Password  string
	FirstName string
}

type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (int64, error)
	Login(ctx context.Context, username, password string) (*domain.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	Validate(ctx context.Context, accessToken string) (*domain.Identity, error)
	Profile(ctx context.Context, accessToken string) (*domain.Identity, error)
}

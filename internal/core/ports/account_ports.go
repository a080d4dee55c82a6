package ports

import (
	"context"

	"github.com/vncsmyrnk/jarvis/internal/core/domain"
)

type AccountRepository interface {
	// Create fills in ID and CreatedAt. A duplicate username yields domain.ErrUsernameTaken.
	Create(ctx context.Context, account *domain.Account) error
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	Ping(ctx context.Context) error
}

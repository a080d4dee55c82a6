package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vncsmyrnk/jarvis/internal/core/domain"
	"github.com/vncsmyrnk/jarvis/internal/core/ports"
	"github.com/vncsmyrnk/jarvis/internal/dbx"
)

type AccountRepository struct {
	db dbx.DBTX
}

func NewAccountRepository(db dbx.DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

var _ ports.AccountRepository = (*AccountRepository)(nil)

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO users (username, first_name, hashed_password)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, account.Username, account.FirstName, account.PasswordHash).
		Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	query := `SELECT id, username, first_name, hashed_password, created_at FROM users WHERE username = $1`

	a := &domain.Account{}
	err := r.db.QueryRowContext(ctx, query, username).
		Scan(&a.ID, &a.Username, &a.FirstName, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *AccountRepository) Ping(ctx context.Context) error {
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1`).Scan(&one); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vncsmyrnk/jarvis/internal/core/domain"
	"github.com/vncsmyrnk/jarvis/internal/core/ports"
	"github.com/vncsmyrnk/jarvis/internal/dbx"
)

type AccountRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewAccountRepository(db dbx.DBTX) *AccountRepository {
	return &AccountRepository{db: db, now: time.Now}
}

var _ ports.AccountRepository = (*AccountRepository)(nil)

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	created := r.now().UTC().Truncate(time.Microsecond)

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, first_name, hashed_password, created_at) VALUES (?, ?, ?, ?)`,
		account.Username, account.FirstName, account.PasswordHash, toUnix(created))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read user id: %w", err)
	}
	account.ID = id
	account.CreatedAt = created
	return nil
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var (
		a       domain.Account
		created int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, first_name, hashed_password, created_at FROM users WHERE username = ?`, username).
		Scan(&a.ID, &a.Username, &a.FirstName, &a.PasswordHash, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to select user: %w", err)
	}
	a.CreatedAt = fromUnix(created)
	return &a, nil
}

func (r *AccountRepository) Ping(ctx context.Context) error {
	var one int
	return r.db.QueryRowContext(ctx, `SELECT 1`).Scan(&one)
}

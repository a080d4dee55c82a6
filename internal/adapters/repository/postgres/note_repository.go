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

const noteColumns = `id, user_id, title, content, created_at, updated_at`

type NoteRepository struct {
	db *sql.DB
}

func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

var _ ports.NoteRepository = (*NoteRepository)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*domain.Note, error) {
	n := &domain.Note{}
	if err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	return n, nil
}

func (r *NoteRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE user_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	notes := make([]*domain.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return notes, nil
}

func (r *NoteRepository) Get(ctx context.Context, ownerID, id int64) (*domain.Note, error) {
	return getNote(ctx, r.db, ownerID, id, "")
}

func getNote(ctx context.Context, db dbx.DBTX, ownerID, id int64, suffix string) (*domain.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = $1 AND user_id = $2` + suffix

	n, err := scanNote(db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) error {
	query := `
		INSERT INTO notes (user_id, title, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, note.UserID, note.Title, note.Content).
		Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Update locks the row, applies patch and writes it back in one transaction.
func (r *NoteRepository) Update(ctx context.Context, ownerID, id int64, patch domain.NotePatch) (*domain.Note, error) {
	var note *domain.Note
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		n, err := getNote(ctx, tx, ownerID, id, " FOR UPDATE")
		if err != nil {
			return err
		}
		patch.Apply(n)

		query := `
			UPDATE notes SET title = $1, content = $2, updated_at = NOW()
			WHERE id = $3 AND user_id = $4
			RETURNING updated_at`
		if err := tx.QueryRowContext(ctx, query, n.Title, n.Content, id, ownerID).Scan(&n.UpdatedAt); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		note = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

func (r *NoteRepository) Delete(ctx context.Context, ownerID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

func (r *NoteRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

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

type NoteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{db: db, now: time.Now}
}

var _ ports.NoteRepository = (*NoteRepository)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*domain.Note, error) {
	var (
		n                domain.Note
		created, updated int64
	)
	if err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &created, &updated); err != nil {
		return nil, err
	}
	n.CreatedAt = fromUnix(created)
	n.UpdatedAt = fromUnix(updated)
	return &n, nil
}

func (r *NoteRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Note, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, title, content, created_at, updated_at FROM notes WHERE user_id = ? ORDER BY id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*domain.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *NoteRepository) Get(ctx context.Context, ownerID, id int64) (*domain.Note, error) {
	return getNote(ctx, r.db, ownerID, id)
}

func getNote(ctx context.Context, db dbx.DBTX, ownerID, id int64) (*domain.Note, error) {
	n, err := scanNote(db.QueryRowContext(ctx,
		`SELECT id, user_id, title, content, created_at, updated_at FROM notes WHERE id = ? AND user_id = ?`, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to select note: %w", err)
	}
	return n, nil
}

func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) error {
	now := r.now().UTC().Truncate(time.Microsecond)

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO notes (user_id, title, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		note.UserID, note.Title, note.Content, toUnix(now), toUnix(now))
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read note id: %w", err)
	}
	note.ID = id
	note.CreatedAt = now
	note.UpdatedAt = now
	return nil
}

func (r *NoteRepository) Update(ctx context.Context, ownerID, id int64, patch domain.NotePatch) (*domain.Note, error) {
	var note *domain.Note
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		n, err := getNote(ctx, tx, ownerID, id)
		if err != nil {
			return err
		}
		patch.Apply(n)
		n.UpdatedAt = r.now().UTC().Truncate(time.Microsecond)

		_, err = tx.ExecContext(ctx,
			`UPDATE notes SET title = ?, content = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
			n.Title, n.Content, toUnix(n.UpdatedAt), id, ownerID)
		if err != nil {
			return fmt.Errorf("failed to update note: %w", err)
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
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

func (r *NoteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

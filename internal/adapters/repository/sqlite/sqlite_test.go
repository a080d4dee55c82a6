package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/vncsmyrnk/jarvis/internal/core/domain"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, InitAccounts(ctx, db))
	require.NoError(t, InitNotes(ctx, db))
	// Idempotent.
	require.NoError(t, InitAccounts(ctx, db))
	require.NoError(t, InitNotes(ctx, db))
	return db
}

func strPtr(s string) *string { return &s }

func TestAccounts_CreateAndGet(t *testing.T) {
	repo := NewAccountRepository(setupDB(t))
	ctx := context.Background()

	a := &domain.Account{Username: "alice", FirstName: "Alice", PasswordHash: "h"}
	require.NoError(t, repo.Create(ctx, a))
	assert.Equal(t, int64(1), a.ID)
	assert.False(t, a.CreatedAt.IsZero())

	b := &domain.Account{Username: "bob", FirstName: "Bob", PasswordHash: "h"}
	require.NoError(t, repo.Create(ctx, b))
	assert.Equal(t, int64(2), b.ID)

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestAccounts_DuplicateUsername(t *testing.T) {
	repo := NewAccountRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Account{Username: "alice", FirstName: "A", PasswordHash: "h"}))
	err := repo.Create(ctx, &domain.Account{Username: "alice", FirstName: "B", PasswordHash: "h"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestAccounts_NotFound(t *testing.T) {
	repo := NewAccountRepository(setupDB(t))

	_, err := repo.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	assert.NoError(t, repo.Ping(context.Background()))
}

func TestNotes_CRUDScopedByOwner(t *testing.T) {
	db := setupDB(t)
	repo := NewNoteRepository(db)
	ctx := context.Background()

	clock := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return clock }

	n := &domain.Note{UserID: 1, Title: "groceries", Content: "milk"}
	require.NoError(t, repo.Create(ctx, n))
	assert.Equal(t, int64(1), n.ID)
	assert.Equal(t, clock, n.CreatedAt)
	require.NoError(t, repo.Create(ctx, &domain.Note{UserID: 2, Title: "other", Content: "x"}))

	mine, err := repo.ListByOwner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, n, mine[0])

	_, err = repo.Get(ctx, 2, n.ID)
	assert.ErrorIs(t, err, domain.ErrNoteNotFound)

	clock = clock.Add(time.Hour)
	updated, err := repo.Update(ctx, 1, n.ID, domain.NotePatch{Content: strPtr("eggs")})
	require.NoError(t, err)
	assert.Equal(t, "groceries", updated.Title)
	assert.Equal(t, "eggs", updated.Content)
	assert.Equal(t, n.CreatedAt, updated.CreatedAt)
	assert.Equal(t, clock, updated.UpdatedAt)

	got, err := repo.Get(ctx, 1, n.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	_, err = repo.Update(ctx, 2, n.ID, domain.NotePatch{Title: strPtr("stolen")})
	assert.ErrorIs(t, err, domain.ErrNoteNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, 2, n.ID), domain.ErrNoteNotFound)
	require.NoError(t, repo.Delete(ctx, 1, n.ID))
	_, err = repo.Get(ctx, 1, n.ID)
	assert.ErrorIs(t, err, domain.ErrNoteNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 1, n.ID), domain.ErrNoteNotFound)

	mine, err = repo.ListByOwner(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, mine)
	assert.NoError(t, repo.Ping(ctx))
}

// Package sqlite stores accounts and notes in SQLite through the pure-Go
// modernc.org/sqlite driver. Timestamps are kept as unix microseconds.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/vncsmyrnk/jarvis/internal/dbx"
)

const accountsDDL = `
CREATE TABLE IF NOT EXISTS users (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    username        TEXT NOT NULL UNIQUE,
    first_name      TEXT NOT NULL,
    hashed_password TEXT NOT NULL,
    created_at      INTEGER NOT NULL
)`

const notesDDL = `
CREATE TABLE IF NOT EXISTS notes (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id    INTEGER NOT NULL,
    title      TEXT NOT NULL,
    content    TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS notes_user_id_idx ON notes (user_id)`

// InitAccounts creates the users table if it does not exist.
func InitAccounts(ctx context.Context, db dbx.DBTX) error {
	if _, err := db.ExecContext(ctx, accountsDDL); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	return nil
}

// InitNotes creates the notes table if it does not exist.
func InitNotes(ctx context.Context, db dbx.DBTX) error {
	if _, err := db.ExecContext(ctx, notesDDL); err != nil {
		return fmt.Errorf("failed to create notes table: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return true
	}
	// Without extended result codes only the primary code is reported.
	return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(sqliteErr.Error(), "UNIQUE")
}

func toUnix(t time.Time) int64 {
	return t.UTC().UnixMicro()
}

func fromUnix(us int64) time.Time {
	return time.UnixMicro(us).UTC()
}

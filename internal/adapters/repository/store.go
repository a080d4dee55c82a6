// Package repository opens the database named by a DATABASE_URL and hands out
// the matching repository implementations.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/vncsmyrnk/jarvis/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/jarvis/internal/adapters/repository/sqlite"
	"github.com/vncsmyrnk/jarvis/internal/core/ports"
)

type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

type Store struct {
	DB      *sql.DB
	Dialect Dialect
}

// ParseURL maps a database URL to a driver name and DSN. SQLite URLs follow
// the sqlite:///relative.db and sqlite:////absolute.db convention; an empty
// path or :memory: selects an in-memory database.
func ParseURL(databaseURL string) (Dialect, string, error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return DialectPostgres, databaseURL, nil
	case strings.HasPrefix(databaseURL, "sqlite:"):
		path := strings.TrimPrefix(databaseURL, "sqlite:")
		path = strings.TrimPrefix(path, "//")
		path = strings.TrimPrefix(path, "/")
		if path == "" || path == ":memory:" {
			return DialectSQLite, ":memory:", nil
		}
		return DialectSQLite, path, nil
	default:
		return "", "", fmt.Errorf("unsupported database url %q", redact(databaseURL))
	}
}

func redact(u string) string {
	if i := strings.Index(u, "://"); i >= 0 {
		return u[:i+3] + "..."
	}
	return "..."
}

func Open(ctx context.Context, databaseURL string) (*Store, error) {
	dialect, dsn, err := ParseURL(databaseURL)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dialect == DialectSQLite {
		// One connection keeps :memory: databases shared and serializes writers.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &Store{DB: db, Dialect: dialect}, nil
}

// Migrate brings the schema used by one service up to date.
func (s *Store) Migrate(ctx context.Context, schema postgres.Schema) error {
	if s.Dialect == DialectPostgres {
		return postgres.MigrateUp(ctx, s.DB, schema)
	}
	switch schema {
	case postgres.SchemaAuth:
		return sqlite.InitAccounts(ctx, s.DB)
	case postgres.SchemaNotes:
		return sqlite.InitNotes(ctx, s.DB)
	default:
		return fmt.Errorf("unknown schema %q", schema)
	}
}

func (s *Store) Accounts() ports.AccountRepository {
	if s.Dialect == DialectPostgres {
		return postgres.NewAccountRepository(s.DB)
	}
	return sqlite.NewAccountRepository(s.DB)
}

func (s *Store) Notes() ports.NoteRepository {
	if s.Dialect == DialectPostgres {
		return postgres.NewNoteRepository(s.DB)
	}
	return sqlite.NewNoteRepository(s.DB)
}

func (s *Store) Close() error {
	return s.DB.Close()
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/vncsmyrnk/jarvis/internal/adapters/repository/postgres/migrations"
)

// Schema names a migration set. Each set keeps its own goose version table so
// both services can share one database.
type Schema string

const (
	SchemaAuth  Schema = "auth"
	SchemaNotes Schema = "notes"
)

func (s Schema) valid() bool {
	return s == SchemaAuth || s == SchemaNotes
}

func (s Schema) versionTable() string {
	return "goose_" + string(s) + "_version"
}

// gooseRun is a seam for tests.
var gooseRun = func(ctx context.Context, command string, db *sql.DB, dir string, args ...string) error {
	return goose.RunContext(ctx, command, db, dir, args...)
}

// RunMigrations executes a goose command (up, down, status, ...) for schema.
func RunMigrations(ctx context.Context, db *sql.DB, schema Schema, command string, args ...string) error {
	if !schema.valid() {
		return fmt.Errorf("unknown schema %q", schema)
	}

	goose.SetBaseFS(migrations.FS)
	goose.SetTableName(schema.versionTable())
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err := gooseRun(ctx, command, db, string(schema), args...); err != nil {
		return fmt.Errorf("migrations %s %s: %w", schema, command, err)
	}
	return nil
}

func MigrateUp(ctx context.Context, db *sql.DB, schema Schema) error {
	return RunMigrations(ctx, db, schema, "up")
}

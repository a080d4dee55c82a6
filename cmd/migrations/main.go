package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/vncsmyrnk/jarvis/internal/adapters/repository"
	"github.com/vncsmyrnk/jarvis/internal/adapters/repository/postgres"
)

const usage = "usage: migrations <auth|notes> <up|down|status|version|redo|reset> [args...]"

func main() {
	if len(os.Args) < 3 {
		log.Fatal(usage)
	}
	schema := postgres.Schema(os.Args[1])
	command := os.Args[2]

	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env.local"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading %s: %v", envFile, err)
	}

	if err := migrate(context.Background(), os.Getenv("DATABASE_URL"), schema, command, os.Args[3:]...); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Migrations %s %s executed successfully.\n", schema, command)
}

func migrate(ctx context.Context, databaseURL string, schema postgres.Schema, command string, args ...string) error {
	dialect, _, err := repository.ParseURL(databaseURL)
	if err != nil {
		return err
	}
	if dialect != repository.DialectPostgres {
		return errors.New("migrations only run against postgres; sqlite schemas are created on startup")
	}

	store, err := repository.Open(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	return postgres.RunMigrations(ctx, store.DB, schema, command, args...)
}

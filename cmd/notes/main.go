package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vncsmyrnk/jarvis/internal/adapters/authclient"
	"github.com/vncsmyrnk/jarvis/internal/adapters/handler/http"
	"github.com/vncsmyrnk/jarvis/internal/adapters/repository"
	"github.com/vncsmyrnk/jarvis/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/jarvis/internal/config"
	"github.com/vncsmyrnk/jarvis/internal/core/services"
	"github.com/vncsmyrnk/jarvis/internal/logging"
	"github.com/vncsmyrnk/jarvis/internal/server"
)

// @title       Jarvis Notes API
// @version     1.0
// @BasePath    /note
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadNotes()
	if err != nil {
		return err
	}
	log := logging.New(os.Stdout, cfg.AppName, cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := repository.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Migrate(ctx, postgres.SchemaNotes); err != nil {
		return err
	}

	notes := store.Notes()
	router := http.NewNotesRouter(
		http.NewNoteHandler(services.NewNoteService(notes), log),
		authclient.New(cfg.AuthServiceURL, cfg.AuthServiceTimeout, log),
		http.NewHealthHandler(cfg.AppName, notes, log),
		http.RouterOptions{
			Log:            log,
			AllowedOrigins: http.AllowedOrigins(cfg.FrontendURL),
			TrustProxy:     cfg.TrustProxy,
		},
	)

	log.Info(ctx, "starting", "dialect", string(store.Dialect), "auth_service", cfg.AuthServiceURL)
	return server.ListenAndRun(ctx, cfg.Addr, router, log)
}

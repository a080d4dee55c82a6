package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vncsmyrnk/jarvis/internal/adapters/handler/http"
	"github.com/vncsmyrnk/jarvis/internal/adapters/hasher"
	"github.com/vncsmyrnk/jarvis/internal/adapters/repository"
	"github.com/vncsmyrnk/jarvis/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/jarvis/internal/adapters/token"
	"github.com/vncsmyrnk/jarvis/internal/config"
	"github.com/vncsmyrnk/jarvis/internal/core/services"
	"github.com/vncsmyrnk/jarvis/internal/logging"
	"github.com/vncsmyrnk/jarvis/internal/server"
)

// @title       Jarvis Auth API
// @version     1.0
// @BasePath    /auth
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadAuth()
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

	if err := store.Migrate(ctx, postgres.SchemaAuth); err != nil {
		return err
	}

	codec, err := token.NewCodec([]byte(cfg.JWTSecret), cfg.JWTAlgorithm)
	if err != nil {
		return err
	}
	accounts := store.Accounts()
	authSvc := services.NewAuthService(accounts, hasher.NewBcrypt(cfg.BcryptCost), codec, cfg, log)

	router := http.NewAuthRouter(
		http.NewAuthHandler(authSvc, log),
		http.NewHealthHandler(cfg.AppName, accounts, log),
		http.NewRateLimiter(cfg.LoginRatePerMinute),
		http.RouterOptions{
			Log:            log,
			AllowedOrigins: http.AllowedOrigins(cfg.FrontendURL),
			TrustProxy:     cfg.TrustProxy,
		},
	)

	log.Info(ctx, "starting", "dialect", string(store.Dialect))
	return server.ListenAndRun(ctx, cfg.Addr, router, log)
}

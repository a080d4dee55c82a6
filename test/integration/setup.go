package integration

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"

	"github.com/vncsmyrnk/jarvis/internal/adapters/authclient"
	handler "github.com/vncsmyrnk/jarvis/internal/adapters/handler/http"
	"github.com/vncsmyrnk/jarvis/internal/adapters/hasher"
	"github.com/vncsmyrnk/jarvis/internal/adapters/repository"
	repo "github.com/vncsmyrnk/jarvis/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/jarvis/internal/adapters/token"
	"github.com/vncsmyrnk/jarvis/internal/config"
	"github.com/vncsmyrnk/jarvis/internal/core/services"
	"github.com/vncsmyrnk/jarvis/internal/logging"
)

type TestApp struct {
	AuthServer  *httptest.Server
	NotesServer *httptest.Server
	Store       *repository.Store
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	dbName := "testdb"
	user := "user"
	password := "password"

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

// setupTestApp runs both services against one postgres database, the way they
// are deployed together.
func setupTestApp(t *testing.T) *TestApp {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbContainer.Terminate(context.Background()) })

	store, err := repository.Open(ctx, dbURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(ctx, repo.SchemaAuth))
	require.NoError(t, store.Migrate(ctx, repo.SchemaNotes))

	log := logging.Nop()
	codec, err := token.NewCodec([]byte("test-secret"), "HS256")
	require.NoError(t, err)
	cfg := &config.AuthConfig{AccessTokenTTL: 15 * time.Minute, RefreshTokenTTL: 24 * time.Hour}
	authSvc := services.NewAuthService(store.Accounts(), hasher.NewBcrypt(bcrypt.MinCost), codec, cfg, log)

	authServer := httptest.NewServer(handler.NewAuthRouter(
		handler.NewAuthHandler(authSvc, log),
		handler.NewHealthHandler("jarvis-auth", store.Accounts(), log),
		handler.NewRateLimiter(0),
		handler.RouterOptions{Log: log},
	))
	t.Cleanup(authServer.Close)

	notesServer := httptest.NewServer(handler.NewNotesRouter(
		handler.NewNoteHandler(services.NewNoteService(store.Notes()), log),
		authclient.New(authServer.URL, 5*time.Second, log),
		handler.NewHealthHandler("jarvis-notes", store.Notes(), log),
		handler.RouterOptions{Log: log},
	))
	t.Cleanup(notesServer.Close)

	return &TestApp{AuthServer: authServer, NotesServer: notesServer, Store: store}
}

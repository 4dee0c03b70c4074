// Package server initializes and runs the flashcards API server. It connects
// the database, applies migrations, builds the services and the configured
// authenticator, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/hmori/flashcards/internal/logging"
	"github.com/hmori/flashcards/internal/server/auth"
	"github.com/hmori/flashcards/internal/server/config"
	"github.com/hmori/flashcards/internal/server/httpapi"
	"github.com/hmori/flashcards/internal/server/repositories/repomanager"
	"github.com/hmori/flashcards/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.HTTPServer
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	handler := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(handler)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	repos := repomanager.NewPostgresRepositoryManager()
	if err := repos.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	us := services.NewUserService(db, repos)
	cs := services.NewCardService(db, repos)
	hs := services.NewHealthService(db)

	var authenticator auth.Authenticator
	switch cfg.AuthMode {
	case config.AuthModeSession:
		authenticator = auth.NewSessionAuthenticator(db, repos, []byte(cfg.SessionHashKey), cfg.SessionTTL)
	default:
		codec := auth.NewTokenCodec([]byte(cfg.JWTSecret), cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTokenTTL, cfg.JWTLeeway)
		authenticator = auth.NewBearerAuthenticator(codec)
	}

	server := httpapi.NewHTTPServer(cfg, logger, us, cs, hs, authenticator)

	return &App{config: cfg, logger: logger, db: db, server: server}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...", "auth_mode", app.config.AuthMode)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}

package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/teyroberto/agenda/internal/agenda/http"
	"github.com/teyroberto/agenda/internal/agenda/service"
	"github.com/teyroberto/agenda/internal/agenda/store"
	"github.com/teyroberto/agenda/internal/agenda/store/drivers/sqlite"
	"github.com/teyroberto/agenda/pkg/httpx"
	"github.com/teyroberto/agenda/pkg/jwtx"
	"github.com/teyroberto/agenda/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v2.0.0"
)

// Application encapsulates the agenda service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	signer   jwtx.Signer
	verifier jwtx.Verifier

	identityService *service.IdentityService
	contactsService *service.ContactsService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("AGENDA_JWT_SECRET must be set")
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "agenda-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initTokens(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("agenda service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down agenda service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("agenda service stopped")
	return nil
}

// initDatabase opens the SQLite store and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initTokens builds the HMAC signer and verifier from the shared secret.
func (app *Application) initTokens() error {
	signer, err := jwtx.NewSignerHS256([]byte(app.cfg.JWTSecret))
	if err != nil {
		return fmt.Errorf("failed to initialize token signer: %w", err)
	}

	verifier, err := jwtx.NewVerifierHS256([]byte(app.cfg.JWTSecret), app.cfg.Issuer)
	if err != nil {
		return fmt.Errorf("failed to initialize token verifier: %w", err)
	}

	app.signer = signer
	app.verifier = verifier
	return nil
}

// initServices initializes the business logic services.
func (app *Application) initServices() {
	app.identityService = &service.IdentityService{
		Store:      app.db,
		Signer:     app.signer,
		Verifier:   app.verifier,
		Issuer:     app.cfg.Issuer,
		SessionTTL: app.cfg.TokenTTL,
	}

	app.contactsService = &service.ContactsService{Store: app.db}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verifier,
		BuildVersion,
		httpx.CORSConfig{AllowedOrigins: app.cfg.CORSOrigins},
		app.db,
		app.logger,
	)

	router.IdentityService = app.identityService
	router.ContactsService = app.contactsService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

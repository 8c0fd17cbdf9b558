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

	"github.com/tetherchat/tether/internal/social/contact"
	httpapi "github.com/tetherchat/tether/internal/social/http"
	"github.com/tetherchat/tether/internal/social/service"
	"github.com/tetherchat/tether/internal/social/store"
	"github.com/tetherchat/tether/internal/social/store/drivers/sqlite"
	"github.com/tetherchat/tether/pkg/jwtx"
	"github.com/tetherchat/tether/pkg/slogx"
)

// BuildVersion is stamped into health responses and the swagger spec.
const BuildVersion = "v0.1.0"

// Application encapsulates the social service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	tokens *jwtx.HS256

	resolver *contact.Resolver

	userService         *service.UserService
	friendService       *service.FriendService
	inviteService       *service.InviteService
	queryService        *service.QueryService
	verifyService       *service.VerificationService
	dispatcher          *service.NotificationDispatcher
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "social-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.SessionSecret == "" {
		return nil, errors.New("SOCIAL_SESSION_SECRET is required")
	}
	tokens, err := jwtx.NewHS256([]byte(cfg.SessionSecret), cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session signer: %w", err)
	}
	app.tokens = tokens

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("social service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
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
	app.logger.Info("shutting down social service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("social service stopped")
	return nil
}

func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(app.cfg.DatabaseFile)
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

func (app *Application) initServices() {
	app.resolver = &contact.Resolver{
		Users:              app.db.Users(),
		DefaultCountryCode: app.cfg.DefaultCountryCode,
	}

	// LogMailer/LogTexter defaults: external delivery lands in the log
	// until real providers are wired.
	app.dispatcher = &service.NotificationDispatcher{Store: app.db}

	app.userService = &service.UserService{
		Store:      app.db,
		Resolver:   app.resolver,
		Signer:     app.tokens,
		Issuer:     app.cfg.Issuer,
		SessionTTL: app.cfg.SessionTTL,
	}
	app.friendService = &service.FriendService{
		Store:      app.db,
		Dispatcher: app.dispatcher,
	}
	app.inviteService = &service.InviteService{
		Store:      app.db,
		Resolver:   app.resolver,
		Dispatcher: app.dispatcher,
		TTL:        app.cfg.InviteTTL,
	}
	app.queryService = &service.QueryService{Store: app.db}
	app.verifyService = &service.VerificationService{
		Store:      app.db,
		Dispatcher: app.dispatcher,
		Issuer:     app.cfg.Issuer,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.NotificationRetention,
	)
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.tokens,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.UserService = app.userService
	router.FriendService = app.friendService
	router.InviteService = app.inviteService
	router.QueryService = app.queryService
	router.VerifyService = app.verifyService
	router.Dispatcher = app.dispatcher
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/taskhubhq/taskhub/internal/auth/http"
	"github.com/taskhubhq/taskhub/internal/auth/mail"
	"github.com/taskhubhq/taskhub/internal/auth/service"
	"github.com/taskhubhq/taskhub/internal/auth/store"
	"github.com/taskhubhq/taskhub/internal/auth/store/drivers/sqlite"
	"github.com/taskhubhq/taskhub/pkg/cryptox"
	"github.com/taskhubhq/taskhub/pkg/jwtx"
	"github.com/taskhubhq/taskhub/pkg/slogx"
)

// BuildVersion is stamped at build time via -ldflags "-X ...BuildVersion=".
var BuildVersion = "v0.1.0"

// Application encapsulates the auth service application with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	signer   jwtx.Signer
	verifier jwtx.Verifier
	mailer   mail.Mailer

	// Services
	registrationService *service.RegistrationService
	loginService        *service.LoginService
	passwordService     *service.PasswordService
	userService         *service.UserService
	twoFactorService    *service.TwoFactorService
	teamService         *service.TeamService
	taskService         *service.TaskService
	bootstrapService    *service.BootstrapService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Options{
			Service: "auth-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	signer, verifier, err := InitTokenKeys(app.cfg, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token signing: %w", err)
	}
	app.signer = signer
	app.verifier = verifier

	app.initMailer()
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	// Seed the first manager account before accepting traffic.
	ctx := slogx.WithContext(context.Background(), app.logger)
	if err := app.bootstrapService.SeedManager(ctx,
		app.cfg.BootstrapEmail, app.cfg.BootstrapName, app.cfg.BootstrapPassword); err != nil {
		return fmt.Errorf("manager seed failed: %w", err)
	}

	// Start housekeeping service
	app.housekeepingService.Start()

	app.logger.Info("auth service starting", "addr", app.cfg.ListenAddr, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Stop the housekeeping service
	app.housekeepingService.Stop()

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
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

// initMailer picks the mail transport. Without an SMTP host every message
// lands in the service log, which is how dev setups read their codes.
func (app *Application) initMailer() {
	if app.cfg.SMTPHost == "" {
		app.logger.Warn("SMTP not configured, mail will be written to the log")
		app.mailer = mail.Log{}
		return
	}

	app.mailer = &mail.SMTP{
		Host:     app.cfg.SMTPHost,
		Port:     app.cfg.SMTPPort,
		Username: app.cfg.SMTPUsername,
		Password: app.cfg.SMTPPassword,
		From:     app.cfg.SMTPFrom,
	}
	app.logger.Info("SMTP mailer configured", "host", app.cfg.SMTPHost, "from", app.cfg.SMTPFrom)
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.registrationService = &service.RegistrationService{
		Store:  app.db,
		Mailer: app.mailer,
	}
	app.loginService = &service.LoginService{
		Store:     app.db,
		Signer:    app.signer,
		Mailer:    app.mailer,
		Issuer:    app.cfg.Issuer,
		AccessTTL: app.cfg.TokenTTL,
	}
	app.passwordService = &service.PasswordService{
		Store:  app.db,
		Mailer: app.mailer,
	}
	app.userService = &service.UserService{Store: app.db}
	app.twoFactorService = &service.TwoFactorService{
		Store:  app.db,
		Issuer: app.cfg.Issuer,
	}

	policy := &service.PolicyService{Store: app.db}
	app.teamService = &service.TeamService{
		Store:  app.db,
		Mailer: app.mailer,
		Policy: policy,
	}
	app.taskService = &service.TaskService{
		Store:  app.db,
		Policy: policy,
	}

	app.bootstrapService = &service.BootstrapService{Store: app.db}
	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verifier,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.RegistrationService = app.registrationService
	router.LoginService = app.loginService
	router.PasswordService = app.passwordService
	router.UserService = app.userService
	router.TwoFactorService = app.twoFactorService
	router.TeamService = app.teamService
	router.TaskService = app.taskService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              app.cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

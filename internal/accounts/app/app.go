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

	httpapi "github.com/aussiebroadwan/passageqa/internal/accounts/http"
	"github.com/aussiebroadwan/passageqa/internal/accounts/notify"
	"github.com/aussiebroadwan/passageqa/internal/accounts/otp"
	"github.com/aussiebroadwan/passageqa/internal/accounts/otp/redisstore"
	"github.com/aussiebroadwan/passageqa/internal/accounts/service"
	"github.com/aussiebroadwan/passageqa/internal/accounts/store/drivers/sqlite"
	"github.com/aussiebroadwan/passageqa/pkg/jwtx"
	"github.com/aussiebroadwan/passageqa/pkg/metrics"
	"github.com/aussiebroadwan/passageqa/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"

	metricsNamespace = "passageqa_accounts"
)

// Application encapsulates the accounts service with all its dependencies
type Application struct {
	cfg     Config
	logger  *slog.Logger
	metrics *metrics.Metrics

	// Core dependencies
	db       *sqlite.Store
	otpStore otp.Store
	redis    *redisstore.Store // nil unless OTP_STORE=redis
	sender   notify.Sender
	signer   *jwtx.EdDSASigner
	verifier *jwtx.EdDSAVerifier

	// Services
	registry       *otp.Registry
	housekeeping   *otp.Housekeeping // nil when sweeping is off
	accountService *service.AccountService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "accounts-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		metrics: metrics.New(metricsNamespace),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	signer, verifier, err := InitKeys(cfg, app.logger)
	if err != nil {
		app.closeStores()
		return nil, fmt.Errorf("failed to initialize signing keys: %w", err)
	}
	app.signer, app.verifier = signer, verifier

	if err := app.initOTPStore(); err != nil {
		app.closeStores()
		return nil, err
	}

	app.initNotify()
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler exposes the HTTP handler, mostly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	if app.housekeeping != nil {
		app.housekeeping.Start()
	}

	app.logger.Info("accounts service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"otp_store", app.cfg.OTPStore,
		"notify_driver", app.cfg.NotifyDriver,
	)

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

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down accounts service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.housekeeping != nil {
		app.housekeeping.Stop()
	}

	if err := app.closeStores(); err != nil {
		return err
	}

	app.logger.Info("accounts service stopped")
	return nil
}

func (app *Application) closeStores() error {
	var errs []error
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
			errs = append(errs, err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database", "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// initDatabase opens the users database and applies migrations
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(app.cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		app.db = nil
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

// initOTPStore picks the OTP backend. Redis lets several replicas share
// pending codes; the memory store is per process.
func (app *Application) initOTPStore() error {
	if app.cfg.OTPStore != OTPStoreRedis {
		app.otpStore = otp.NewMemoryStore()
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rs, err := redisstore.New(ctx, app.cfg.redisOptions())
	if err != nil {
		return fmt.Errorf("failed to connect otp store: %w", err)
	}
	app.redis = rs
	app.otpStore = rs

	app.logger.Info("redis otp store connected", "addr", app.cfg.OTPRedisAddr, "db", app.cfg.OTPRedisDB)
	return nil
}

func (app *Application) initNotify() {
	if app.cfg.NotifyDriver == NotifyDriverLog {
		app.logger.Warn("notify driver is log, codes are written to the log and never emailed")
		app.sender = &notify.LogSender{Logger: app.logger}
		return
	}

	app.sender = &notify.SMTPSender{
		Config: app.cfg.SMTP,
		Logger: app.logger,
	}
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.registry = &otp.Registry{
		Store:   app.otpStore,
		Sender:  app.sender,
		Metrics: app.metrics,
		TTL:     app.cfg.OTPTTL,
	}

	// Redis expires keys on its own, so only the memory store is swept.
	if app.redis == nil && app.cfg.OTPSweepInterval > 0 {
		app.housekeeping = otp.NewHousekeeping(
			app.registry,
			app.logger,
			app.cfg.OTPSweepInterval,
			app.cfg.OTPSweepGrace,
		)
	}

	app.accountService = &service.AccountService{
		Credentials: &service.CredentialStore{Store: app.db},
		OTP:         app.registry,
		Signer:      app.signer,
		Verifier:    app.verifier,
		Issuer:      app.cfg.Issuer,
		TicketTTL:   app.cfg.TicketTTL,
		SessionTTL:  app.cfg.SessionTTL,
		Metrics:     app.metrics,
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verifier,
		BuildVersion,
		app.metrics,
		app.logger,
	)

	router.AccountService = app.accountService
	router.AddReadinessCheck("database", app.db)
	if app.redis != nil {
		router.AddReadinessCheck("otp_store", app.redis)
	}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

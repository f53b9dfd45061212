// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	router "cyberwallet-api/internal/api"
	"cyberwallet-api/internal/api/handler"
	"cyberwallet-api/internal/api/middleware"
	"cyberwallet-api/internal/config"
	"cyberwallet-api/internal/generator"
	"cyberwallet-api/internal/repository"
	"cyberwallet-api/internal/repository/postgres"
	"cyberwallet-api/internal/security"
	"cyberwallet-api/internal/service"
	"cyberwallet-api/internal/util"
	"cyberwallet-api/migrations"
	"cyberwallet-api/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	UserRepository        repository.UserRepository
	WalletRepository      repository.WalletRepository
	TransactionRepository repository.TransactionRepository
	ActivationRepository  repository.ActivationTokenRepository
	ResetRepository       repository.PasswordResetTokenRepository
	RevokedRepository     repository.RevokedTokenRepository
	ReferenceRepository   repository.ReferenceRepository
	DollarRepository      repository.DollarRateRepository

	// Services
	AuthService      service.AuthService
	WalletService    service.WalletService
	ReferenceService service.ReferenceService
	DollarService    service.DollarService

	// HTTP API
	HTTPHandler  http.Handler
	LoginLimiter *middleware.LoginRateLimiter

	cleanupStop chan struct{}
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database and apply migrations
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	if err := db.RunMigrations(app.DB, migrations.FS, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Logger.Info("Database connection established and schema up to date.")

	// 4. Initialize Repositories
	app.UserRepository = postgres.NewUserRepository(app.DB)
	app.WalletRepository = postgres.NewWalletRepository(app.DB)
	app.TransactionRepository = postgres.NewTransactionRepository(app.DB)
	app.ActivationRepository = postgres.NewActivationTokenRepository(app.DB)
	app.ResetRepository = postgres.NewPasswordResetTokenRepository(app.DB)
	app.RevokedRepository = postgres.NewRevokedTokenRepository(app.DB)
	app.ReferenceRepository = postgres.NewReferenceRepository(app.DB)
	app.DollarRepository = postgres.NewDollarRateRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	// 5. Initialize domain helpers
	aliasGen, err := generator.NewAliasGenerator()
	if err != nil {
		return fmt.Errorf("failed to load alias word list: %w", err)
	}
	tokens, err := security.NewTokenManager(app.Config.JWTSecret, app.Config.JWTExpiration)
	if err != nil {
		return fmt.Errorf("failed to init token manager: %w", err)
	}

	// 6. Initialize Services
	app.AuthService = service.NewAuthService(
		app.DB, app.DB,
		app.UserRepository, app.WalletRepository,
		app.ActivationRepository, app.ResetRepository, app.RevokedRepository,
		app.ReferenceRepository,
		aliasGen, tokens, service.NewLogMailer(app.Logger),
		db.BeginTx, db.CommitTx, db.RollbackTx,
	)
	app.WalletService = service.NewWalletService(
		app.DB, app.DB,
		app.UserRepository, app.WalletRepository, app.TransactionRepository,
		aliasGen,
		db.BeginTx, db.CommitTx, db.RollbackTx,
	)
	app.ReferenceService = service.NewReferenceService(app.DB, app.ReferenceRepository, app.UserRepository)
	app.DollarService = service.NewDollarService(app.Config.DollarAPIBaseURL, app.DB, app.DollarRepository)
	app.Logger.Info("Services initialized.")

	// 7. Initialize HTTP handlers, middleware and router
	gate := middleware.NewSessionGate(tokens, app.RevokedRepository, app.UserRepository, app.DB, app.Logger)
	app.LoginLimiter = middleware.NewLoginRateLimiter(app.Config.RateLimitEnabled)

	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(app.AuthService, app.Logger),
		User:       handler.NewUserHandler(app.AuthService, app.Logger),
		Wallet:     handler.NewWalletHandler(app.WalletService, app.Logger),
		Validation: handler.NewValidationHandler(app.ReferenceService, app.Logger),
		Dollar:     handler.NewDollarHandler(app.DollarService, app.Logger),
	}
	app.HTTPHandler = router.NewRouter(handlers, gate, app.LoginLimiter)
	app.Logger.Info("HTTP router and handlers initialized.")

	// 8. Background cleanup of expired revoked tokens
	app.cleanupStop = make(chan struct{})
	go app.runRevokedTokenCleanup(app.Config.BlacklistCleanupInterval)

	return nil
}

// runRevokedTokenCleanup periodically purges revocation entries whose JWT
// has already expired.
func (app *Application) runRevokedTokenCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			deleted, err := app.AuthService.CleanupRevokedTokens(ctx)
			cancel()
			if err != nil {
				app.Logger.Error("Revoked-token cleanup failed", "error", err)
				continue
			}
			if deleted > 0 {
				app.Logger.Info("Purged expired revoked tokens", "count", deleted)
			}
		case <-app.cleanupStop:
			return
		}
	}
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.cleanupStop != nil {
		close(app.cleanupStop)
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}

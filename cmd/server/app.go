package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/spending-api/internal/config"
	"github.com/phrazzld/spending-api/internal/platform/docstore"
	"github.com/phrazzld/spending-api/internal/service"
	"github.com/phrazzld/spending-api/internal/service/auth"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	tokenService    auth.TokenService
	userService     service.UserService
	spendingService service.SpendingService
}

// newApplication creates a new application instance with all dependencies initialized.
// The database connection must already be open; the application takes ownership of it.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB, dialect docstore.Dialect) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.tokenService, err = auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	logger.Info("Token service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	users := docstore.NewUserCollection(db, dialect, logger)
	spendings := docstore.NewSpendingCollection(db, dialect, logger)

	app.userService = service.NewUserService(users, db, auth.NewBcryptHasher(cfg.Auth.BCryptCost), app.tokenService, logger)
	app.spendingService = service.NewSpendingService(spendings, db, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down and releases resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}
	app.logger.Info("Application shutdown completed")
}

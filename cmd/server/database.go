package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/spending-api/internal/config"
	"github.com/phrazzld/spending-api/internal/platform/database"
	"github.com/phrazzld/spending-api/internal/platform/docstore"
)

// setupAppDatabase establishes a connection to the configured database.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, docstore.Dialect, error) {
	db, dialect, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up database: %w", err)
	}
	return db, dialect, nil
}

// handleMigrations runs a single migration command against the configured
// database and closes the connection.
func handleMigrations(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	dbCfg := cfg.Database
	dbCfg.AutoMigrate = false

	db, dialect, err := database.Open(ctx, dbCfg, logger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Error closing database connection", "error", err)
		}
	}()

	logger.Info("Executing migrations", "command", command, "driver", dbCfg.Driver)
	if err := docstore.Migrate(ctx, db, dialect, command, logger); err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}
	return nil
}

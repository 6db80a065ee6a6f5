// Package database opens the configured document database and pairs the
// connection with its SQL dialect.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/spending-api/internal/config"
	"github.com/phrazzld/spending-api/internal/platform/docstore"
	"github.com/phrazzld/spending-api/internal/platform/postgres"
	"github.com/phrazzld/spending-api/internal/platform/sqlite"
)

// Supported values of config.DatabaseConfig.Driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open connects to the database described by cfg. When cfg.AutoMigrate is
// set, pending migrations are applied before returning.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, docstore.Dialect, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		db      *sql.DB
		dialect docstore.Dialect
		err     error
	)
	switch cfg.Driver {
	case DriverPostgres:
		dialect = postgres.Dialect{}
		db, err = postgres.Open(ctx, cfg.URL, postgres.PoolOptions{
			MaxOpenConns: cfg.MaxOpenConns,
			MaxIdleConns: cfg.MaxIdleConns,
		})
	case DriverSQLite:
		dialect = sqlite.Dialect{}
		db, err = sqlite.Open(ctx, cfg.URL)
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}
	logger.Info("Database connection established", "driver", cfg.Driver)

	if cfg.AutoMigrate {
		if err := docstore.Migrate(ctx, db, dialect, "up", logger); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	return db, dialect, nil
}

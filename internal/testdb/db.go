// Package testdb provides utilities specifically for database testing.
//
// SQLite databases are always available and live in memory. PostgreSQL
// databases are only used when DATABASE_URL (or SPEND_TEST_DB_URL) is set;
// tests asking for one are skipped otherwise.
package testdb

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/phrazzld/spending-api/internal/ciutil"
	"github.com/phrazzld/spending-api/internal/platform/docstore"
	"github.com/phrazzld/spending-api/internal/platform/postgres"
	"github.com/phrazzld/spending-api/internal/platform/sqlite"
	"github.com/stretchr/testify/require"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// migrationLogger swallows goose progress output; failures surface as errors.
var migrationLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// IsIntegrationTestEnvironment returns true if a PostgreSQL test database is configured.
func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// GetTestDatabaseURL returns the PostgreSQL URL for tests.
// It checks DATABASE_URL and SPEND_TEST_DB_URL in that order.
func GetTestDatabaseURL() string {
	return ciutil.GetTestDatabaseURL(nil)
}

// NewSQLite returns a migrated in-memory SQLite database that is closed
// when the test finishes.
func NewSQLite(t *testing.T) *sql.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := sqlite.Open(ctx, sqlite.MemoryDSN)
	require.NoError(t, err, "Failed to open in-memory database")
	t.Cleanup(func() {
		closeDB(t, db)
	})

	require.NoError(t, docstore.Migrate(ctx, db, sqlite.Dialect{}, "up", migrationLogger),
		"Failed to run migrations")
	return db
}

// GetTestDBWithT returns a migrated PostgreSQL connection for testing.
// It skips the test if no database URL is configured.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		if ciutil.RequireTestDatabase() {
			t.Fatal("SPEND_REQUIRE_TEST_DB is set but no test database URL is configured")
		}
		t.Skip("DATABASE_URL or SPEND_TEST_DB_URL not set - skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := postgres.Open(ctx, dbURL, postgres.PoolOptions{MaxOpenConns: 10, MaxIdleConns: 5})
	require.NoError(t, err, "Failed to open database connection")
	t.Cleanup(func() {
		closeDB(t, db)
	})

	require.NoError(t, docstore.Migrate(ctx, db, postgres.Dialect{}, "up", migrationLogger),
		"Failed to run migrations")
	return db
}

// closeDB closes a database connection, logging any errors.
func closeDB(t *testing.T, db *sql.DB) {
	t.Helper()
	if db == nil {
		return
	}

	if err := db.Close(); err != nil {
		t.Logf("Warning: failed to close database connection: %v", err)
	}
}

// WithTx executes a test function within a transaction, automatically rolling back
// after the test completes. This ensures test isolation and prevents side effects.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "Failed to begin transaction")

	defer func() {
		err := tx.Rollback()
		// sql.ErrTxDone is expected if tx is already committed or rolled back
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}

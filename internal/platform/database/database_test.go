package database_test

import (
	"context"
	"testing"

	"github.com/phrazzld/spending-api/internal/config"
	"github.com/phrazzld/spending-api/internal/platform/database"
	"github.com/phrazzld/spending-api/internal/platform/docstore"
	"github.com/phrazzld/spending-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	db, dialect, err := database.Open(ctx, config.DatabaseConfig{
		Driver:      database.DriverSQLite,
		URL:         ":memory:",
		AutoMigrate: true,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	assert.Equal(t, "sqlite3", dialect.Name())
	require.NoError(t, docstore.Migrate(ctx, db, dialect, "status", nil))

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM spendings").Scan(&count))
	assert.Zero(t, count)
}

func TestOpen_WithoutMigrations(t *testing.T) {
	db, _, err := database.Open(context.Background(), config.DatabaseConfig{
		Driver: database.DriverSQLite,
		URL:    ":memory:",
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec("SELECT COUNT(*) FROM users")
	assert.Error(t, err, "tables exist only after migrating")
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, _, err := database.Open(context.Background(), config.DatabaseConfig{Driver: "mysql", URL: "x"}, nil)
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestOpen_Postgres(t *testing.T) {
	if !testdb.IsIntegrationTestEnvironment() {
		t.Skip("DATABASE_URL or SPEND_TEST_DB_URL not set - skipping integration test")
	}
	db, dialect, err := database.Open(context.Background(), config.DatabaseConfig{
		Driver:       database.DriverPostgres,
		URL:          testdb.GetTestDatabaseURL(),
		MaxOpenConns: 2,
		MaxIdleConns: 1,
		AutoMigrate:  true,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	assert.Equal(t, "postgres", dialect.Name())
}

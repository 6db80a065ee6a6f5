package postgres

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"github.com/phrazzld/spending-api/internal/platform/docstore"
	"github.com/phrazzld/spending-api/internal/store"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Dialect renders docstore statements for PostgreSQL.
// Scopes are matched with JSONB containment, merges use the || operator.
type Dialect struct{}

var _ docstore.Dialect = Dialect{}

// Name implements docstore.Dialect.
func (Dialect) Name() string { return "postgres" }

// Migrations implements docstore.Dialect.
func (Dialect) Migrations() fs.FS {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		panic(fmt.Sprintf("embedded migrations: %v", err))
	}
	return sub
}

// InsertQuery implements docstore.Dialect.
func (Dialect) InsertQuery(table string) string {
	return fmt.Sprintf("INSERT INTO %s (id, body) VALUES ($1, $2::jsonb)", table)
}

// GetQuery implements docstore.Dialect.
func (Dialect) GetQuery(table string) string {
	return fmt.Sprintf("SELECT id::text, body FROM %s WHERE id = $1", table)
}

// ListQuery implements docstore.Dialect.
func (Dialect) ListQuery(table string, scope store.Filter, limit int) (string, []any, error) {
	var (
		b    strings.Builder
		args []any
	)
	fmt.Fprintf(&b, "SELECT id::text, body FROM %s", table)

	if len(scope) > 0 {
		encoded, err := json.Marshal(scope)
		if err != nil {
			return "", nil, fmt.Errorf("%w: encode filter: %v", store.ErrInvalidEntity, err)
		}
		args = append(args, string(encoded))
		b.WriteString(" WHERE body @> $1::jsonb")
	}

	b.WriteString(" ORDER BY created_at, id")
	if limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", limit)
	}
	return b.String(), args, nil
}

// MergeQuery implements docstore.Dialect.
func (Dialect) MergeQuery(table string) string {
	return fmt.Sprintf(
		"UPDATE %s SET body = body || $2::jsonb, updated_at = clock_timestamp() WHERE id = $1 RETURNING id::text, body",
		table,
	)
}

// DeleteQuery implements docstore.Dialect.
func (Dialect) DeleteQuery(table string) string {
	return fmt.Sprintf("DELETE FROM %s WHERE id = $1", table)
}

// MapError implements docstore.Dialect.
func (Dialect) MapError(err error) error {
	return MapError(err)
}

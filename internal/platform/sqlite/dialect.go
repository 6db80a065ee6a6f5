package sqlite

import (
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"

	"github.com/phrazzld/spending-api/internal/platform/docstore"
	"github.com/phrazzld/spending-api/internal/store"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// filterKeyPattern restricts scope keys to plain top-level field names, since
// they are interpolated into JSON paths.
var filterKeyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Dialect renders docstore statements for SQLite.
// Scopes are matched field by field with json_extract, merges use json_patch.
type Dialect struct{}

var _ docstore.Dialect = Dialect{}

// Name implements docstore.Dialect.
func (Dialect) Name() string { return "sqlite3" }

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
	return fmt.Sprintf("INSERT INTO %s (id, body) VALUES (?1, json(?2))", table)
}

// GetQuery implements docstore.Dialect.
func (Dialect) GetQuery(table string) string {
	return fmt.Sprintf("SELECT id, body FROM %s WHERE id = ?1", table)
}

// ListQuery implements docstore.Dialect.
func (Dialect) ListQuery(table string, scope store.Filter, limit int) (string, []any, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "SELECT id, body FROM %s", table)

	keys := make([]string, 0, len(scope))
	for key := range scope {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	args := make([]any, 0, len(keys))
	for i, key := range keys {
		if !filterKeyPattern.MatchString(key) {
			return "", nil, fmt.Errorf("%w: invalid filter field %q", store.ErrInvalidEntity, key)
		}
		value, err := filterValue(scope[key])
		if err != nil {
			return "", nil, fmt.Errorf("%w: filter field %q: %v", store.ErrInvalidEntity, key, err)
		}

		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		fmt.Fprintf(&b, "json_extract(body, '$.%s') = ?%d", key, i+1)
		args = append(args, value)
	}

	b.WriteString(" ORDER BY rowid")
	if limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", limit)
	}
	return b.String(), args, nil
}

// filterValue converts a scope value to what json_extract yields for it.
func filterValue(v any) (any, error) {
	switch val := v.(type) {
	case string, int, int64, float64:
		return val, nil
	case bool:
		if val {
			return 1, nil
		}
		return 0, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

// MergeQuery implements docstore.Dialect.
func (Dialect) MergeQuery(table string) string {
	return fmt.Sprintf(
		"UPDATE %s SET body = json_patch(body, json(?2)), updated_at = CURRENT_TIMESTAMP WHERE id = ?1 RETURNING id, body",
		table,
	)
}

// DeleteQuery implements docstore.Dialect.
func (Dialect) DeleteQuery(table string) string {
	return fmt.Sprintf("DELETE FROM %s WHERE id = ?1", table)
}

// MapError implements docstore.Dialect.
func (Dialect) MapError(err error) error {
	return MapError(err)
}

package docstore

import (
	"io/fs"

	"github.com/phrazzld/spending-api/internal/store"
)

// Dialect renders the statements a Collection executes for one database engine.
//
// Every statement that reads documents must select exactly two columns: id, body.
type Dialect interface {
	// Name returns the goose dialect name ("postgres", "sqlite3").
	Name() string

	// Migrations returns the embedded migration files, rooted at the directory
	// containing the *.sql files.
	Migrations() fs.FS

	// InsertQuery takes (id, body).
	InsertQuery(table string) string

	// GetQuery takes (id).
	GetQuery(table string) string

	// ListQuery renders a select restricted to scope, in insertion order.
	// A limit of zero means no limit.
	ListQuery(table string, scope store.Filter, limit int) (string, []any, error)

	// MergeQuery takes (id, patch) and returns the merged row.
	MergeQuery(table string) string

	// DeleteQuery takes (id).
	DeleteQuery(table string) string

	// MapError translates driver errors into store errors.
	MapError(err error) error
}

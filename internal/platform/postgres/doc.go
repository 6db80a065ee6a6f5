// Package postgres stores document collections in PostgreSQL JSONB columns.
// It provides the docstore dialect, driver error mapping, connection setup
// and the embedded schema migrations.
package postgres

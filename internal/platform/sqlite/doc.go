// Package sqlite stores document collections in SQLite using the JSON1
// functions. It backs local development and the test suite, where a
// PostgreSQL server is not available.
package sqlite

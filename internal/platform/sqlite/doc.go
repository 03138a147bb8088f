// Package sqlite provides the embedded SQLite backend: connection setup,
// the SQL dialect used by sqlstore, and the schema migrations.
package sqlite

// Package postgres provides the PostgreSQL backend: connection setup through
// the pgx stdlib driver, the SQL dialect used by sqlstore, error
// classification for pgconn errors, and the schema migrations.
package postgres

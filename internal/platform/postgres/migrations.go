package postgres

import (
	"context"
	"database/sql"
	"embed"
	"log/slog"

	"github.com/phrazzld/libris-api/internal/platform/migrate"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migrations is the embedded PostgreSQL schema.
var Migrations = migrate.Source{
	Dialect: "postgres",
	FS:      migrationFS,
	Dir:     "migrations",
}

// Migrate runs a migration command ("up", "down", ...) against db.
func Migrate(ctx context.Context, db *sql.DB, command string, logger *slog.Logger) error {
	return migrate.Run(ctx, db, Migrations, command, logger)
}

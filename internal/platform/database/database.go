// Package database selects the SQL engine named by configuration. It opens
// the connection, supplies the matching store dialect and runs the embedded
// migrations for that engine.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/libris-api/internal/config"
	"github.com/phrazzld/libris-api/internal/platform/postgres"
	"github.com/phrazzld/libris-api/internal/platform/sqlite"
	"github.com/phrazzld/libris-api/internal/platform/sqlstore"
)

// Open opens and pings the database described by cfg.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.Open(ctx, cfg.URL, postgres.PoolConfig{
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute,
		})
	case config.DriverSQLite:
		return sqlite.Open(ctx, cfg.URL)
	default:
		return nil, unsupported(cfg.Driver)
	}
}

// Dialect returns the store dialect for driver.
func Dialect(driver string) (sqlstore.Dialect, error) {
	switch driver {
	case config.DriverPostgres:
		return postgres.Dialect{}, nil
	case config.DriverSQLite:
		return sqlite.Dialect{}, nil
	default:
		return nil, unsupported(driver)
	}
}

// Migrate runs a migration command with the embedded schema of driver.
func Migrate(ctx context.Context, db *sql.DB, driver, command string, logger *slog.Logger) error {
	switch driver {
	case config.DriverPostgres:
		return postgres.Migrate(ctx, db, command, logger)
	case config.DriverSQLite:
		return sqlite.Migrate(ctx, db, command, logger)
	default:
		return unsupported(driver)
	}
}

func unsupported(driver string) error {
	return fmt.Errorf("unsupported database driver %q", driver)
}

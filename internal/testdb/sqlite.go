package testdb

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/phrazzld/libris-api/internal/platform/sqlite"
)

// NewSQLite opens a fresh SQLite database in the test's temp directory and
// applies all migrations. The database is closed when the test completes.
func NewSQLite(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "libris-test.db")
	db, err := sqlite.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})

	if err := sqlite.Migrate(context.Background(), db, "up", quietLogger()); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	return db
}

// quietLogger discards migration chatter below warning level.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

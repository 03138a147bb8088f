package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/phrazzld/libris-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupAppDatabase_SQLite(t *testing.T) {
	log, _ := logger.GetTestLogger(t)
	cfg := testConfig()
	cfg.Database.URL = filepath.Join(t.TempDir(), "data", "libris.db")

	ctx := context.Background()
	db, err := setupAppDatabase(ctx, cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, runMigrations(ctx, db, cfg.Database.Driver, "up", log))

	err = runMigrations(ctx, db, cfg.Database.Driver, "sideways", log)
	assert.ErrorContains(t, err, `migration "sideways" failed`)
}

func TestNewApplication_UnsupportedDriver(t *testing.T) {
	log, _ := logger.GetTestLogger(t)
	cfg := testConfig()
	cfg.Database.Driver = "mysql"

	_, err := setupAppDatabase(context.Background(), cfg, log)
	assert.ErrorContains(t, err, `unsupported database driver "mysql"`)

	_, err = newApplication(cfg, log, nil)
	assert.Error(t, err)
}

func TestNewApplication_ShortSecret(t *testing.T) {
	log, _ := logger.GetTestLogger(t)
	cfg := testConfig()
	cfg.Auth.JWTSecret = "too-short"

	_, err := newApplication(cfg, log, nil)
	assert.ErrorContains(t, err, "failed to initialize JWT service")
}

package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
)

// TableName is the table goose uses to track applied migrations.
const TableName = "schema_migrations"

// Commands lists the supported migration commands.
var Commands = []string{"up", "down", "reset", "status", "version"}

// Source describes a set of embedded migrations for one SQL engine.
type Source struct {
	// Dialect is the goose dialect name, e.g. "postgres" or "sqlite3".
	Dialect string
	// FS holds the migration files.
	FS fs.FS
	// Dir is the directory inside FS containing the .sql files.
	Dir string
}

// goose keeps its configuration in package globals.
var gooseMu sync.Mutex

// Run executes a migration command against db.
func Run(ctx context.Context, db *sql.DB, src Source, command string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(
		slog.String("correlation_id", uuid.New().String()),
		slog.String("component", "migrations"),
		slog.String("command", command),
		slog.String("dialect", src.Dialect),
	)

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(src.FS)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(&slogGooseLogger{logger: log})
	goose.SetTableName(TableName)
	if err := goose.SetDialect(src.Dialect); err != nil {
		log.Error("failed to set dialect", slog.String("error", err.Error()))
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	startTime := time.Now()
	before := currentVersion(ctx, db, log)
	log.Info("starting migration operation", slog.Int64("current_version", before))

	var err error
	switch command {
	case "up":
		err = goose.UpContext(ctx, db, src.Dir)
	case "down":
		err = goose.DownContext(ctx, db, src.Dir)
	case "reset":
		err = goose.ResetContext(ctx, db, src.Dir)
	case "status":
		err = goose.StatusContext(ctx, db, src.Dir)
	case "version":
		err = goose.VersionContext(ctx, db, src.Dir)
	default:
		log.Error("unknown migration command", slog.Any("valid_commands", Commands))
		return fmt.Errorf("unknown migration command: %s (expected up, down, reset, status, or version)", command)
	}

	if err != nil {
		log.Error("migration command failed",
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(startTime).Milliseconds()))
		return fmt.Errorf("migration command '%s' failed: %w", command, err)
	}

	after := currentVersion(ctx, db, log)
	log.Info("migration command executed successfully",
		slog.Int64("previous_version", before),
		slog.Int64("new_version", after),
		slog.Int64("duration_ms", time.Since(startTime).Milliseconds()))
	return nil
}

// currentVersion returns the applied schema version, or 0 when none is
// recorded yet. Failures are logged and reported as 0.
func currentVersion(ctx context.Context, db *sql.DB, log *slog.Logger) int64 {
	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		log.Debug("could not read migration version", slog.String("error", err.Error()))
		return 0
	}
	return version
}

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf implements goose.Logger by forwarding messages at info level.
func (l *slogGooseLogger) Printf(format string, v ...any) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf implements goose.Logger. It logs at error level and does NOT exit;
// the failure is returned to the caller instead.
func (l *slogGooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

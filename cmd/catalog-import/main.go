// Command catalog-import seeds the catalog from a YAML file of authors with
// nested books. Entries that break a catalog rule are reported and skipped.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/libris-api/internal/config"
	"github.com/phrazzld/libris-api/internal/platform/database"
	"github.com/phrazzld/libris-api/internal/platform/logger"
	"github.com/phrazzld/libris-api/internal/platform/sqlstore"
	"github.com/phrazzld/libris-api/internal/service"
)

func main() {
	file := flag.String("file", "catalog.yaml", "path to the YAML catalog")
	flag.Parse()

	if err := run(context.Background(), *file); err != nil {
		fmt.Fprintf(os.Stderr, "catalog-import: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, path string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log = log.With(slog.String("component", "catalog_import"))

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	cat, err := parseCatalog(f)
	if err != nil {
		return err
	}

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db, cfg.Database.Driver, "up", log); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	dialect, err := database.Dialect(cfg.Database.Driver)
	if err != nil {
		return err
	}
	authorStore := sqlstore.NewAuthorStore(db, dialect, log)
	bookStore := sqlstore.NewBookStore(db, dialect, log)

	im := &importer{
		authors: service.NewAuthorService(authorStore, db, log),
		books:   service.NewBookService(bookStore, authorStore, db, log),
		logger:  log,
	}

	rep, err := im.Import(ctx, cat)
	if rep != nil {
		log.Info("catalog import finished",
			slog.Int("authors_created", rep.AuthorsCreated),
			slog.Int("books_created", rep.BooksCreated),
			slog.Int("skipped", len(rep.Skipped)))
		for _, reason := range rep.Skipped {
			fmt.Fprintf(os.Stderr, "skipped: %s\n", reason)
		}
	}
	return err
}

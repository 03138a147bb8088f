package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/libris-api/internal/config"
	"github.com/phrazzld/libris-api/internal/platform/database"
	"github.com/phrazzld/libris-api/internal/platform/sqlstore"
	"github.com/phrazzld/libris-api/internal/service"
	"github.com/phrazzld/libris-api/internal/service/auth"
	"github.com/phrazzld/libris-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	authorStore store.AuthorStore
	bookStore   store.BookStore
	userStore   store.UserStore

	// Service interfaces
	jwtService    auth.JWTService
	authorService service.AuthorService
	bookService   service.BookService
	userService   service.UserService
}

// newApplication creates a new application instance with all dependencies initialized.
// It accepts core dependencies like configuration, logger, and database connection that
// must be established before application initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	dialect, err := database.Dialect(cfg.Database.Driver)
	if err != nil {
		return nil, err
	}

	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	hasher := auth.NewBcrypt(cfg.Auth.BCryptCost)

	app.authorStore = sqlstore.NewAuthorStore(db, dialect, logger)
	app.bookStore = sqlstore.NewBookStore(db, dialect, logger)
	app.userStore = sqlstore.NewUserStore(db, dialect, logger)

	app.authorService = service.NewAuthorService(app.authorStore, db, logger)
	app.bookService = service.NewBookService(app.bookStore, app.authorStore, db, logger)
	app.userService = service.NewUserService(app.userStore, hasher, hasher, app.jwtService, db, logger)

	logger.Info("Application initialized successfully", "dialect", dialect.Name())
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It blocks until ctx is canceled or the server fails.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}

package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/libris-api/internal/domain"
	"github.com/phrazzld/libris-api/internal/platform/logger"
	"github.com/phrazzld/libris-api/internal/store"
)

const authorColumns = `id, name, nationality, date_of_birth, created_at, updated_at`

// AuthorStore implements store.AuthorStore over database/sql.
type AuthorStore struct {
	db      store.DBTX
	dialect Dialect
	logger  *slog.Logger
}

// NewAuthorStore creates an AuthorStore. It accepts a database connection or
// transaction that is initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewAuthorStore(db store.DBTX, dialect Dialect, logger *slog.Logger) *AuthorStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if dialect == nil {
		panic("dialect cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthorStore{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "author_store")),
	}
}

// Ensure AuthorStore implements store.AuthorStore interface
var _ store.AuthorStore = (*AuthorStore)(nil)

// Create implements store.AuthorStore.Create
func (s *AuthorStore) Create(ctx context.Context, author *domain.Author) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := author.Validate(); err != nil {
		log.Warn("author validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query := s.dialect.Rebind(`
		INSERT INTO authors (name, nationality, date_of_birth, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`)

	err := s.db.QueryRowContext(
		ctx,
		query,
		author.Name,
		nullString(author.Nationality),
		nullString(author.DateOfBirth),
		author.CreatedAt,
		author.UpdatedAt,
	).Scan(&author.ID)
	if err != nil {
		log.Error("failed to create author", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create author: %w", err)
	}

	log.Info("author created successfully", slog.Int64("author_id", author.ID))
	return nil
}

// GetByID implements store.AuthorStore.GetByID
// Returns store.ErrAuthorNotFound if the author does not exist.
func (s *AuthorStore) GetByID(ctx context.Context, id int64) (*domain.Author, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("retrieving author by ID", slog.Int64("author_id", id))

	query := s.dialect.Rebind(`SELECT ` + authorColumns + ` FROM authors WHERE id = ?`)

	author, err := scanAuthor(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("author not found", slog.Int64("author_id", id))
			return nil, store.ErrAuthorNotFound
		}
		log.Error("failed to get author",
			slog.String("error", err.Error()),
			slog.Int64("author_id", id))
		return nil, fmt.Errorf("failed to get author: %w", err)
	}

	return author, nil
}

// List implements store.AuthorStore.List
func (s *AuthorStore) List(ctx context.Context) (authors []*domain.Author, err error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("listing authors")

	rows, err := s.db.QueryContext(ctx, `SELECT `+authorColumns+` FROM authors ORDER BY id`)
	if err != nil {
		log.Error("failed to list authors", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			log.Error("failed to close rows", slog.String("error", closeErr.Error()))
			err = fmt.Errorf("failed to close rows: %w", closeErr)
		}
	}()

	authors = []*domain.Author{}
	for rows.Next() {
		author, err := scanAuthor(rows)
		if err != nil {
			log.Error("failed to scan author row", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, author)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating author rows", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to iterate authors: %w", err)
	}

	log.Debug("listed authors", slog.Int("count", len(authors)))
	return authors, nil
}

// Update implements store.AuthorStore.Update
// Returns store.ErrAuthorNotFound if the author does not exist.
func (s *AuthorStore) Update(ctx context.Context, author *domain.Author) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := author.Validate(); err != nil {
		log.Warn("author validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("author_id", author.ID))
		return err
	}

	query := s.dialect.Rebind(`
		UPDATE authors
		SET name = ?, nationality = ?, date_of_birth = ?, updated_at = ?
		WHERE id = ?
	`)

	result, err := s.db.ExecContext(
		ctx,
		query,
		author.Name,
		nullString(author.Nationality),
		nullString(author.DateOfBirth),
		author.UpdatedAt,
		author.ID,
	)
	if err != nil {
		log.Error("failed to update author",
			slog.String("error", err.Error()),
			slog.Int64("author_id", author.ID))
		return fmt.Errorf("failed to update author: %w", err)
	}

	if err := checkRowsAffected(result, store.ErrAuthorNotFound); err != nil {
		log.Debug("author not found for update", slog.Int64("author_id", author.ID))
		return err
	}

	log.Info("author updated successfully", slog.Int64("author_id", author.ID))
	return nil
}

// Delete implements store.AuthorStore.Delete
// Returns store.ErrAuthorNotFound if the author does not exist and
// store.ErrAuthorReferenced if books still reference it.
func (s *AuthorStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, s.dialect.Rebind(`DELETE FROM authors WHERE id = ?`), id)
	if err != nil {
		if s.dialect.IsForeignKeyViolation(err) {
			log.Warn("author delete rejected by foreign key",
				slog.Int64("author_id", id))
			return fmt.Errorf("%w: %v", store.ErrAuthorReferenced, err)
		}
		log.Error("failed to delete author",
			slog.String("error", err.Error()),
			slog.Int64("author_id", id))
		return fmt.Errorf("failed to delete author: %w", err)
	}

	if err := checkRowsAffected(result, store.ErrAuthorNotFound); err != nil {
		log.Debug("author not found for delete", slog.Int64("author_id", id))
		return err
	}

	log.Info("author deleted successfully", slog.Int64("author_id", id))
	return nil
}

// CountBooks implements store.AuthorStore.CountBooks
func (s *AuthorStore) CountBooks(ctx context.Context, authorID int64) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var count int
	err := s.db.QueryRowContext(
		ctx,
		s.dialect.Rebind(`SELECT COUNT(*) FROM books WHERE author_id = ?`),
		authorID,
	).Scan(&count)
	if err != nil {
		log.Error("failed to count author books",
			slog.String("error", err.Error()),
			slog.Int64("author_id", authorID))
		return 0, fmt.Errorf("failed to count books for author: %w", err)
	}

	return count, nil
}

// WithTx implements store.AuthorStore.WithTx
func (s *AuthorStore) WithTx(tx *sql.Tx) store.AuthorStore {
	return &AuthorStore{
		db:      tx,
		dialect: s.dialect,
		logger:  s.logger,
	}
}

func scanAuthor(row rowScanner) (*domain.Author, error) {
	var (
		author      domain.Author
		nationality sql.NullString
		dateOfBirth sql.NullString
	)

	if err := row.Scan(
		&author.ID,
		&author.Name,
		&nationality,
		&dateOfBirth,
		&author.CreatedAt,
		&author.UpdatedAt,
	); err != nil {
		return nil, err
	}

	author.Nationality = stringPtr(nationality)
	author.DateOfBirth = stringPtr(dateOfBirth)
	return &author, nil
}

// checkRowsAffected returns notFound when an UPDATE or DELETE touched no rows.
func checkRowsAffected(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}

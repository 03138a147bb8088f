package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/libris-api/internal/domain"
	"github.com/phrazzld/libris-api/internal/platform/logger"
	"github.com/phrazzld/libris-api/internal/store"
)

// bookSelect reads a book together with its author. The foreign key
// guarantees the join always finds the author.
const bookSelect = `
	SELECT b.id, b.title, b.isbn, b.author_id, b.published_year, b.genre,
	       b.is_available, b.created_at, b.updated_at,
	       a.id, a.name, a.nationality, a.date_of_birth, a.created_at, a.updated_at
	FROM books b
	JOIN authors a ON a.id = b.author_id
`

// BookStore implements store.BookStore over database/sql.
type BookStore struct {
	db      store.DBTX
	dialect Dialect
	logger  *slog.Logger
}

// NewBookStore creates a BookStore. It accepts a database connection or
// transaction that is initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewBookStore(db store.DBTX, dialect Dialect, logger *slog.Logger) *BookStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if dialect == nil {
		panic("dialect cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &BookStore{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "book_store")),
	}
}

// Ensure BookStore implements store.BookStore interface
var _ store.BookStore = (*BookStore)(nil)

// Create implements store.BookStore.Create
// Returns store.ErrISBNExists on a duplicate ISBN and store.ErrAuthorMissing
// when the author does not exist.
func (s *BookStore) Create(ctx context.Context, book *domain.Book) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := book.Validate(); err != nil {
		log.Warn("book validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query := s.dialect.Rebind(`
		INSERT INTO books (title, isbn, author_id, published_year, genre, is_available, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)

	err := s.db.QueryRowContext(
		ctx,
		query,
		book.Title,
		book.ISBN,
		book.AuthorID,
		nullInt(book.PublishedYear),
		nullString(book.Genre),
		book.IsAvailable,
		book.CreatedAt,
		book.UpdatedAt,
	).Scan(&book.ID)
	if err != nil {
		if mapped := s.mapWriteError(log, err, book); mapped != nil {
			return mapped
		}
		log.Error("failed to create book",
			slog.String("error", err.Error()),
			slog.String("isbn", book.ISBN))
		return fmt.Errorf("failed to create book: %w", err)
	}

	log.Info("book created successfully",
		slog.Int64("book_id", book.ID),
		slog.Int64("author_id", book.AuthorID))
	return nil
}

// GetByID implements store.BookStore.GetByID
// Returns store.ErrBookNotFound if the book does not exist.
func (s *BookStore) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("retrieving book by ID", slog.Int64("book_id", id))

	book, err := scanBook(s.db.QueryRowContext(ctx, s.dialect.Rebind(bookSelect+`WHERE b.id = ?`), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("book not found", slog.Int64("book_id", id))
			return nil, store.ErrBookNotFound
		}
		log.Error("failed to get book",
			slog.String("error", err.Error()),
			slog.Int64("book_id", id))
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	return book, nil
}

// List implements store.BookStore.List
func (s *BookStore) List(ctx context.Context, filter store.BookFilter) (books []*domain.Book, err error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("listing books",
		slog.Int("offset", filter.Offset),
		slog.Int("limit", filter.Limit),
		slog.Bool("available_only", filter.AvailableOnly),
		slog.String("title_contains", filter.TitleContains))

	var (
		conditions []string
		args       []any
	)
	if filter.AvailableOnly {
		conditions = append(conditions, "b.is_available = ?")
		args = append(args, true)
	}
	if filter.TitleContains != "" {
		conditions = append(conditions, s.dialect.ContainsFold("b.title"))
		args = append(args, containsPattern(filter.TitleContains))
	}

	var query strings.Builder
	query.WriteString(bookSelect)
	if len(conditions) > 0 {
		query.WriteString("WHERE ")
		query.WriteString(strings.Join(conditions, " AND "))
	}
	query.WriteString(" ORDER BY b.id LIMIT ? OFFSET ?")
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(query.String()), args...)
	if err != nil {
		log.Error("failed to list books", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			log.Error("failed to close rows", slog.String("error", closeErr.Error()))
			err = fmt.Errorf("failed to close rows: %w", closeErr)
		}
	}()

	books = []*domain.Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			log.Error("failed to scan book row", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating book rows", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}

	log.Debug("listed books", slog.Int("count", len(books)))
	return books, nil
}

// ExistsByISBN implements store.BookStore.ExistsByISBN
func (s *BookStore) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var exists bool
	err := s.db.QueryRowContext(
		ctx,
		s.dialect.Rebind(`SELECT EXISTS (SELECT 1 FROM books WHERE isbn = ?)`),
		isbn,
	).Scan(&exists)
	if err != nil {
		log.Error("failed to check isbn",
			slog.String("error", err.Error()),
			slog.String("isbn", isbn))
		return false, fmt.Errorf("failed to check isbn: %w", err)
	}

	return exists, nil
}

// Update implements store.BookStore.Update
// Returns store.ErrBookNotFound, store.ErrISBNExists or store.ErrAuthorMissing.
func (s *BookStore) Update(ctx context.Context, book *domain.Book) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := book.Validate(); err != nil {
		log.Warn("book validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("book_id", book.ID))
		return err
	}

	query := s.dialect.Rebind(`
		UPDATE books
		SET title = ?, isbn = ?, author_id = ?, published_year = ?, genre = ?,
		    is_available = ?, updated_at = ?
		WHERE id = ?
	`)

	result, err := s.db.ExecContext(
		ctx,
		query,
		book.Title,
		book.ISBN,
		book.AuthorID,
		nullInt(book.PublishedYear),
		nullString(book.Genre),
		book.IsAvailable,
		book.UpdatedAt,
		book.ID,
	)
	if err != nil {
		if mapped := s.mapWriteError(log, err, book); mapped != nil {
			return mapped
		}
		log.Error("failed to update book",
			slog.String("error", err.Error()),
			slog.Int64("book_id", book.ID))
		return fmt.Errorf("failed to update book: %w", err)
	}

	if err := checkRowsAffected(result, store.ErrBookNotFound); err != nil {
		log.Debug("book not found for update", slog.Int64("book_id", book.ID))
		return err
	}

	log.Info("book updated successfully", slog.Int64("book_id", book.ID))
	return nil
}

// Delete implements store.BookStore.Delete
// Returns store.ErrBookNotFound if the book does not exist.
func (s *BookStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, s.dialect.Rebind(`DELETE FROM books WHERE id = ?`), id)
	if err != nil {
		log.Error("failed to delete book",
			slog.String("error", err.Error()),
			slog.Int64("book_id", id))
		return fmt.Errorf("failed to delete book: %w", err)
	}

	if err := checkRowsAffected(result, store.ErrBookNotFound); err != nil {
		log.Debug("book not found for delete", slog.Int64("book_id", id))
		return err
	}

	log.Info("book deleted successfully", slog.Int64("book_id", id))
	return nil
}

// WithTx implements store.BookStore.WithTx
func (s *BookStore) WithTx(tx *sql.Tx) store.BookStore {
	return &BookStore{
		db:      tx,
		dialect: s.dialect,
		logger:  s.logger,
	}
}

// mapWriteError converts constraint violations on insert or update into store
// sentinels. It returns nil for any other error.
func (s *BookStore) mapWriteError(log *slog.Logger, err error, book *domain.Book) error {
	switch {
	case s.dialect.IsUniqueViolation(err):
		log.Warn("duplicate isbn rejected by unique constraint",
			slog.String("isbn", book.ISBN))
		return fmt.Errorf("%w: %v", store.ErrISBNExists, err)
	case s.dialect.IsForeignKeyViolation(err):
		log.Warn("book references missing author",
			slog.Int64("author_id", book.AuthorID))
		return fmt.Errorf("%w: %v", store.ErrAuthorMissing, err)
	default:
		return nil
	}
}

func scanBook(row rowScanner) (*domain.Book, error) {
	var (
		book          domain.Book
		author        domain.Author
		publishedYear sql.NullInt64
		genre         sql.NullString
		nationality   sql.NullString
		dateOfBirth   sql.NullString
	)

	if err := row.Scan(
		&book.ID,
		&book.Title,
		&book.ISBN,
		&book.AuthorID,
		&publishedYear,
		&genre,
		&book.IsAvailable,
		&book.CreatedAt,
		&book.UpdatedAt,
		&author.ID,
		&author.Name,
		&nationality,
		&dateOfBirth,
		&author.CreatedAt,
		&author.UpdatedAt,
	); err != nil {
		return nil, err
	}

	book.PublishedYear = intPtr(publishedYear)
	book.Genre = stringPtr(genre)
	author.Nationality = stringPtr(nationality)
	author.DateOfBirth = stringPtr(dateOfBirth)
	book.Author = &author
	return &book, nil
}

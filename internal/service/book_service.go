package service

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

// Pagination bounds for book listings.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListBooksParams selects a page of books. Filters combine with AND.
type ListBooksParams struct {
	// Page is 1-based.
	Page int
	// Limit is the page size, between 1 and MaxLimit.
	Limit int
	// AvailableOnly restricts the page to available books. False applies no
	// availability filter at all; it does not select unavailable books.
	AvailableOnly bool
	// TitleContains keeps books whose title contains the value, ignoring case.
	TitleContains string
}

// Validate checks the pagination bounds.
func (p ListBooksParams) Validate() error {
	if p.Page < 1 {
		return domain.NewValidationError("page", "must be at least 1")
	}
	if p.Limit < 1 || p.Limit > MaxLimit {
		return domain.NewValidationError("limit", fmt.Sprintf("must be between 1 and %d", MaxLimit))
	}
	return nil
}

// Filter converts the page request into a store filter.
func (p ListBooksParams) Filter() store.BookFilter {
	return store.BookFilter{
		Offset:        (p.Page - 1) * p.Limit,
		Limit:         p.Limit,
		AvailableOnly: p.AvailableOnly,
		TitleContains: p.TitleContains,
	}
}

// BookService provides book catalog operations. Every returned book carries
// its author.
type BookService interface {
	// Create validates and stores a new book for an existing author.
	Create(ctx context.Context, in domain.BookInput) (*domain.Book, error)

	// List returns one page of books ordered by ID.
	List(ctx context.Context, params ListBooksParams) ([]*domain.Book, error)

	// GetByID returns the book with the given ID. A missing book is reported
	// with found == false and a nil error.
	GetByID(ctx context.Context, id int64) (book *domain.Book, found bool, err error)

	// Update merges the present fields of patch into the book.
	Update(ctx context.Context, id int64, patch domain.BookPatch) (*domain.Book, error)

	// Delete removes a book and returns the removed record.
	Delete(ctx context.Context, id int64) (*domain.Book, error)
}

// BookServiceImpl implements the BookService interface
type BookServiceImpl struct {
	bookStore   store.BookStore
	authorStore store.AuthorStore
	db          store.TxBeginner
	logger      *slog.Logger
}

var _ BookService = (*BookServiceImpl)(nil)

// NewBookService creates a new BookService
func NewBookService(
	bookStore store.BookStore,
	authorStore store.AuthorStore,
	db store.TxBeginner,
	logger *slog.Logger,
) *BookServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &BookServiceImpl{
		bookStore:   bookStore,
		authorStore: authorStore,
		db:          db,
		logger:      logger.With(slog.String("component", "book_service")),
	}
}

// Create validates and stores a new book. Returns a domain.ValidationError for
// missing fields, a domain.NotFoundError when the author does not exist and a
// domain.ConflictError when the ISBN is taken, whether that is detected before
// the insert or by the store's unique constraint.
func (s *BookServiceImpl) Create(ctx context.Context, in domain.BookInput) (*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	book, err := domain.NewBook(in)
	if err != nil {
		log.Debug("rejected invalid book", slog.String("error", err.Error()))
		return nil, err
	}

	var created *domain.Book
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txBooks := s.bookStore.WithTx(tx)

		if err := s.requireAuthor(ctx, tx, book.AuthorID); err != nil {
			return err
		}

		exists, err := txBooks.ExistsByISBN(ctx, book.ISBN)
		if err != nil {
			return err
		}
		if exists {
			return domain.NewConflictError("book", msgISBNExists, nil)
		}

		if err := txBooks.Create(ctx, book); err != nil {
			return mapBookWrite(err, book)
		}

		created, err = txBooks.GetByID(ctx, book.ID)
		return err
	})
	if err != nil {
		logOutcome(log, "failed to create book", err,
			slog.String("isbn", book.ISBN),
			slog.Int64("author_id", book.AuthorID))
		return nil, wrapOpaque("failed to create book", err)
	}

	log.Info("book created",
		slog.Int64("book_id", created.ID),
		slog.Int64("author_id", created.AuthorID))
	return created, nil
}

// List returns one page of books. Returns a domain.ValidationError when the
// pagination bounds are out of range.
func (s *BookServiceImpl) List(ctx context.Context, params ListBooksParams) ([]*domain.Book, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	books, err := s.bookStore.List(ctx, params.Filter())
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list books",
			slog.String("error", err.Error()),
			slog.Int("page", params.Page),
			slog.Int("limit", params.Limit))
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

// GetByID returns the book with the given ID, or found == false.
func (s *BookServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Book, bool, error) {
	book, err := s.bookStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			return nil, false, nil
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to retrieve book",
			slog.String("error", err.Error()),
			slog.Int64("book_id", id))
		return nil, false, fmt.Errorf("failed to retrieve book: %w", err)
	}
	return book, true, nil
}

// Update merges the present fields of patch into the book. A changed
// author_id must name an existing author and a changed ISBN must be free.
func (s *BookServiceImpl) Update(
	ctx context.Context,
	id int64,
	patch domain.BookPatch,
) (*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Book
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txBooks := s.bookStore.WithTx(tx)

		book, err := txBooks.GetByID(ctx, id)
		if err != nil {
			return mapBookLookup(err, id)
		}
		previousISBN := book.ISBN

		if err := patch.Apply(book); err != nil {
			return err
		}

		if patch.AuthorID.Set {
			if err := s.requireAuthor(ctx, tx, book.AuthorID); err != nil {
				return err
			}
		}

		if book.ISBN != previousISBN {
			exists, err := txBooks.ExistsByISBN(ctx, book.ISBN)
			if err != nil {
				return err
			}
			if exists {
				return domain.NewConflictError("book", msgISBNExists, nil)
			}
		}

		if err := txBooks.Update(ctx, book); err != nil {
			if errors.Is(err, store.ErrBookNotFound) {
				return domain.NewNotFoundError("book", id)
			}
			return mapBookWrite(err, book)
		}

		updated, err = txBooks.GetByID(ctx, id)
		return err
	})
	if err != nil {
		logOutcome(log, "failed to update book", err, slog.Int64("book_id", id))
		return nil, wrapOpaque("failed to update book", err)
	}

	log.Info("book updated", slog.Int64("book_id", id))
	return updated, nil
}

// Delete removes a book. Returns a domain.NotFoundError when it does not exist.
func (s *BookServiceImpl) Delete(ctx context.Context, id int64) (*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var deleted *domain.Book
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txBooks := s.bookStore.WithTx(tx)

		book, err := txBooks.GetByID(ctx, id)
		if err != nil {
			return mapBookLookup(err, id)
		}

		if err := txBooks.Delete(ctx, id); err != nil {
			return mapBookLookup(err, id)
		}

		deleted = book
		return nil
	})
	if err != nil {
		logOutcome(log, "failed to delete book", err, slog.Int64("book_id", id))
		return nil, wrapOpaque("failed to delete book", err)
	}

	log.Info("book deleted", slog.Int64("book_id", id))
	return deleted, nil
}

// requireAuthor returns a domain.NotFoundError unless the author exists.
func (s *BookServiceImpl) requireAuthor(ctx context.Context, tx *sql.Tx, authorID int64) error {
	if _, err := s.authorStore.WithTx(tx).GetByID(ctx, authorID); err != nil {
		return mapAuthorLookup(err, authorID)
	}
	return nil
}

// mapBookLookup turns a missing book into a domain.NotFoundError.
func mapBookLookup(err error, id int64) error {
	if errors.Is(err, store.ErrBookNotFound) {
		return domain.NewNotFoundError("book", id)
	}
	return err
}

// mapBookWrite maps constraint violations raised while writing a book onto
// the same domain errors the pre-checks produce.
func mapBookWrite(err error, book *domain.Book) error {
	switch {
	case errors.Is(err, store.ErrISBNExists):
		return domain.NewConflictError("book", msgISBNExists, err)
	case errors.Is(err, store.ErrAuthorMissing):
		return domain.NewNotFoundError("author", book.AuthorID)
	default:
		return err
	}
}

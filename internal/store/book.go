package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/libris-api/internal/domain"
)

// BookFilter selects a page of books. Filters combine with AND.
type BookFilter struct {
	// Offset is the number of matching rows to skip.
	Offset int
	// Limit is the maximum number of rows returned.
	Limit int
	// AvailableOnly restricts results to available books. False applies no
	// availability filter.
	AvailableOnly bool
	// TitleContains, when non-empty, keeps books whose title contains the
	// value, ignoring case.
	TitleContains string
}

// BookStore defines the interface for book data persistence.
// Every book returned by a read carries its Author.
type BookStore interface {
	// Create saves a new book and populates its ID.
	// Returns ErrISBNExists on a duplicate ISBN and ErrAuthorMissing when
	// the referenced author does not exist.
	Create(ctx context.Context, book *domain.Book) error

	// GetByID retrieves a book and its author.
	// Returns ErrBookNotFound if the book does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Book, error)

	// List returns the page of books selected by filter, ordered by ID.
	List(ctx context.Context, filter BookFilter) ([]*domain.Book, error)

	// ExistsByISBN reports whether any book has the given ISBN.
	ExistsByISBN(ctx context.Context, isbn string) (bool, error)

	// Update persists all mutable fields of an existing book.
	// Returns ErrBookNotFound, ErrISBNExists or ErrAuthorMissing.
	Update(ctx context.Context, book *domain.Book) error

	// Delete removes a book by ID.
	// Returns ErrBookNotFound if the book does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new BookStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) BookStore
}

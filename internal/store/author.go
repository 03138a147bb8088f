package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/libris-api/internal/domain"
)

// AuthorStore defines the interface for author data persistence.
type AuthorStore interface {
	// Create saves a new author and populates its ID.
	Create(ctx context.Context, author *domain.Author) error

	// GetByID retrieves an author by ID.
	// Returns ErrAuthorNotFound if the author does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Author, error)

	// List returns every author ordered by ID.
	List(ctx context.Context) ([]*domain.Author, error)

	// Update persists all mutable fields of an existing author.
	// Returns ErrAuthorNotFound if the author does not exist.
	Update(ctx context.Context, author *domain.Author) error

	// Delete removes an author by ID.
	// Returns ErrAuthorNotFound if the author does not exist and
	// ErrAuthorReferenced if books still reference it.
	Delete(ctx context.Context, id int64) error

	// CountBooks returns the number of books referencing the author.
	CountBooks(ctx context.Context, authorID int64) (int, error)

	// WithTx returns a new AuthorStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) AuthorStore
}

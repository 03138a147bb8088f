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

// AuthorService provides author catalog operations.
type AuthorService interface {
	// Create validates and stores a new author.
	Create(ctx context.Context, in domain.AuthorInput) (*domain.Author, error)

	// List returns every author in creation order.
	List(ctx context.Context) ([]*domain.Author, error)

	// GetByID returns the author with the given ID. A missing author is
	// reported with found == false and a nil error.
	GetByID(ctx context.Context, id int64) (author *domain.Author, found bool, err error)

	// Update merges the present fields of patch into the author.
	Update(ctx context.Context, id int64, patch domain.AuthorPatch) (*domain.Author, error)

	// Delete removes an author that has no books and returns the removed record.
	Delete(ctx context.Context, id int64) (*domain.Author, error)
}

// AuthorServiceImpl implements the AuthorService interface
type AuthorServiceImpl struct {
	authorStore store.AuthorStore
	db          store.TxBeginner
	logger      *slog.Logger
}

var _ AuthorService = (*AuthorServiceImpl)(nil)

// NewAuthorService creates a new AuthorService
func NewAuthorService(authorStore store.AuthorStore, db store.TxBeginner, logger *slog.Logger) *AuthorServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthorServiceImpl{
		authorStore: authorStore,
		db:          db,
		logger:      logger.With(slog.String("component", "author_service")),
	}
}

// Create validates and stores a new author.
func (s *AuthorServiceImpl) Create(ctx context.Context, in domain.AuthorInput) (*domain.Author, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	author, err := domain.NewAuthor(in)
	if err != nil {
		log.Debug("rejected invalid author", slog.String("error", err.Error()))
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.authorStore.WithTx(tx).Create(ctx, author)
	})
	if err != nil {
		log.Error("failed to create author",
			slog.String("error", err.Error()),
			slog.String("name", author.Name))
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	log.Info("author created", slog.Int64("author_id", author.ID))
	return author, nil
}

// List returns every author in creation order.
func (s *AuthorServiceImpl) List(ctx context.Context) ([]*domain.Author, error) {
	authors, err := s.authorStore.List(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list authors",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	return authors, nil
}

// GetByID returns the author with the given ID, or found == false.
func (s *AuthorServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Author, bool, error) {
	author, err := s.authorStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrAuthorNotFound) {
			return nil, false, nil
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to retrieve author",
			slog.String("error", err.Error()),
			slog.Int64("author_id", id))
		return nil, false, fmt.Errorf("failed to retrieve author: %w", err)
	}
	return author, true, nil
}

// Update merges the present fields of patch into the author and refreshes
// updated_at. Returns a domain.NotFoundError when the author does not exist.
func (s *AuthorServiceImpl) Update(
	ctx context.Context,
	id int64,
	patch domain.AuthorPatch,
) (*domain.Author, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Author
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.authorStore.WithTx(tx)

		author, err := txStore.GetByID(ctx, id)
		if err != nil {
			return mapAuthorLookup(err, id)
		}

		if err := patch.Apply(author); err != nil {
			return err
		}

		if err := txStore.Update(ctx, author); err != nil {
			return mapAuthorLookup(err, id)
		}

		updated = author
		return nil
	})
	if err != nil {
		logOutcome(log, "failed to update author", err, slog.Int64("author_id", id))
		return nil, wrapOpaque("failed to update author", err)
	}

	log.Info("author updated", slog.Int64("author_id", id))
	return updated, nil
}

// Delete removes an author that has no books. Returns a domain.NotFoundError
// when the author does not exist and a domain.ConflictError when books still
// reference it.
func (s *AuthorServiceImpl) Delete(ctx context.Context, id int64) (*domain.Author, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var deleted *domain.Author
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.authorStore.WithTx(tx)

		author, err := txStore.GetByID(ctx, id)
		if err != nil {
			return mapAuthorLookup(err, id)
		}

		count, err := txStore.CountBooks(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.NewConflictError("author", msgAuthorHasBooks, nil)
		}

		// The foreign key is the final arbiter when a book is added concurrently.
		if err := txStore.Delete(ctx, id); err != nil {
			if errors.Is(err, store.ErrAuthorReferenced) {
				return domain.NewConflictError("author", msgAuthorHasBooks, err)
			}
			return mapAuthorLookup(err, id)
		}

		deleted = author
		return nil
	})
	if err != nil {
		logOutcome(log, "failed to delete author", err, slog.Int64("author_id", id))
		return nil, wrapOpaque("failed to delete author", err)
	}

	log.Info("author deleted", slog.Int64("author_id", id))
	return deleted, nil
}

// mapAuthorLookup turns a missing author into a domain.NotFoundError and
// passes every other error through.
func mapAuthorLookup(err error, id int64) error {
	if errors.Is(err, store.ErrAuthorNotFound) {
		return domain.NewNotFoundError("author", id)
	}
	return err
}

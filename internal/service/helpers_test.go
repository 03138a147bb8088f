package service_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/phrazzld/libris-api/internal/domain"
	"github.com/phrazzld/libris-api/internal/platform/logger"
	"github.com/phrazzld/libris-api/internal/platform/sqlite"
	"github.com/phrazzld/libris-api/internal/platform/sqlstore"
	"github.com/phrazzld/libris-api/internal/service"
	"github.com/phrazzld/libris-api/internal/testdb"
	"github.com/stretchr/testify/require"
)

// catalog wires the real services over a fresh SQLite database.
type catalog struct {
	db      *sql.DB
	authors *service.AuthorServiceImpl
	books   *service.BookServiceImpl
}

func newCatalog(t *testing.T) *catalog {
	t.Helper()

	db := testdb.NewSQLite(t)
	log, _ := logger.GetTestLogger(t)
	authorStore := sqlstore.NewAuthorStore(db, sqlite.Dialect{}, log)
	bookStore := sqlstore.NewBookStore(db, sqlite.Dialect{}, log)

	return &catalog{
		db:      db,
		authors: service.NewAuthorService(authorStore, db, log),
		books:   service.NewBookService(bookStore, authorStore, db, log),
	}
}

func (c *catalog) mustAuthor(t *testing.T, name string) *domain.Author {
	t.Helper()
	author, err := c.authors.Create(context.Background(), domain.AuthorInput{Name: name})
	require.NoError(t, err)
	return author
}

func (c *catalog) mustBook(t *testing.T, authorID int64, title, isbn string, available bool) *domain.Book {
	t.Helper()
	book, err := c.books.Create(context.Background(), domain.BookInput{
		Title:       title,
		ISBN:        isbn,
		AuthorID:    authorID,
		IsAvailable: &available,
	})
	require.NoError(t, err)
	return book
}

func ptr[T any](v T) *T {
	return &v
}

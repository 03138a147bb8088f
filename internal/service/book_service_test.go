package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/libris-api/internal/domain"
	"github.com/phrazzld/libris-api/internal/mocks"
	"github.com/phrazzld/libris-api/internal/service"
	"github.com/phrazzld/libris-api/internal/store"
	"github.com/phrazzld/libris-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newMockedBookService(t *testing.T) (*service.BookServiceImpl, *mocks.MockBookStore, *mocks.MockAuthorStore) {
	t.Helper()
	books := &mocks.MockBookStore{}
	authors := &mocks.MockAuthorStore{}
	t.Cleanup(func() {
		books.AssertExpectations(t)
		authors.AssertExpectations(t)
	})
	return service.NewBookService(books, authors, testdb.NewSQLite(t), nil), books, authors
}

func TestBookService_Create_CommitTimeViolations(t *testing.T) {
	input := domain.BookInput{Title: "Raced", ISBN: "raced", AuthorID: 1}

	t.Run("unique violation maps to conflict", func(t *testing.T) {
		svc, books, authors := newMockedBookService(t)
		authors.On("GetByID", mock.Anything, int64(1)).Return(&domain.Author{ID: 1, Name: "A"}, nil)
		books.On("ExistsByISBN", mock.Anything, "raced").Return(false, nil)
		books.On("Create", mock.Anything, mock.AnythingOfType("*domain.Book")).
			Return(fmt.Errorf("insert: %w", store.ErrISBNExists))

		_, err := svc.Create(context.Background(), input)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.ErrorIs(t, err, store.ErrISBNExists)
		assert.Equal(t, "a book with this ISBN already exists", err.Error())
	})

	t.Run("foreign key violation maps to not found", func(t *testing.T) {
		svc, books, authors := newMockedBookService(t)
		authors.On("GetByID", mock.Anything, int64(1)).Return(&domain.Author{ID: 1, Name: "A"}, nil)
		books.On("ExistsByISBN", mock.Anything, "raced").Return(false, nil)
		books.On("Create", mock.Anything, mock.AnythingOfType("*domain.Book")).Return(store.ErrAuthorMissing)

		_, err := svc.Create(context.Background(), input)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("missing author stops before the isbn check", func(t *testing.T) {
		svc, books, authors := newMockedBookService(t)
		authors.On("GetByID", mock.Anything, int64(1)).Return(nil, store.ErrAuthorNotFound)

		_, err := svc.Create(context.Background(), input)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		books.AssertNotCalled(t, "ExistsByISBN", mock.Anything, mock.Anything)
	})

	t.Run("opaque store failure is wrapped", func(t *testing.T) {
		svc, books, authors := newMockedBookService(t)
		cause := errors.New("connection reset")
		authors.On("GetByID", mock.Anything, int64(1)).Return(&domain.Author{ID: 1}, nil)
		books.On("ExistsByISBN", mock.Anything, "raced").Return(false, cause)

		_, err := svc.Create(context.Background(), input)
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, domain.ErrConflict)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
		assert.NotErrorIs(t, err, domain.ErrValidation)
	})
}

func TestBookService_Create_ReturnsBookWithAuthor(t *testing.T) {
	svc, books, authors := newMockedBookService(t)
	author := &domain.Author{ID: 3, Name: "Ursula"}

	authors.On("GetByID", mock.Anything, int64(3)).Return(author, nil)
	books.On("ExistsByISBN", mock.Anything, "earthsea").Return(false, nil)
	books.On("Create", mock.Anything, mock.AnythingOfType("*domain.Book")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Book).ID = 12
		}).
		Return(nil)
	books.On("GetByID", mock.Anything, int64(12)).
		Return(&domain.Book{ID: 12, Title: "Earthsea", ISBN: "earthsea", AuthorID: 3, Author: author}, nil)

	book, err := svc.Create(context.Background(), domain.BookInput{Title: "Earthsea", ISBN: "earthsea", AuthorID: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(12), book.ID)
	assert.Same(t, author, book.Author)
}

func TestBookService_List(t *testing.T) {
	t.Run("translates page into offset", func(t *testing.T) {
		svc, books, _ := newMockedBookService(t)
		want := []*domain.Book{{ID: 21}}
		books.On("List", mock.Anything, store.BookFilter{
			Offset:        20,
			Limit:         10,
			AvailableOnly: true,
			TitleContains: "sea",
		}).Return(want, nil)

		got, err := svc.List(context.Background(), service.ListBooksParams{
			Page: 3, Limit: 10, AvailableOnly: true, TitleContains: "sea",
		})
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("store failure is opaque", func(t *testing.T) {
		svc, books, _ := newMockedBookService(t)
		cause := errors.New("timeout")
		books.On("List", mock.Anything, mock.Anything).Return(nil, cause)

		_, err := svc.List(context.Background(), service.ListBooksParams{Page: 1, Limit: 10})
		assert.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("out of range bounds never reach the store", func(t *testing.T) {
		svc, books, _ := newMockedBookService(t)
		_, err := svc.List(context.Background(), service.ListBooksParams{Page: -1, Limit: 10})
		assert.ErrorIs(t, err, domain.ErrValidation)
		books.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})
}

func TestListBooksParams_Filter(t *testing.T) {
	filter := service.ListBooksParams{Page: 1, Limit: 25}.Filter()
	assert.Equal(t, 0, filter.Offset)
	assert.Equal(t, 25, filter.Limit)
	assert.False(t, filter.AvailableOnly)
	assert.Empty(t, filter.TitleContains)
}

func TestBookService_GetByID(t *testing.T) {
	t.Run("absent is a value", func(t *testing.T) {
		svc, books, _ := newMockedBookService(t)
		books.On("GetByID", mock.Anything, int64(5)).Return(nil, store.ErrBookNotFound)

		book, found, err := svc.GetByID(context.Background(), 5)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, book)
	})

	t.Run("store failure is an error", func(t *testing.T) {
		svc, books, _ := newMockedBookService(t)
		cause := errors.New("boom")
		books.On("GetByID", mock.Anything, int64(5)).Return(nil, cause)

		_, found, err := svc.GetByID(context.Background(), 5)
		assert.ErrorIs(t, err, cause)
		assert.False(t, found)
	})
}

func TestBookService_Update_CommitTimeConflict(t *testing.T) {
	svc, books, _ := newMockedBookService(t)
	existing := &domain.Book{ID: 4, Title: "T", ISBN: "old", AuthorID: 1}

	books.On("GetByID", mock.Anything, int64(4)).Return(existing, nil)
	books.On("ExistsByISBN", mock.Anything, "new").Return(false, nil)
	books.On("Update", mock.Anything, mock.AnythingOfType("*domain.Book")).Return(store.ErrISBNExists)

	_, err := svc.Update(context.Background(), 4, domain.BookPatch{ISBN: domain.Some("new")})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestBookService_Delete_VanishedDuringDelete(t *testing.T) {
	svc, books, _ := newMockedBookService(t)
	books.On("GetByID", mock.Anything, int64(9)).Return(&domain.Book{ID: 9}, nil)
	books.On("Delete", mock.Anything, int64(9)).Return(store.ErrBookNotFound)

	_, err := svc.Delete(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

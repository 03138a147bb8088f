// Package storetest holds a behavioural test suite that every sqlstore
// backend must pass.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/phrazzld/libris-api/internal/domain"
	"github.com/phrazzld/libris-api/internal/platform/sqlstore"
	"github.com/phrazzld/libris-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// WithDB hands fn a freshly migrated, empty database for one subtest.
type WithDB func(t *testing.T, fn func(t *testing.T, db store.DBTX))

// Run executes the suite. Each subtest ends at its first constraint
// violation so that backends which abort a transaction on error can share it.
func Run(t *testing.T, dialect sqlstore.Dialect, withDB WithDB) {
	ctx := context.Background()

	t.Run("author create get list", func(t *testing.T) {
		withDB(t, func(t *testing.T, db store.DBTX) {
			authors := sqlstore.NewAuthorStore(db, dialect, nil)

			first := MustCreateAuthor(t, authors, "Gabriel García Márquez")
			second := MustCreateAuthor(t, authors, "Ursula K. Le Guin")
			assert.NotZero(t, first.ID)
			assert.Greater(t, second.ID, first.ID)

			got, err := authors.GetByID(ctx, first.ID)
			require.NoError(t, err)
			assert.Equal(t, "Gabriel García Márquez", got.Name)
			assert.Equal(t, "Colombian", *got.Nationality)
			assert.Nil(t, got.DateOfBirth)
			assert.WithinDuration(t, first.CreatedAt, got.CreatedAt, time.Second)

			list, err := authors.List(ctx)
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, first.ID, list[0].ID)
			assert.Equal(t, second.ID, list[1].ID)

			_, err = authors.GetByID(ctx, second.ID+100)
			assert.ErrorIs(t, err, store.ErrAuthorNotFound)
		})
	})

	t.Run("author update and delete", func(t *testing.T) {
		withDB(t, func(t *testing.T, db store.DBTX) {
			authors := sqlstore.NewAuthorStore(db, dialect, nil)
			author := MustCreateAuthor(t, authors, "Octavia Butler")

			dob := "1947-06-22"
			require.NoError(t, domain.AuthorPatch{DateOfBirth: domain.Some(dob)}.Apply(author))
			require.NoError(t, authors.Update(ctx, author))

			got, err := authors.GetByID(ctx, author.ID)
			require.NoError(t, err)
			require.NotNil(t, got.DateOfBirth)
			assert.Equal(t, dob, *got.DateOfBirth)

			missing := *author
			missing.ID = author.ID + 100
			assert.ErrorIs(t, authors.Update(ctx, &missing), store.ErrAuthorNotFound)

			require.NoError(t, authors.Delete(ctx, author.ID))
			assert.ErrorIs(t, authors.Delete(ctx, author.ID), store.ErrAuthorNotFound)
		})
	})

	t.Run("author with books cannot be deleted", func(t *testing.T) {
		withDB(t, func(t *testing.T, db store.DBTX) {
			authors := sqlstore.NewAuthorStore(db, dialect, nil)
			books := sqlstore.NewBookStore(db, dialect, nil)
			author := MustCreateAuthor(t, authors, "Toni Morrison")
			MustCreateBook(t, books, author.ID, "Beloved", "978-1400033416", true)

			count, err := authors.CountBooks(ctx, author.ID)
			require.NoError(t, err)
			assert.Equal(t, 1, count)

			err = authors.Delete(ctx, author.ID)
			assert.ErrorIs(t, err, store.ErrAuthorReferenced)
		})
	})

	t.Run("book create embeds author", func(t *testing.T) {
		withDB(t, func(t *testing.T, db store.DBTX) {
			authors := sqlstore.NewAuthorStore(db, dialect, nil)
			books := sqlstore.NewBookStore(db, dialect, nil)
			author := MustCreateAuthor(t, authors, "Italo Calvino")

			year := 1972
			genre := "Fiction"
			book, err := domain.NewBook(domain.BookInput{
				Title:         "Invisible Cities",
				ISBN:          "978-0156453806",
				AuthorID:      author.ID,
				PublishedYear: &year,
				Genre:         &genre,
			})
			require.NoError(t, err)
			require.NoError(t, books.Create(ctx, book))
			assert.NotZero(t, book.ID)

			got, err := books.GetByID(ctx, book.ID)
			require.NoError(t, err)
			assert.Equal(t, "Invisible Cities", got.Title)
			assert.Equal(t, 1972, *got.PublishedYear)
			assert.Equal(t, "Fiction", *got.Genre)
			assert.True(t, got.IsAvailable)
			require.NotNil(t, got.Author)
			assert.Equal(t, author.ID, got.Author.ID)
			assert.Equal(t, "Italo Calvino", got.Author.Name)

			exists, err := books.ExistsByISBN(ctx, "978-0156453806")
			require.NoError(t, err)
			assert.True(t, exists)
			exists, err = books.ExistsByISBN(ctx, "000")
			require.NoError(t, err)
			assert.False(t, exists)

			_, err = books.GetByID(ctx, book.ID+100)
			assert.ErrorIs(t, err, store.ErrBookNotFound)
		})
	})

	t.Run("book duplicate isbn", func(t *testing.T) {
		withDB(t, func(t *testing.T, db store.DBTX) {
			authors := sqlstore.NewAuthorStore(db, dialect, nil)
			books := sqlstore.NewBookStore(db, dialect, nil)
			author := MustCreateAuthor(t, authors, "Jorge Luis Borges")
			MustCreateBook(t, books, author.ID, "Ficciones", "978-0802130303", true)

			dup, err := domain.NewBook(domain.BookInput{Title: "Other", ISBN: "978-0802130303", AuthorID: author.ID})
			require.NoError(t, err)
			err = books.Create(ctx, dup)
			assert.ErrorIs(t, err, store.ErrISBNExists)
			assert.True(t, store.IsDuplicateError(err))
		})
	})

	t.Run("book missing author", func(t *testing.T) {
		withDB(t, func(t *testing.T, db store.DBTX) {
			books := sqlstore.NewBookStore(db, dialect, nil)

			orphan, err := domain.NewBook(domain.BookInput{Title: "Orphan", ISBN: "111", AuthorID: 999})
			require.NoError(t, err)
			assert.ErrorIs(t, books.Create(ctx, orphan), store.ErrAuthorMissing)
		})
	})

	t.Run("book list filters and pagination", func(t *testing.T) {
		withDB(t, func(t *testing.T, db store.DBTX) {
			authors := sqlstore.NewAuthorStore(db, dialect, nil)
			books := sqlstore.NewBookStore(db, dialect, nil)
			author := MustCreateAuthor(t, authors, "Various")

			b1 := MustCreateBook(t, books, author.ID, "The Go Programming Language", "isbn-1", true)
			b2 := MustCreateBook(t, books, author.ID, "Learning GO", "isbn-2", false)
			b3 := MustCreateBook(t, books, author.ID, "Dune", "isbn-3", true)
			b4 := MustCreateBook(t, books, author.ID, "100% Go_lang", "isbn-4", true)

			all, err := books.List(ctx, store.BookFilter{Limit: 10})
			require.NoError(t, err)
			assert.Equal(t, []int64{b1.ID, b2.ID, b3.ID, b4.ID}, ids(all))
			for _, b := range all {
				require.NotNil(t, b.Author)
				assert.Equal(t, author.ID, b.Author.ID)
			}

			page2, err := books.List(ctx, store.BookFilter{Offset: 2, Limit: 2})
			require.NoError(t, err)
			assert.Equal(t, []int64{b3.ID, b4.ID}, ids(page2))

			beyond, err := books.List(ctx, store.BookFilter{Offset: 10, Limit: 2})
			require.NoError(t, err)
			assert.Empty(t, beyond)
			assert.NotNil(t, beyond)

			available, err := books.List(ctx, store.BookFilter{Limit: 10, AvailableOnly: true})
			require.NoError(t, err)
			assert.Equal(t, []int64{b1.ID, b3.ID, b4.ID}, ids(available))

			goTitles, err := books.List(ctx, store.BookFilter{Limit: 10, TitleContains: "go"})
			require.NoError(t, err)
			assert.Equal(t, []int64{b1.ID, b2.ID, b4.ID}, ids(goTitles))

			both, err := books.List(ctx, store.BookFilter{Limit: 10, TitleContains: "GO", AvailableOnly: true})
			require.NoError(t, err)
			assert.Equal(t, []int64{b1.ID, b4.ID}, ids(both))

			percent, err := books.List(ctx, store.BookFilter{Limit: 10, TitleContains: "0%"})
			require.NoError(t, err)
			assert.Equal(t, []int64{b4.ID}, ids(percent))

			underscore, err := books.List(ctx, store.BookFilter{Limit: 10, TitleContains: "o_l"})
			require.NoError(t, err)
			assert.Equal(t, []int64{b4.ID}, ids(underscore))

			b5 := MustCreateBook(t, books, author.ID, "Éléments de Géométrie", "isbn-5", true)
			for _, query := range []string{"éléments", "ÉLÉMENTS", "géométrie"} {
				accented, err := books.List(ctx, store.BookFilter{Limit: 10, TitleContains: query})
				require.NoError(t, err)
				assert.Equal(t, []int64{b5.ID}, ids(accented), "query %q", query)
			}
		})
	})

	t.Run("book update and delete", func(t *testing.T) {
		withDB(t, func(t *testing.T, db store.DBTX) {
			authors := sqlstore.NewAuthorStore(db, dialect, nil)
			books := sqlstore.NewBookStore(db, dialect, nil)
			first := MustCreateAuthor(t, authors, "First")
			second := MustCreateAuthor(t, authors, "Second")
			book := MustCreateBook(t, books, first.ID, "Moving", "isbn-move", true)
			MustCreateBook(t, books, first.ID, "Staying", "isbn-stay", true)

			unavailable := false
			require.NoError(t, domain.BookPatch{AuthorID: domain.Some(second.ID), IsAvailable: domain.Some(unavailable)}.Apply(book))
			require.NoError(t, books.Update(ctx, book))

			got, err := books.GetByID(ctx, book.ID)
			require.NoError(t, err)
			assert.False(t, got.IsAvailable)
			assert.Equal(t, second.ID, got.Author.ID)
			assert.Equal(t, "Second", got.Author.Name)

			missing := *book
			missing.ID = book.ID + 100
			assert.ErrorIs(t, books.Update(ctx, &missing), store.ErrBookNotFound)

			require.NoError(t, books.Delete(ctx, book.ID))
			assert.ErrorIs(t, books.Delete(ctx, book.ID), store.ErrBookNotFound)

			taken := "isbn-stay"
			other := MustCreateBook(t, books, first.ID, "Other", "isbn-other", true)
			require.NoError(t, domain.BookPatch{ISBN: domain.Some(taken)}.Apply(other))
			assert.ErrorIs(t, books.Update(ctx, other), store.ErrISBNExists)
		})
	})

	t.Run("book update to missing author", func(t *testing.T) {
		withDB(t, func(t *testing.T, db store.DBTX) {
			authors := sqlstore.NewAuthorStore(db, dialect, nil)
			books := sqlstore.NewBookStore(db, dialect, nil)
			author := MustCreateAuthor(t, authors, "Real")
			book := MustCreateBook(t, books, author.ID, "Title", "isbn-x", true)

			ghost := author.ID + 100
			require.NoError(t, domain.BookPatch{AuthorID: domain.Some(ghost)}.Apply(book))
			assert.ErrorIs(t, books.Update(ctx, book), store.ErrAuthorMissing)
		})
	})

	t.Run("users", func(t *testing.T) {
		withDB(t, func(t *testing.T, db store.DBTX) {
			users := sqlstore.NewUserStore(db, dialect, nil)

			user, err := domain.NewUser("testuser", "testpass123")
			require.NoError(t, err)
			user.HashedPassword = "$2a$10$hash"
			require.NoError(t, users.Create(ctx, user))
			assert.NotZero(t, user.ID)
			assert.Empty(t, user.Password)

			byID, err := users.GetByID(ctx, user.ID)
			require.NoError(t, err)
			assert.Equal(t, "testuser", byID.Username)
			assert.Equal(t, "$2a$10$hash", byID.HashedPassword)

			byName, err := users.GetByUsername(ctx, "testuser")
			require.NoError(t, err)
			assert.Equal(t, user.ID, byName.ID)

			_, err = users.GetByUsername(ctx, "nobody")
			assert.ErrorIs(t, err, store.ErrUserNotFound)
			_, err = users.GetByID(ctx, user.ID+100)
			assert.ErrorIs(t, err, store.ErrUserNotFound)

			noHash, err := domain.NewUser("nohash", "testpass123")
			require.NoError(t, err)
			assert.ErrorIs(t, users.Create(ctx, noHash), store.ErrInvalidEntity)

			dup, err := domain.NewUser("testuser", "otherpass123")
			require.NoError(t, err)
			dup.HashedPassword = "$2a$10$other"
			assert.ErrorIs(t, users.Create(ctx, dup), store.ErrUsernameExists)
		})
	})
}

// MustCreateAuthor inserts an author with a fixed nationality.
func MustCreateAuthor(t *testing.T, authors store.AuthorStore, name string) *domain.Author {
	t.Helper()

	nationality := "Colombian"
	author, err := domain.NewAuthor(domain.AuthorInput{Name: name, Nationality: &nationality})
	require.NoError(t, err)
	require.NoError(t, authors.Create(context.Background(), author))
	return author
}

// MustCreateBook inserts a book for authorID.
func MustCreateBook(t *testing.T, books store.BookStore, authorID int64, title, isbn string, available bool) *domain.Book {
	t.Helper()

	book, err := domain.NewBook(domain.BookInput{
		Title:       title,
		ISBN:        isbn,
		AuthorID:    authorID,
		IsAvailable: &available,
	})
	require.NoError(t, err)
	require.NoError(t, books.Create(context.Background(), book))
	return book
}

func ids(books []*domain.Book) []int64 {
	out := make([]int64, 0, len(books))
	for _, b := range books {
		out = append(out, b.ID)
	}
	return out
}

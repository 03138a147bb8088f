package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewAuthor(t *testing.T) {
	t.Run("valid author", func(t *testing.T) {
		author, err := NewAuthor(AuthorInput{
			Name:        " Gabriel García Márquez ",
			Nationality: strPtr("Colombian"),
			DateOfBirth: strPtr("1927-03-06"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Gabriel García Márquez", author.Name)
		assert.Equal(t, "Colombian", *author.Nationality)
		assert.Equal(t, "1927-03-06", *author.DateOfBirth)
		assert.Zero(t, author.ID, "ID is assigned by the store")
		assert.False(t, author.CreatedAt.IsZero())
		assert.Equal(t, author.CreatedAt, author.UpdatedAt)
	})

	t.Run("blank name", func(t *testing.T) {
		for _, name := range []string{"", "   "} {
			_, err := NewAuthor(AuthorInput{Name: name})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
		}
	})
}

func TestAuthorPatch_Apply(t *testing.T) {
	base := func() *Author {
		return &Author{
			ID:          1,
			Name:        "Original",
			Nationality: strPtr("Original"),
			DateOfBirth: strPtr("1900-01-01"),
			CreatedAt:   time.Now().Add(-time.Hour).UTC(),
			UpdatedAt:   time.Now().Add(-time.Hour).UTC(),
		}
	}

	t.Run("omitted fields keep prior values", func(t *testing.T) {
		author := base()
		before := author.UpdatedAt

		err := AuthorPatch{Name: Some("Updated")}.Apply(author)
		require.NoError(t, err)

		assert.Equal(t, "Updated", author.Name)
		assert.Equal(t, "Original", *author.Nationality)
		assert.Equal(t, "1900-01-01", *author.DateOfBirth)
		assert.True(t, author.UpdatedAt.After(before))
	})

	t.Run("applying twice yields same state", func(t *testing.T) {
		patch := AuthorPatch{Nationality: Some("Chilean")}
		once := base()
		twice := base()

		require.NoError(t, patch.Apply(once))
		require.NoError(t, patch.Apply(twice))
		require.NoError(t, patch.Apply(twice))

		assert.Equal(t, once.Name, twice.Name)
		assert.Equal(t, *once.Nationality, *twice.Nationality)
		assert.Equal(t, *once.DateOfBirth, *twice.DateOfBirth)
	})

	t.Run("empty patch refreshes updated_at only", func(t *testing.T) {
		author := base()
		before := author.UpdatedAt
		patch := AuthorPatch{}

		assert.True(t, patch.IsEmpty())
		require.NoError(t, patch.Apply(author))
		assert.Equal(t, "Original", author.Name)
		assert.True(t, author.UpdatedAt.After(before))
	})

	t.Run("blank name rejected", func(t *testing.T) {
		author := base()
		err := AuthorPatch{Name: Some(" ")}.Apply(author)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))
		assert.Equal(t, "Original", author.Name)
	})

	t.Run("null clears optional fields", func(t *testing.T) {
		author := base()
		err := AuthorPatch{Nationality: Null[string](), DateOfBirth: Null[string]()}.Apply(author)
		require.NoError(t, err)

		assert.Nil(t, author.Nationality)
		assert.Nil(t, author.DateOfBirth)
		assert.Equal(t, "Original", author.Name)
	})

	t.Run("null name rejected", func(t *testing.T) {
		author := base()
		err := AuthorPatch{Name: Null[string]()}.Apply(author)

		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "name", vErr.Field)
		assert.Equal(t, "Original", author.Name)
	})
}

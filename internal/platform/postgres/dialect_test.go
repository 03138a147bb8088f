package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestDialectRebind(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{"no placeholders", "SELECT 1", "SELECT 1"},
		{"sequential", "UPDATE books SET title = ?, isbn = ? WHERE id = ?", "UPDATE books SET title = $1, isbn = $2 WHERE id = $3"},
		{"quoted literal untouched", `SELECT '?' , title FROM books WHERE title LIKE ? ESCAPE '\'`, `SELECT '?' , title FROM books WHERE title LIKE $1 ESCAPE '\'`},
		{"ten or more", "VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", "VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Dialect{}.Rebind(tt.query))
		})
	}
}

func TestErrorClassification(t *testing.T) {
	unique := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "books_isbn_key"}
	foreignKey := &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "books_author_id_fkey"}
	other := &pgconn.PgError{Code: "42P01"}

	d := Dialect{}

	assert.True(t, d.IsUniqueViolation(fmt.Errorf("insert: %w", unique)))
	assert.False(t, d.IsUniqueViolation(foreignKey))
	assert.True(t, d.IsForeignKeyViolation(fmt.Errorf("delete: %w", foreignKey)))
	assert.False(t, d.IsForeignKeyViolation(unique))
	assert.False(t, d.IsUniqueViolation(other))
	assert.False(t, d.IsForeignKeyViolation(errors.New("plain error")))

	assert.Equal(t, "books_isbn_key", ConstraintName(unique))
	assert.Equal(t, "", ConstraintName(errors.New("plain error")))
	assert.Equal(t, "postgres", d.Name())
}

func TestDialectContainsFold(t *testing.T) {
	d := Dialect{}
	assert.Equal(t, `b.title ILIKE ? ESCAPE '\'`, d.ContainsFold("b.title"))
	assert.Equal(t, `WHERE b.title ILIKE $1 ESCAPE '\'`, d.Rebind("WHERE "+d.ContainsFold("b.title")))
}

package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes raised by the catalog schema's constraints.
const (
	// uniqueViolationCode is raised by books_isbn_key and users_username_key.
	uniqueViolationCode = "23505"

	// foreignKeyViolationCode is raised by books_author_id_fkey, both when a
	// book names a missing author and when an author with books is deleted.
	foreignKeyViolationCode = "23503"
)

// IsUniqueViolation reports whether err is a duplicate ISBN or username.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// IsForeignKeyViolation reports whether err breaks the book to author
// reference.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}

// ConstraintName returns the violated constraint, such as books_isbn_key, or
// "" when err did not come from PostgreSQL.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

package sqlite

import (
	"errors"

	"github.com/mattn/go-sqlite3"
	"github.com/phrazzld/libris-api/internal/platform/sqlstore"
)

// Dialect implements sqlstore.Dialect for SQLite.
type Dialect struct{}

// Ensure Dialect implements sqlstore.Dialect interface
var _ sqlstore.Dialect = Dialect{}

// Name implements sqlstore.Dialect.
func (Dialect) Name() string { return "sqlite" }

// Rebind implements sqlstore.Dialect. SQLite accepts '?' placeholders as is.
func (Dialect) Rebind(query string) string { return query }

// ContainsFold implements sqlstore.Dialect. SQLite's LOWER and LIKE only fold
// ASCII, so the column is lowered by the unicode_lower function registered on
// every connection of this driver.
func (Dialect) ContainsFold(column string) string {
	return unicodeLowerFunc + "(" + column + `) LIKE ? ESCAPE '\'`
}

// IsUniqueViolation implements sqlstore.Dialect.
func (Dialect) IsUniqueViolation(err error) bool {
	return hasExtendedCode(err, sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey)
}

// IsForeignKeyViolation implements sqlstore.Dialect.
func (Dialect) IsForeignKeyViolation(err error) bool {
	return hasExtendedCode(err, sqlite3.ErrConstraintForeignKey)
}

func hasExtendedCode(err error, codes ...sqlite3.ErrNoExtended) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) || sqliteErr.Code != sqlite3.ErrConstraint {
		return false
	}
	for _, code := range codes {
		if sqliteErr.ExtendedCode == code {
			return true
		}
	}
	return false
}

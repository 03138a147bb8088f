package postgres

import (
	"strconv"
	"strings"

	"github.com/phrazzld/libris-api/internal/platform/sqlstore"
)

// Dialect implements sqlstore.Dialect for PostgreSQL.
type Dialect struct{}

// Ensure Dialect implements sqlstore.Dialect interface
var _ sqlstore.Dialect = Dialect{}

// Name implements sqlstore.Dialect.
func (Dialect) Name() string { return "postgres" }

// Rebind implements sqlstore.Dialect by numbering '?' placeholders as $1,
// $2, ... Question marks inside single-quoted literals are left alone.
func (Dialect) Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	inLiteral := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inLiteral = !inLiteral
			b.WriteByte(c)
		case c == '?' && !inLiteral:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// ContainsFold implements sqlstore.Dialect with ILIKE, which folds case
// according to the database collation.
func (Dialect) ContainsFold(column string) string {
	return column + ` ILIKE ? ESCAPE '\'`
}

// IsUniqueViolation implements sqlstore.Dialect.
func (Dialect) IsUniqueViolation(err error) bool { return IsUniqueViolation(err) }

// IsForeignKeyViolation implements sqlstore.Dialect.
func (Dialect) IsForeignKeyViolation(err error) bool { return IsForeignKeyViolation(err) }

package sqlstore

// Dialect adapts the shared queries to a specific SQL engine.
type Dialect interface {
	// Name identifies the engine in logs, e.g. "postgres" or "sqlite".
	Name() string

	// Rebind rewrites a query written with '?' placeholders into the
	// placeholder syntax of the engine.
	Rebind(query string) string

	// ContainsFold returns a condition matching rows whose column contains a
	// pattern built by containsPattern, ignoring case for any script. The
	// condition takes one placeholder.
	ContainsFold(column string) string

	// IsUniqueViolation reports whether err is a unique constraint violation.
	IsUniqueViolation(err error) bool

	// IsForeignKeyViolation reports whether err is a foreign key violation.
	IsForeignKeyViolation(err error) bool
}

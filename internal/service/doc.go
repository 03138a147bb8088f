// Package service contains the catalog use cases. It coordinates the stores
// defined in internal/store to keep the catalog invariants: every book
// references an existing author, ISBNs are unique, and an author with books
// cannot be deleted.
//
// Each mutating operation runs in exactly one store transaction through
// store.RunInTransaction and either commits completely or leaves no change.
// Store errors are translated into the domain error kinds (validation, not
// found, conflict); any other failure is wrapped and passed through for the
// API layer to report as an internal error.
//
// Plain lookups (GetByID) report absence through a found flag rather than an
// error, while updates and deletes turn absence into a domain.NotFoundError.
package service

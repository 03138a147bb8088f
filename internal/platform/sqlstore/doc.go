// Package sqlstore implements the store interfaces on top of database/sql.
//
// The queries are written once with '?' placeholders and standard SQL. A
// Dialect supplied by the platform packages (postgres, sqlite) rewrites
// placeholders for its driver and classifies constraint violations so that
// they surface as the store package's sentinel errors.
package sqlstore

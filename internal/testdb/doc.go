// Package testdb provides database fixtures for tests.
//
// NewSQLite gives every test its own migrated SQLite file, so store and
// service tests exercise real constraints without external services.
// GetPostgresDBWithT connects to the PostgreSQL database named by
// LIBRIS_TEST_DB_URL (or DATABASE_URL) and skips the test when neither is set;
// WithTx then isolates each test in a transaction that is always rolled back.
//
//	func TestBookStore(t *testing.T) {
//	    db := testdb.NewSQLite(t)
//	    books := sqlstore.NewBookStore(db, sqlite.Dialect{}, nil)
//	    ...
//	}
package testdb

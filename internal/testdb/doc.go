//go:build integration

// Package testdb provides utilities for tests that run against a real
// PostgreSQL database.
//
// Tests open the shared connection with Open, which applies the embedded
// migrations once per process, and isolate their writes with WithTx:
//
//	func TestPostStoreCreate(t *testing.T) {
//	    db := testdb.Open(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        s := postgres.NewPostgresPostStore(tx, nil)
//	        ...
//	    })
//	}
//
// Every transaction is rolled back when the function returns, so tests may
// run in parallel without cleaning up after themselves. When no database URL
// is configured the tests are skipped.
package testdb

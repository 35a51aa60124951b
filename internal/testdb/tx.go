//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"
)

// WithTx runs fn inside a transaction that is rolled back afterwards, so
// tests see their own writes and leave nothing behind.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Errorf("failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}

//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/phrazzld/jsonapi-utils/internal/platform/postgres"
	"github.com/phrazzld/jsonapi-utils/internal/redact"
)

var (
	shared    *sql.DB
	sharedErr error
	once      sync.Once
)

// Open returns the shared test database with all migrations applied. The
// test is skipped when no database URL is configured and fails when the
// database cannot be reached.
func Open(t *testing.T) *sql.DB {
	t.Helper()
	if ShouldSkipDatabaseTest() {
		t.Skip("Skipping integration test - requires DATABASE_URL environment variable")
	}

	once.Do(func() {
		shared, sharedErr = connect(DatabaseURL())
	})
	if sharedErr != nil {
		t.Fatalf("test database unavailable: %s", redact.Error(sharedErr))
	}
	return shared
}

func connect(url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err := postgres.Migrate(ctx, db, nil); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}
	return db, nil
}

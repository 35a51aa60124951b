package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationTableName is the goose version table.
const MigrationTableName = "schema_migrations"

// goose keeps its settings in package globals.
var gooseMu sync.Mutex

// gooseLogger adapts the goose logger interface to slog. Fatalf does not
// exit; the failure is returned to the caller instead.
type gooseLogger struct {
	logger *slog.Logger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// Migrate applies all pending embedded migrations.
func Migrate(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	return runMigrations(ctx, db, logger, "up")
}

// MigrationStatus logs the state of every embedded migration.
func MigrationStatus(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	return runMigrations(ctx, db, logger, "status")
}

func runMigrations(ctx context.Context, db *sql.DB, logger *slog.Logger, command string) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "migrations"), slog.String("command", command))

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(gooseLogger{logger: logger})
	goose.SetTableName(MigrationTableName)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	var err error
	switch command {
	case "up":
		err = goose.UpContext(ctx, db, "migrations")
	case "status":
		err = goose.StatusContext(ctx, db, "migrations")
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}
	if err != nil {
		return fmt.Errorf("migration command '%s' failed: %w", command, err)
	}

	logger.InfoContext(ctx, "migration command executed successfully")
	return nil
}

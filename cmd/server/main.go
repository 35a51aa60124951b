// Package main implements the entry point for the example JSON:API server
// which serves users and posts through the document building pipeline.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/phrazzld/jsonapi-utils/internal/config"
	"github.com/phrazzld/jsonapi-utils/internal/platform/logger"
	"github.com/phrazzld/jsonapi-utils/internal/platform/postgres"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up, status) and exit")
	configDir := flag.String("config", ".", "directory holding config.yaml")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configDir, *migrateCmd); err != nil {
		stop()
		log.Fatalf("Server error: %v", err)
	}
}

// run loads configuration, prepares the database and serves until ctx is
// canceled. A non-empty migrateCmd runs that migration command instead of
// the server.
func run(ctx context.Context, configDir, migrateCmd string) error {
	cfg, err := config.LoadFrom(configDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupAppDatabase(ctx, cfg.Database.URL, l)
	if err != nil {
		return err
	}

	switch migrateCmd {
	case "":
	case "up":
		defer closeQuietly(db.Close, l)
		return postgres.Migrate(ctx, db, l)
	case "status":
		defer closeQuietly(db.Close, l)
		return postgres.MigrationStatus(ctx, db, l)
	default:
		_ = db.Close()
		return fmt.Errorf("unknown migration command %q", migrateCmd)
	}

	if err := postgres.Migrate(ctx, db, l); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	app, err := newApplication(cfg, l, db, postgresStores(db, l))
	if err != nil {
		_ = db.Close()
		return err
	}
	return app.Run(ctx)
}

func closeQuietly(closeFn func() error, l *slog.Logger) {
	if err := closeFn(); err != nil {
		l.Error("Error closing database connection", "error", err)
	}
}

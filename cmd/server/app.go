package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	ut "github.com/go-playground/universal-translator"
	"github.com/phrazzld/jsonapi-utils/internal/api"
	"github.com/phrazzld/jsonapi-utils/internal/apierror"
	"github.com/phrazzld/jsonapi-utils/internal/config"
	"github.com/phrazzld/jsonapi-utils/internal/document"
	"github.com/phrazzld/jsonapi-utils/internal/domain"
	"github.com/phrazzld/jsonapi-utils/internal/pagination"
	"github.com/phrazzld/jsonapi-utils/internal/platform/metrics"
	"github.com/phrazzld/jsonapi-utils/internal/platform/postgres"
	"github.com/phrazzld/jsonapi-utils/internal/resource"
	"github.com/phrazzld/jsonapi-utils/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore store.UserStore
	postStore store.PostStore
	postModel store.Model

	metrics    *metrics.Metrics
	engine     *pagination.Engine
	builder    *document.Builder
	schemas    api.Schemas
	translator ut.Translator
}

// stores groups the persistence dependencies the handlers read and write.
type stores struct {
	users store.UserStore
	posts store.PostStore
	model store.Model
}

// postgresStores returns the stores backed by db.
func postgresStores(db *sql.DB, logger *slog.Logger) stores {
	return stores{
		users: postgres.NewPostgresUserStore(db, logger),
		posts: postgres.NewPostgresPostStore(db, logger),
		model: postgres.NewPostModel(db, logger),
	}
}

// newApplication assembles the document pipeline around the given stores.
// db may be nil, in which case cleanup has nothing to close.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB, s stores) (*application, error) {
	app := &application{
		config:    cfg,
		logger:    logger,
		db:        db,
		userStore: s.users,
		postStore: s.posts,
		postModel: s.model,
		metrics:   metrics.New(),
	}

	var err error
	app.engine, err = pagination.NewEngine(
		cfg.Pagination.DefaultPaginator,
		paginationSettings(cfg.Pagination),
		nil, nil,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to configure pagination: %w", err)
	}

	codec, err := resource.CodecFor(cfg.Document.KeyFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to configure key format: %w", err)
	}
	app.schemas = api.NewSchemas(codec)

	app.builder = document.NewBuilder(app.engine, documentConfig(cfg.Document), logger).
		WithObserver(app.metrics)

	app.translator, err = apierror.NewTranslator(domain.Validator(), cfg.Document.Locale)
	if err != nil {
		return nil, fmt.Errorf("failed to register validation messages: %w", err)
	}

	logger.Info("Application initialized successfully",
		"paginator", cfg.Pagination.DefaultPaginator,
		"key_format", cfg.Document.KeyFormat,
		"locale", cfg.Document.Locale)
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}
	app.logger.Info("Application shutdown completed")
}

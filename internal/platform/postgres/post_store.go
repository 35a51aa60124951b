package postgres

import (
	"context"
	"log/slog"

	"github.com/phrazzld/jsonapi-utils/internal/domain"
	"github.com/phrazzld/jsonapi-utils/internal/redact"
	"github.com/phrazzld/jsonapi-utils/internal/store"
)

// PostgresPostStore implements store.PostStore.
type PostgresPostStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.PostStore = (*PostgresPostStore)(nil)

// NewPostgresPostStore creates a new PostgreSQL implementation of PostStore.
// If logger is nil, a default logger will be used.
func NewPostgresPostStore(db store.DBTX, logger *slog.Logger) *PostgresPostStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresPostStore{
		db:     db,
		logger: logger.With(slog.String("component", "post_store")),
	}
}

// Create implements store.PostStore.
func (s *PostgresPostStore) Create(ctx context.Context, post *domain.Post) error {
	const q = `INSERT INTO posts (title, body, user_id, category_id)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at`

	err := s.db.QueryRowContext(ctx, q, post.Title, post.Body, post.UserID, post.CategoryID).
		Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		s.logger.Log(ctx, failureLevel(err), "failed to insert post",
			redact.ErrorAttr(err),
			slog.Int64("user_id", post.UserID))
		return store.NewStoreError("post", "create", "insert failed", MapError(err))
	}

	s.logger.InfoContext(ctx, "post created", slog.Int64("post_id", post.ID))
	return nil
}

// All implements store.PostStore.
func (s *PostgresPostStore) All() store.Relation {
	return NewRelation(s.db, PostsTable, s.logger)
}

package postgres

import (
	"log/slog"
	"strconv"

	"github.com/phrazzld/jsonapi-utils/internal/store"
)

// PostgresUserStore implements store.UserStore.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.UserStore = (*PostgresUserStore)(nil)

// NewPostgresUserStore creates a new PostgreSQL implementation of UserStore.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// All implements store.UserStore.
func (s *PostgresUserStore) All() store.Relation {
	return NewRelation(s.db, UsersTable, s.logger)
}

// Posts implements store.UserStore. A malformed id yields an empty relation.
func (s *PostgresUserStore) Posts(userID string) store.Relation {
	rel := NewRelation(s.db, PostsTable, s.logger)
	id, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return rel.Where(map[string]any{"user_id": []int64{}})
	}
	return rel.Where(map[string]any{"user_id": id})
}

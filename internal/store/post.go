package store

import (
	"context"

	"github.com/phrazzld/jsonapi-utils/internal/domain"
)

// PostStore persists posts.
type PostStore interface {
	// Create inserts the post and fills in its ID and CreatedAt.
	// The post must already be valid.
	Create(ctx context.Context, post *domain.Post) error

	// All returns the lazy relation over every post.
	All() Relation
}

// UserStore exposes users.
type UserStore interface {
	// All returns the lazy relation over every user.
	All() Relation

	// Posts returns the lazy relation over the posts authored by the user.
	Posts(userID string) Relation
}

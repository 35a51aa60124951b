package pagination

import (
	"context"

	"github.com/phrazzld/jsonapi-utils/internal/store"
	"github.com/stretchr/testify/mock"
)

// mockRelation is a lazy relation over the posts table whose counting and
// windowing calls are recorded.
type mockRelation struct {
	store.Relation
	mock.Mock
}

func (m *mockRelation) TableName() string  { return "posts" }
func (m *mockRelation) PrimaryKey() string { return "id" }

func (m *mockRelation) Except(clauses ...store.Clause) store.Relation {
	args := m.Called(clauses)
	return args.Get(0).(store.Relation)
}

func (m *mockRelation) Count(ctx context.Context, expr string) (int64, error) {
	args := m.Called(ctx, expr)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRelation) Window(offset, limit int) store.Relation {
	args := m.Called(offset, limit)
	return args.Get(0).(store.Relation)
}

var (
	withoutIncludes = []store.Clause{store.ClauseIncludes, store.ClauseGroup, store.ClauseOrder}
	withIncludes    = []store.Clause{store.ClauseGroup, store.ClauseOrder}
)

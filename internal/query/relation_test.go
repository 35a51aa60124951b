package query

import (
	"github.com/phrazzld/jsonapi-utils/internal/store"
	"github.com/stretchr/testify/mock"
)

// mockRelation records the builder calls made on a lazy relation.
type mockRelation struct {
	store.Relation
	mock.Mock
}

func (m *mockRelation) Where(conditions map[string]any) store.Relation {
	args := m.Called(conditions)
	return args.Get(0).(store.Relation)
}

func (m *mockRelation) Order(fields ...store.SortField) store.Relation {
	args := m.Called(fields)
	return args.Get(0).(store.Relation)
}

package testutils

import (
	"fmt"
	"maps"
	"slices"

	"github.com/phrazzld/jsonapi-utils/internal/domain"
	"github.com/phrazzld/jsonapi-utils/internal/store"
)

// MemModel is a store.Model building map records with a fixed attribute set
// and looking them up in Relation.
type MemModel struct {
	Attributes []string
	Relation   *MemRelation
}

var _ store.Model = (*MemModel)(nil)

func (m *MemModel) New(attrs map[string]any) (domain.Record, error) {
	for key := range attrs {
		if key != "id" && !slices.Contains(m.Attributes, key) {
			return nil, fmt.Errorf("%s: %w", key, store.ErrUnknownAttribute)
		}
	}
	return domain.MapRecord(maps.Clone(attrs)), nil
}

func (m *MemModel) WhereIDs(ids ...any) store.Relation {
	return m.Relation.Where(map[string]any{"id": ids})
}

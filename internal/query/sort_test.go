package query

import (
	"testing"
	"time"

	"github.com/phrazzld/jsonapi-utils/internal/domain"
	"github.com/phrazzld/jsonapi-utils/internal/resource"
	"github.com/phrazzld/jsonapi-utils/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(records []domain.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.GetID()
	}
	return out
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		name      string
		directive string
		schema    *resource.Schema
		expected  SortSpec
	}{
		{"empty", "", nil, nil},
		{"single ascending", "title", nil, SortSpec{{Field: "title"}}},
		{
			name:      "mixed directions keep order",
			directive: "title,-body, id",
			expected:  SortSpec{{Field: "title"}, {Field: "body", Desc: true}, {Field: "id"}},
		},
		{
			name:      "dasherized keys",
			directive: "-created-at",
			schema:    postSchema().WithCodec(resource.Dasherized{}),
			expected:  SortSpec{{Field: "created_at", Desc: true}},
		},
		{"stray separators", ",title,,-", nil, SortSpec{{Field: "title"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseSort(tt.directive, tt.schema))
		})
	}
}

func TestApplySortMultiKey(t *testing.T) {
	records := domain.Records(
		map[string]any{"id": 1, "title": "Lorem", "body": "Body 4"},
		map[string]any{"id": 2, "title": "Dolor", "body": "Body 2"},
		map[string]any{"id": 3, "title": "Dolor", "body": "Body 3"},
		map[string]any{"id": 4, "title": "Dolor", "body": "Body 1"},
	)

	got, ok := ApplySort(records, ParseSort("title,-body", nil)).([]domain.Record)
	require.True(t, ok)
	assert.Equal(t, []string{"3", "2", "4", "1"}, ids(got))
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(records), "input must not be reordered")
}

func TestApplySortIsStable(t *testing.T) {
	records := domain.Records(
		map[string]any{"id": 1, "rank": 2},
		map[string]any{"id": 2, "rank": 1},
		map[string]any{"id": 3, "rank": 2},
		map[string]any{"id": 4, "rank": 1},
		map[string]any{"id": 5, "rank": 2},
	)

	asc := ApplySort(records, SortSpec{{Field: "rank"}}).([]domain.Record)
	assert.Equal(t, []string{"2", "4", "1", "3", "5"}, ids(asc))

	desc := ApplySort(records, SortSpec{{Field: "rank", Desc: true}}).([]domain.Record)
	assert.Equal(t, []string{"1", "3", "5", "2", "4"}, ids(desc))
}

func TestApplySortRelation(t *testing.T) {
	ordered := &mockRelation{}
	rel := &mockRelation{}
	spec := SortSpec{{Field: "title"}, {Field: "body", Desc: true}}
	rel.On("Order", []store.SortField(spec)).Return(ordered).Once()

	assert.Same(t, ordered, ApplySort(rel, spec))
	rel.AssertExpectations(t)
}

func TestApplySortWithoutSpec(t *testing.T) {
	records := domain.Records(map[string]any{"id": 1})
	assert.Equal(t, records, ApplySort(records, nil))
}

func TestCompare(t *testing.T) {
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)

	tests := []struct {
		name     string
		a, b     any
		expected int
	}{
		{"nil first", nil, 1, -1},
		{"nil last", "a", nil, 1},
		{"both nil", nil, nil, 0},
		{"ints", 2, 10, -1},
		{"mixed int widths", int64(3), int32(3), 0},
		{"int and float", 2, 1.5, 1},
		{"large int64 exact", int64(1<<62 + 1), int64(1 << 62), 1},
		{"strings lexicographic", "Body 10", "Body 2", -1},
		{"times", late, early, 1},
		{"bools", false, true, -1},
		{"fallback on printed form", "10", 9, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Compare(tt.a, tt.b))
		})
	}
}

package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var settings = Settings{DefaultPageSize: 10, MaximumPageSize: 20}

func TestPageCount(t *testing.T) {
	tests := []struct {
		count    int64
		size     int
		expected int64
	}{
		{0, 5, 0},
		{0, 1, 0},
		{10, 5, 2},
		{11, 5, 3},
		{1, 10, 1},
		{-3, 5, 0},
		{5, 0, 0},
		{5, -2, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, PageCount(tt.count, tt.size), "count=%d size=%d", tt.count, tt.size)
	}
}

func TestNewPagedStrategy(t *testing.T) {
	tests := []struct {
		name     string
		page     map[string]string
		expected PagedStrategy
		rng      Range
	}{
		{"defaults", nil, PagedStrategy{Number: 1, Size: 10}, Range{Offset: 0, Limit: 10}},
		{"explicit", map[string]string{"number": "2", "size": "2"}, PagedStrategy{Number: 2, Size: 2}, Range{Offset: 2, Limit: 2}},
		{"zero is unset", map[string]string{"number": "0", "size": "0"}, PagedStrategy{Number: 1, Size: 10}, Range{Offset: 0, Limit: 10}},
		{"negative and garbage", map[string]string{"number": "-4", "size": "abc"}, PagedStrategy{Number: 1, Size: 10}, Range{Offset: 0, Limit: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewPagedStrategy(tt.page, settings)
			assert.Equal(t, tt.expected, s)
			assert.Equal(t, tt.rng, s.Range())
		})
	}
}

func TestPagedRangeInclusiveBounds(t *testing.T) {
	r := PagedStrategy{Number: 3, Size: 4}.Range()
	assert.Equal(t, 8, r.Offset)
	assert.Equal(t, 11, r.Last())
}

func TestRangesSaturateInsteadOfWrapping(t *testing.T) {
	paged := PagedStrategy{Number: 4611686018427387905, Size: 2}.Range()
	assert.Equal(t, Range{Offset: math.MaxInt, Limit: 2}, paged)
	assert.Equal(t, math.MaxInt-1, paged.Last())

	huge := PagedStrategy{Number: math.MaxInt, Size: math.MaxInt}.Range()
	assert.Equal(t, math.MaxInt, huge.Offset)

	links := OffsetStrategy{Offset: math.MaxInt - 1, Limit: 5}.Links(10)
	assert.NotContains(t, links, LinkNext)
	assert.Equal(t, Page{"offset": math.MaxInt - 6, "limit": 5}, links[LinkPrev])
	assert.Equal(t, Page{"offset": 5, "limit": 5}, links[LinkLast])
}

func TestPagedLinks(t *testing.T) {
	tests := []struct {
		name     string
		strategy PagedStrategy
		count    int64
		expected Links
	}{
		{
			name:     "first page",
			strategy: PagedStrategy{Number: 1, Size: 2},
			count:    5,
			expected: Links{
				LinkFirst: {"number": 1, "size": 2},
				LinkNext:  {"number": 2, "size": 2},
				LinkLast:  {"number": 3, "size": 2},
			},
		},
		{
			name:     "middle page",
			strategy: PagedStrategy{Number: 2, Size: 2},
			count:    5,
			expected: Links{
				LinkFirst: {"number": 1, "size": 2},
				LinkPrev:  {"number": 1, "size": 2},
				LinkNext:  {"number": 3, "size": 2},
				LinkLast:  {"number": 3, "size": 2},
			},
		},
		{
			name:     "last page",
			strategy: PagedStrategy{Number: 3, Size: 2},
			count:    5,
			expected: Links{
				LinkFirst: {"number": 1, "size": 2},
				LinkPrev:  {"number": 2, "size": 2},
				LinkLast:  {"number": 3, "size": 2},
			},
		},
		{
			name:     "empty collection",
			strategy: PagedStrategy{Number: 1, Size: 2},
			count:    0,
			expected: Links{
				LinkFirst: {"number": 1, "size": 2},
				LinkLast:  {"number": 1, "size": 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.strategy.Links(tt.count))
		})
	}
}

func TestNewOffsetStrategy(t *testing.T) {
	assert.Equal(t, OffsetStrategy{Offset: 0, Limit: 10}, NewOffsetStrategy(nil, settings))
	assert.Equal(t, OffsetStrategy{Offset: 3, Limit: 1},
		NewOffsetStrategy(map[string]string{"offset": "3", "limit": "1"}, settings))
	assert.Equal(t, OffsetStrategy{Offset: 0, Limit: 10},
		NewOffsetStrategy(map[string]string{"offset": "-3", "limit": "0"}, settings))
	assert.Equal(t, Range{Offset: 3, Limit: 1}, OffsetStrategy{Offset: 3, Limit: 1}.Range())
}

func TestOffsetLinks(t *testing.T) {
	tests := []struct {
		name     string
		strategy OffsetStrategy
		count    int64
		expected Links
	}{
		{
			name:     "last record",
			strategy: OffsetStrategy{Offset: 3, Limit: 1},
			count:    4,
			expected: Links{
				LinkFirst: {"offset": 0, "limit": 1},
				LinkPrev:  {"offset": 2, "limit": 1},
				LinkLast:  {"offset": 3, "limit": 1},
			},
		},
		{
			name:     "start",
			strategy: OffsetStrategy{Offset: 0, Limit: 2},
			count:    5,
			expected: Links{
				LinkFirst: {"offset": 0, "limit": 2},
				LinkNext:  {"offset": 2, "limit": 2},
				LinkLast:  {"offset": 3, "limit": 2},
			},
		},
		{
			name:     "prev clamps at zero",
			strategy: OffsetStrategy{Offset: 1, Limit: 5},
			count:    3,
			expected: Links{
				LinkFirst: {"offset": 0, "limit": 5},
				LinkPrev:  {"offset": 0, "limit": 5},
				LinkLast:  {"offset": 0, "limit": 5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.strategy.Links(tt.count))
		})
	}
}

func TestStrategyRules(t *testing.T) {
	assert.Equal(t, []string{"number", "size"}, PagedStrategy{}.Rules().Keys)
	assert.Equal(t, "limit", OffsetStrategy{}.Rules().SizeKey)
	assert.Equal(t, "offset", OffsetStrategy{}.Rules().OffsetKey)
}

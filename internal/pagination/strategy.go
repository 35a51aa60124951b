package pagination

import (
	"math"
	"strconv"
	"strings"

	"github.com/phrazzld/jsonapi-utils/internal/query"
	"github.com/phrazzld/jsonapi-utils/internal/store"
)

// Names of the built-in strategies. None disables pagination.
const (
	Paged  = "paged"
	Offset = "offset"
	None   = "none"
)

// Link names of the navigation links.
const (
	LinkFirst = "first"
	LinkPrev  = "prev"
	LinkNext  = "next"
	LinkLast  = "last"
)

// Settings are the process-wide page size settings.
type Settings struct {
	DefaultPageSize int
	MaximumPageSize int
}

// Range is the window of a collection a page covers: Limit records starting
// at the zero-based Offset.
type Range struct {
	Offset int
	Limit  int
}

// Last is the zero-based index of the last record in the range.
func (r Range) Last() int { return addSaturated(r.Offset, r.Limit) - 1 }

// Page is a page descriptor, e.g. {"number": 2, "size": 10}.
type Page map[string]int

// Links maps link names to page descriptors.
type Links map[string]Page

// Strategy is a resolved pagination strategy for one request.
type Strategy interface {
	// Range is the window of records selected by the request.
	Range() Range

	// Apply restricts a lazy relation to the strategy's window.
	Apply(rel store.Relation) store.Relation

	// PageSize is the effective number of records per page.
	PageSize() int

	// Links returns the first, prev, next and last page descriptors for a
	// collection of recordCount records. prev and next are omitted on the
	// first and last page respectively.
	Links(recordCount int64) Links

	// Rules describe the page parameters the strategy reads.
	Rules() query.PageRules
}

// Factory builds a strategy from raw page parameters.
type Factory func(page map[string]string, settings Settings) Strategy

// PageCount is the number of pages of size records needed for recordCount
// records. It is zero for empty collections and non-positive sizes.
func PageCount(recordCount int64, size int) int64 {
	if recordCount < 1 || size <= 0 {
		return 0
	}
	s := int64(size)
	return (recordCount + s - 1) / s
}

// addSaturated adds two non-negative ints, stopping at math.MaxInt.
func addSaturated(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// pageOffset is the offset of page number, stopping at math.MaxInt so a page
// far past the end selects nothing instead of wrapping negative.
func pageOffset(number, size int) int {
	if number < 2 || size < 1 {
		return 0
	}
	if number-1 > math.MaxInt/size {
		return math.MaxInt
	}
	return (number - 1) * size
}

// positive parses raw as a positive integer; zero, negative and malformed
// values yield fallback.
func positive(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// PagedStrategy paginates by page number and page size.
type PagedStrategy struct {
	Number int
	Size   int
}

var _ Strategy = PagedStrategy{}

// NewPagedStrategy reads the number and size page parameters. Number
// defaults to 1 and size to the default page size.
func NewPagedStrategy(page map[string]string, settings Settings) Strategy {
	return PagedStrategy{
		Number: positive(page["number"], 1),
		Size:   positive(page["size"], settings.DefaultPageSize),
	}
}

func (s PagedStrategy) Range() Range {
	return Range{Offset: pageOffset(s.Number, s.Size), Limit: s.Size}
}

func (s PagedStrategy) Apply(rel store.Relation) store.Relation {
	r := s.Range()
	return rel.Window(r.Offset, r.Limit)
}

func (s PagedStrategy) PageSize() int { return s.Size }

func (s PagedStrategy) page(number int) Page {
	return Page{"number": number, "size": s.Size}
}

func (s PagedStrategy) Links(recordCount int64) Links {
	pages := PageCount(recordCount, s.Size)
	links := Links{LinkFirst: s.page(1)}
	if s.Number > 1 {
		links[LinkPrev] = s.page(s.Number - 1)
	}
	if int64(s.Number) < pages {
		links[LinkNext] = s.page(s.Number + 1)
	}
	links[LinkLast] = s.page(int(max(pages, 1)))
	return links
}

func (s PagedStrategy) Rules() query.PageRules {
	return query.PageRules{Keys: []string{"number", "size"}, SizeKey: "size"}
}

// OffsetStrategy paginates by record offset and limit.
type OffsetStrategy struct {
	Offset int
	Limit  int
}

var _ Strategy = OffsetStrategy{}

// NewOffsetStrategy reads the offset and limit page parameters. Offset
// defaults to 0 and limit to the default page size.
func NewOffsetStrategy(page map[string]string, settings Settings) Strategy {
	return OffsetStrategy{
		Offset: positive(page["offset"], 0),
		Limit:  positive(page["limit"], settings.DefaultPageSize),
	}
}

func (s OffsetStrategy) Range() Range {
	return Range{Offset: s.Offset, Limit: s.Limit}
}

func (s OffsetStrategy) Apply(rel store.Relation) store.Relation {
	return rel.Window(s.Offset, s.Limit)
}

func (s OffsetStrategy) PageSize() int { return s.Limit }

func (s OffsetStrategy) page(offset int) Page {
	return Page{"offset": offset, "limit": s.Limit}
}

func (s OffsetStrategy) Links(recordCount int64) Links {
	links := Links{LinkFirst: s.page(0)}
	if s.Offset > 0 {
		links[LinkPrev] = s.page(max(s.Offset-s.Limit, 0))
	}
	if next := addSaturated(s.Offset, s.Limit); int64(next) < recordCount {
		links[LinkNext] = s.page(next)
	}
	links[LinkLast] = s.page(int(max(recordCount-int64(s.Limit), 0)))
	return links
}

func (s OffsetStrategy) Rules() query.PageRules {
	return query.PageRules{Keys: []string{"offset", "limit"}, SizeKey: "limit", OffsetKey: "offset"}
}

package testutils

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/phrazzld/jsonapi-utils/internal/domain"
	"github.com/phrazzld/jsonapi-utils/internal/query"
	"github.com/phrazzld/jsonapi-utils/internal/store"
)

// CountCall records one Count executed on a MemRelation.
type CountCall struct {
	Expr     string
	Includes bool
	Err      error
}

// RelationStats collects the queries executed by a MemRelation and every
// relation derived from it.
type RelationStats struct {
	mu     sync.Mutex
	counts []CountCall
	loads  int
}

// Counts returns the executed counts in order.
func (s *RelationStats) Counts() []CountCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.counts)
}

// Loads returns the number of executed loads.
func (s *RelationStats) Loads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads
}

// MemRelation is a store.Relation over in-memory records.
//
// Conditions on columns of other tables ("comments.body") are not evaluated,
// but executing them without including that table fails with
// store.ErrStatementInvalid, the way a database rejects a missing FROM entry.
type MemRelation struct {
	table    string
	rows     []domain.Record
	where    []map[string]any
	order    []store.SortField
	includes []store.Include
	group    []string
	offset   int
	limit    int
	windowed bool
	stats    *RelationStats
}

var _ store.Relation = (*MemRelation)(nil)

// NewMemRelation creates a relation over rows of table. The primary key is
// the "id" attribute.
func NewMemRelation(table string, rows []domain.Record) *MemRelation {
	return &MemRelation{table: table, rows: rows, stats: &RelationStats{}}
}

// Stats returns the query log shared with derived relations.
func (r *MemRelation) Stats() *RelationStats { return r.stats }

func (r *MemRelation) clone() *MemRelation {
	c := *r
	c.where = slices.Clone(r.where)
	c.order = slices.Clone(r.order)
	c.includes = slices.Clone(r.includes)
	c.group = slices.Clone(r.group)
	return &c
}

func (r *MemRelation) Where(conditions map[string]any) store.Relation {
	c := r.clone()
	c.where = append(c.where, conditions)
	return c
}

func (r *MemRelation) Order(fields ...store.SortField) store.Relation {
	c := r.clone()
	c.order = append(c.order, fields...)
	return c
}

func (r *MemRelation) Includes(includes ...store.Include) store.Relation {
	c := r.clone()
	c.includes = append(c.includes, includes...)
	return c
}

func (r *MemRelation) Group(columns ...string) store.Relation {
	c := r.clone()
	c.group = append(c.group, columns...)
	return c
}

func (r *MemRelation) Window(offset, limit int) store.Relation {
	c := r.clone()
	c.offset, c.limit, c.windowed = offset, limit, true
	return c
}

func (r *MemRelation) Except(clauses ...store.Clause) store.Relation {
	c := r.clone()
	for _, clause := range clauses {
		switch clause {
		case store.ClauseIncludes:
			c.includes = nil
		case store.ClauseGroup:
			c.group = nil
		case store.ClauseOrder:
			c.order = nil
		case store.ClauseWindow:
			c.offset, c.limit, c.windowed = 0, 0, false
		}
	}
	return c
}

func (r *MemRelation) TableName() string  { return r.table }
func (r *MemRelation) PrimaryKey() string { return "id" }

func (r *MemRelation) Count(ctx context.Context, expr string) (int64, error) {
	rows, err := r.execute(ctx)
	if err == nil && r.windowed {
		rows = r.window(rows)
	}

	r.stats.mu.Lock()
	r.stats.counts = append(r.stats.counts, CountCall{Expr: expr, Includes: len(r.includes) > 0, Err: err})
	r.stats.mu.Unlock()

	if err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}

func (r *MemRelation) Load(ctx context.Context) ([]domain.Record, error) {
	rows, err := r.execute(ctx)
	if err != nil {
		return nil, err
	}
	r.stats.mu.Lock()
	r.stats.loads++
	r.stats.mu.Unlock()

	if len(r.order) > 0 {
		rows = query.ApplySort(rows, r.order).([]domain.Record)
	}
	if r.windowed {
		rows = r.window(rows)
	}
	return rows, nil
}

func (r *MemRelation) window(rows []domain.Record) []domain.Record {
	lo := min(max(r.offset, 0), len(rows))
	hi := min(lo+max(r.limit, 0), len(rows))
	return rows[lo:hi]
}

// execute returns the rows matching every condition.
func (r *MemRelation) execute(ctx context.Context) ([]domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]domain.Record, 0, len(r.rows))
	for _, row := range r.rows {
		ok, err := r.matches(row)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *MemRelation) matches(row domain.Record) (bool, error) {
	for _, cond := range r.where {
		for key, want := range cond {
			table, column, qualified := strings.Cut(key, ".")
			if !qualified {
				table, column = r.table, key
			}
			if table != r.table {
				if !r.included(table) {
					return false, store.NewStoreError(r.table, "query",
						fmt.Sprintf("missing FROM-clause entry for table %q", table), store.ErrStatementInvalid)
				}
				continue
			}
			got, _ := row.Attribute(column)
			if !matchValue(got, want) {
				return false, nil
			}
		}
	}
	return true, nil
}

func (r *MemRelation) included(table string) bool {
	return slices.ContainsFunc(r.includes, func(inc store.Include) bool { return inc.Table == table })
}

func matchValue(got, want any) bool {
	switch w := want.(type) {
	case []string:
		return slices.Contains(w, domain.FormatID(got))
	case []int64:
		return slices.ContainsFunc(w, func(v int64) bool { return domain.FormatID(v) == domain.FormatID(got) })
	case []any:
		return slices.ContainsFunc(w, func(v any) bool { return domain.FormatID(v) == domain.FormatID(got) })
	}
	return domain.FormatID(got) == domain.FormatID(want)
}

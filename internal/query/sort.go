package query

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/phrazzld/jsonapi-utils/internal/domain"
	"github.com/phrazzld/jsonapi-utils/internal/resource"
	"github.com/phrazzld/jsonapi-utils/internal/store"
)

// SortSpec is an ordered list of sort criteria. Earlier entries take
// priority; later ones break ties.
type SortSpec []store.SortField

// ParseSort parses a directive such as "title,-created_at". A leading "-"
// marks a descending criterion. Field names are converted to internal form.
func ParseSort(directive string, schema *resource.Schema) SortSpec {
	var spec SortSpec
	for _, token := range strings.Split(directive, ",") {
		token = strings.TrimSpace(token)
		desc := strings.HasPrefix(token, "-")
		token = strings.TrimPrefix(token, "-")
		if token == "" {
			continue
		}
		if schema != nil {
			token = schema.ToInternal(token)
		}
		spec = append(spec, store.SortField{Field: token, Desc: desc})
	}
	return spec
}

// ApplySort orders records by spec. Relations get an ORDER BY; materialized
// sequences are sorted in memory into a new slice, keeping the input order of
// records that tie on every criterion.
func ApplySort(records any, spec SortSpec) any {
	if len(spec) == 0 {
		return records
	}
	switch r := records.(type) {
	case store.Relation:
		return r.Order(spec...)
	case []domain.Record:
		sorted := slices.Clone(r)
		slices.SortStableFunc(sorted, func(a, b domain.Record) int {
			return compareRecords(a, b, spec)
		})
		return sorted
	}
	return records
}

func compareRecords(a, b domain.Record, spec SortSpec) int {
	for _, f := range spec {
		av, _ := a.Attribute(f.Field)
		bv, _ := b.Attribute(f.Field)
		c := Compare(av, bv)
		if f.Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

// Compare orders two attribute values naturally: numbers numerically,
// strings lexicographically, times chronologically and false before true.
// nil sorts first. Values of unrelated types compare by their printed form.
func Compare(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	if ai, ok := asInt(a); ok {
		if bi, ok := asInt(b); ok {
			return cmp.Compare(ai, bi)
		}
	}
	if af, ok := asFloat(a); ok {
		if bf, ok := asFloat(b); ok {
			return cmp.Compare(af, bf)
		}
	}

	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			default:
				return 1
			}
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	if i, ok := asInt(v); ok {
		return float64(i), true
	}
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

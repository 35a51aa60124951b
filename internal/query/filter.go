package query

import (
	"github.com/phrazzld/jsonapi-utils/internal/resource"
	"github.com/phrazzld/jsonapi-utils/internal/store"
)

// FilterSpec maps internal field names to the value each must equal. A
// []string value, produced only for the schema's list filters, matches any
// of its elements. A nil spec means the request carried no filter; an empty
// one restricts nothing.
type FilterSpec map[string]any

// BuildFilterSpec converts raw filter parameters into a FilterSpec. Keys are
// converted to internal form and custom filters are left out, since those
// are applied by the caller.
func BuildFilterSpec(filter map[string]string, schema *resource.Schema) FilterSpec {
	if filter == nil {
		return nil
	}
	spec := make(FilterSpec, len(filter))
	for key, raw := range filter {
		if schema == nil {
			spec[key] = raw
			continue
		}
		field := schema.ToInternal(key)
		switch {
		case schema.IsCustomFilter(field):
			// applied by the caller
		case schema.IsListFilter(field):
			spec[field] = splitList(raw)
		default:
			spec[field] = raw
		}
	}
	return spec
}

// ApplyFilter restricts a lazy relation by spec. Materialized sequences and
// nil specs pass through unchanged.
func ApplyFilter(records any, spec FilterSpec) any {
	rel, ok := records.(store.Relation)
	if !ok || spec == nil {
		return records
	}
	return rel.Where(spec)
}

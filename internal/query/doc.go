// Package query parses the JSON:API query parameters of a request and
// applies the filter and sort directives they carry to record collections.
//
// A collection is either a lazy store.Relation or a materialized
// []domain.Record. Filtering is only defined for relations; sorting works on
// both, with a stable multi-key sort for materialized sequences.
package query

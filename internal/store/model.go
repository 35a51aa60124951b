package store

import "github.com/phrazzld/jsonapi-utils/internal/domain"

// Model builds records of one entity kind from plain keyed-value structures
// and looks records up by identifier when a structure cannot be coerced.
type Model interface {
	// New instantiates a record from attributes. An attribute the model
	// does not know fails with ErrUnknownAttribute.
	New(attrs map[string]any) (domain.Record, error)

	// WhereIDs returns the lazy relation of records with the given ids.
	WhereIDs(ids ...any) Relation
}

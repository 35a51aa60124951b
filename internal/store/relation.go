package store

import (
	"context"

	"github.com/phrazzld/jsonapi-utils/internal/domain"
)

// Clause names a part of a relation's query that can be stripped with Except.
type Clause string

// Clauses understood by Relation.Except.
const (
	ClauseIncludes Clause = "includes"
	ClauseGroup    Clause = "group"
	ClauseOrder    Clause = "order"
	ClauseWindow   Clause = "window"
)

// SortField is one ordering criterion. Fields are in internal key form.
type SortField struct {
	Field string
	Desc  bool
}

// Include describes an eager-loaded association joined into the query.
type Include struct {
	// Table is the associated table name.
	Table string
	// ForeignKey is the column on Table referencing the relation's primary key.
	ForeignKey string
}

// Relation is a lazy, query-backed collection. Every builder method returns
// a new relation and leaves the receiver untouched; nothing is fetched until
// Count or Load is called.
type Relation interface {
	// Where restricts the relation by equality on each key. Keys may be
	// qualified ("posts.id") to reference an included table. A slice value
	// matches any of its elements. An empty map restricts nothing.
	Where(conditions map[string]any) Relation

	// Order appends ordering criteria, earliest taking priority.
	Order(fields ...SortField) Relation

	// Includes eager-loads associations by joining them.
	Includes(includes ...Include) Relation

	// Group adds GROUP BY columns.
	Group(columns ...string) Relation

	// Window restricts the relation to limit rows starting at offset.
	Window(offset, limit int) Relation

	// Except returns a copy of the relation without the given clauses.
	Except(clauses ...Clause) Relation

	// Count executes a count of the given expression,
	// e.g. "DISTINCT posts.id".
	Count(ctx context.Context, expr string) (int64, error)

	// Load executes the query and materializes its rows.
	Load(ctx context.Context) ([]domain.Record, error)

	// TableName is the name of the relation's base table.
	TableName() string

	// PrimaryKey is the base table's primary key column.
	PrimaryKey() string
}

// DistinctCountExpr builds the distinct primary-key count expression for a
// relation, e.g. "DISTINCT users.id".
func DistinctCountExpr(rel Relation) string {
	return "DISTINCT " + rel.TableName() + "." + rel.PrimaryKey()
}

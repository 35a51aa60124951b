package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/phrazzld/jsonapi-utils/internal/domain"
	"github.com/phrazzld/jsonapi-utils/internal/redact"
	"github.com/phrazzld/jsonapi-utils/internal/store"
)

// Scanner reads the current row into its arguments, like sql.Rows.Scan.
type Scanner func(dest ...any) error

// Table describes how the rows of a table become records.
type Table struct {
	Name       string
	PrimaryKey string
	// Columns are selected in this order and handed to Scan.
	Columns []string
	Scan    func(scan Scanner) (domain.Record, error)
}

// Relation is a lazy store.Relation over one table.
type Relation struct {
	db     store.DBTX
	table  *Table
	logger *slog.Logger

	where    []map[string]any
	order    []store.SortField
	includes []store.Include
	group    []string
	offset   int
	limit    int
	windowed bool
}

var _ store.Relation = (*Relation)(nil)

// NewRelation returns the relation over every row of table.
// If logger is nil, a default logger will be used.
func NewRelation(db store.DBTX, table *Table, logger *slog.Logger) *Relation {
	if logger == nil {
		logger = slog.Default()
	}
	return &Relation{
		db:     db,
		table:  table,
		logger: logger.With(slog.String("component", "relation"), slog.String("table", table.Name)),
	}
}

func (r *Relation) clone() *Relation {
	c := *r
	c.where = slices.Clone(r.where)
	c.order = slices.Clone(r.order)
	c.includes = slices.Clone(r.includes)
	c.group = slices.Clone(r.group)
	return &c
}

func (r *Relation) Where(conditions map[string]any) store.Relation {
	c := r.clone()
	c.where = append(c.where, conditions)
	return c
}

func (r *Relation) Order(fields ...store.SortField) store.Relation {
	c := r.clone()
	c.order = append(c.order, fields...)
	return c
}

func (r *Relation) Includes(includes ...store.Include) store.Relation {
	c := r.clone()
	c.includes = append(c.includes, includes...)
	return c
}

func (r *Relation) Group(columns ...string) store.Relation {
	c := r.clone()
	c.group = append(c.group, columns...)
	return c
}

func (r *Relation) Window(offset, limit int) store.Relation {
	c := r.clone()
	c.offset, c.limit, c.windowed = offset, limit, true
	return c
}

func (r *Relation) Except(clauses ...store.Clause) store.Relation {
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

func (r *Relation) TableName() string  { return r.table.Name }
func (r *Relation) PrimaryKey() string { return r.table.PrimaryKey }

// Count executes SELECT COUNT(expr) over the relation.
func (r *Relation) Count(ctx context.Context, expr string) (int64, error) {
	q, args := r.countSQL(expr)
	r.logger.DebugContext(ctx, "count", slog.String("sql", q))

	var n int64
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		r.logger.Log(ctx, failureLevel(err), "count failed", redact.ErrorAttr(err))
		return 0, store.NewStoreError(r.table.Name, "count", "query failed", MapError(err))
	}
	return n, nil
}

// Load executes the relation and scans its rows.
func (r *Relation) Load(ctx context.Context) ([]domain.Record, error) {
	q, args := r.selectSQL()
	r.logger.DebugContext(ctx, "load", slog.String("sql", q))

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		r.logger.Log(ctx, failureLevel(err), "load failed", redact.ErrorAttr(err))
		return nil, store.NewStoreError(r.table.Name, "load", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	var out []domain.Record
	for rows.Next() {
		rec, err := r.table.Scan(rows.Scan)
		if err != nil {
			return nil, store.NewStoreError(r.table.Name, "load", "scan failed", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError(r.table.Name, "load", "row iteration failed", MapError(err))
	}
	return out, nil
}

// sqlBuilder accumulates query text and positional arguments.
type sqlBuilder struct {
	sb   strings.Builder
	args []any
}

func (b *sqlBuilder) write(parts ...string) {
	for _, p := range parts {
		b.sb.WriteString(p)
	}
}

func (b *sqlBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (r *Relation) ident(column string) string {
	if table, col, ok := strings.Cut(column, "."); ok {
		return pgx.Identifier{table, col}.Sanitize()
	}
	return pgx.Identifier{r.table.Name, column}.Sanitize()
}

func (r *Relation) tableIdent() string {
	return pgx.Identifier{r.table.Name}.Sanitize()
}

// from writes the FROM, JOIN, WHERE and GROUP BY clauses.
func (r *Relation) from(b *sqlBuilder) {
	b.write(" FROM ", r.tableIdent())
	for _, inc := range r.includes {
		b.write(" LEFT JOIN ", pgx.Identifier{inc.Table}.Sanitize(),
			" ON ", pgx.Identifier{inc.Table, inc.ForeignKey}.Sanitize(),
			" = ", r.ident(r.table.PrimaryKey))
	}

	var preds []string
	for _, cond := range r.where {
		keys := make([]string, 0, len(cond))
		for k := range cond {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			preds = append(preds, r.predicate(b, k, cond[k]))
		}
	}
	if len(preds) > 0 {
		b.write(" WHERE ", strings.Join(preds, " AND "))
	}

	if len(r.group) > 0 {
		cols := make([]string, len(r.group))
		for i, g := range r.group {
			cols[i] = r.ident(g)
		}
		b.write(" GROUP BY ", strings.Join(cols, ", "))
	}
}

func (r *Relation) predicate(b *sqlBuilder, key string, value any) string {
	col := r.ident(key)
	if value == nil {
		return col + " IS NULL"
	}
	if v := reflect.ValueOf(value); v.Kind() == reflect.Slice && v.Type().Elem().Kind() != reflect.Uint8 {
		return col + " = ANY(" + b.arg(value) + ")"
	}
	return col + " = " + b.arg(value)
}

func (r *Relation) orderBy(b *sqlBuilder) {
	if len(r.order) == 0 {
		return
	}
	terms := make([]string, len(r.order))
	for i, f := range r.order {
		dir := "ASC"
		if f.Desc {
			dir = "DESC"
		}
		terms[i] = r.ident(f.Field) + " " + dir
	}
	b.write(" ORDER BY ", strings.Join(terms, ", "))
}

func (r *Relation) window(b *sqlBuilder) {
	if !r.windowed {
		return
	}
	b.write(" LIMIT ", b.arg(r.limit), " OFFSET ", b.arg(r.offset))
}

func (r *Relation) countSQL(expr string) (string, []any) {
	var b sqlBuilder
	b.write("SELECT COUNT(", expr, ")")
	r.from(&b)
	r.orderBy(&b)
	r.window(&b)
	return b.sb.String(), b.args
}

// selectSQL selects the table's columns. With joins or grouping in play the
// matching primary keys are collected in a sub-select, so every record is
// returned once.
func (r *Relation) selectSQL() (string, []any) {
	cols := make([]string, len(r.table.Columns))
	for i, c := range r.table.Columns {
		cols[i] = r.ident(c)
	}

	var b sqlBuilder
	b.write("SELECT ", strings.Join(cols, ", "))
	if len(r.includes) == 0 && len(r.group) == 0 {
		r.from(&b)
	} else {
		pk := r.ident(r.table.PrimaryKey)
		b.write(" FROM ", r.tableIdent(), " WHERE ", pk, " IN (SELECT ", pk)
		r.from(&b)
		b.write(")")
	}
	r.orderBy(&b)
	r.window(&b)
	return b.sb.String(), b.args
}

func (r *Relation) String() string {
	q, args := r.selectSQL()
	return fmt.Sprintf("%s %v", q, args)
}

package pagination

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/jsonapi-utils/internal/domain"
	"github.com/phrazzld/jsonapi-utils/internal/redact"
	"github.com/phrazzld/jsonapi-utils/internal/store"
)

// Counter counts the records of one collection kind.
type Counter interface {
	// Supports reports whether the counter understands records.
	Supports(records any) bool

	// Count returns the number of records in the collection.
	Count(ctx context.Context, records any) (int64, error)
}

// RecordCountError is returned when no registered counter supports a
// collection.
type RecordCountError struct {
	Kind string
}

func (e *RecordCountError) Error() string {
	return fmt.Sprintf("can't count records of kind %s", e.Kind)
}

type namedCounter struct {
	name    string
	counter Counter
}

// CounterRegistry dispatches counting to the first registered counter that
// supports a collection. Registration order is lookup order.
type CounterRegistry struct {
	mu       sync.RWMutex
	counters []namedCounter
	logger   *slog.Logger
}

// NewCounterRegistry creates an empty registry.
// If logger is nil, a default logger will be used.
func NewCounterRegistry(logger *slog.Logger) *CounterRegistry {
	if logger == nil {
		logger = slog.Default()
	}
	return &CounterRegistry{
		logger: logger.With(slog.String("component", "record_counter")),
	}
}

// DefaultCounters returns a registry counting materialized record slices and
// lazy relations.
func DefaultCounters(logger *slog.Logger) *CounterRegistry {
	r := NewCounterRegistry(logger)
	r.MustRegister("array", ArrayCounter{})
	r.MustRegister("relation", NewRelationCounter(r.logger))
	return r
}

// Register appends a counter. Empty names, nil counters and names already
// in use are rejected.
func (r *CounterRegistry) Register(name string, c Counter) error {
	if name == "" || c == nil {
		r.logger.Warn("rejected record counter", slog.String("name", name))
		return fmt.Errorf("counter %q: %w", name, ErrInvalidRegistration)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, nc := range r.counters {
		if nc.name == name {
			r.logger.Warn("duplicate record counter", slog.String("name", name))
			return fmt.Errorf("counter %q already registered: %w", name, ErrInvalidRegistration)
		}
	}
	r.counters = append(r.counters, namedCounter{name: name, counter: c})
	r.logger.Info("registered record counter", slog.String("name", name))
	return nil
}

// MustRegister is like Register but panics on failure.
func (r *CounterRegistry) MustRegister(name string, c Counter) {
	if err := r.Register(name, c); err != nil {
		panic(err)
	}
}

// Names lists the registered counters in lookup order.
func (r *CounterRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.counters))
	for i, nc := range r.counters {
		names[i] = nc.name
	}
	return names
}

// Count counts records with the first counter that supports them.
// A collection no counter supports fails with *RecordCountError.
func (r *CounterRegistry) Count(ctx context.Context, records any) (int64, error) {
	r.mu.RLock()
	var match Counter
	for _, nc := range r.counters {
		if nc.counter.Supports(records) {
			match = nc.counter
			break
		}
	}
	r.mu.RUnlock()

	if match == nil {
		return 0, &RecordCountError{Kind: fmt.Sprintf("%T", records)}
	}
	return match.Count(ctx, records)
}

// ArrayCounter counts materialized record slices.
type ArrayCounter struct{}

func (ArrayCounter) Supports(records any) bool {
	_, ok := records.([]domain.Record)
	return ok
}

func (ArrayCounter) Count(_ context.Context, records any) (int64, error) {
	return int64(len(records.([]domain.Record))), nil
}

// RelationCounter counts lazy relations with a distinct primary key count.
//
// Eager-loaded includes, grouping and ordering are stripped from the counted
// query since joins inflate the row count and GROUP BY breaks COUNT. When the
// stripped statement is invalid, typically because a condition references an
// included table, the count is retried with the includes kept.
type RelationCounter struct {
	logger *slog.Logger
}

// NewRelationCounter creates a relation counter.
// If logger is nil, a default logger will be used.
func NewRelationCounter(logger *slog.Logger) *RelationCounter {
	if logger == nil {
		logger = slog.Default()
	}
	return &RelationCounter{logger: logger}
}

func (c *RelationCounter) Supports(records any) bool {
	_, ok := records.(store.Relation)
	return ok
}

func (c *RelationCounter) Count(ctx context.Context, records any) (int64, error) {
	rel := records.(store.Relation)
	expr := store.DistinctCountExpr(rel)

	n, err := rel.Except(store.ClauseIncludes, store.ClauseGroup, store.ClauseOrder).Count(ctx, expr)
	if err == nil {
		return n, nil
	}
	if !errors.Is(err, store.ErrStatementInvalid) {
		return 0, fmt.Errorf("count %s: %w", rel.TableName(), err)
	}

	c.logger.DebugContext(ctx, "count without includes failed, retrying with includes",
		slog.String("table", rel.TableName()),
		redact.ErrorAttr(err))

	n, err = rel.Except(store.ClauseGroup, store.ClauseOrder).Count(ctx, expr)
	if err != nil {
		return 0, fmt.Errorf("count %s with includes: %w", rel.TableName(), err)
	}
	return n, nil
}

var (
	_ Counter = ArrayCounter{}
	_ Counter = (*RelationCounter)(nil)
)

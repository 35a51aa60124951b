package pagination

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/jsonapi-utils/internal/domain"
	"github.com/phrazzld/jsonapi-utils/internal/query"
	"github.com/phrazzld/jsonapi-utils/internal/store"
)

// Engine holds the process-wide pagination configuration.
type Engine struct {
	paginator  string
	settings   Settings
	strategies *StrategyRegistry
	counters   *CounterRegistry
	logger     *slog.Logger
}

// NewEngine creates an engine paginating with the strategy registered under
// paginator, or not at all when paginator is None. An unknown paginator or a
// non-positive default page size is a configuration error.
// If logger is nil, a default logger will be used.
func NewEngine(
	paginator string,
	settings Settings,
	strategies *StrategyRegistry,
	counters *CounterRegistry,
	logger *slog.Logger,
) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strategies == nil {
		strategies = DefaultStrategies(logger)
	}
	if counters == nil {
		counters = DefaultCounters(logger)
	}

	if paginator != None {
		if _, ok := strategies.Lookup(paginator); !ok {
			return nil, fmt.Errorf("unknown paginator %q, registered: %v", paginator, strategies.Names())
		}
		if settings.DefaultPageSize < 1 {
			return nil, fmt.Errorf("default page size must be positive, got %d", settings.DefaultPageSize)
		}
	}

	e := &Engine{
		paginator:  paginator,
		settings:   settings,
		strategies: strategies,
		counters:   counters,
		logger:     logger.With(slog.String("component", "pagination")),
	}
	e.logger.Info("pagination configured",
		slog.String("paginator", paginator),
		slog.Int("default_page_size", settings.DefaultPageSize),
		slog.Int("maximum_page_size", settings.MaximumPageSize),
		slog.Any("counters", counters.Names()))
	return e, nil
}

// Paginator returns the name of the active strategy.
func (e *Engine) Paginator() string { return e.paginator }

// Counters returns the engine's counter registry.
func (e *Engine) Counters() *CounterRegistry { return e.counters }

// NewContext resolves the active strategy for one request's page parameters.
func (e *Engine) NewContext(page map[string]string) *Context {
	c := &Context{counters: e.counters, maxPageSize: e.settings.MaximumPageSize}
	if e.paginator == None {
		return c
	}
	f, _ := e.strategies.Lookup(e.paginator)
	c.strategy = f(page, e.settings)
	return c
}

// Context is the pagination state of one document build. It is not safe for
// concurrent use.
type Context struct {
	strategy    Strategy
	counters    *CounterRegistry
	maxPageSize int

	counted bool
	count   int64
	err     error
}

// Active reports whether a strategy paginates the request.
func (c *Context) Active() bool { return c.strategy != nil }

// Strategy returns the resolved strategy, nil when pagination is disabled.
func (c *Context) Strategy() Strategy { return c.strategy }

// Rules returns the page parameter rules of the active strategy.
func (c *Context) Rules() query.PageRules {
	if c.strategy == nil {
		return query.PageRules{}
	}
	rules := c.strategy.Rules()
	rules.MaxPageSize = c.maxPageSize
	return rules
}

// Apply selects the page's records. Materialized sequences are sliced; lazy
// relations are windowed by the strategy. Anything else, and any collection
// when pagination is inactive, passes through.
func (c *Context) Apply(records any) any {
	if c.strategy == nil {
		return records
	}
	switch r := records.(type) {
	case []domain.Record:
		rng := c.strategy.Range()
		lo := min(max(rng.Offset, 0), len(r))
		hi := min(lo+max(rng.Limit, 0), len(r))
		return r[lo:hi]
	case store.Relation:
		return c.strategy.Apply(r)
	}
	return records
}

// RecordCount counts the filtered, unpaginated records. An override skips
// counting. The first result, error included, is kept for the rest of the
// build.
func (c *Context) RecordCount(ctx context.Context, records any, override *int64) (int64, error) {
	if c.counted {
		return c.count, c.err
	}
	if override != nil {
		c.count = *override
	} else {
		c.count, c.err = c.counters.Count(ctx, records)
	}
	c.counted = true
	return c.count, c.err
}

// PageCount is the number of pages of the collection, zero when pagination
// is inactive.
func (c *Context) PageCount(ctx context.Context, records any, override *int64) (int64, error) {
	if c.strategy == nil {
		return 0, nil
	}
	n, err := c.RecordCount(ctx, records, override)
	if err != nil {
		return 0, err
	}
	return PageCount(n, c.strategy.PageSize()), nil
}

// Links returns the navigation page descriptors, nil when pagination is
// inactive.
func (c *Context) Links(ctx context.Context, records any, override *int64) (Links, error) {
	if c.strategy == nil {
		return nil, nil
	}
	n, err := c.RecordCount(ctx, records, override)
	if err != nil {
		return nil, err
	}
	return c.strategy.Links(n), nil
}

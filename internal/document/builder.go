package document

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/phrazzld/jsonapi-utils/internal/domain"
	"github.com/phrazzld/jsonapi-utils/internal/pagination"
	"github.com/phrazzld/jsonapi-utils/internal/query"
	"github.com/phrazzld/jsonapi-utils/internal/resource"
	"github.com/phrazzld/jsonapi-utils/internal/store"
)

// ErrNoSchema is returned when neither the request nor the options name the
// resource schema to render with.
var ErrNoSchema = errors.New("no resource schema")

// Options tune a single Build call.
type Options struct {
	// Resource renders the records with this schema instead of the
	// request's.
	Resource *resource.Schema
	// Model coerces plain structures into records.
	Model store.Model
	// Count replaces the computed record count.
	Count *int64
	// Paginate and Filter disable their pipeline stage when set to false.
	Paginate *bool
	Filter   *bool
}

// Bool returns a pointer to b, for the toggles of Options.
func Bool(b bool) *bool { return &b }

func enabled(toggle *bool) bool { return toggle == nil || *toggle }

// Observer is notified of every built document.
type Observer interface {
	ObserveBuild(kind string, resources int, elapsed time.Duration)
}

// Builder assembles documents. It is safe for concurrent use; all
// per-request state lives in the query.Request and pagination.Context of
// each call.
type Builder struct {
	engine   *pagination.Engine
	config   Config
	observer Observer
	logger   *slog.Logger
}

// NewBuilder creates a document builder.
// If logger is nil, a default logger will be used.
func NewBuilder(engine *pagination.Engine, config Config, logger *slog.Logger) *Builder {
	if engine == nil {
		panic("pagination engine cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		engine: engine,
		config: config,
		logger: logger.With(slog.String("component", "document_builder")),
	}
}

// WithObserver sets the observer notified of built documents.
func (b *Builder) WithObserver(o Observer) *Builder {
	b.observer = o
	return b
}

// Build renders input as the response to req.
//
// Collections (relations and record slices) are filtered, sorted and
// paginated per the request before each record is wrapped; top-level links
// and meta are added per the builder's config. A single record is wrapped as
// is. A GET on a custom action is first set up to behave like the index or
// show action. Failures to wrap a record are returned unchanged.
func (b *Builder) Build(ctx context.Context, req *query.Request, input any, opts Options) (*Document, error) {
	start := time.Now()

	records, err := coerce(ctx, input, opts.Model)
	if err != nil {
		return nil, err
	}

	collection := isCollection(records)
	if req.NeedsSetup() {
		if collection {
			req.Setup(query.ActionIndex)
		} else {
			req.Setup(query.ActionShow)
		}
	}

	schema := opts.Resource
	if schema == nil {
		schema = req.Schema
	}
	if schema == nil {
		return nil, ErrNoSchema
	}

	var (
		doc   *Document
		count int
		kind  = "single"
	)
	if collection {
		kind = "collection"
		doc, count, err = b.buildCollection(ctx, req, schema, records, opts)
	} else {
		doc, err = b.buildSingle(schema, records)
		if doc != nil && doc.Data != nil {
			count = 1
		}
	}
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	if b.observer != nil {
		b.observer.ObserveBuild(kind, count, elapsed)
	}
	b.logger.DebugContext(ctx, "document built",
		slog.String("type", schema.Type),
		slog.String("kind", kind),
		slog.Int("resources", count),
		slog.Duration("elapsed", elapsed))
	return doc, nil
}

func (b *Builder) buildSingle(schema *resource.Schema, records any) (*Document, error) {
	if records == nil {
		return &Document{}, nil
	}
	rec, ok := records.(domain.Record)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedInput, records)
	}
	obj, err := schema.Resource(rec, b.resourceBase(schema))
	if err != nil {
		return nil, err
	}
	return &Document{Data: obj}, nil
}

func (b *Builder) buildCollection(
	ctx context.Context,
	req *query.Request,
	schema *resource.Schema,
	records any,
	opts Options,
) (*Document, int, error) {
	filtered := records
	if enabled(opts.Filter) {
		filtered = query.ApplyFilter(records, req.Filter())
	}
	sorted := query.ApplySort(filtered, req.Sort())

	pctx := b.engine.NewContext(req.Params.Page)
	paginate := enabled(opts.Paginate) && pctx.Active()
	page := sorted
	if paginate {
		page = pctx.Apply(sorted)
	}

	rows, err := materialize(ctx, page)
	if err != nil {
		return nil, 0, err
	}

	base := b.resourceBase(schema)
	data := make([]*resource.ResourceObject, 0, len(rows))
	for _, rec := range rows {
		obj, err := schema.Resource(rec, base)
		if err != nil {
			return nil, 0, err
		}
		data = append(data, obj)
	}
	doc := &Document{Data: data}

	if b.config.LinksIncludePagination && paginate {
		links, err := pctx.Links(ctx, filtered, opts.Count)
		if err != nil {
			return nil, 0, err
		}
		doc.Links = make(map[string]string, len(links))
		for name, p := range links {
			doc.Links[name] = b.pageURL(req.URL, p)
		}
	}

	meta := map[string]any{}
	if b.config.MetaIncludeRecordCount {
		n, err := pctx.RecordCount(ctx, filtered, opts.Count)
		if err != nil {
			return nil, 0, err
		}
		meta[b.config.recordCountKey()] = n
	}
	if b.config.MetaIncludePageCount && paginate {
		n, err := pctx.PageCount(ctx, filtered, opts.Count)
		if err != nil {
			return nil, 0, err
		}
		meta[b.config.pageCountKey()] = n
	}
	if len(meta) > 0 {
		doc.Meta = meta
	}
	return doc, len(data), nil
}

func materialize(ctx context.Context, records any) ([]domain.Record, error) {
	switch r := records.(type) {
	case []domain.Record:
		return r, nil
	case store.Relation:
		rows, err := r.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", r.TableName(), err)
		}
		return rows, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedInput, records)
}

func (b *Builder) resourceBase(schema *resource.Schema) string {
	if b.config.BaseURL == "" {
		return ""
	}
	return strings.TrimRight(b.config.BaseURL, "/") + "/" + schema.Type
}

// pageURL rewrites the page parameters of the request URL to p.
func (b *Builder) pageURL(u *url.URL, p pagination.Page) string {
	if u == nil {
		u = &url.URL{}
	}
	q := u.Query()
	for key := range q {
		if key == "page" || strings.HasPrefix(key, "page[") {
			q.Del(key)
		}
	}
	for key, v := range p {
		q.Set("page["+key+"]", strconv.Itoa(v))
	}
	return b.origin() + u.Path + "?" + q.Encode()
}

// origin is the scheme and host of the configured base URL.
func (b *Builder) origin() string {
	if b.config.BaseURL == "" {
		return ""
	}
	base, err := url.Parse(b.config.BaseURL)
	if err != nil || base.Host == "" {
		return ""
	}
	return base.Scheme + "://" + base.Host
}

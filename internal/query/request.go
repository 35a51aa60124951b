package query

import (
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/phrazzld/jsonapi-utils/internal/apierror"
	"github.com/phrazzld/jsonapi-utils/internal/resource"
)

// Standard actions. Any other action name is a custom action.
const (
	ActionIndex   = "index"
	ActionShow    = "show"
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDestroy = "destroy"
)

// Request is the parsed, request-scoped view of an inbound JSON:API request.
// It is not safe for concurrent use and must not outlive its request.
type Request struct {
	Method string
	Action string
	URL    *url.URL
	Params Params
	Schema *resource.Schema

	shape string

	filter      FilterSpec
	filterBuilt bool
	sort        SortSpec
	sortBuilt   bool
}

// NewRequest parses r for the given action of the resource described by
// schema.
func NewRequest(r *http.Request, action string, schema *resource.Schema) *Request {
	return &Request{
		Method: r.Method,
		Action: action,
		URL:    r.URL,
		Params: ParseParams(r.URL.Query()),
		Schema: schema,
	}
}

// IsStandardAction reports whether the request hits one of the CRUD actions.
func (r *Request) IsStandardAction() bool {
	switch r.Action {
	case ActionIndex, ActionShow, ActionCreate, ActionUpdate, ActionDestroy:
		return true
	}
	return false
}

// NeedsSetup reports whether the request is a GET on a custom action, which
// must be told which standard action it behaves like before its parameters
// are translated.
func (r *Request) NeedsSetup() bool {
	return strings.EqualFold(r.Method, http.MethodGet) && !r.IsStandardAction()
}

// Setup makes the request behave like the standard action shape (ActionIndex
// or ActionShow). Only index-shaped requests translate filter and sort
// parameters into clauses.
func (r *Request) Setup(shape string) {
	if r.shape == shape {
		return
	}
	r.shape = shape
	r.filterBuilt, r.sortBuilt = false, false
	r.filter, r.sort = nil, nil
}

// Shape returns the standard action the request behaves like.
func (r *Request) Shape() string {
	if r.shape != "" {
		return r.shape
	}
	return r.Action
}

func (r *Request) collectionShaped() bool {
	return r.Shape() != ActionShow
}

// Filter returns the request's FilterSpec, built on first use.
func (r *Request) Filter() FilterSpec {
	if !r.filterBuilt {
		if r.collectionShaped() && r.Params.FilterSyntax == "" {
			r.filter = BuildFilterSpec(r.Params.Filter, r.Schema)
		}
		r.filterBuilt = true
	}
	return r.filter
}

// Sort returns the request's SortSpec, built on first use.
func (r *Request) Sort() SortSpec {
	if !r.sortBuilt {
		if r.collectionShaped() && r.Params.Sort != "" {
			r.sort = ParseSort(r.Params.Sort, r.Schema)
		}
		r.sortBuilt = true
	}
	return r.sort
}

// PageRules describe the page parameters the active paginator accepts.
type PageRules struct {
	// Keys are the accepted page keys, e.g. number and size. Empty means
	// page parameters are not checked.
	Keys []string
	// SizeKey names the key bounded by MaxPageSize, e.g. size or limit.
	SizeKey string
	// OffsetKey names the key that may be zero, e.g. offset.
	OffsetKey   string
	MaxPageSize int
}

// Validate checks the filter, sort and page parameters against the schema
// and rules. It returns one error object per offending parameter.
func (r *Request) Validate(rules PageRules) []apierror.Error {
	var errs []apierror.Error

	if r.Params.FilterSyntax != "" {
		errs = append(errs, apierror.InvalidFiltersSyntax(r.Params.FilterSyntax))
	}
	for _, key := range slices.Sorted(maps.Keys(r.Params.Filter)) {
		if r.Schema != nil && !r.Schema.FilterAllowed(r.Schema.ToInternal(key)) {
			errs = append(errs, apierror.FilterNotAllowed(key))
		}
	}

	if r.Params.Sort != "" && r.Schema != nil {
		for _, f := range ParseSort(r.Params.Sort, r.Schema) {
			if !r.Schema.Sortable(f.Field) {
				errs = append(errs, apierror.InvalidSortCriteria(r.Schema.ToExternal(f.Field)))
			}
		}
	}

	if r.Params.PageSyntax != "" {
		errs = append(errs, apierror.InvalidPageObject())
	}
	if len(rules.Keys) > 0 {
		errs = append(errs, r.validatePage(rules)...)
	}
	return errs
}

func (r *Request) validatePage(rules PageRules) []apierror.Error {
	var errs []apierror.Error
	for _, key := range slices.Sorted(maps.Keys(r.Params.Page)) {
		raw := r.Params.Page[key]
		if !slices.Contains(rules.Keys, key) {
			errs = append(errs, apierror.PageParamNotAllowed(key))
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		switch {
		case err != nil:
			errs = append(errs, apierror.InvalidPageValue(key, raw))
		case key == rules.OffsetKey && n < 0:
			errs = append(errs, apierror.InvalidPageValue(key, raw))
		case key != rules.OffsetKey && n < 1:
			errs = append(errs, apierror.InvalidPageValue(key, raw))
		case key == rules.SizeKey && rules.MaxPageSize > 0 && n > rules.MaxPageSize:
			errs = append(errs, apierror.InvalidPageValue(key, raw))
		}
	}
	return errs
}

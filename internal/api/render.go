package api

import (
	"net/http"

	"github.com/phrazzld/jsonapi-utils/internal/api/shared"
	"github.com/phrazzld/jsonapi-utils/internal/document"
	"github.com/phrazzld/jsonapi-utils/internal/pagination"
	"github.com/phrazzld/jsonapi-utils/internal/query"
)

// Renderer writes documents built from records, and error documents.
type Renderer struct {
	builder *document.Builder
	engine  *pagination.Engine
}

// NewRenderer creates a Renderer.
func NewRenderer(builder *document.Builder, engine *pagination.Engine) *Renderer {
	return &Renderer{builder: builder, engine: engine}
}

// Validate checks the request's filter, sort and page parameters. It writes
// an error document and returns false when any is unacceptable.
func (rd *Renderer) Validate(w http.ResponseWriter, r *http.Request, req *query.Request) bool {
	rules := rd.engine.NewContext(req.Params.Page).Rules()
	if errs := req.Validate(rules); len(errs) > 0 {
		rd.RenderErrors(w, r, errs)
		return false
	}
	return true
}

// Render builds the document for input and writes it with status.
func (rd *Renderer) Render(
	w http.ResponseWriter,
	r *http.Request,
	req *query.Request,
	input any,
	opts document.Options,
	status int,
) {
	doc, err := rd.builder.Build(r.Context(), req, input, opts)
	if err != nil {
		rd.RenderFailure(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, status, doc)
}

// RenderErrors writes source as an error document, with the status of its
// first error or 400.
func (rd *Renderer) RenderErrors(w http.ResponseWriter, r *http.Request, source any) {
	shared.RespondWithErrors(w, r, source)
}

// RenderNotFoundWithNull answers a lookup that found nothing with a null
// primary resource and status 200.
func (rd *Renderer) RenderNotFoundWithNull(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, document.Document{Data: nil})
}

// RenderFailure logs err and writes the error document it maps to.
func (rd *Renderer) RenderFailure(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, errorSource(err), err)
}

package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"
	ut "github.com/go-playground/universal-translator"
	"github.com/phrazzld/jsonapi-utils/internal/api/shared"
	"github.com/phrazzld/jsonapi-utils/internal/apierror"
	"github.com/phrazzld/jsonapi-utils/internal/document"
	"github.com/phrazzld/jsonapi-utils/internal/domain"
	"github.com/phrazzld/jsonapi-utils/internal/platform/logger"
	"github.com/phrazzld/jsonapi-utils/internal/query"
	"github.com/phrazzld/jsonapi-utils/internal/redact"
	"github.com/phrazzld/jsonapi-utils/internal/store"
)

// writablePostAttributes may be set by clients; the rest are read-only.
var writablePostAttributes = []string{"title", "body"}

// PostHandler handles post-related HTTP requests
type PostHandler struct {
	posts      store.PostStore
	model      store.Model
	render     *Renderer
	schemas    Schemas
	translator ut.Translator
	logger     *slog.Logger
}

// NewPostHandler creates a new PostHandler. model builds posts from request
// documents; translator localizes validation messages.
func NewPostHandler(
	posts store.PostStore,
	model store.Model,
	render *Renderer,
	schemas Schemas,
	translator ut.Translator,
	logger *slog.Logger,
) *PostHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostHandler{
		posts:      posts,
		model:      model,
		render:     render,
		schemas:    schemas,
		translator: translator,
		logger:     logger.With(slog.String("component", "post_handler")),
	}
}

// List handles GET /api/posts requests.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	req := query.NewRequest(r, query.ActionIndex, h.schemas.Posts)
	if !h.render.Validate(w, r, req) {
		return
	}
	h.render.Render(w, r, req, h.posts.All(), document.Options{}, http.StatusOK)
}

// Get handles GET /api/posts/{id} requests.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	req := query.NewRequest(r, query.ActionShow, h.schemas.Posts)

	id, ok := pathID(r, "id")
	if !ok {
		h.render.RenderErrors(w, r, apierror.RecordNotFound(chi.URLParam(r, "id")))
		return
	}

	records, err := h.posts.All().Where(map[string]any{"id": id}).Load(r.Context())
	if err != nil {
		h.render.RenderFailure(w, r, err)
		return
	}
	if len(records) == 0 {
		h.render.RenderErrors(w, r, apierror.RecordNotFound(strconv.FormatInt(id, 10)))
		return
	}
	h.render.Render(w, r, req, records[0], document.Options{}, http.StatusOK)
}

// Create handles POST /api/posts requests.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	schema := h.schemas.Posts

	var body shared.ResourceDocument
	if err := shared.DecodeJSON(r, &body); err != nil {
		log.Debug("invalid request document", redact.ErrorAttr(err))
		h.render.RenderErrors(w, r, apierror.InvalidDocument())
		return
	}
	if err := shared.ValidateRequest(&body); err != nil {
		h.render.RenderErrors(w, r, apierror.InvalidDocument())
		return
	}
	if body.Data.Type != schema.Type {
		h.render.RenderErrors(w, r, apierror.InvalidResource(body.Data.Type))
		return
	}

	attrs, exc := h.attributes(body.Data)
	if exc != nil {
		h.render.RenderErrors(w, r, exc)
		return
	}

	rec, err := h.model.New(attrs)
	if err != nil {
		h.render.RenderFailure(w, r, err)
		return
	}
	post, ok := rec.(*domain.Post)
	if !ok {
		h.render.RenderFailure(w, r, fmt.Errorf("post model built %T", rec))
		return
	}

	if err := post.Validate(); err != nil {
		h.render.RenderErrors(w, r, apierror.NewValidation(err, schema, h.translator))
		return
	}

	if err := h.posts.Create(r.Context(), post); err != nil {
		if errors.Is(err, store.ErrInvalidEntity) {
			// The only constraints left unchecked by validation are the
			// author and category references.
			h.render.RenderErrors(w, r, apierror.InvalidFieldValue("/data/relationships", "the referenced resource"))
			return
		}
		h.render.RenderFailure(w, r, err)
		return
	}

	req := query.NewRequest(r, query.ActionCreate, schema)
	h.render.Render(w, r, req, post, document.Options{}, http.StatusCreated)
}

// attributes converts the resource object of a request document into post
// attributes in internal key form.
func (h *PostHandler) attributes(in *shared.ResourceInput) (map[string]any, *apierror.Exception) {
	schema := h.schemas.Posts
	attrs := make(map[string]any, len(in.Attributes)+len(in.Relationships))

	for key, value := range in.Attributes {
		name := schema.ToInternal(key)
		pointer := "/data/attributes/" + key
		if !slices.Contains(writablePostAttributes, name) {
			return nil, apierror.NewException(http.StatusBadRequest, "attribute not allowed: "+key, apierror.Error{
				Title:  "Param not allowed",
				Detail: key + " is not allowed.",
				Code:   apierror.CodeParamNotAllowed,
				Source: apierror.Pointer(pointer),
				Status: apierror.StatusText(http.StatusBadRequest),
			})
		}
		if _, ok := value.(string); !ok && value != nil {
			return nil, apierror.InvalidFieldValue(pointer, fmt.Sprint(value))
		}
		attrs[name] = value
	}

	for key, linkage := range in.Relationships {
		pointer := "/data/relationships/" + key
		rel, ok := schema.Relationship(schema.ToInternal(key))
		if !ok || rel.ToMany {
			return nil, apierror.NewException(http.StatusBadRequest, "relationship not allowed: "+key, apierror.Error{
				Title:  "Param not allowed",
				Detail: key + " is not allowed.",
				Code:   apierror.CodeParamNotAllowed,
				Source: apierror.Pointer(pointer),
				Status: apierror.StatusText(http.StatusBadRequest),
			})
		}
		if linkage.Data == nil {
			attrs[rel.ForeignKey] = nil
			continue
		}
		if linkage.Data.Type != rel.Type {
			return nil, apierror.InvalidFieldValue(pointer+"/data/type", linkage.Data.Type)
		}
		id, err := strconv.ParseInt(linkage.Data.ID, 10, 64)
		if err != nil || id < 1 {
			return nil, apierror.InvalidFieldValue(pointer+"/data/id", linkage.Data.ID)
		}
		attrs[rel.ForeignKey] = id
	}
	return attrs, nil
}

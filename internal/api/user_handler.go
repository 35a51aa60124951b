package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/jsonapi-utils/internal/document"
	"github.com/phrazzld/jsonapi-utils/internal/platform/logger"
	"github.com/phrazzld/jsonapi-utils/internal/query"
	"github.com/phrazzld/jsonapi-utils/internal/store"
)

// ActionPosts is the custom GET action listing a user's posts.
const ActionPosts = "posts"

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	users   store.UserStore
	render  *Renderer
	schemas Schemas
	logger  *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users store.UserStore, render *Renderer, schemas Schemas, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		users:   users,
		render:  render,
		schemas: schemas,
		logger:  logger.With(slog.String("component", "user_handler")),
	}
}

// List handles GET /api/users requests.
// filter[post_title] selects users who authored a post with that title.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	req := query.NewRequest(r, query.ActionIndex, h.schemas.Users)
	if !h.render.Validate(w, r, req) {
		return
	}

	users := h.users.All()
	if title, ok := customFilter(req, postTitleFilter); ok {
		users = users.
			Includes(store.Include{Table: "posts", ForeignKey: "user_id"}).
			Where(map[string]any{"posts.title": title})
	}
	h.render.Render(w, r, req, users, document.Options{}, http.StatusOK)
}

// Get handles GET /api/users/{id} requests. An unknown user renders a null
// primary resource.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	req := query.NewRequest(r, query.ActionShow, h.schemas.Users)

	id, ok := pathID(r, "id")
	if !ok {
		h.render.RenderNotFoundWithNull(w, r)
		return
	}

	records, err := h.users.All().Where(map[string]any{"id": id}).Load(r.Context())
	if err != nil {
		h.render.RenderFailure(w, r, err)
		return
	}
	if len(records) == 0 {
		logger.FromContextOrDefault(r.Context(), h.logger).Debug("user not found", slog.Int64("user_id", id))
		h.render.RenderNotFoundWithNull(w, r)
		return
	}
	h.render.Render(w, r, req, records[0], document.Options{}, http.StatusOK)
}

// Posts handles GET /api/users/{id}/posts requests. It is a custom action
// rendered like the posts index.
func (h *UserHandler) Posts(w http.ResponseWriter, r *http.Request) {
	req := query.NewRequest(r, ActionPosts, h.schemas.Posts)
	if !h.render.Validate(w, r, req) {
		return
	}
	h.render.Render(w, r, req, h.users.Posts(chi.URLParam(r, "id")), document.Options{}, http.StatusOK)
}

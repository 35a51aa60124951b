package api

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the users and posts endpoints on r.
func RegisterRoutes(r chi.Router, users *UserHandler, posts *PostHandler) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", users.List)
		r.Get("/{id}", users.Get)
		r.Get("/{id}/posts", users.Posts)
	})
	r.Route("/posts", func(r chi.Router) {
		r.Get("/", posts.List)
		r.Post("/", posts.Create)
		r.Get("/{id}", posts.Get)
	})
}

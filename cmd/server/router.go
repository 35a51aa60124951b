package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/jsonapi-utils/internal/api"
	apiMiddleware "github.com/phrazzld/jsonapi-utils/internal/api/middleware"
	"github.com/phrazzld/jsonapi-utils/internal/api/shared"
	"github.com/rs/cors"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(app.metrics.Middleware)

	render := api.NewRenderer(app.builder, app.engine)
	userHandler := api.NewUserHandler(app.userStore, render, app.schemas, app.logger)
	postHandler := api.NewPostHandler(
		app.postStore,
		app.postModel,
		render,
		app.schemas,
		app.translator,
		app.logger,
	)

	r.Route("/api", func(r chi.Router) {
		api.RegisterRoutes(r, userHandler, postHandler)
	})

	r.Method(http.MethodGet, "/metrics", app.metrics.Handler())

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return app.cors().Handler(r)
}

// cors returns the CORS policy for the configured origins. An empty list
// allows every origin.
func (app *application) cors() *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: app.config.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", shared.TraceIDHeader},
		ExposedHeaders: []string{shared.TraceIDHeader},
		MaxAge:         300,
	})
}

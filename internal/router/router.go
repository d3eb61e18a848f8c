// Package router sets up all HTTP routes and middleware chains for the
// fiches server. It organizes routes into the JSON API, the HTML pages and
// the static assets.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fiches/internal/handlers"
	"fiches/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. static is served under /static/.
func New(api *handlers.API, pages *handlers.Pages, static fs.FS) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// JSON API, open to any origin.
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.CORS)
		r.Use(middleware.MaxBody(middleware.DefaultMaxBodyBytes))

		r.Get("/health", api.Health)

		r.Get("/templates", api.ListTemplates)
		r.Get("/templates/{id}", api.GetTemplate)

		r.Get("/palettes", api.ListPalettes)

		r.Route("/documents", func(r chi.Router) {
			r.Get("/", api.ListDocuments)
			r.Post("/", api.CreateDocument)
			r.Get("/{id}", api.GetDocument)
			r.Put("/{id}", api.UpdateDocument)
			r.Post("/{id}/duplicate", api.DuplicateDocument)
			r.Post("/{id}/palette", api.ApplyPalette)
			r.Post("/{id}/export", api.ExportDocument)
		})
	})

	// HTML pages.
	r.Group(func(r chi.Router) {
		r.Use(middleware.MaxBody(middleware.DefaultMaxBodyBytes))

		r.Get("/", pages.Home)
		r.Post("/documents", pages.CreateDocument)
		r.Route("/documents/{id}", func(r chi.Router) {
			r.Get("/", pages.Editor)
			r.Get("/workspace", pages.Workspace)
			r.Post("/edit", pages.Edit)
			r.Post("/duplicate", pages.DuplicateDocument)
			r.Post("/export", pages.Export)
		})
		r.Get("/print/{id}", pages.Print)
	})

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	return r
}

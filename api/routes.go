package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts the content API under /api. Reads are public; every
// mutation goes through authentication before its body is read.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Get("/healthz", handlers.healthHandler.health())

	r.Route("/api", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", handlers.projectHandler.listProjects())
			r.Get("/{id}", handlers.projectHandler.getProject())
			r.Get("/slug/{slug}", handlers.projectHandler.getProjectBySlug())

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.authenticate)
				r.Post("/", handlers.projectHandler.createProject())
				r.Put("/{id}", handlers.projectHandler.updateProject())
				r.Delete("/{id}", handlers.projectHandler.deleteProject())
			})
		})

		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", handlers.blogHandler.listBlogs())
			r.Get("/{id}", handlers.blogHandler.getBlog())
			r.Get("/slug/{slug}", handlers.blogHandler.getBlogBySlug())

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.authenticate)
				r.Post("/", handlers.blogHandler.createBlog())
				r.Put("/{id}", handlers.blogHandler.updateBlog())
				r.Delete("/{id}", handlers.blogHandler.deleteBlog())
			})
		})

		r.Get("/dashboard/stats", handlers.dashboardHandler.getStats())

		r.With(authMiddleware.authenticate).Post("/uploads", handlers.uploadHandler.uploadFile())
		r.With(authMiddleware.authenticate).Post("/uploads/batch", handlers.uploadHandler.uploadFiles())
	})
}

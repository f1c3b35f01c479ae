package api

import (
	"github.com/go-chi/chi/v5"
)

// setupAPIRoutes mounts the post resource under /api/posts.
func setupAPIRoutes(r chi.Router, handlers *routeHandlers) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Route("/api/posts", func(r chi.Router) {
			r.Get("/", handlers.postHandler.listPosts())
			r.Post("/", handlers.postHandler.createPost())
			r.Get("/{postID}", handlers.postHandler.getPost())
			r.Put("/{postID}", handlers.postHandler.updatePost())
			r.Delete("/{postID}", handlers.postHandler.deletePost())
		})
	})
}

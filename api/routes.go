package api

import (
	"strings"

	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts the post resource and operational endpoints
func setupRoutes(r chi.Router, handlers *routeHandlers) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Blog post endpoints
		r.Get("/posts", handlers.blogPostHandler.listPosts())
		r.Get("/posts/{postID}", handlers.blogPostHandler.getPost())
		r.Post("/posts", handlers.blogPostHandler.createPost())
		r.Put("/posts/{postID}", handlers.blogPostHandler.updatePost())
		r.Delete("/posts/{postID}", handlers.blogPostHandler.deletePost())
	})

	r.Get("/health", handlers.healthHandler.health())
}

func splitOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

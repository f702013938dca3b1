package api

import (
	"time"

	"github.com/pressbox/blog-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		blogPostHandler: newBlogPostHandler(database.BlogPostRepo()),
		healthHandler:   newHealthHandler(startupTime),
	}
}

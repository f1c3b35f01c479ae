package api

import (
	"github.com/rpupo63/blog-cms-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database) *routeHandlers {
	return &routeHandlers{
		postHandler: newPostHandler(database.PostRepo()),
	}
}

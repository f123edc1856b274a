package api

import (
	"time"

	"github.com/rpupo63/portfolio-cms-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(client *services.ContentClient, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		projectHandler:   newProjectHandler(client.Projects()),
		blogHandler:      newBlogHandler(client.Blogs()),
		dashboardHandler: newDashboardHandler(client.Dashboard()),
		uploadHandler:    newUploadHandler(client),
		healthHandler:    newHealthHandler(startupTime),
	}
}

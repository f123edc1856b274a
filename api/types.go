package api

import "github.com/rpupo63/portfolio-cms-backend/errs"

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler   projectHandler
	blogHandler      blogHandler
	dashboardHandler dashboardHandler
	uploadHandler    uploadHandler
	healthHandler    healthHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string            `json:"error" example:"Validation error"`
	Message string            `json:"message,omitempty" example:"Additional error details"`
	Details []errs.FieldIssue `json:"details,omitempty"`
}

// UploadResponse is returned by POST /api/uploads.
type UploadResponse struct {
	URL string `json:"url"`
}

// BatchUploadResponse is returned by POST /api/uploads/batch, one item per
// file in request order.
type BatchUploadResponse struct {
	Items  []BatchUploadItem `json:"items"`
	Failed int               `json:"failed"`
}

type BatchUploadItem struct {
	Name  string `json:"name"`
	URL   string `json:"url,omitempty"`
	Error string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Uptime string `json:"uptime" example:"1h2m3s"`
}

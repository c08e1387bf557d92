package handler

import (
	"net/http"

	"saletracker-api/internal/transport/http/response"
)

// Handler contains the unauthenticated service endpoints.
type Handler struct {
	appName string
	version string
}

// New creates a new handler.
func New(appName, version string) *Handler {
	return &Handler{
		appName: appName,
		version: version,
	}
}

// Root handles GET /
// Returns the service banner.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{
		"message": "Sale Tracker API",
		"version": h.version,
		"health":  "/health",
	})
}

// Health handles GET /health
// Used for liveness probes.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{
		"status":  "healthy",
		"service": h.appName,
	})
}

package handler

import (
	"net/http"
	"strconv"

	"saletracker-api/internal/service"
	"saletracker-api/internal/transport/http/middleware"
	"saletracker-api/internal/transport/http/response"
	"saletracker-api/pkg/apierror"
)

// DashboardHandler handles dashboard HTTP requests.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Stats handles GET /api/dashboard/stats
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		response.Error(w, apierror.Unauthorized("Authentication required"))
		return
	}

	stats, err := h.dashboardService.Stats(r.Context(), identity.UserID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, stats)
}

// Recent handles GET /api/dashboard/recent?limit=N
func (h *DashboardHandler) Recent(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		response.Error(w, apierror.Unauthorized("Authentication required"))
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(w, apierror.BadRequest("Invalid limit parameter"))
			return
		}
		limit = parsed
	}

	recent, err := h.dashboardService.Recent(r.Context(), identity.UserID, limit)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, recent)
}

// Combined handles GET /api/dashboard/
func (h *DashboardHandler) Combined(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		response.Error(w, apierror.Unauthorized("Authentication required"))
		return
	}

	data, err := h.dashboardService.Combined(r.Context(), identity.UserID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, data)
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"saletracker-api/internal/domain"
	"saletracker-api/internal/service"
	"saletracker-api/internal/transport/http/middleware"
	"saletracker-api/internal/transport/http/response"
	"saletracker-api/pkg/apierror"
)

// SalesHandler handles sale CRUD HTTP requests. All routes sit behind the
// identity middleware, so the tenant id is always present in context.
type SalesHandler struct {
	salesService *service.SalesService
}

// NewSalesHandler creates a new sales handler.
func NewSalesHandler(salesService *service.SalesService) *SalesHandler {
	return &SalesHandler{
		salesService: salesService,
	}
}

// List handles GET /api/sales
func (h *SalesHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		response.Error(w, apierror.Unauthorized("Authentication required"))
		return
	}

	sales, err := h.salesService.List(r.Context(), identity.UserID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, sales)
}

// Create handles POST /api/sales
func (h *SalesHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		response.Error(w, apierror.Unauthorized("Authentication required"))
		return
	}

	var req domain.SaleCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("Invalid request payload"))
		return
	}

	sale, err := h.salesService.Create(r.Context(), identity.UserID, &req)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, sale)
}

// Get handles GET /api/sales/{id}
func (h *SalesHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		response.Error(w, apierror.Unauthorized("Authentication required"))
		return
	}

	sale, err := h.salesService.Get(r.Context(), identity.UserID, chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, sale)
}

// Update handles PUT /api/sales/{id}
func (h *SalesHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		response.Error(w, apierror.Unauthorized("Authentication required"))
		return
	}

	var req domain.SaleUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("Invalid request payload"))
		return
	}

	sale, err := h.salesService.Update(r.Context(), identity.UserID, chi.URLParam(r, "id"), &req)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, sale)
}

// Delete handles DELETE /api/sales/{id}
func (h *SalesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		response.Error(w, apierror.Unauthorized("Authentication required"))
		return
	}

	if err := h.salesService.Delete(r.Context(), identity.UserID, chi.URLParam(r, "id")); err != nil {
		response.Error(w, err)
		return
	}

	response.NoContent(w)
}

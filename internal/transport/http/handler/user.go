package handler

import (
	"net/http"

	"saletracker-api/internal/transport/http/middleware"
	"saletracker-api/internal/transport/http/response"
	"saletracker-api/pkg/apierror"
)

// User handles GET /api/user
// Returns a summary of the caller's resolved identity.
func (h *Handler) User(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		response.Error(w, apierror.Unauthorized("Authentication required"))
		return
	}

	response.OK(w, map[string]string{
		"userId":      identity.UserID,
		"userDetails": identity.UserDetails,
		"provider":    identity.Provider,
	})
}

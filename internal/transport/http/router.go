package http

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"saletracker-api/internal/auth"
	"saletracker-api/internal/transport/http/handler"
	"saletracker-api/internal/transport/http/middleware"
)

// NewRouter creates and configures the HTTP router. Everything under /api
// requires a resolvable caller identity; the root banner and health check
// stay public.
func NewRouter(
	h *handler.Handler,
	salesHandler *handler.SalesHandler,
	dashboardHandler *handler.DashboardHandler,
	resolver auth.Resolver,
	allowedOrigins []string,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(logger))
	r.Use(chimw.StripSlashes)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", auth.PrincipalHeader},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public endpoints
	r.Get("/", h.Root)
	r.Get("/health", h.Health)

	// Identity-protected API
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireIdentity(resolver))

		r.Route("/api/sales", func(r chi.Router) {
			r.Get("/", salesHandler.List)
			r.Post("/", salesHandler.Create)
			r.Get("/{id}", salesHandler.Get)
			r.Put("/{id}", salesHandler.Update)
			r.Delete("/{id}", salesHandler.Delete)
		})

		r.Route("/api/dashboard", func(r chi.Router) {
			r.Get("/", dashboardHandler.Combined)
			r.Get("/stats", dashboardHandler.Stats)
			r.Get("/recent", dashboardHandler.Recent)
		})

		r.Get("/api/user", h.User)
	})

	return r
}

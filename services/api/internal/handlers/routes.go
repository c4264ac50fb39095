package handlers

import (
	"github.com/diagnosis/gympass/pkg/middleware"
	"github.com/diagnosis/gympass/pkg/ratelimit"
	"github.com/diagnosis/gympass/services/api/internal/domain"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the API on r. loginLimiter may be nil to leave POST /sessions unthrottled.
func (h *Handlers) Routes(r chi.Router, loginLimiter ratelimit.Limiter) {
	r.Post("/users", h.Register)

	r.Group(func(r chi.Router) {
		if loginLimiter != nil {
			r.Use(middleware.RateLimit(loginLimiter))
		}
		r.Post("/sessions", h.Authenticate)
	})
	r.Patch("/token/refresh", h.RefreshToken)

	r.Group(func(r chi.Router) {
		r.Use(h.RequireJWT)

		r.Get("/me", h.Profile)

		r.Get("/gyms/search", h.SearchGyms)
		r.Get("/gyms/nearby", h.NearbyGyms)
		r.With(h.RequireRole(domain.RoleAdmin)).Post("/gyms", h.CreateGym)

		r.Get("/check-ins/history", h.CheckInHistory)
		r.Get("/check-ins/metrics", h.CheckInMetrics)
		r.Post("/gyms/{gymId}/check-ins", h.CreateCheckIn)
		r.With(h.RequireRole(domain.RoleAdmin)).Patch("/check-ins/{checkInId}/validate", h.ValidateCheckIn)
	})
}

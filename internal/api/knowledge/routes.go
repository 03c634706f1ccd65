package knowledge

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers knowledge base routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/knowledge/seed", h.Seed)
}

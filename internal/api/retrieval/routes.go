package retrieval

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers retrieval routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/retrieve", h.Retrieve)
}

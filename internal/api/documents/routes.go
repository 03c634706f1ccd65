package documents

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers document routes. limit guards uploads.
func RegisterRoutes(r chi.Router, h *Handler, limit func(http.Handler) http.Handler) {
	r.Route("/documents", func(r chi.Router) {
		r.With(limit).Post("/", h.UploadDocument)
		r.Get("/", h.ListDocuments)

		r.Route("/{document_id}", func(r chi.Router) {
			r.Get("/", h.GetDocument)
			r.Delete("/", h.DeleteDocument)
		})
	})
}

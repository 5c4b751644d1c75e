package billing

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/bills", h.List)
	r.Post("/bills", h.Create)
	r.Get("/bills/{id}", h.Show)
	r.Put("/bills/{id}/status", h.UpdateStatus)
}

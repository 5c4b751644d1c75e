package catalog

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/services", h.List)
	r.Post("/services", h.Create)
	r.Get("/services/{id}", h.Show)
	r.Put("/services/{id}", h.Update)
	r.Delete("/services/{id}", h.Delete)
}

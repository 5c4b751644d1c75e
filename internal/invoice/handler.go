package invoice

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rushi-salon/salon/internal/platform/httpx"
	"github.com/rushi-salon/salon/report"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/bills/{id}/pdf", h.Download)
}

// Download streams the invoice as an attachment.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, err := h.service.Render(r.Context(), id)
	if err != nil {
		h.logger.Warn("render invoice failed", slog.String("bill_id", id), slog.Any("error", err))
		if errors.Is(err, report.ErrUnavailable) {
			httpx.Problem(w, http.StatusBadGateway, "Bad Gateway", "invoice renderer unavailable")
			return
		}
		httpx.RespondError(w, err)
		return
	}
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Body)
}

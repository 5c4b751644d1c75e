package catalog

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rushi-salon/salon/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	manager *Manager
}

func NewHandler(logger *slog.Logger, manager *Manager) *Handler {
	return &Handler{logger: logger, manager: manager}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	services, err := h.manager.List(r.Context(), ListServicesRequest{Search: r.URL.Query().Get("search")})
	if err != nil {
		h.logger.Error("list services failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if services == nil {
		services = []Service{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"services": services})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	svc, err := h.manager.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"service": svc})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	svc, err := h.manager.Create(r.Context(), req)
	if err != nil {
		h.logger.Warn("create service failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"success": true, "service": svc})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req UpdateServiceRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	svc, err := h.manager.Update(r.Context(), id, req)
	if err != nil {
		h.logger.Warn("update service failed", slog.String("id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "service": svc})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.manager.Delete(r.Context(), id); err != nil {
		h.logger.Warn("delete service failed", slog.String("id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
}

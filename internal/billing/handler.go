package billing

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rushi-salon/salon/internal/platform/httpx"
	"github.com/rushi-salon/salon/internal/shared"
)

type Handler struct {
	logger     *slog.Logger
	calculator *Calculator
}

func NewHandler(logger *slog.Logger, calculator *Calculator) *Handler {
	return &Handler{logger: logger, calculator: calculator}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBillRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	bill, err := h.calculator.CreateBill(r.Context(), req, shared.ActorFromContext(r.Context()))
	if err != nil {
		h.logger.Warn("create bill failed", slog.String("customer_id", req.CustomerID), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("bill created",
		slog.String("bill_id", bill.ID),
		slog.String("total", bill.TotalAmount.String()),
		slog.String("created_by", bill.CreatedBy))
	httpx.JSON(w, http.StatusCreated, map[string]any{"success": true, "bill_id": bill.ID, "bill": bill})
}

// List renders the resolved listing. ?status= filters, ?limit= caps.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := ListBillsRequest{Status: r.URL.Query().Get("status")}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "limit must be a non-negative integer")
			return
		}
		req.Limit = n
	}
	bills, err := h.calculator.ListDetailed(r.Context(), req)
	if err != nil {
		h.logger.Error("list bills failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"bills": bills})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	bill, err := h.calculator.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"bill": bill})
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req UpdateStatusRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	bill, err := h.calculator.UpdateStatus(r.Context(), id, req)
	if err != nil {
		h.logger.Warn("update bill status failed", slog.String("bill_id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "bill": bill})
}

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sweettreats/bakery-pos/internal/billing"
	"github.com/sweettreats/bakery-pos/internal/models"
	"github.com/sweettreats/bakery-pos/internal/service"
)

// BillHandler handles bill-related HTTP requests
type BillHandler struct {
	billService *service.BillService
	log         *slog.Logger
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billService *service.BillService, log *slog.Logger) *BillHandler {
	return &BillHandler{
		billService: billService,
		log:         log,
	}
}

// CreateBill handles POST /api/bill
func (h *BillHandler) CreateBill(w http.ResponseWriter, r *http.Request) {
	var req models.BillRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode bill request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	bill, err := h.billService.CreateBill(r.Context(), req)
	if err != nil {
		h.log.Error("failed to create bill", "error", err)

		switch err {
		case service.ErrMissingCustomer:
			WriteError(w, http.StatusBadRequest, "Customer name is required", h.log)
		case service.ErrEmptyBill:
			WriteError(w, http.StatusBadRequest, "Bill must contain at least one item", h.log)
		case billing.ErrInvalidQuantity:
			WriteError(w, http.StatusBadRequest, "Quantity must be positive", h.log)
		case service.ErrInvalidProduct:
			WriteError(w, http.StatusBadRequest, "Invalid product", h.log)
		default:
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	WriteJSON(w, http.StatusOK, bill, h.log)
	h.log.Info("bill saved", "bill_id", bill.ID, "bill_number", bill.BillNumber, "items_count", len(bill.Items))
}

// ListBills handles GET /api/bill
// An optional ?q= parameter filters by customer name or bill number.
func (h *BillHandler) ListBills(w http.ResponseWriter, r *http.Request) {
	bills, err := h.billService.ListBills(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.log.Error("failed to list bills", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, bills, h.log)
}

// GetBill handles GET /api/bill/{billId}
func (h *BillHandler) GetBill(w http.ResponseWriter, r *http.Request) {
	billID := chi.URLParam(r, "billId")

	bill, err := h.billService.GetBill(r.Context(), billID)
	if err != nil {
		if err == service.ErrBillNotFound {
			WriteError(w, http.StatusNotFound, "Bill not found", h.log)
			return
		}

		h.log.Error("failed to get bill", "bill_id", billID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, bill, h.log)
}

// DeleteBill handles DELETE /api/bill/{billId}
// Deletion is permanent; deleting an unknown id still succeeds.
func (h *BillHandler) DeleteBill(w http.ResponseWriter, r *http.Request) {
	billID := chi.URLParam(r, "billId")

	if err := h.billService.DeleteBill(r.Context(), billID); err != nil {
		h.log.Error("failed to delete bill", "bill_id", billID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	h.log.Info("bill deleted", "bill_id", billID)
	w.WriteHeader(http.StatusNoContent)
}

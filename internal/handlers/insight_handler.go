package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sweettreats/bakery-pos/internal/models"
	"github.com/sweettreats/bakery-pos/internal/service"
)

// InsightGenerator produces advisory text from recent bills. It never
// fails; implementations degrade to fallback strings.
type InsightGenerator interface {
	BusinessInsight(ctx context.Context, bills []models.Bill) string
}

// InsightHandler handles GET /api/insight
type InsightHandler struct {
	billService *service.BillService
	generator   InsightGenerator
	log         *slog.Logger
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(billService *service.BillService, generator InsightGenerator, log *slog.Logger) *InsightHandler {
	return &InsightHandler{
		billService: billService,
		generator:   generator,
		log:         log,
	}
}

// GetInsight returns a short business tip derived from sales history.
// The response is always 200: upstream failures surface as fallback text,
// never as errors.
func (h *InsightHandler) GetInsight(w http.ResponseWriter, r *http.Request) {
	bills, err := h.billService.ListBills(r.Context(), "")
	if err != nil {
		h.log.Error("failed to load bills for insight", "error", err)
		bills = nil
	}

	text := h.generator.BusinessInsight(r.Context(), bills)

	WriteJSON(w, http.StatusOK, map[string]string{"insight": text}, h.log)
}

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sweettreats/bakery-pos/internal/service"
)

// ReportHandler handles sales-report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
	shopName      string
	log           *slog.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService, shopName string, log *slog.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		shopName:      shopName,
		log:           log,
	}
}

// Summary handles GET /api/report/summary
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reportService.Summary(r.Context(), time.Now())
	if err != nil {
		h.log.Error("failed to build report summary", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, summary, h.log)
}

// Export handles GET /api/report/export, serving the sales CSV as a
// download.
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	csv, err := h.reportService.ExportCSV(r.Context())
	if err != nil {
		h.log.Error("failed to export sales csv", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	filename := fmt.Sprintf("%s_Sales_%s.csv",
		strings.ReplaceAll(h.shopName, " ", "_"),
		time.Now().UTC().Format("2006-01-02"),
	)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte(csv)); err != nil {
		h.log.Error("failed to write csv response", "error", err)
	}
}

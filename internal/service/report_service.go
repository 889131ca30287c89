package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sweettreats/bakery-pos/internal/models"
	"github.com/sweettreats/bakery-pos/internal/repository"
)

// csvHeader matches the export format produced by the shop's previous
// tooling: plain comma-joined rows with no quoting.
var csvHeader = []string{"Date", "Bill No", "Customer", "Subtotal", "GST", "Total"}

// ReportSummary aggregates revenue over the saved bills. Monetary values
// are rounded to two places here because the summary is presentation
// output; the underlying bills keep full precision.
type ReportSummary struct {
	DailyRevenue   decimal.Decimal      `json:"dailyRevenue"`
	MonthlyRevenue decimal.Decimal      `json:"monthlyRevenue"`
	TotalRevenue   decimal.Decimal      `json:"totalRevenue"`
	BillCount      int                  `json:"billCount"`
	Daily          []models.DailyReport `json:"daily"`
}

// ReportService computes read-side aggregates over the bill store. It
// never writes.
type ReportService struct {
	store repository.BillStore
}

// NewReportService creates a new report service
func NewReportService(store repository.BillStore) *ReportService {
	return &ReportService{store: store}
}

// Summary folds the saved bills into today's, this month's, and all-time
// revenue, plus a per-day series over the most recent 30 bills.
func (s *ReportService) Summary(ctx context.Context, now time.Time) (*ReportSummary, error) {
	bills, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	now = now.UTC()
	today := now.Format("2006-01-02")
	month := now.Format("2006-01")

	daily := decimal.Zero
	monthly := decimal.Zero
	total := decimal.Zero

	for _, bill := range bills {
		date := bill.Date.UTC().Format("2006-01-02")
		if date == today {
			daily = daily.Add(bill.Total)
		}
		if strings.HasPrefix(date, month) {
			monthly = monthly.Add(bill.Total)
		}
		total = total.Add(bill.Total)
	}

	return &ReportSummary{
		DailyRevenue:   daily.Round(2),
		MonthlyRevenue: monthly.Round(2),
		TotalRevenue:   total.Round(2),
		BillCount:      len(bills),
		Daily:          dailySeries(bills),
	}, nil
}

// dailySeries groups the 30 most recent bills by calendar day, oldest day
// first, mirroring the revenue chart the reports view renders.
func dailySeries(bills []models.Bill) []models.DailyReport {
	sorted := make([]models.Bill, len(bills))
	copy(sorted, bills)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	if len(sorted) > 30 {
		sorted = sorted[len(sorted)-30:]
	}

	series := make([]models.DailyReport, 0, len(sorted))
	index := make(map[string]int, len(sorted))
	for _, bill := range sorted {
		date := bill.Date.UTC().Format("Jan 2")
		if i, ok := index[date]; ok {
			series[i].Revenue = series[i].Revenue.Add(bill.Total).Round(2)
			series[i].BillCount++
			continue
		}
		index[date] = len(series)
		series = append(series, models.DailyReport{
			Date:      date,
			Revenue:   bill.Total.Round(2),
			BillCount: 1,
		})
	}
	return series
}

// ExportCSV renders every saved bill as one CSV row. Fields are joined
// with bare commas and not quoted, so a customer name containing a comma
// produces extra columns; the format is kept as-is for compatibility with
// the sheets the shop already imports.
func (s *ReportService) ExportCSV(ctx context.Context) (string, error) {
	bills, err := s.store.List(ctx)
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(bills)+1)
	lines = append(lines, strings.Join(csvHeader, ","))

	for _, bill := range bills {
		row := []string{
			bill.Date.UTC().Format("2006-01-02"),
			bill.BillNumber,
			bill.CustomerName,
			bill.Subtotal.StringFixed(2),
			bill.CGST.Add(bill.SGST).StringFixed(2),
			bill.Total.StringFixed(2),
		}
		lines = append(lines, strings.Join(row, ","))
	}

	return strings.Join(lines, "\n") + "\n", nil
}

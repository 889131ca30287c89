package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sweettreats/bakery-pos/internal/billing"
	"github.com/sweettreats/bakery-pos/internal/models"
	"github.com/sweettreats/bakery-pos/internal/repository"
)

var (
	ErrEmptyBill       = errors.New("bill must contain at least one item")
	ErrMissingCustomer = errors.New("customer name is required")
	ErrInvalidProduct  = errors.New("invalid product")
	ErrBillNotFound    = errors.New("bill not found")
)

// BillService handles bill business logic: assembling line items from a
// request, computing totals, and persisting the finished record.
type BillService struct {
	productRepo repository.ProductRepository
	store       repository.BillStore
	taxRate     decimal.Decimal
}

// NewBillService creates a new bill service
func NewBillService(productRepo repository.ProductRepository, store repository.BillStore, taxRate decimal.Decimal) *BillService {
	return &BillService{
		productRepo: productRepo,
		store:       store,
		taxRate:     taxRate,
	}
}

// CreateBill validates the request, snapshots prices, computes totals once,
// and persists the bill. Requests with duplicate line identities are merged
// into a single line. Nothing is written when validation fails.
func (s *BillService) CreateBill(ctx context.Context, req models.BillRequest) (*models.Bill, error) {
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, ErrMissingCustomer
	}
	if len(req.Items) == 0 {
		return nil, ErrEmptyBill
	}

	var items []models.BillItem
	for _, line := range req.Items {
		product, err := s.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, ErrInvalidProduct
		}

		items, err = billing.AddLine(items, *product, line.Quantity, line.WeightTier)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	totals := billing.ComputeTotals(items, s.taxRate)

	bill := models.Bill{
		ID:           uuid.New().String(),
		BillNumber:   billNumber(now),
		CustomerName: strings.TrimSpace(req.CustomerName),
		Date:         now,
		Items:        items,
		Subtotal:     totals.Subtotal,
		CGST:         totals.CGST,
		SGST:         totals.SGST,
		Total:        totals.Total,
	}

	if err := s.store.Save(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to save bill: %w", err)
	}

	return &bill, nil
}

// ListBills returns saved bills newest first. A non-empty query filters by
// customer name or bill number, case-insensitively.
func (s *BillService) ListBills(ctx context.Context, query string) ([]models.Bill, error) {
	bills, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	if query == "" {
		return bills, nil
	}

	query = strings.ToLower(query)
	matched := make([]models.Bill, 0, len(bills))
	for _, bill := range bills {
		if strings.Contains(strings.ToLower(bill.CustomerName), query) ||
			strings.Contains(strings.ToLower(bill.BillNumber), query) {
			matched = append(matched, bill)
		}
	}
	return matched, nil
}

// GetBill returns the bill with the given id
func (s *BillService) GetBill(ctx context.Context, id string) (*models.Bill, error) {
	bills, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, bill := range bills {
		if bill.ID == id {
			return &bill, nil
		}
	}
	return nil, ErrBillNotFound
}

// DeleteBill permanently removes the bill with the given id. Deleting an
// absent id is a no-op.
func (s *BillService) DeleteBill(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// billNumber derives the human-readable bill number from the creation
// time: "INV-" plus the last six digits of the unix-millisecond clock.
// Uniqueness is carried by the bill's uuid, not by this number.
func billNumber(now time.Time) string {
	millis := fmt.Sprintf("%d", now.UnixMilli())
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}
	return "INV-" + millis
}

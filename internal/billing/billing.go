// Package billing holds the pure bill-assembly and totals arithmetic:
// building up line items for an unsaved bill and folding them into
// subtotal, tax components, and total.
package billing

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/sweettreats/bakery-pos/internal/models"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
)

// Totals holds the derived money fields of a bill. All values retain full
// precision; rounding to two places happens only at presentation time.
type Totals struct {
	Subtotal decimal.Decimal
	CGST     decimal.Decimal
	SGST     decimal.Decimal
	Total    decimal.Decimal
}

// LineID derives the identity of a bill line. The same product at a
// different weight tier is a distinct line.
func LineID(product models.Product, weightTier string) string {
	return product.ID + "-" + product.WeightLabel(weightTier)
}

// AddLine returns a new item list with the product added. If a line with
// the same identity already exists its quantity is incremented; otherwise
// a new line is appended with the price snapshotted at this moment.
// Quantities below one are rejected.
func AddLine(items []models.BillItem, product models.Product, quantity int, weightTier string) ([]models.BillItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	lineID := LineID(product, weightTier)

	updated := make([]models.BillItem, len(items))
	copy(updated, items)

	for i := range updated {
		if updated[i].ID == lineID {
			updated[i].Quantity += quantity
			return updated, nil
		}
	}

	return append(updated, models.BillItem{
		ID:          lineID,
		Name:        product.Name,
		Price:       product.PriceAt(weightTier),
		Quantity:    quantity,
		WeightLabel: product.WeightLabel(weightTier),
	}), nil
}

// RemoveLine returns a new item list without the line matching lineID.
// Removing an absent line is a no-op.
func RemoveLine(items []models.BillItem, lineID string) []models.BillItem {
	updated := make([]models.BillItem, 0, len(items))
	for _, item := range items {
		if item.ID != lineID {
			updated = append(updated, item)
		}
	}
	return updated
}

// ComputeTotals folds the item list into the bill's money fields. Both tax
// components apply the same flat rate to the subtotal (CGST and SGST model
// two equal tax authorities).
func ComputeTotals(items []models.BillItem, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	cgst := subtotal.Mul(taxRate)
	sgst := subtotal.Mul(taxRate)

	return Totals{
		Subtotal: subtotal,
		CGST:     cgst,
		SGST:     sgst,
		Total:    subtotal.Add(cgst).Add(sgst),
	}
}

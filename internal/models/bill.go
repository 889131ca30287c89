package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillRequest represents an incoming request to create a bill
type BillRequest struct {
	CustomerName string            `json:"customerName"`
	Items        []BillLineRequest `json:"items"`
}

// BillLineRequest represents a single requested line on a new bill
type BillLineRequest struct {
	ProductID  string `json:"productId"`
	Quantity   int    `json:"quantity"`
	WeightTier string `json:"weightTier,omitempty"`
}

// BillItem is one line on a bill. ID is derived from the product id plus
// the weight label, so the same product at a different size is a distinct
// line. Price is a snapshot taken when the line was added and does not
// track later catalog changes.
type BillItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	WeightLabel string          `json:"weightLabel,omitempty"`
}

// Bill is a finalized, immutable sales record. The monetary fields are
// computed once at save time and stored with the record; they are not
// recomputed on read.
type Bill struct {
	ID           string          `json:"id"`
	BillNumber   string          `json:"billNumber"`
	CustomerName string          `json:"customerName"`
	Date         time.Time       `json:"date"`
	Items        []BillItem      `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	CGST         decimal.Decimal `json:"cgst"`
	SGST         decimal.Decimal `json:"sgst"`
	Total        decimal.Decimal `json:"total"`
}

// DailyReport is one day's aggregated revenue in the reports view.
type DailyReport struct {
	Date      string          `json:"date"`
	Revenue   decimal.Decimal `json:"revenue"`
	BillCount int             `json:"billCount"`
}

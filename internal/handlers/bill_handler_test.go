package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sweettreats/bakery-pos/internal/models"
	"github.com/sweettreats/bakery-pos/internal/repository"
	"github.com/sweettreats/bakery-pos/internal/service"
	"github.com/sweettreats/bakery-pos/pkg/logger"
)

func newBillRouter() (*chi.Mux, *service.BillService) {
	store := repository.NewMemoryBillStore()
	billService := service.NewBillService(
		repository.NewInMemoryProductRepository(),
		store,
		decimal.NewFromFloat(0.09),
	)
	handler := NewBillHandler(billService, logger.New("error"))

	r := chi.NewRouter()
	r.Post("/api/bill", handler.CreateBill)
	r.Get("/api/bill", handler.ListBills)
	r.Get("/api/bill/{billId}", handler.GetBill)
	r.Delete("/api/bill/{billId}", handler.DeleteBill)

	return r, billService
}

func TestCreateBill_Success(t *testing.T) {
	r, _ := newBillRouter()

	body := `{"customerName":"Asha","items":[{"productId":"1","quantity":1,"weightTier":"1.0"},{"productId":"3","quantity":2}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/bill", strings.NewReader(body))
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var bill models.Bill
	if err := json.NewDecoder(w.Body).Decode(&bill); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if bill.ID == "" {
		t.Error("expected generated bill id")
	}
	if bill.CustomerName != "Asha" {
		t.Errorf("customer = %s, want Asha", bill.CustomerName)
	}
	if len(bill.Items) != 2 {
		t.Errorf("expected 2 lines, got %d", len(bill.Items))
	}
	// 850 + 2*45 = 940
	if !bill.Subtotal.Equal(decimal.NewFromInt(940)) {
		t.Errorf("subtotal = %s, want 940", bill.Subtotal)
	}
	if !bill.Total.Equal(bill.Subtotal.Add(bill.CGST).Add(bill.SGST)) {
		t.Error("total != subtotal + cgst + sgst")
	}
}

func TestCreateBill_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantError string
	}{
		{
			name:      "invalid json",
			body:      `{not json`,
			wantError: "Invalid request body",
		},
		{
			name:      "missing customer",
			body:      `{"items":[{"productId":"3","quantity":1}]}`,
			wantError: "Customer name is required",
		},
		{
			name:      "no items",
			body:      `{"customerName":"Asha","items":[]}`,
			wantError: "Bill must contain at least one item",
		},
		{
			name:      "zero quantity",
			body:      `{"customerName":"Asha","items":[{"productId":"3","quantity":0}]}`,
			wantError: "Quantity must be positive",
		},
		{
			name:      "unknown product",
			body:      `{"customerName":"Asha","items":[{"productId":"99","quantity":1}]}`,
			wantError: "Invalid product",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newBillRouter()

			req := httptest.NewRequest(http.MethodPost, "/api/bill", bytes.NewReader([]byte(tt.body)))
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", w.Code)
			}

			var response map[string]string
			if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if response["error"] != tt.wantError {
				t.Errorf("error = %q, want %q", response["error"], tt.wantError)
			}
		})
	}
}

func TestListBills_NewestFirstAndFiltered(t *testing.T) {
	r, billService := newBillRouter()
	ctx := context.Background()

	for _, name := range []string{"Asha", "Bina"} {
		if _, err := billService.CreateBill(ctx, models.BillRequest{
			CustomerName: name,
			Items:        []models.BillLineRequest{{ProductID: "7", Quantity: 1}},
		}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/bill", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var bills []models.Bill
	if err := json.NewDecoder(w.Body).Decode(&bills); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(bills) != 2 {
		t.Fatalf("expected 2 bills, got %d", len(bills))
	}
	if bills[0].CustomerName != "Bina" {
		t.Errorf("first bill = %s, want Bina (newest first)", bills[0].CustomerName)
	}

	// Filtered listing
	req = httptest.NewRequest(http.MethodGet, "/api/bill?q=asha", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if err := json.NewDecoder(w.Body).Decode(&bills); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(bills) != 1 || bills[0].CustomerName != "Asha" {
		t.Errorf("filter returned %+v, want just Asha", bills)
	}
}

func TestGetBill_NotFound(t *testing.T) {
	r, _ := newBillRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/bill/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestDeleteBill(t *testing.T) {
	r, billService := newBillRouter()
	ctx := context.Background()

	bill, err := billService.CreateBill(ctx, models.BillRequest{
		CustomerName: "Asha",
		Items:        []models.BillLineRequest{{ProductID: "5", Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/bill/"+bill.ID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", w.Code)
	}

	bills, err := billService.ListBills(ctx, "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(bills) != 0 {
		t.Errorf("bill still present after delete")
	}

	// Deleting an unknown id still succeeds
	req = httptest.NewRequest(http.MethodDelete, "/api/bill/missing", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("expected status 204 for absent id, got %d", w.Code)
	}
}

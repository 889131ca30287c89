package handlers

import (
	"log/slog"
	"net/http"

	"github.com/sweettreats/bakery-pos/internal/config"
)

// ShopHandler serves the static shop details used on rendered invoices
type ShopHandler struct {
	shop config.ShopConfig
	log  *slog.Logger
}

// NewShopHandler creates a new shop handler
func NewShopHandler(shop config.ShopConfig, log *slog.Logger) *ShopHandler {
	return &ShopHandler{shop: shop, log: log}
}

// GetShop handles GET /api/shop
func (h *ShopHandler) GetShop(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{
		"name":    h.shop.Name,
		"address": h.shop.Address,
		"phone":   h.shop.Phone,
		"gstin":   h.shop.GSTIN,
	}, h.log)
}

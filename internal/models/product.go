package models

import "github.com/shopspring/decimal"

// Category classifies a product. The set is fixed; only Cakes carries
// weight-tiered pricing.
type Category string

const (
	CategoryCakes    Category = "Cakes"
	CategoryPastries Category = "Pastries"
	CategoryDesserts Category = "Desserts"
	CategoryCookies  Category = "Cookies"
)

// Product represents a sellable bakery item. Products are defined once at
// startup and never mutated.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  Category        `json:"category"`
	BasePrice decimal.Decimal `json:"basePrice"`
	// WeightPrices maps a weight tier (e.g. "0.5", "1.0") to the price for
	// that size. Only set for the Cakes category.
	WeightPrices map[string]decimal.Decimal `json:"weightPrices,omitempty"`
}

// PriceAt returns the price for the given weight tier. Cakes look the tier
// up in the weight-price table and fall back to the base price when the
// tier is unknown; every other category prices at the base price.
func (p Product) PriceAt(weightTier string) decimal.Decimal {
	if p.Category == CategoryCakes && p.WeightPrices != nil {
		if price, ok := p.WeightPrices[weightTier]; ok {
			return price
		}
	}
	return p.BasePrice
}

// WeightLabel returns the size label carried on a bill line built from this
// product, e.g. "0.5 kg". Empty for non-cake categories.
func (p Product) WeightLabel(weightTier string) string {
	if p.Category == CategoryCakes {
		return weightTier + " kg"
	}
	return ""
}

package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/sweettreats/bakery-pos/internal/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
}

// InMemoryProductRepository implements ProductRepository over the static
// bakery catalog. The catalog is fixed at process start; there are no
// mutation operations.
type InMemoryProductRepository struct {
	products []models.Product
	byID     map[string]models.Product
}

// NewInMemoryProductRepository creates a product repository seeded with the
// shop's catalog. Cakes carry a weight-price table; everything else sells
// at its base price.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	products := []models.Product{
		{
			ID: "1", Name: "Chocolate Truffle Cake", Category: models.CategoryCakes,
			BasePrice: decimal.NewFromInt(450),
			WeightPrices: map[string]decimal.Decimal{
				"0.5": decimal.NewFromInt(450),
				"1.0": decimal.NewFromInt(850),
				"1.5": decimal.NewFromInt(1250),
				"2.0": decimal.NewFromInt(1600),
			},
		},
		{
			ID: "2", Name: "Red Velvet Cake", Category: models.CategoryCakes,
			BasePrice: decimal.NewFromInt(550),
			WeightPrices: map[string]decimal.Decimal{
				"0.5": decimal.NewFromInt(550),
				"1.0": decimal.NewFromInt(1000),
				"1.5": decimal.NewFromInt(1450),
				"2.0": decimal.NewFromInt(1900),
			},
		},
		{
			ID: "6", Name: "Fresh Fruit Cake", Category: models.CategoryCakes,
			BasePrice: decimal.NewFromInt(500),
			WeightPrices: map[string]decimal.Decimal{
				"0.5": decimal.NewFromInt(500),
				"1.0": decimal.NewFromInt(950),
				"1.5": decimal.NewFromInt(1400),
				"2.0": decimal.NewFromInt(1800),
			},
		},
		{ID: "3", Name: "Vanilla Cupcake", Category: models.CategoryPastries, BasePrice: decimal.NewFromInt(45)},
		{ID: "4", Name: "Pineapple Pastry", Category: models.CategoryPastries, BasePrice: decimal.NewFromInt(60)},
		{ID: "5", Name: "Brownie Bliss", Category: models.CategoryDesserts, BasePrice: decimal.NewFromInt(85)},
		{ID: "7", Name: "Chocolate Cookie", Category: models.CategoryCookies, BasePrice: decimal.NewFromInt(20)},
	}

	byID := make(map[string]models.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	return &InMemoryProductRepository{
		products: products,
		byID:     byID,
	}
}

// GetAll returns all products in catalog order
func (r *InMemoryProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	products := make([]models.Product, len(r.products))
	copy(products, r.products)
	return products, nil
}

// GetByID returns a product by its ID
func (r *InMemoryProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	product, exists := r.byID[id]
	if !exists {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

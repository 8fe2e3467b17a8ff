package repository

import (
	"context"

	"github.com/Lixing-Zhang/pos-checkout/internal/cart"
	"github.com/shopspring/decimal"
)

// SeedRepository supplies the line items a new checkout cart starts with
type SeedRepository interface {
	SeedItems(ctx context.Context) ([]cart.LineItem, error)
}

// InMemorySeedRepository returns a fixed list of seed items
type InMemorySeedRepository struct {
	items []cart.LineItem
}

// NewInMemorySeedRepository creates a seed repository with the default checkout items
func NewInMemorySeedRepository() *InMemorySeedRepository {
	return NewInMemorySeedRepositoryWith(
		cart.LineItem{Barcode: "234934474747", Name: "PRODUCT 1", Quantity: 1, UnitPrice: decimal.RequireFromString("2000.00")},
		cart.LineItem{Barcode: "834959948420", Name: "PRODUCT 2", Quantity: 2, UnitPrice: decimal.RequireFromString("2000.00")},
	)
}

// NewInMemorySeedRepositoryWith creates a seed repository with the given items
func NewInMemorySeedRepositoryWith(items ...cart.LineItem) *InMemorySeedRepository {
	return &InMemorySeedRepository{
		items: append([]cart.LineItem(nil), items...),
	}
}

// SeedItems returns a copy of the seed items in display order
func (r *InMemorySeedRepository) SeedItems(ctx context.Context) ([]cart.LineItem, error) {
	return append([]cart.LineItem(nil), r.items...), nil
}

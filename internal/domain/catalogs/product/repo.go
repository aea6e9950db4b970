package product

import (
	"context"

	"stockmaster/internal/core/id"
	"stockmaster/internal/domain"
)

// Repository defines data access for products.
type Repository interface {
	domain.CatalogRepository[*Product]

	// ListInStock returns products with stock_quantity > 0 ordered by name.
	ListInStock(ctx context.Context) ([]*Product, error)

	// DecrementStock subtracts qty only if at least qty units are held.
	// It returns an INSUFFICIENT_STOCK error otherwise.
	DecrementStock(ctx context.Context, productID id.ID, qty int) error
}

// SalesLedger is the part of the sales store the delete policy needs.
type SalesLedger interface {
	CountByProduct(ctx context.Context, productID id.ID) (int64, error)
	DeleteByProduct(ctx context.Context, productID id.ID) (int64, error)
}

package sale

import (
	"context"
	"time"

	"stockmaster/internal/core/id"
	"stockmaster/internal/domain/catalogs/product"
)

// Repository defines data access for sales. Sales are insert-only.
type Repository interface {
	Create(ctx context.Context, s *Sale) error

	CountByProduct(ctx context.Context, productID id.ID) (int64, error)

	// DeleteByProduct removes every sale of a product (cascade delete).
	DeleteByProduct(ctx context.Context, productID id.ID) (int64, error)
}

// StockStore locks and decrements product stock.
type StockStore interface {
	GetForUpdate(ctx context.Context, productID id.ID) (*product.Product, error)
	DecrementStock(ctx context.Context, productID id.ID, qty int) error
}

// Numerator allocates receipt numbers within the caller's transaction.
type Numerator interface {
	Next(ctx context.Context, prefix string, period time.Time) (string, error)
}

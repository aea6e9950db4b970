package reports

import (
	"context"
)

// Repository defines report data access interface.
type Repository interface {
	// SalesTotals sums revenue and recorded profit of sales whose
	// sale_date lies within p (both ends inclusive).
	SalesTotals(ctx context.Context, p Period) (Totals, error)

	// RecentSales returns the newest sales, newest first.
	RecentSales(ctx context.Context, limit int) ([]RecentSale, error)
}

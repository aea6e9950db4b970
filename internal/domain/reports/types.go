// Package reports provides the read-side sales aggregates shown on the dashboard.
package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"stockmaster/internal/core/id"
)

// WeeklyWindow is the span covered by the weekly summary.
const WeeklyWindow = 7 * 24 * time.Hour

// Period is a closed time interval [From, To].
type Period struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// LastWeek returns [now - 7 days, now] in UTC.
func LastWeek(now time.Time) Period {
	now = now.UTC()
	return Period{From: now.Add(-WeeklyWindow), To: now}
}

// Totals aggregates the sales of a period. Revenue uses current selling
// prices while Profit sums the frozen per-sale profit.
type Totals struct {
	Period    Period          `json:"period"`
	SaleCount int64           `json:"saleCount"`
	Revenue   decimal.Decimal `json:"revenue"`
	Profit    decimal.Decimal `json:"profit"`
}

// RecentSale is a sale row joined with its product name.
type RecentSale struct {
	ID             id.ID           `db:"id" json:"id"`
	Number         string          `db:"number" json:"number"`
	ProductID      id.ID           `db:"product_id" json:"productId"`
	ProductName    string          `db:"product_name" json:"productName"`
	QuantitySold   int             `db:"quantity_sold" json:"quantitySold"`
	UnitPrice      decimal.Decimal `db:"unit_price" json:"unitPrice"`
	CurrentPrice   decimal.Decimal `db:"current_price" json:"currentPrice"`
	ProfitRecorded decimal.Decimal `db:"profit_recorded" json:"profitRecorded"`
	SaleDate       time.Time       `db:"sale_date" json:"saleDate"`
}

// Revenue is the sale valued at the product's current selling price, the
// same basis as the weekly totals. Profit stays as recorded.
func (r RecentSale) Revenue() decimal.Decimal {
	return r.CurrentPrice.Mul(decimal.NewFromInt(int64(r.QuantitySold)))
}

// Dashboard is everything the home page shows.
type Dashboard struct {
	Weekly      Totals       `json:"weekly"`
	RecentSales []RecentSale `json:"recentSales"`
	GeneratedAt time.Time    `json:"generatedAt"`
}

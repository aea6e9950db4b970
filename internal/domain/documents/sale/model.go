// Package sale provides the Sale document: a frozen record of units sold
// and the profit made on them.
package sale

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
	"stockmaster/internal/domain/catalogs/product"
)

// Sale is immutable once stored. UnitPrice and ProfitRecorded capture the
// product prices at sale time; later price edits do not touch them.
type Sale struct {
	ID             id.ID           `db:"id" json:"id"`
	Number         string          `db:"number" json:"number"`
	ProductID      id.ID           `db:"product_id" json:"productId"`
	QuantitySold   int             `db:"quantity_sold" json:"quantitySold"`
	UnitPrice      decimal.Decimal `db:"unit_price" json:"unitPrice"`
	ProfitRecorded decimal.Decimal `db:"profit_recorded" json:"profitRecorded"`
	SaleDate       time.Time       `db:"sale_date" json:"saleDate"`
}

// NewSale prices qty units of p at its current prices.
func NewSale(p *product.Product, qty int, at time.Time) *Sale {
	units := decimal.NewFromInt(int64(qty))
	return &Sale{
		ID:             id.New(),
		ProductID:      p.ID,
		QuantitySold:   qty,
		UnitPrice:      p.SellingPrice,
		ProfitRecorded: p.UnitMargin().Mul(units).Round(types.MoneyScale),
		SaleDate:       at.UTC(),
	}
}

// Revenue is the gross value of the sale.
func (s *Sale) Revenue() decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromInt(int64(s.QuantitySold)))
}

// Validate implements entity.Validatable interface.
func (s *Sale) Validate(_ context.Context) error {
	if id.IsNil(s.ProductID) {
		return apperror.NewFieldValidation("product_id", "product is required")
	}
	if s.QuantitySold <= 0 {
		return apperror.NewFieldValidation("quantity_sold", "quantity must be greater than zero")
	}
	if s.Number == "" {
		return apperror.NewFieldValidation("number", "receipt number is required")
	}
	return nil
}

// Request asks to sell Quantity units of a product.
type Request struct {
	ProductID id.ID
	Quantity  int
}

// Receipt is the outcome of a processed sale.
type Receipt struct {
	Sale           *Sale
	ProductName    string
	RemainingStock int
}

// Message renders the confirmation shown to the cashier.
func (r *Receipt) Message(currency string) string {
	return fmt.Sprintf("Sale recorded! %d x %s | Profit: %s",
		r.Sale.QuantitySold, r.ProductName, types.FormatMoney(r.Sale.ProfitRecorded, currency))
}

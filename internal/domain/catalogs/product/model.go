// Package product provides the Product catalog: items held in stock and
// sold at the point of sale.
package product

import (
	"context"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/entity"
	"stockmaster/internal/core/types"
)

// Column limits of the products table.
const (
	MaxNameLength = 200
	MaxStock      = math.MaxInt32
)

// Product is a stocked item with its purchase and retail prices.
type Product struct {
	entity.BaseEntity

	Name string `db:"name" json:"name"`

	// StockQuantity is the count of unsold units currently held
	StockQuantity int `db:"stock_quantity" json:"stockQuantity"`

	BuyingPrice  decimal.Decimal `db:"buying_price" json:"buyingPrice"`
	SellingPrice decimal.Decimal `db:"selling_price" json:"sellingPrice"`
}

// Fields are the user-editable attributes of a product.
type Fields struct {
	Name          string
	StockQuantity int
	BuyingPrice   decimal.Decimal
	SellingPrice  decimal.Decimal
}

// NewProduct creates a product from form fields.
func NewProduct(f Fields) *Product {
	p := &Product{BaseEntity: entity.NewBaseEntity()}
	p.Apply(f)
	return p
}

// Apply overwrites the editable attributes.
func (p *Product) Apply(f Fields) {
	p.Name = strings.TrimSpace(f.Name)
	p.StockQuantity = f.StockQuantity
	p.BuyingPrice = f.BuyingPrice.Round(types.MoneyScale)
	p.SellingPrice = f.SellingPrice.Round(types.MoneyScale)
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(_ context.Context) error {
	if p.Name == "" {
		return apperror.NewFieldValidation("name", "name is required")
	}
	if len([]rune(p.Name)) > MaxNameLength {
		return apperror.NewFieldValidation("name", "name is too long").
			WithDetail("max", MaxNameLength)
	}
	if p.StockQuantity < 0 {
		return apperror.NewFieldValidation("stock_quantity", "stock quantity cannot be negative")
	}
	if p.StockQuantity > MaxStock {
		return apperror.NewFieldValidation("stock_quantity", "stock quantity is too large").
			WithDetail("max", MaxStock)
	}
	if err := validatePrice("buying_price", "buying price", p.BuyingPrice); err != nil {
		return err
	}
	return validatePrice("selling_price", "selling price", p.SellingPrice)
}

func validatePrice(field, label string, v decimal.Decimal) error {
	if v.IsNegative() {
		return apperror.NewFieldValidation(field, label+" cannot be negative")
	}
	if v.GreaterThan(types.MaxMoney) {
		return apperror.NewFieldValidation(field, label+" is too large").
			WithDetail("max", types.MaxMoney.StringFixed(types.MoneyScale))
	}
	return nil
}

// UnitMargin is the profit made on one unit at current prices. It may be
// negative when an item is sold below cost.
func (p *Product) UnitMargin() decimal.Decimal {
	return p.SellingPrice.Sub(p.BuyingPrice)
}

// InStock reports whether at least one unit can be sold.
func (p *Product) InStock() bool {
	return p.StockQuantity > 0
}

// Snapshot implements domain.Entity.
func (p *Product) Snapshot() map[string]any {
	return map[string]any{
		"name":           p.Name,
		"stock_quantity": p.StockQuantity,
		"buying_price":   p.BuyingPrice.StringFixed(types.MoneyScale),
		"selling_price":  p.SellingPrice.StringFixed(types.MoneyScale),
	}
}

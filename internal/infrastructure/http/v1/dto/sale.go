package dto

import (
	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
	"stockmaster/internal/domain/documents/sale"
)

// SaleForm is posted from the point-of-sale page.
type SaleForm struct {
	ProductID    string `form:"product_id"`
	QuantitySold string `form:"quantity_sold"`
}

// ToRequest parses the form into a sale request.
func (f SaleForm) ToRequest() (sale.Request, error) {
	productID, err := id.Parse(f.ProductID)
	if err != nil {
		return sale.Request{}, apperror.NewFieldValidation("product_id", "select a product")
	}
	qty, err := parseInt("quantity_sold", f.QuantitySold)
	if err != nil {
		return sale.Request{}, err
	}
	return sale.Request{ProductID: productID, Quantity: qty}, nil
}

package dto

import (
	"fmt"
	"strconv"
	"strings"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/types"
	"stockmaster/internal/domain/catalogs/product"
)

// ProductResponse is the body of GET /api/product/{id}.
type ProductResponse struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	StockQuantity int          `json:"stock_quantity"`
	BuyingPrice   types.Amount `json:"buying_price"`
	SellingPrice  types.Amount `json:"selling_price"`
}

// FromProduct maps a product to its API representation.
func FromProduct(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		StockQuantity: p.StockQuantity,
		BuyingPrice:   types.NewAmount(p.BuyingPrice),
		SellingPrice:  types.NewAmount(p.SellingPrice),
	}
}

// ProductForm is the add/edit form posted from the inventory page.
type ProductForm struct {
	Name          string `form:"name"`
	StockQuantity string `form:"stock_quantity"`
	BuyingPrice   string `form:"buying_price"`
	SellingPrice  string `form:"selling_price"`
}

// ToFields parses the numeric inputs. Empty numbers read as zero.
func (f ProductForm) ToFields() (product.Fields, error) {
	stock, err := parseInt("stock_quantity", f.StockQuantity)
	if err != nil {
		return product.Fields{}, err
	}
	buying, err := types.ParseMoney(f.BuyingPrice)
	if err != nil {
		return product.Fields{}, apperror.NewFieldValidation("buying_price", err.Error())
	}
	selling, err := types.ParseMoney(f.SellingPrice)
	if err != nil {
		return product.Fields{}, apperror.NewFieldValidation("selling_price", err.Error())
	}

	return product.Fields{
		Name:          f.Name,
		StockQuantity: stock,
		BuyingPrice:   buying,
		SellingPrice:  selling,
	}, nil
}

func parseInt(field, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperror.NewFieldValidation(field, fmt.Sprintf("invalid number %q", s))
	}
	return n, nil
}

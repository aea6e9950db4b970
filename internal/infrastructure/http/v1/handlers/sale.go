package handlers

import (
	"github.com/gin-gonic/gin"

	"stockmaster/internal/infrastructure/http/v1/dto"
)

const salePath = "/sale"

// SaleHandler serves the point-of-sale page.
type SaleHandler struct {
	*BaseHandler
	products ProductService
	sales    SaleService
}

// NewSaleHandler creates a new sale handler.
func NewSaleHandler(base *BaseHandler, products ProductService, sales SaleService) *SaleHandler {
	return &SaleHandler{BaseHandler: base, products: products, sales: sales}
}

// RegisterRoutes mounts the point-of-sale pages.
func (h *SaleHandler) RegisterRoutes(r gin.IRouter) {
	r.GET(salePath, h.Form)
	r.POST(salePath+"/process", h.Process)
}

// Form renders the sale form with the products that can be sold.
// GET /sale
func (h *SaleHandler) Form(c *gin.Context) {
	products, err := h.products.ListInStock(c.Request.Context())
	if err != nil {
		h.RenderError(c, err)
		return
	}
	h.Render(c, "pos.html", "Point of sale", gin.H{"Products": products})
}

// Process records a sale and reports the profit made.
// POST /sale/process
func (h *SaleHandler) Process(c *gin.Context) {
	var form dto.SaleForm
	if err := h.BindForm(c, &form); err != nil {
		h.RedirectError(c, salePath, err)
		return
	}
	req, err := form.ToRequest()
	if err != nil {
		h.RedirectError(c, salePath, err)
		return
	}

	receipt, err := h.sales.Process(c.Request.Context(), req)
	if err != nil {
		h.RedirectError(c, salePath, err)
		return
	}
	h.RedirectSuccess(c, salePath, receipt.Message(h.currency))
}

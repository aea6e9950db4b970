package handlers

import (
	"github.com/gin-gonic/gin"

	"stockmaster/internal/infrastructure/http/v1/dto"
)

// HistoryLimit caps the entries returned by the history endpoint.
const HistoryLimit = 50

// ProductAPIHandler serves the read-only product JSON endpoints.
type ProductAPIHandler struct {
	*BaseHandler
	products ProductService
}

// NewProductAPIHandler creates a new product API handler.
func NewProductAPIHandler(base *BaseHandler, products ProductService) *ProductAPIHandler {
	return &ProductAPIHandler{BaseHandler: base, products: products}
}

// RegisterRoutes mounts the product endpoints under rg.
func (h *ProductAPIHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:id", h.Get)
	rg.GET("/:id/history", h.History)
}

// Get returns one product.
// GET /api/product/:id
func (h *ProductAPIHandler) Get(c *gin.Context) {
	productID, err := h.ParseID(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	p, err := h.products.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromProduct(p))
}

// History returns the audit trail of a product, newest first.
// GET /api/product/:id/history
func (h *ProductAPIHandler) History(c *gin.Context) {
	productID, err := h.ParseID(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	entries, err := h.products.History(c.Request.Context(), productID, HistoryLimit)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{
		"product_id": productID.String(),
		"items":      dto.FromAuditEntries(entries),
	})
}

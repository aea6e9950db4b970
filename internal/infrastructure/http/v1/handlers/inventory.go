package handlers

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"stockmaster/internal/domain"
	"stockmaster/internal/infrastructure/http/v1/dto"
)

const inventoryPath = "/inventory"

// InventoryHandler serves the product catalog pages.
type InventoryHandler struct {
	*BaseHandler
	products ProductService
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(base *BaseHandler, products ProductService) *InventoryHandler {
	return &InventoryHandler{BaseHandler: base, products: products}
}

// RegisterRoutes mounts the inventory pages.
func (h *InventoryHandler) RegisterRoutes(r gin.IRouter) {
	r.GET(inventoryPath, h.List)
	r.POST(inventoryPath+"/add", h.Add)
	r.POST(inventoryPath+"/edit/:id", h.Edit)
	r.POST(inventoryPath+"/delete/:id", h.Delete)
}

// List renders all products, optionally filtered by ?q=.
// GET /inventory
func (h *InventoryHandler) List(c *gin.Context) {
	filter := domain.DefaultListFilter()
	filter.Search = strings.TrimSpace(c.Query("q"))

	res, err := h.products.List(c.Request.Context(), filter)
	if err != nil {
		h.RenderError(c, err)
		return
	}
	h.Render(c, "inventory.html", "Inventory", gin.H{
		"Products": res,
		"Search":   filter.Search,
	})
}

// Add creates a product from the posted form.
// POST /inventory/add
func (h *InventoryHandler) Add(c *gin.Context) {
	var form dto.ProductForm
	if err := h.BindForm(c, &form); err != nil {
		h.RedirectError(c, inventoryPath, err)
		return
	}
	fields, err := form.ToFields()
	if err != nil {
		h.RedirectError(c, inventoryPath, err)
		return
	}

	p, err := h.products.Create(c.Request.Context(), fields)
	if err != nil {
		h.RedirectError(c, inventoryPath, err)
		return
	}
	h.RedirectSuccess(c, inventoryPath, fmt.Sprintf("Product %q added", p.Name))
}

// Edit overwrites a product with the posted form.
// POST /inventory/edit/:id
func (h *InventoryHandler) Edit(c *gin.Context) {
	productID, err := h.ParseID(c)
	if err != nil {
		h.RedirectError(c, inventoryPath, err)
		return
	}

	var form dto.ProductForm
	if err := h.BindForm(c, &form); err != nil {
		h.RedirectError(c, inventoryPath, err)
		return
	}
	fields, err := form.ToFields()
	if err != nil {
		h.RedirectError(c, inventoryPath, err)
		return
	}

	p, err := h.products.Update(c.Request.Context(), productID, fields)
	if err != nil {
		h.RedirectError(c, inventoryPath, err)
		return
	}
	h.RedirectSuccess(c, inventoryPath, fmt.Sprintf("Product %q updated", p.Name))
}

// Delete removes a product.
// POST /inventory/delete/:id
func (h *InventoryHandler) Delete(c *gin.Context) {
	productID, err := h.ParseID(c)
	if err != nil {
		h.RedirectError(c, inventoryPath, err)
		return
	}

	p, err := h.products.Delete(c.Request.Context(), productID)
	if err != nil {
		h.RedirectError(c, inventoryPath, err)
		return
	}
	h.RedirectSuccess(c, inventoryPath, fmt.Sprintf("Product %q deleted", p.Name))
}

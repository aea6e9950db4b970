package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
	"stockmaster/internal/domain"
	"stockmaster/internal/domain/audit"
	"stockmaster/internal/domain/catalogs/product"
	"stockmaster/internal/domain/documents/sale"
	"stockmaster/internal/domain/reports"
	"stockmaster/internal/infrastructure/http/v1/flash"
	"stockmaster/pkg/logger"
)

// ProductService is what the inventory pages and the product API need.
type ProductService interface {
	Create(ctx context.Context, f product.Fields) (*product.Product, error)
	Update(ctx context.Context, productID id.ID, f product.Fields) (*product.Product, error)
	Delete(ctx context.Context, productID id.ID) (*product.Product, error)
	GetByID(ctx context.Context, productID id.ID) (*product.Product, error)
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*product.Product], error)
	ListInStock(ctx context.Context) ([]*product.Product, error)
	History(ctx context.Context, productID id.ID, limit int) ([]audit.Entry, error)
}

// SaleService processes point-of-sale requests.
type SaleService interface {
	Process(ctx context.Context, req sale.Request) (*sale.Receipt, error)
}

// ReportService builds the dashboard.
type ReportService interface {
	Dashboard(ctx context.Context) (*reports.Dashboard, error)
}

// BaseHandler provides common handler utilities.
type BaseHandler struct {
	flash    *flash.Store
	currency string
}

// NewBaseHandler creates a new base handler.
func NewBaseHandler(flashStore *flash.Store, currency string) *BaseHandler {
	return &BaseHandler{flash: flashStore, currency: currency}
}

// Error registers err on the Gin context and aborts the request. The JSON
// response is produced by middleware.ErrorHandler.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// BindForm binds the posted form into obj.
func (h *BaseHandler) BindForm(c *gin.Context, obj any) error {
	if err := c.ShouldBind(obj); err != nil {
		return apperror.NewValidation("invalid form").WithCause(err)
	}
	return nil
}

// ParseID reads the :id path parameter.
func (h *BaseHandler) ParseID(c *gin.Context) (id.ID, error) {
	raw := c.Param("id")
	v, err := id.Parse(raw)
	if err != nil {
		return id.ID{}, apperror.NewValidation("invalid id").WithDetail("id", raw)
	}
	return v, nil
}

// OK sends 200 response with data.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Render renders a page with the pending flash message and a title.
func (h *BaseHandler) Render(c *gin.Context, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	if msg := h.flash.Pop(c); msg != nil {
		data["Flash"] = msg
	}
	c.HTML(http.StatusOK, name, data)
}

// RenderError renders the error page for a failed page load.
func (h *BaseHandler) RenderError(c *gin.Context, err error) {
	status := apperror.GetHTTPStatus(err)
	c.HTML(status, "error.html", gin.H{
		"Title":     http.StatusText(status),
		"Message":   h.userMessage(c, err),
		"RequestID": c.GetString("request_id"),
	})
	c.Abort()
}

// RedirectSuccess stores a success message and redirects to target.
func (h *BaseHandler) RedirectSuccess(c *gin.Context, target, message string) {
	if err := h.flash.Success(c, message); err != nil {
		logger.Warn(c.Request.Context(), "flash not stored", "error", err)
	}
	c.Redirect(http.StatusSeeOther, target)
}

// RedirectError stores the user-facing form of err and redirects to target.
func (h *BaseHandler) RedirectError(c *gin.Context, target string, err error) {
	if ferr := h.flash.Danger(c, h.userMessage(c, err)); ferr != nil {
		logger.Warn(c.Request.Context(), "flash not stored", "error", ferr)
	}
	c.Redirect(http.StatusSeeOther, target)
}

// userMessage returns the message of a client error. Server errors are
// logged and replaced with a generic text.
func (h *BaseHandler) userMessage(c *gin.Context, err error) string {
	if appErr, ok := apperror.AsAppError(err); ok && apperror.IsClientError(err) {
		return appErr.Message
	}
	logger.Error(c.Request.Context(), "request failed", "error", err)
	return "Something went wrong, please try again"
}

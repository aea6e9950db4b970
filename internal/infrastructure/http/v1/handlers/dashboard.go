package handlers

import (
	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the home page.
type DashboardHandler struct {
	*BaseHandler
	reports ReportService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(base *BaseHandler, reports ReportService) *DashboardHandler {
	return &DashboardHandler{BaseHandler: base, reports: reports}
}

// Show renders weekly revenue, weekly profit and the latest sales.
// GET /
func (h *DashboardHandler) Show(c *gin.Context) {
	dash, err := h.reports.Dashboard(c.Request.Context())
	if err != nil {
		h.RenderError(c, err)
		return
	}
	h.Render(c, "dashboard.html", "Dashboard", gin.H{"Dashboard": dash})
}

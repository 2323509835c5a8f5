package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kanhaiyya/billing-api/internal/application/service"
	"github.com/kanhaiyya/billing-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles sales summary endpoints
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Summary handles GET /dashboard/summary. Accepts an optional ?date=DD-MM-YYYY
// and defaults to today.
func (h *DashboardHandler) Summary(c *gin.Context) {
	if raw := c.Query("date"); raw != "" {
		day, err := time.ParseInLocation("02-01-2006", raw, time.Local)
		if err != nil {
			response.BadRequest(c, "Invalid date, expected DD-MM-YYYY")
			return
		}
		summary, err := h.dashboardService.SummaryForDay(c.Request.Context(), day)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Sales summary", summary)
		return
	}

	summary, err := h.dashboardService.SummaryToday(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sales summary", summary)
}

package handler

import (
	"time"

	ledgerapp "github.com/doug-fsg/controlei/internal/application/ledger"
	"github.com/gin-gonic/gin"
)

// DashboardHandler handles the aggregated dashboard endpoint
type DashboardHandler struct {
	BaseHandler
	dashboardService *ledgerapp.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *ledgerapp.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// DashboardRequest selects the aggregation window. Defaults to the
// current calendar month when omitted.
type DashboardRequest struct {
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02"`
}

// Get returns the aggregated totals and recent activity for the window
func (h *DashboardHandler) Get(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req DashboardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	if req.StartDate != nil {
		start = *req.StartDate
	}
	if req.EndDate != nil {
		end = *req.EndDate
	}

	result, err := h.dashboardService.GetDashboard(c.Request.Context(), ledgerapp.DashboardQuery{
		OrganizationID: organizationID,
		StartDate:      start,
		EndDate:        end,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// RegisterRoutes registers the dashboard route
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Get)
}

package handler

import (
	"time"

	ledgerapp "github.com/doug-fsg/controlei/internal/application/ledger"
	"github.com/doug-fsg/controlei/internal/domain/ledger"
	"github.com/gin-gonic/gin"
)

// CashFlowHandler handles the cash-flow projection endpoint
type CashFlowHandler struct {
	BaseHandler
	cashFlowService *ledgerapp.CashFlowService
}

// NewCashFlowHandler creates a new CashFlowHandler
func NewCashFlowHandler(cashFlowService *ledgerapp.CashFlowService) *CashFlowHandler {
	return &CashFlowHandler{cashFlowService: cashFlowService}
}

// CashFlowRequest selects and filters the projection window
type CashFlowRequest struct {
	StartDate   time.Time `form:"start_date" time_format:"2006-01-02" binding:"required"`
	EndDate     time.Time `form:"end_date" time_format:"2006-01-02" binding:"required"`
	Granularity string    `form:"granularity" binding:"omitempty,oneof=week month quarter year"`
	Type        string    `form:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
	Status      string    `form:"status" binding:"omitempty,oneof=PENDING PAID OVERDUE"`
	CategoryID  string    `form:"category_id" binding:"omitempty,uuid"`
}

// Get returns the projected cash-flow statement for the window
func (h *CashFlowHandler) Get(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CashFlowRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	query := ledgerapp.CashFlowQuery{
		OrganizationID: organizationID,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Granularity:    req.Granularity,
	}
	if req.Type != "" {
		flowType := ledger.CashFlowType(req.Type)
		query.Type = &flowType
	}
	if req.Status != "" {
		status := ledger.PaymentStatus(req.Status)
		query.Status = &status
	}
	if req.CategoryID != "" {
		categoryID, err := parseUUID(req.CategoryID)
		if err != nil {
			h.BadRequest(c, "Invalid category ID")
			return
		}
		query.CategoryID = &categoryID
	}

	statement, err := h.cashFlowService.GetCashFlow(c.Request.Context(), query)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, statement)
}

// RegisterRoutes registers the cash-flow route
func (h *CashFlowHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/cash-flow", h.Get)
}

package handler

import (
	"time"

	ledgerapp "github.com/doug-fsg/controlei/internal/application/ledger"
	"github.com/doug-fsg/controlei/internal/domain/ledger"
	"github.com/doug-fsg/controlei/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseHandler handles expense endpoints
type ExpenseHandler struct {
	BaseHandler
	expenseService *ledgerapp.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *ledgerapp.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// RecurrenceRequest describes a recurring expense template
type RecurrenceRequest struct {
	Frequency  string     `json:"frequency" binding:"required,oneof=MONTHLY WEEKLY YEARLY monthly weekly yearly"`
	DayOfMonth *int       `json:"day_of_month" binding:"omitempty,min=1,max=31"`
	EndDate    *time.Time `json:"end_date"`
}

// CreateExpenseRequest is the request body for creating an expense
type CreateExpenseRequest struct {
	Description string             `json:"description" binding:"required,min=1,max=500"`
	Amount      float64            `json:"amount" binding:"required,gt=0"`
	DueDate     time.Time          `json:"due_date" binding:"required"`
	CategoryID  *string            `json:"category_id" binding:"omitempty,uuid"`
	Notes       string             `json:"notes" binding:"max=1000"`
	Recurrence  *RecurrenceRequest `json:"recurrence"`
}

// UpdateExpenseRequest is the request body for updating an expense.
// Recurrence is immutable after creation.
type UpdateExpenseRequest struct {
	Description string    `json:"description" binding:"required,min=1,max=500"`
	Amount      float64   `json:"amount" binding:"required,gt=0"`
	DueDate     time.Time `json:"due_date" binding:"required"`
	CategoryID  *string   `json:"category_id" binding:"omitempty,uuid"`
	Notes       string    `json:"notes" binding:"max=1000"`
}

// RecurrenceResponse describes the recurrence of a recurring expense
type RecurrenceResponse struct {
	Frequency  ledger.RecurrenceFrequency `json:"frequency"`
	DayOfMonth *int                       `json:"day_of_month,omitempty"`
	EndDate    *time.Time                 `json:"end_date,omitempty"`
}

// ExpenseResponse is the full expense projection returned to callers
type ExpenseResponse struct {
	ID          uuid.UUID            `json:"id"`
	Description string               `json:"description"`
	Amount      decimal.Decimal      `json:"amount"`
	DueDate     time.Time            `json:"due_date"`
	Status      ledger.PaymentStatus `json:"status"`
	PaidDate    *time.Time           `json:"paid_date,omitempty"`
	CategoryID  *uuid.UUID           `json:"category_id,omitempty"`
	IsRecurring bool                 `json:"is_recurring"`
	Recurrence  *RecurrenceResponse  `json:"recurrence,omitempty"`
	Notes       string               `json:"notes,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

func expenseResponseFrom(expense *ledger.Expense, now time.Time) ExpenseResponse {
	resp := ExpenseResponse{
		ID:          expense.ID,
		Description: expense.Description,
		Amount:      expense.Amount,
		DueDate:     expense.DueDate,
		Status:      expense.EffectiveStatus(now),
		PaidDate:    expense.PaidDate,
		CategoryID:  expense.CategoryID,
		IsRecurring: expense.IsRecurring,
		Notes:       expense.Notes,
		CreatedAt:   expense.CreatedAt,
		UpdatedAt:   expense.UpdatedAt,
	}
	if expense.Recurrence != nil {
		resp.Recurrence = &RecurrenceResponse{
			Frequency:  expense.Recurrence.Frequency,
			DayOfMonth: expense.Recurrence.DayOfMonth,
			EndDate:    expense.Recurrence.EndDate,
		}
	}
	return resp
}

// Create creates a new expense, optionally as a recurring template
func (h *ExpenseHandler) Create(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	input := ledgerapp.CreateExpenseInput{
		OrganizationID: organizationID,
		CreatedBy:      userID,
		Description:    req.Description,
		Amount:         decimal.NewFromFloat(req.Amount),
		DueDate:        req.DueDate,
		Notes:          req.Notes,
	}
	if req.CategoryID != nil {
		categoryID, err := parseUUID(*req.CategoryID)
		if err != nil {
			h.BadRequest(c, "Invalid category ID")
			return
		}
		input.CategoryID = &categoryID
	}
	if req.Recurrence != nil {
		input.Recurrence = &ledgerapp.RecurrenceInput{
			Frequency:  req.Recurrence.Frequency,
			DayOfMonth: req.Recurrence.DayOfMonth,
			EndDate:    req.Recurrence.EndDate,
		}
	}

	expense, err := h.expenseService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, expenseResponseFrom(expense, time.Now()))
}

// Get returns one expense
func (h *ExpenseHandler) Get(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	expenseID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	expense, err := h.expenseService.Get(c.Request.Context(), organizationID, expenseID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, expenseResponseFrom(expense, time.Now()))
}

// ListExpensesRequest holds expense listing filters
type ListExpensesRequest struct {
	dto.ListRequest
	CategoryID  string     `form:"category_id" binding:"omitempty,uuid"`
	Status      string     `form:"status" binding:"omitempty,oneof=PENDING PAID OVERDUE"`
	IsRecurring *bool      `form:"is_recurring"`
	From        *time.Time `form:"from" time_format:"2006-01-02"`
	To          *time.Time `form:"to" time_format:"2006-01-02"`
}

// List returns expense summaries matching the filter
func (h *ExpenseHandler) List(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	req := ListExpensesRequest{ListRequest: dto.DefaultListRequest()}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	filter := ledger.ExpenseFilter{
		Filter:      toDomainFilter(req.ListRequest),
		IsRecurring: req.IsRecurring,
		From:        req.From,
		To:          req.To,
	}
	if req.CategoryID != "" {
		categoryID, err := parseUUID(req.CategoryID)
		if err != nil {
			h.BadRequest(c, "Invalid category ID")
			return
		}
		filter.CategoryID = &categoryID
	}
	if req.Status != "" {
		status := ledger.PaymentStatus(req.Status)
		filter.Status = &status
	}

	expenses, err := h.expenseService.List(c.Request.Context(), organizationID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, expenses)
}

// Update replaces an expense's editable fields
func (h *ExpenseHandler) Update(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	expenseID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	input := ledgerapp.UpdateExpenseInput{
		OrganizationID: organizationID,
		ExpenseID:      expenseID,
		Description:    req.Description,
		Amount:         decimal.NewFromFloat(req.Amount),
		DueDate:        req.DueDate,
		Notes:          req.Notes,
	}
	if req.CategoryID != nil {
		categoryID, err := parseUUID(*req.CategoryID)
		if err != nil {
			h.BadRequest(c, "Invalid category ID")
			return
		}
		input.CategoryID = &categoryID
	}

	expense, err := h.expenseService.Update(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, expenseResponseFrom(expense, time.Now()))
}

// MarkPaid settles an expense
func (h *ExpenseHandler) MarkPaid(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	expenseID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	// Body is optional; an empty body settles the expense at "now"
	var req MarkPaidRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindError(c, err)
			return
		}
	}

	expense, err := h.expenseService.MarkPaid(c.Request.Context(), ledgerapp.ExpenseTransitionInput{
		OrganizationID: organizationID,
		ExpenseID:      expenseID,
		PaidDate:       req.PaidDate,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, expenseResponseFrom(expense, time.Now()))
}

// MarkPending reverts an expense to unpaid
func (h *ExpenseHandler) MarkPending(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	expenseID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	expense, err := h.expenseService.MarkPending(c.Request.Context(), ledgerapp.ExpenseTransitionInput{
		OrganizationID: organizationID,
		ExpenseID:      expenseID,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, expenseResponseFrom(expense, time.Now()))
}

// Delete removes an expense and its recurring payment records
func (h *ExpenseHandler) Delete(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	expenseID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	if err := h.expenseService.Delete(c.Request.Context(), organizationID, expenseID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers expense routes
func (h *ExpenseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/expenses")
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.GET("/:id", h.Get)
		group.PUT("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
		group.POST("/:id/pay", h.MarkPaid)
		group.POST("/:id/unpay", h.MarkPending)
	}
}

package handler

import (
	"time"

	ledgerapp "github.com/doug-fsg/controlei/internal/application/ledger"
	"github.com/doug-fsg/controlei/internal/domain/ledger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecurringPaymentHandler handles month-by-month payment tracking of
// recurring expenses
type RecurringPaymentHandler struct {
	BaseHandler
	recurringService *ledgerapp.RecurringPaymentService
}

// NewRecurringPaymentHandler creates a new RecurringPaymentHandler
func NewRecurringPaymentHandler(recurringService *ledgerapp.RecurringPaymentService) *RecurringPaymentHandler {
	return &RecurringPaymentHandler{recurringService: recurringService}
}

// RecordRecurringPaymentRequest records one month of a recurring expense
// as paid. Amount zero means "use the expense amount".
type RecordRecurringPaymentRequest struct {
	PaymentDate time.Time `json:"payment_date" binding:"required"`
	Amount      float64   `json:"amount" binding:"omitempty,gt=0"`
	Notes       string    `json:"notes" binding:"max=1000"`
}

// RecurringPaymentResponse is the payment record projection
type RecurringPaymentResponse struct {
	ID          uuid.UUID       `json:"id"`
	ExpenseID   uuid.UUID       `json:"expense_id"`
	PaymentDate time.Time       `json:"payment_date"`
	Amount      decimal.Decimal `json:"amount"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func recurringPaymentResponseFrom(payment *ledger.RecurringExpensePayment) RecurringPaymentResponse {
	return RecurringPaymentResponse{
		ID:          payment.ID,
		ExpenseID:   payment.ExpenseID,
		PaymentDate: payment.PaymentDate,
		Amount:      payment.Amount,
		Notes:       payment.Notes,
		CreatedAt:   payment.CreatedAt,
	}
}

// Record marks one calendar month of a recurring expense as paid
func (h *RecurringPaymentHandler) Record(c *gin.Context) {
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

	expenseID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	var req RecordRecurringPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	payment, err := h.recurringService.RecordPayment(c.Request.Context(), ledgerapp.RecordRecurringPaymentInput{
		OrganizationID: organizationID,
		CreatedBy:      userID,
		ExpenseID:      expenseID,
		PaymentDate:    req.PaymentDate,
		Amount:         decimal.NewFromFloat(req.Amount),
		Notes:          req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, recurringPaymentResponseFrom(payment))
}

// List returns all payment records of a recurring expense, oldest first
func (h *RecurringPaymentHandler) List(c *gin.Context) {
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

	payments, err := h.recurringService.ListPayments(c.Request.Context(), organizationID, expenseID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	items := make([]RecurringPaymentResponse, 0, len(payments))
	for i := range payments {
		items = append(items, recurringPaymentResponseFrom(&payments[i]))
	}

	h.Success(c, items)
}

// MonthStatusRequest selects the month to check
type MonthStatusRequest struct {
	Month time.Time `form:"month" time_format:"2006-01" binding:"required"`
}

// MonthStatus reports whether the month containing the given date has
// already been paid for this expense
func (h *RecurringPaymentHandler) MonthStatus(c *gin.Context) {
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

	var req MonthStatusRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	paid, err := h.recurringService.IsMonthPaid(c.Request.Context(), ledgerapp.RecordRecurringPaymentInput{
		OrganizationID: organizationID,
		ExpenseID:      expenseID,
		PaymentDate:    req.Month,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{
		"month": req.Month.Format("2006-01"),
		"paid":  paid,
	})
}

// RegisterRoutes registers recurring payment routes under the expense
// resource
func (h *RecurringPaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/expenses/:id/recurring-payments")
	{
		group.GET("", h.List)
		group.POST("", h.Record)
		group.GET("/status", h.MonthStatus)
	}
}

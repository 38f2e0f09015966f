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

// SaleHandler handles sale and sale payment endpoints
type SaleHandler struct {
	BaseHandler
	saleService *ledgerapp.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *ledgerapp.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// PaymentPlanRequest describes the payment plan of a credit sale
type PaymentPlanRequest struct {
	AdvanceAmount    float64   `json:"advance_amount" binding:"omitempty,gte=0"`
	AdvanceDueDate   time.Time `json:"advance_due_date"`
	Installments     int       `json:"installments" binding:"required,min=1,max=120"`
	InstallmentValue float64   `json:"installment_value" binding:"required,gt=0"`
	FirstDueDate     time.Time `json:"first_due_date" binding:"required"`
}

// CreateSaleRequest is the request body for creating a sale. A sale
// without a payment plan is a cash sale, fully paid at sale time.
type CreateSaleRequest struct {
	ClientID    *string             `json:"client_id" binding:"omitempty,uuid"`
	Description string              `json:"description" binding:"max=500"`
	TotalAmount float64             `json:"total_amount" binding:"required,gt=0"`
	SaleDate    time.Time           `json:"sale_date" binding:"required"`
	PaymentPlan *PaymentPlanRequest `json:"payment_plan"`
}

// MarkPaidRequest optionally overrides the settlement date
type MarkPaidRequest struct {
	PaidDate *time.Time `json:"paid_date"`
}

// SalePaymentResponse is the payment projection returned to callers
type SalePaymentResponse struct {
	ID                uuid.UUID            `json:"id"`
	Type              ledger.PaymentType   `json:"type"`
	Amount            decimal.Decimal      `json:"amount"`
	DueDate           time.Time            `json:"due_date"`
	Status            ledger.PaymentStatus `json:"status"`
	PaidDate          *time.Time           `json:"paid_date,omitempty"`
	InstallmentNumber *int                 `json:"installment_number,omitempty"`
	TotalInstallments *int                 `json:"total_installments,omitempty"`
}

// SaleResponse is the full sale projection returned to callers
type SaleResponse struct {
	ID          uuid.UUID             `json:"id"`
	ClientID    *uuid.UUID            `json:"client_id,omitempty"`
	Description string                `json:"description"`
	TotalAmount decimal.Decimal       `json:"total_amount"`
	PaidAmount  decimal.Decimal       `json:"paid_amount"`
	SaleDate    time.Time             `json:"sale_date"`
	Status      ledger.PaymentStatus  `json:"status"`
	Payments    []SalePaymentResponse `json:"payments"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

func salePaymentResponseFrom(payment *ledger.SalePayment, now time.Time) SalePaymentResponse {
	return SalePaymentResponse{
		ID:                payment.ID,
		Type:              payment.Type,
		Amount:            payment.Amount,
		DueDate:           payment.DueDate,
		Status:            payment.EffectiveStatus(now),
		PaidDate:          payment.PaidDate,
		InstallmentNumber: payment.InstallmentNumber,
		TotalInstallments: payment.TotalInstallments,
	}
}

func saleResponseFrom(sale *ledger.Sale, now time.Time) SaleResponse {
	paid := sale.PaidAmount()
	if sale.IsCashSale() {
		paid = sale.TotalAmount
	}
	payments := make([]SalePaymentResponse, 0, len(sale.Payments))
	for i := range sale.Payments {
		payments = append(payments, salePaymentResponseFrom(&sale.Payments[i], now))
	}
	return SaleResponse{
		ID:          sale.ID,
		ClientID:    sale.ClientID,
		Description: sale.Description,
		TotalAmount: sale.TotalAmount,
		PaidAmount:  paid,
		SaleDate:    sale.SaleDate,
		Status:      sale.RollupStatus(now),
		Payments:    payments,
		CreatedAt:   sale.CreatedAt,
		UpdatedAt:   sale.UpdatedAt,
	}
}

// Create creates a new sale, optionally with a payment plan
func (h *SaleHandler) Create(c *gin.Context) {
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

	var req CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	input := ledgerapp.CreateSaleInput{
		OrganizationID: organizationID,
		CreatedBy:      userID,
		Description:    req.Description,
		TotalAmount:    decimal.NewFromFloat(req.TotalAmount),
		SaleDate:       req.SaleDate,
	}
	if req.ClientID != nil {
		clientID, err := parseUUID(*req.ClientID)
		if err != nil {
			h.BadRequest(c, "Invalid client ID")
			return
		}
		input.ClientID = &clientID
	}
	if req.PaymentPlan != nil {
		input.PaymentPlan = &ledgerapp.PaymentPlanInput{
			AdvanceAmount:    decimal.NewFromFloat(req.PaymentPlan.AdvanceAmount),
			AdvanceDueDate:   req.PaymentPlan.AdvanceDueDate,
			Installments:     req.PaymentPlan.Installments,
			InstallmentValue: decimal.NewFromFloat(req.PaymentPlan.InstallmentValue),
			FirstDueDate:     req.PaymentPlan.FirstDueDate,
		}
	}

	sale, err := h.saleService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, saleResponseFrom(sale, time.Now()))
}

// Get returns one sale with its payment plan
func (h *SaleHandler) Get(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	saleID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.Get(c.Request.Context(), organizationID, saleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, saleResponseFrom(sale, time.Now()))
}

// ListSalesRequest holds sale listing filters
type ListSalesRequest struct {
	dto.ListRequest
	ClientID string     `form:"client_id" binding:"omitempty,uuid"`
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
}

// List returns sale summaries matching the filter
func (h *SaleHandler) List(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	req := ListSalesRequest{ListRequest: dto.DefaultListRequest()}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	filter := ledger.SaleFilter{
		Filter: toDomainFilter(req.ListRequest),
		From:   req.From,
		To:     req.To,
	}
	if req.ClientID != "" {
		clientID, err := parseUUID(req.ClientID)
		if err != nil {
			h.BadRequest(c, "Invalid client ID")
			return
		}
		filter.ClientID = &clientID
	}

	sales, err := h.saleService.List(c.Request.Context(), organizationID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sales)
}

// Delete removes a sale and its payments
func (h *SaleHandler) Delete(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	saleID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	if err := h.saleService.Delete(c.Request.Context(), organizationID, saleID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// MarkPaymentPaid settles one payment of a sale
func (h *SaleHandler) MarkPaymentPaid(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	paymentID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	// Body is optional; an empty body settles the payment at "now"
	var req MarkPaidRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindError(c, err)
			return
		}
	}

	payment, err := h.saleService.MarkPaymentPaid(c.Request.Context(), ledgerapp.PaymentTransitionInput{
		OrganizationID: organizationID,
		PaymentID:      paymentID,
		PaidDate:       req.PaidDate,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, salePaymentResponseFrom(payment, time.Now()))
}

// MarkPaymentPending reverts one payment of a sale to unpaid
func (h *SaleHandler) MarkPaymentPending(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	paymentID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	payment, err := h.saleService.MarkPaymentPending(c.Request.Context(), ledgerapp.PaymentTransitionInput{
		OrganizationID: organizationID,
		PaymentID:      paymentID,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, salePaymentResponseFrom(payment, time.Now()))
}

// RegisterRoutes registers sale routes. Payment transitions live under
// their own prefix so the payment ID is the path parameter.
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	{
		sales.GET("", h.List)
		sales.POST("", h.Create)
		sales.GET("/:id", h.Get)
		sales.DELETE("/:id", h.Delete)
	}
	payments := rg.Group("/sale-payments")
	{
		payments.POST("/:id/pay", h.MarkPaymentPaid)
		payments.POST("/:id/unpay", h.MarkPaymentPending)
	}
}

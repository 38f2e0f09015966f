package ledger

import (
	"context"
	"time"

	"github.com/doug-fsg/controlei/internal/domain/ledger"
	"github.com/doug-fsg/controlei/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SaleService manages sales and their payment plans.
type SaleService struct {
	saleRepo   ledger.SaleRepository
	clientRepo ledger.ClientRepository
	logger     *zap.Logger
}

// NewSaleService creates a new sale service
func NewSaleService(saleRepo ledger.SaleRepository, clientRepo ledger.ClientRepository, logger *zap.Logger) *SaleService {
	return &SaleService{saleRepo: saleRepo, clientRepo: clientRepo, logger: logger}
}

// Create creates a sale. With a payment plan the sale is a credit sale:
// an optional advance plus monthly installments. Without one it is a cash
// sale, settled at sale time.
func (s *SaleService) Create(ctx context.Context, input CreateSaleInput) (*ledger.Sale, error) {
	if input.ClientID != nil {
		if _, err := s.clientRepo.FindByIDForOrg(ctx, input.OrganizationID, *input.ClientID); err != nil {
			return nil, err
		}
	}

	sale, err := ledger.NewSale(input.OrganizationID, input.CreatedBy, input.TotalAmount, input.SaleDate)
	if err != nil {
		return nil, err
	}
	sale.ClientID = input.ClientID
	sale.Description = input.Description

	if input.PaymentPlan != nil {
		if err := buildPaymentPlan(sale, input.PaymentPlan); err != nil {
			return nil, err
		}
	}

	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}
	s.logger.Info("Sale created",
		zap.String("sale_id", sale.ID.String()),
		zap.String("organization_id", input.OrganizationID.String()),
		zap.Int("payments", len(sale.Payments)))
	return sale, nil
}

// Get returns a sale with its payments
func (s *SaleService) Get(ctx context.Context, organizationID, saleID uuid.UUID) (*ledger.Sale, error) {
	return s.saleRepo.FindByIDForOrg(ctx, organizationID, saleID)
}

// List returns the organization's sales
func (s *SaleService) List(ctx context.Context, organizationID uuid.UUID, filter ledger.SaleFilter) ([]SaleSummary, error) {
	sales, err := s.saleRepo.FindAllForOrg(ctx, organizationID, filter)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	summaries := make([]SaleSummary, len(sales))
	for i := range sales {
		summaries[i] = saleSummaryFrom(&sales[i], now)
	}
	return summaries, nil
}

// MarkPaymentPaid settles one payment. Status and paid date move together
// in a single write.
func (s *SaleService) MarkPaymentPaid(ctx context.Context, input PaymentTransitionInput) (*ledger.SalePayment, error) {
	payment, err := s.saleRepo.FindPaymentForOrg(ctx, input.OrganizationID, input.PaymentID)
	if err != nil {
		return nil, err
	}
	if payment.IsPaid() {
		return nil, shared.NewDomainError("INVALID_STATE", "Payment is already paid")
	}

	paidAt := time.Now()
	if input.PaidDate != nil {
		paidAt = *input.PaidDate
	}
	payment.MarkPaid(paidAt)
	payment.UpdatedAt = time.Now()

	if err := s.saleRepo.SavePayment(ctx, payment); err != nil {
		return nil, err
	}
	s.logger.Info("Payment marked paid",
		zap.String("payment_id", payment.ID.String()),
		zap.String("sale_id", payment.SaleID.String()))
	return payment, nil
}

// MarkPaymentPending reverts a payment to unpaid, clearing its paid date
func (s *SaleService) MarkPaymentPending(ctx context.Context, input PaymentTransitionInput) (*ledger.SalePayment, error) {
	payment, err := s.saleRepo.FindPaymentForOrg(ctx, input.OrganizationID, input.PaymentID)
	if err != nil {
		return nil, err
	}
	if !payment.IsPaid() {
		return nil, shared.NewDomainError("INVALID_STATE", "Payment is not paid")
	}

	payment.MarkPending()
	payment.UpdatedAt = time.Now()

	if err := s.saleRepo.SavePayment(ctx, payment); err != nil {
		return nil, err
	}
	s.logger.Info("Payment reverted to pending",
		zap.String("payment_id", payment.ID.String()),
		zap.String("sale_id", payment.SaleID.String()))
	return payment, nil
}

// Delete removes a sale and its payments
func (s *SaleService) Delete(ctx context.Context, organizationID, saleID uuid.UUID) error {
	if err := s.saleRepo.DeleteForOrg(ctx, organizationID, saleID); err != nil {
		return err
	}
	s.logger.Info("Sale deleted",
		zap.String("sale_id", saleID.String()),
		zap.String("organization_id", organizationID.String()))
	return nil
}

// buildPaymentPlan expands a plan input into advance and installment
// payments. The plan must cover the sale's total amount exactly.
func buildPaymentPlan(sale *ledger.Sale, plan *PaymentPlanInput) error {
	if plan.Installments < 1 {
		return shared.NewDomainError("INVALID_INPUT", "a payment plan needs at least one installment")
	}

	planned := plan.InstallmentValue.Mul(decimal.NewFromInt(int64(plan.Installments)))
	if plan.AdvanceAmount.GreaterThan(decimal.Zero) {
		planned = planned.Add(plan.AdvanceAmount)
		if _, err := sale.AddPayment(ledger.PaymentTypeAdvance, plan.AdvanceAmount, plan.AdvanceDueDate); err != nil {
			return err
		}
	}
	if !planned.Equal(sale.TotalAmount) {
		return shared.NewDomainError("INVALID_INPUT", "payment plan does not cover the sale total")
	}

	total := plan.Installments
	for n := 1; n <= total; n++ {
		// Anchor every step on the first due date so a month-end plan
		// stays at month end (Jan 31, Feb 28, Mar 31) instead of drifting.
		dueDate := ledger.AddMonthsClamped(plan.FirstDueDate, n-1)
		if _, err := sale.AddPayment(ledger.PaymentTypeInstallment, plan.InstallmentValue, dueDate); err != nil {
			return err
		}
		number := n
		count := total
		last := &sale.Payments[len(sale.Payments)-1]
		last.InstallmentNumber = &number
		last.TotalInstallments = &count
	}
	return nil
}

package ledger

import (
	"context"
	"errors"

	"github.com/doug-fsg/controlei/internal/domain/ledger"
	"github.com/doug-fsg/controlei/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RecurringPaymentService tracks which months of a recurring expense have
// been paid.
type RecurringPaymentService struct {
	expenseRepo ledger.ExpenseRepository
	paymentRepo ledger.RecurringExpensePaymentRepository
	logger      *zap.Logger
}

// NewRecurringPaymentService creates a new recurring payment service
func NewRecurringPaymentService(
	expenseRepo ledger.ExpenseRepository,
	paymentRepo ledger.RecurringExpensePaymentRepository,
	logger *zap.Logger,
) *RecurringPaymentService {
	return &RecurringPaymentService{
		expenseRepo: expenseRepo,
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

// RecordPayment records one month of a recurring expense as paid. The
// payment date is floored to the first of its month; paying the same month
// twice is a conflict. A missing, cross-tenant or non-recurring expense is
// reported as not found.
func (s *RecurringPaymentService) RecordPayment(ctx context.Context, input RecordRecurringPaymentInput) (*ledger.RecurringExpensePayment, error) {
	expense, err := s.expenseRepo.FindByIDForOrg(ctx, input.OrganizationID, input.ExpenseID)
	if err != nil {
		return nil, err
	}
	if !expense.IsRecurring {
		return nil, shared.ErrNotFound
	}

	amount := input.Amount
	if amount.LessThanOrEqual(decimal.Zero) {
		amount = expense.Amount
	}

	payment, err := ledger.NewRecurringExpensePayment(input.OrganizationID, input.ExpenseID, input.PaymentDate, amount, input.Notes)
	if err != nil {
		return nil, err
	}
	payment.CreatedBy = &input.CreatedBy

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "This month is already paid for this expense")
		}
		return nil, err
	}

	s.logger.Info("Recurring expense month paid",
		zap.String("expense_id", input.ExpenseID.String()),
		zap.Time("payment_month", payment.PaymentDate))
	return payment, nil
}

// ListPayments returns the payment records of a recurring expense, oldest
// first
func (s *RecurringPaymentService) ListPayments(ctx context.Context, organizationID, expenseID uuid.UUID) ([]ledger.RecurringExpensePayment, error) {
	expense, err := s.expenseRepo.FindByIDForOrg(ctx, organizationID, expenseID)
	if err != nil {
		return nil, err
	}
	if !expense.IsRecurring {
		return nil, shared.ErrNotFound
	}
	return s.paymentRepo.FindByExpense(ctx, organizationID, expenseID)
}

// IsMonthPaid reports whether the month containing the given date has a
// payment record
func (s *RecurringPaymentService) IsMonthPaid(ctx context.Context, input RecordRecurringPaymentInput) (bool, error) {
	_, err := s.paymentRepo.FindByExpenseAndMonth(ctx, input.OrganizationID, input.ExpenseID, input.PaymentDate)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

package ledger

import (
	"time"

	"github.com/doug-fsg/controlei/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NormalizePaymentMonth floors a date to the first day of its calendar
// month. Recurring expense payments are always stored with this normalized
// date; the (expense, month) pair is the sole deduplication key that keeps
// a recurring bill from being paid twice in the same month.
func NormalizePaymentMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// RecurringExpensePayment records one calendar month's payment against a
// recurring expense template. Rows are append-only.
type RecurringExpensePayment struct {
	shared.TenantEntity
	ExpenseID   uuid.UUID
	PaymentDate time.Time // always the first day of the paid month
	Amount      decimal.Decimal
	Notes       string
}

// NewRecurringExpensePayment creates a payment record with the payment
// date floored to the first of its month.
func NewRecurringExpensePayment(organizationID, expenseID uuid.UUID, paymentDate time.Time, amount decimal.Decimal, notes string) (*RecurringExpensePayment, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INPUT", "payment amount must be positive")
	}
	return &RecurringExpensePayment{
		TenantEntity: shared.NewTenantEntity(organizationID),
		ExpenseID:    expenseID,
		PaymentDate:  NormalizePaymentMonth(paymentDate),
		Amount:       amount,
		Notes:        notes,
	}, nil
}

// CoversMonth reports whether this record pays the month containing t
func (p *RecurringExpensePayment) CoversMonth(t time.Time) bool {
	return p.PaymentDate.Equal(NormalizePaymentMonth(t))
}

package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType represents how a sale payment was agreed
type PaymentType string

const (
	PaymentTypeAdvance     PaymentType = "ADVANCE"
	PaymentTypeInstallment PaymentType = "INSTALLMENT"
)

// IsValid checks if the type is a valid PaymentType
func (t PaymentType) IsValid() bool {
	return t == PaymentTypeAdvance || t == PaymentTypeInstallment
}

// String returns the string representation of PaymentType
func (t PaymentType) String() string {
	return string(t)
}

// PaymentStatus represents the derived settlement state of a payment,
// expense, or sale rollup.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusPaid      PaymentStatus = "PAID"
	PaymentStatusPartial   PaymentStatus = "PARTIAL"
	PaymentStatusOverdue   PaymentStatus = "OVERDUE"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusPartial,
		PaymentStatusOverdue, PaymentStatusCompleted:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// IsSettled reports whether the status means fully paid
func (s PaymentStatus) IsSettled() bool {
	return s == PaymentStatusPaid || s == PaymentStatusCompleted
}

// DeriveStatus computes the effective status of an obligation from its
// amount, the amount already paid, and its due date. It is pure: callers
// persist the result, and any write to the paid amount must recompute the
// status within the same transaction so the stored value never drifts.
func DeriveStatus(amount, paidAmount decimal.Decimal, dueDate, now time.Time) PaymentStatus {
	if paidAmount.GreaterThanOrEqual(amount) {
		return PaymentStatusPaid
	}
	if paidAmount.GreaterThan(decimal.Zero) {
		return PaymentStatusPartial
	}
	if dueDate.Before(now) {
		return PaymentStatusOverdue
	}
	return PaymentStatusPending
}

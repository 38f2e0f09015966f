package ledger

import (
	"time"

	"github.com/doug-fsg/controlei/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalePayment is one agreed payment against a sale: an advance or one
// installment. Its persisted status is only ever PENDING or PAID; PARTIAL
// and OVERDUE are derived projections, never stored.
//
// Invariant: Status == PAID ⇔ PaidDate != nil.
type SalePayment struct {
	shared.BaseEntity
	SaleID            uuid.UUID
	Type              PaymentType
	Amount            decimal.Decimal
	DueDate           time.Time
	Status            PaymentStatus
	PaidDate          *time.Time
	InstallmentNumber *int
	TotalInstallments *int
}

// NewSalePayment creates a pending payment for a sale
func NewSalePayment(saleID uuid.UUID, paymentType PaymentType, amount decimal.Decimal, dueDate time.Time) (*SalePayment, error) {
	if !paymentType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "invalid payment type")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INPUT", "payment amount must be positive")
	}
	return &SalePayment{
		BaseEntity: shared.NewBaseEntity(),
		SaleID:     saleID,
		Type:       paymentType,
		Amount:     amount,
		DueDate:    dueDate,
		Status:     PaymentStatusPending,
	}, nil
}

// MarkPaid settles the payment. PaidDate is set together with the status
// so the PAID ⇔ paidDate invariant holds on every write path.
func (p *SalePayment) MarkPaid(paidAt time.Time) {
	p.Status = PaymentStatusPaid
	p.PaidDate = &paidAt
}

// MarkPending reverts the payment to unpaid, clearing PaidDate
func (p *SalePayment) MarkPending() {
	p.Status = PaymentStatusPending
	p.PaidDate = nil
}

// IsPaid reports whether the payment is settled
func (p *SalePayment) IsPaid() bool {
	return p.Status == PaymentStatusPaid
}

// EffectiveStatus recomputes the payment's status against "now". A paid
// payment stays PAID; an unpaid one is OVERDUE once its due date passes.
func (p *SalePayment) EffectiveStatus(now time.Time) PaymentStatus {
	if p.IsPaid() {
		return PaymentStatusPaid
	}
	return DeriveStatus(p.Amount, decimal.Zero, p.DueDate, now)
}

// Sale is a tenant-scoped sale with zero or more payments. A sale without
// payments is a cash sale and is treated as fully paid at sale time.
type Sale struct {
	shared.TenantEntity
	ClientID    *uuid.UUID
	Description string
	TotalAmount decimal.Decimal
	SaleDate    time.Time
	Payments    []SalePayment
}

// NewSale creates a sale for an organization
func NewSale(organizationID, createdBy uuid.UUID, totalAmount decimal.Decimal, saleDate time.Time) (*Sale, error) {
	if totalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INPUT", "sale total amount must be positive")
	}
	return &Sale{
		TenantEntity: shared.NewTenantEntityWithCreator(organizationID, createdBy),
		TotalAmount:  totalAmount,
		SaleDate:     saleDate,
	}, nil
}

// AddPayment appends a payment to the sale's plan
func (s *Sale) AddPayment(paymentType PaymentType, amount decimal.Decimal, dueDate time.Time) (*SalePayment, error) {
	payment, err := NewSalePayment(s.ID, paymentType, amount, dueDate)
	if err != nil {
		return nil, err
	}
	s.Payments = append(s.Payments, *payment)
	return payment, nil
}

// IsCashSale reports whether the sale has no payment plan. Cash sales are
// settled at sale time and never counted against their (nonexistent)
// payments.
func (s *Sale) IsCashSale() bool {
	return len(s.Payments) == 0
}

// PaidAmount sums the amounts of the sale's PAID payments
func (s *Sale) PaidAmount() decimal.Decimal {
	total := decimal.Zero
	for i := range s.Payments {
		if s.Payments[i].IsPaid() {
			total = total.Add(s.Payments[i].Amount)
		}
	}
	return total
}

// IsSettled reports whether the sale is fully paid: cash sales always are,
// otherwise the PAID payments must cover the total amount.
func (s *Sale) IsSettled() bool {
	if s.IsCashSale() {
		return true
	}
	return s.PaidAmount().GreaterThanOrEqual(s.TotalAmount)
}

// RollupStatus derives the sale-level status. COMPLETED is the rollup of a
// settled payment plan; PAID is reserved for cash sales and per-payment
// state.
func (s *Sale) RollupStatus(now time.Time) PaymentStatus {
	if s.IsCashSale() {
		return PaymentStatusPaid
	}
	earliestUnpaidDue := now
	for i := range s.Payments {
		p := &s.Payments[i]
		if !p.IsPaid() && (earliestUnpaidDue.Equal(now) || p.DueDate.Before(earliestUnpaidDue)) {
			earliestUnpaidDue = p.DueDate
		}
	}
	status := DeriveStatus(s.TotalAmount, s.PaidAmount(), earliestUnpaidDue, now)
	if status == PaymentStatusPaid {
		return PaymentStatusCompleted
	}
	return status
}

package ledger

import (
	"strings"
	"time"

	"github.com/doug-fsg/controlei/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecurrenceFrequency represents how often a recurring expense repeats
type RecurrenceFrequency string

const (
	RecurrenceMonthly RecurrenceFrequency = "MONTHLY"
	RecurrenceWeekly  RecurrenceFrequency = "WEEKLY"
	RecurrenceYearly  RecurrenceFrequency = "YEARLY"
)

// IsValid checks if the frequency is a valid RecurrenceFrequency
func (f RecurrenceFrequency) IsValid() bool {
	return f == RecurrenceMonthly || f == RecurrenceWeekly || f == RecurrenceYearly
}

// ExpenseCategory groups expenses within an organization. The name is
// unique per organization (case-sensitive exact match).
type ExpenseCategory struct {
	shared.TenantEntity
	Name  string
	Color string
}

// NewExpenseCategory creates a category for an organization
func NewExpenseCategory(organizationID, createdBy uuid.UUID, name, color string) (*ExpenseCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "category name is required")
	}
	return &ExpenseCategory{
		TenantEntity: shared.NewTenantEntityWithCreator(organizationID, createdBy),
		Name:         name,
		Color:        color,
	}, nil
}

// Recurrence describes a recurring expense template
type Recurrence struct {
	Frequency  RecurrenceFrequency
	DayOfMonth *int
	EndDate    *time.Time
}

// Expense is a tenant-scoped obligation to pay. A recurring expense acts
// as a template; generated occurrences point back via ParentExpenseID.
//
// Invariant: Status settled ⇔ PaidDate != nil.
type Expense struct {
	shared.TenantEntity
	Description     string
	Amount          decimal.Decimal
	DueDate         time.Time
	Status          PaymentStatus
	PaidDate        *time.Time
	CategoryID      *uuid.UUID
	IsRecurring     bool
	Recurrence      *Recurrence
	ParentExpenseID *uuid.UUID
	Notes           string
}

// NewExpense creates a pending expense for an organization
func NewExpense(organizationID, createdBy uuid.UUID, description string, amount decimal.Decimal, dueDate time.Time) (*Expense, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "expense description is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INPUT", "expense amount must be positive")
	}
	return &Expense{
		TenantEntity: shared.NewTenantEntityWithCreator(organizationID, createdBy),
		Description:  description,
		Amount:       amount,
		DueDate:      dueDate,
		Status:       PaymentStatusPending,
	}, nil
}

// SetRecurrence turns the expense into a recurring template
func (e *Expense) SetRecurrence(frequency RecurrenceFrequency, dayOfMonth *int, endDate *time.Time) error {
	if !frequency.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "invalid recurrence frequency")
	}
	if dayOfMonth != nil && (*dayOfMonth < 1 || *dayOfMonth > 31) {
		return shared.NewDomainError("INVALID_INPUT", "day of month must be between 1 and 31")
	}
	e.IsRecurring = true
	e.Recurrence = &Recurrence{
		Frequency:  frequency,
		DayOfMonth: dayOfMonth,
		EndDate:    endDate,
	}
	return nil
}

// MarkPaid settles the expense, keeping status and PaidDate in lockstep
func (e *Expense) MarkPaid(paidAt time.Time) {
	e.Status = PaymentStatusPaid
	e.PaidDate = &paidAt
}

// MarkPending reverts the expense to unpaid, clearing PaidDate
func (e *Expense) MarkPending() {
	e.Status = PaymentStatusPending
	e.PaidDate = nil
}

// IsPaid reports whether the expense is settled
func (e *Expense) IsPaid() bool {
	return e.Status.IsSettled()
}

// EffectiveStatus recomputes the expense status against "now"
func (e *Expense) EffectiveStatus(now time.Time) PaymentStatus {
	if e.IsPaid() {
		return e.Status
	}
	if e.Status == PaymentStatusPartial {
		// Partial expenses keep their stored state; the remainder is still due.
		return PaymentStatusPartial
	}
	return DeriveStatus(e.Amount, decimal.Zero, e.DueDate, now)
}

// RelevantDate returns the date used for period aggregation: the paid date
// when settled, otherwise the due date.
func (e *Expense) RelevantDate() time.Time {
	if e.PaidDate != nil {
		return *e.PaidDate
	}
	return e.DueDate
}

// NextOccurrence returns the due date of the occurrence after the given
// one, honoring the template's day-of-month when set. Returns false when
// the recurrence has ended.
func (e *Expense) NextOccurrence(after time.Time) (time.Time, bool) {
	if !e.IsRecurring || e.Recurrence == nil {
		return time.Time{}, false
	}
	var next time.Time
	switch e.Recurrence.Frequency {
	case RecurrenceWeekly:
		next = after.AddDate(0, 0, 7)
	case RecurrenceYearly:
		next = after.AddDate(1, 0, 0)
	default:
		next = AddMonthsClamped(after, 1)
		if e.Recurrence.DayOfMonth != nil {
			next = clampDayOfMonth(next, *e.Recurrence.DayOfMonth)
		}
	}
	if e.Recurrence.EndDate != nil && next.After(*e.Recurrence.EndDate) {
		return time.Time{}, false
	}
	return next, true
}

// AddMonthsClamped advances t by the given number of months, clamping the
// day to the target month's last day instead of rolling over into the
// following month (Jan 31 plus one month is Feb 28, not Mar 3).
func AddMonthsClamped(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location()).
		AddDate(0, months, 0)
	return clampDayOfMonth(first, t.Day())
}

// clampDayOfMonth moves t to the requested day within its month, clamping
// to the month's last day (e.g. day 31 in February).
func clampDayOfMonth(t time.Time, day int) time.Time {
	firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
	lastDay := firstOfNext.AddDate(0, 0, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(t.Year(), t.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

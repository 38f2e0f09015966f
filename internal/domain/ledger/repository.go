package ledger

import (
	"context"
	"time"

	"github.com/doug-fsg/controlei/internal/domain/shared"
	"github.com/google/uuid"
)

// SaleFilter defines filtering options for sale queries
type SaleFilter struct {
	shared.Filter
	ClientID *uuid.UUID
	From     *time.Time // saleDate range start
	To       *time.Time // saleDate range end
}

// ExpenseFilter defines filtering options for expense queries
type ExpenseFilter struct {
	shared.Filter
	CategoryID  *uuid.UUID
	Status      *PaymentStatus
	IsRecurring *bool
	From        *time.Time // dueDate range start
	To          *time.Time // dueDate range end
}

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	// FindByIDForOrg finds a client by ID within an organization
	FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*Client, error)

	// FindAllForOrg finds all clients of an organization
	FindAllForOrg(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]Client, error)

	// CountForOrg counts the organization's clients
	CountForOrg(ctx context.Context, organizationID uuid.UUID) (int64, error)

	// Save creates or updates a client
	Save(ctx context.Context, client *Client) error

	// DeleteForOrg deletes a client within an organization
	DeleteForOrg(ctx context.Context, organizationID, id uuid.UUID) error
}

// SaleRepository defines the interface for sale persistence. Every finder
// loads the sale's payments; a sale without its payments cannot be
// classified as cash or credit.
type SaleRepository interface {
	// FindByIDForOrg finds a sale with payments within an organization
	FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*Sale, error)

	// FindAllForOrg finds the organization's sales with filtering
	FindAllForOrg(ctx context.Context, organizationID uuid.UUID, filter SaleFilter) ([]Sale, error)

	// FindForPeriod finds sales relevant to an aggregation window: sales
	// dated in range, sales owning a payment due or paid in range, and
	// sales with unpaid payments due before now. The now bound keeps
	// overdue rows visible even when the requested range lies in the past.
	FindForPeriod(ctx context.Context, organizationID uuid.UUID, start, end, now time.Time) ([]Sale, error)

	// FindRecent finds the most recent sales by sale date
	FindRecent(ctx context.Context, organizationID uuid.UUID, limit int) ([]Sale, error)

	// FindPaymentForOrg finds a single payment, checking the owning sale's
	// organization. Cross-tenant lookups report not found.
	FindPaymentForOrg(ctx context.Context, organizationID, paymentID uuid.UUID) (*SalePayment, error)

	// Save creates or updates a sale together with its payments
	Save(ctx context.Context, sale *Sale) error

	// SavePayment persists a payment transition. The status and paidDate
	// fields are written in one statement so they cannot drift.
	SavePayment(ctx context.Context, payment *SalePayment) error

	// DeleteForOrg deletes a sale and its payments within an organization
	DeleteForOrg(ctx context.Context, organizationID, id uuid.UUID) error
}

// ExpenseCategoryRepository defines the interface for category persistence
type ExpenseCategoryRepository interface {
	// FindByIDForOrg finds a category by ID within an organization
	FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*ExpenseCategory, error)

	// FindByNameForOrg finds a category by exact name within an organization
	FindByNameForOrg(ctx context.Context, organizationID uuid.UUID, name string) (*ExpenseCategory, error)

	// FindAllForOrg finds all categories of an organization
	FindAllForOrg(ctx context.Context, organizationID uuid.UUID) ([]ExpenseCategory, error)

	// Save creates or updates a category. A duplicate name within the
	// organization surfaces as shared.ErrAlreadyExists.
	Save(ctx context.Context, category *ExpenseCategory) error

	// DeleteForOrg deletes a category within an organization
	DeleteForOrg(ctx context.Context, organizationID, id uuid.UUID) error
}

// ExpenseRepository defines the interface for expense persistence
type ExpenseRepository interface {
	// FindByIDForOrg finds an expense by ID within an organization
	FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*Expense, error)

	// FindAllForOrg finds the organization's expenses with filtering
	FindAllForOrg(ctx context.Context, organizationID uuid.UUID, filter ExpenseFilter) ([]Expense, error)

	// FindForPeriod finds expenses whose due or paid date falls in range,
	// plus unpaid expenses due before now. The now bound keeps overdue
	// rows visible even when the requested range lies in the past.
	FindForPeriod(ctx context.Context, organizationID uuid.UUID, start, end, now time.Time) ([]Expense, error)

	// FindRecurringTemplates finds the organization's recurring expense
	// templates, oldest due date first. Generated occurrence rows are
	// excluded.
	FindRecurringTemplates(ctx context.Context, organizationID uuid.UUID) ([]Expense, error)

	// FindRecent finds the most recent expenses by due date
	FindRecent(ctx context.Context, organizationID uuid.UUID, limit int) ([]Expense, error)

	// Save creates or updates an expense
	Save(ctx context.Context, expense *Expense) error

	// DeleteForOrg deletes an expense within an organization
	DeleteForOrg(ctx context.Context, organizationID, id uuid.UUID) error
}

// RecurringExpensePaymentRepository defines the interface for recurring
// payment records. Uniqueness on (expense, normalized month) is enforced
// by the store; a losing concurrent insert surfaces as
// shared.ErrAlreadyExists.
type RecurringExpensePaymentRepository interface {
	// FindByExpenseAndMonth finds the record paying the month containing
	// the given date, if any
	FindByExpenseAndMonth(ctx context.Context, organizationID, expenseID uuid.UUID, month time.Time) (*RecurringExpensePayment, error)

	// FindByExpense finds all payment records of an expense, oldest first
	FindByExpense(ctx context.Context, organizationID, expenseID uuid.UUID) ([]RecurringExpensePayment, error)

	// Save inserts a payment record (append-only, no upsert)
	Save(ctx context.Context, payment *RecurringExpensePayment) error
}

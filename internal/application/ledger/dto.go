package ledger

import (
	"time"

	"github.com/doug-fsg/controlei/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateClientInput contains the data for a new client
type CreateClientInput struct {
	OrganizationID uuid.UUID
	CreatedBy      uuid.UUID
	Name           string
	Email          string
	Phone          string
	Document       string
	Address        string
}

// UpdateClientInput replaces a client's editable fields
type UpdateClientInput struct {
	OrganizationID uuid.UUID
	ClientID       uuid.UUID
	Name           string
	Email          string
	Phone          string
	Document       string
	Address        string
}

// CreateCategoryInput contains the data for a new expense category
type CreateCategoryInput struct {
	OrganizationID uuid.UUID
	CreatedBy      uuid.UUID
	Name           string
	Color          string
}

// UpdateCategoryInput renames or recolors a category
type UpdateCategoryInput struct {
	OrganizationID uuid.UUID
	CategoryID     uuid.UUID
	Name           string
	Color          string
}

// PaymentPlanInput describes the payment plan of a credit sale. A sale
// created with a nil plan is a cash sale.
type PaymentPlanInput struct {
	AdvanceAmount    decimal.Decimal // zero for no advance
	AdvanceDueDate   time.Time
	Installments     int
	InstallmentValue decimal.Decimal
	FirstDueDate     time.Time
}

// CreateSaleInput contains the data for a new sale
type CreateSaleInput struct {
	OrganizationID uuid.UUID
	CreatedBy      uuid.UUID
	ClientID       *uuid.UUID
	Description    string
	TotalAmount    decimal.Decimal
	SaleDate       time.Time
	PaymentPlan    *PaymentPlanInput
}

// PaymentTransitionInput marks a sale payment paid or pending
type PaymentTransitionInput struct {
	OrganizationID uuid.UUID
	PaymentID      uuid.UUID
	PaidDate       *time.Time // nil means "now" when marking paid
}

// RecurrenceInput describes a recurring expense template
type RecurrenceInput struct {
	Frequency  string
	DayOfMonth *int
	EndDate    *time.Time
}

// CreateExpenseInput contains the data for a new expense
type CreateExpenseInput struct {
	OrganizationID uuid.UUID
	CreatedBy      uuid.UUID
	Description    string
	Amount         decimal.Decimal
	DueDate        time.Time
	CategoryID     *uuid.UUID
	Notes          string
	Recurrence     *RecurrenceInput
}

// UpdateExpenseInput replaces an expense's editable fields
type UpdateExpenseInput struct {
	OrganizationID uuid.UUID
	ExpenseID      uuid.UUID
	Description    string
	Amount         decimal.Decimal
	DueDate        time.Time
	CategoryID     *uuid.UUID
	Notes          string
}

// ExpenseTransitionInput marks an expense paid or pending
type ExpenseTransitionInput struct {
	OrganizationID uuid.UUID
	ExpenseID      uuid.UUID
	PaidDate       *time.Time // nil means "now" when marking paid
}

// RecordRecurringPaymentInput records one month of a recurring expense as paid
type RecordRecurringPaymentInput struct {
	OrganizationID uuid.UUID
	CreatedBy      uuid.UUID
	ExpenseID      uuid.UUID
	PaymentDate    time.Time
	Amount         decimal.Decimal // zero means "use the expense amount"
	Notes          string
}

// DashboardQuery selects the aggregation window
type DashboardQuery struct {
	OrganizationID uuid.UUID
	StartDate      time.Time
	EndDate        time.Time
}

// DashboardResult is the aggregated view behind the main screen
type DashboardResult struct {
	Totals         ledger.PeriodTotals `json:"totals"`
	RecentSales    []SaleSummary       `json:"recent_sales"`
	RecentExpenses []ExpenseSummary    `json:"recent_expenses"`
	TotalClients   int64               `json:"total_clients"`
}

// SaleSummary is the compact sale projection used in listings
type SaleSummary struct {
	ID          uuid.UUID            `json:"id"`
	ClientID    *uuid.UUID           `json:"client_id,omitempty"`
	Description string               `json:"description"`
	TotalAmount decimal.Decimal      `json:"total_amount"`
	PaidAmount  decimal.Decimal      `json:"paid_amount"`
	SaleDate    time.Time            `json:"sale_date"`
	Status      ledger.PaymentStatus `json:"status"`
}

// ExpenseSummary is the compact expense projection used in listings
type ExpenseSummary struct {
	ID          uuid.UUID            `json:"id"`
	Description string               `json:"description"`
	Amount      decimal.Decimal      `json:"amount"`
	DueDate     time.Time            `json:"due_date"`
	Status      ledger.PaymentStatus `json:"status"`
	IsRecurring bool                 `json:"is_recurring"`
	CategoryID  *uuid.UUID           `json:"category_id,omitempty"`
}

// CashFlowQuery selects and filters the cash-flow projection window
type CashFlowQuery struct {
	OrganizationID uuid.UUID
	StartDate      time.Time
	EndDate        time.Time
	Granularity    string
	Type           *ledger.CashFlowType
	Status         *ledger.PaymentStatus
	CategoryID     *uuid.UUID
}

func saleSummaryFrom(sale *ledger.Sale, now time.Time) SaleSummary {
	paid := sale.PaidAmount()
	if sale.IsCashSale() {
		paid = sale.TotalAmount
	}
	return SaleSummary{
		ID:          sale.ID,
		ClientID:    sale.ClientID,
		Description: sale.Description,
		TotalAmount: sale.TotalAmount,
		PaidAmount:  paid,
		SaleDate:    sale.SaleDate,
		Status:      sale.RollupStatus(now),
	}
}

func expenseSummaryFrom(expense *ledger.Expense, now time.Time) ExpenseSummary {
	return ExpenseSummary{
		ID:          expense.ID,
		Description: expense.Description,
		Amount:      expense.Amount,
		DueDate:     expense.DueDate,
		Status:      expense.EffectiveStatus(now),
		IsRecurring: expense.IsRecurring,
		CategoryID:  expense.CategoryID,
	}
}

package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/doug-fsg/controlei/internal/domain/ledger"
	"github.com/doug-fsg/controlei/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ExpenseService manages expenses, including recurring templates.
type ExpenseService struct {
	expenseRepo  ledger.ExpenseRepository
	categoryRepo ledger.ExpenseCategoryRepository
	logger       *zap.Logger
}

// NewExpenseService creates a new expense service
func NewExpenseService(
	expenseRepo ledger.ExpenseRepository,
	categoryRepo ledger.ExpenseCategoryRepository,
	logger *zap.Logger,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// Create creates an expense, optionally as a recurring template
func (s *ExpenseService) Create(ctx context.Context, input CreateExpenseInput) (*ledger.Expense, error) {
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.FindByIDForOrg(ctx, input.OrganizationID, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	expense, err := ledger.NewExpense(input.OrganizationID, input.CreatedBy, input.Description, input.Amount, input.DueDate)
	if err != nil {
		return nil, err
	}
	expense.CategoryID = input.CategoryID
	expense.Notes = input.Notes

	if input.Recurrence != nil {
		frequency := ledger.RecurrenceFrequency(strings.ToUpper(input.Recurrence.Frequency))
		if err := expense.SetRecurrence(frequency, input.Recurrence.DayOfMonth, input.Recurrence.EndDate); err != nil {
			return nil, err
		}
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	s.logger.Info("Expense created",
		zap.String("expense_id", expense.ID.String()),
		zap.String("organization_id", input.OrganizationID.String()),
		zap.Bool("recurring", expense.IsRecurring))
	return expense, nil
}

// Get returns an expense within the organization
func (s *ExpenseService) Get(ctx context.Context, organizationID, expenseID uuid.UUID) (*ledger.Expense, error) {
	return s.expenseRepo.FindByIDForOrg(ctx, organizationID, expenseID)
}

// List returns the organization's expenses
func (s *ExpenseService) List(ctx context.Context, organizationID uuid.UUID, filter ledger.ExpenseFilter) ([]ExpenseSummary, error) {
	expenses, err := s.expenseRepo.FindAllForOrg(ctx, organizationID, filter)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	summaries := make([]ExpenseSummary, len(expenses))
	for i := range expenses {
		summaries[i] = expenseSummaryFrom(&expenses[i], now)
	}
	return summaries, nil
}

// Update replaces an expense's editable fields. Recurrence settings are
// immutable after creation; occurrences carry their own amounts.
func (s *ExpenseService) Update(ctx context.Context, input UpdateExpenseInput) (*ledger.Expense, error) {
	expense, err := s.expenseRepo.FindByIDForOrg(ctx, input.OrganizationID, input.ExpenseID)
	if err != nil {
		return nil, err
	}
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.FindByIDForOrg(ctx, input.OrganizationID, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "expense description is required")
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INPUT", "expense amount must be positive")
	}

	expense.Description = description
	expense.Amount = input.Amount
	expense.DueDate = input.DueDate
	expense.CategoryID = input.CategoryID
	expense.Notes = input.Notes
	expense.UpdatedAt = time.Now()

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// MarkPaid settles an expense
func (s *ExpenseService) MarkPaid(ctx context.Context, input ExpenseTransitionInput) (*ledger.Expense, error) {
	expense, err := s.expenseRepo.FindByIDForOrg(ctx, input.OrganizationID, input.ExpenseID)
	if err != nil {
		return nil, err
	}
	if expense.IsPaid() {
		return nil, shared.NewDomainError("INVALID_STATE", "Expense is already paid")
	}

	paidAt := time.Now()
	if input.PaidDate != nil {
		paidAt = *input.PaidDate
	}
	expense.MarkPaid(paidAt)
	expense.UpdatedAt = time.Now()

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	s.logger.Info("Expense marked paid", zap.String("expense_id", expense.ID.String()))
	return expense, nil
}

// MarkPending reverts an expense to unpaid
func (s *ExpenseService) MarkPending(ctx context.Context, input ExpenseTransitionInput) (*ledger.Expense, error) {
	expense, err := s.expenseRepo.FindByIDForOrg(ctx, input.OrganizationID, input.ExpenseID)
	if err != nil {
		return nil, err
	}
	if !expense.IsPaid() {
		return nil, shared.NewDomainError("INVALID_STATE", "Expense is not paid")
	}

	expense.MarkPending()
	expense.UpdatedAt = time.Now()

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	s.logger.Info("Expense reverted to pending", zap.String("expense_id", expense.ID.String()))
	return expense, nil
}

// Delete removes an expense together with its recurring payment records
func (s *ExpenseService) Delete(ctx context.Context, organizationID, expenseID uuid.UUID) error {
	if err := s.expenseRepo.DeleteForOrg(ctx, organizationID, expenseID); err != nil {
		return err
	}
	s.logger.Info("Expense deleted",
		zap.String("expense_id", expenseID.String()),
		zap.String("organization_id", organizationID.String()))
	return nil
}

package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/doug-fsg/controlei/internal/domain/ledger"
	"github.com/doug-fsg/controlei/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func recurringExpense(t *testing.T, organizationID uuid.UUID) *ledger.Expense {
	t.Helper()
	expense, err := ledger.NewExpense(organizationID, uuid.New(), "Office rent",
		decimal.RequireFromString("1500.00"), time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, expense.SetRecurrence(ledger.RecurrenceMonthly, nil, nil))
	return expense
}

func TestRecurringPaymentService_RecordPayment(t *testing.T) {
	organizationID := uuid.New()
	userID := uuid.New()

	t.Run("floors the payment date to the first of the month", func(t *testing.T) {
		expenseRepo := new(mockExpenseRepository)
		paymentRepo := new(mockRecurringPaymentRepository)
		service := NewRecurringPaymentService(expenseRepo, paymentRepo, zap.NewNop())

		expense := recurringExpense(t, organizationID)
		expenseRepo.On("FindByIDForOrg", mock.Anything, organizationID, expense.ID).Return(expense, nil)
		paymentRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		record, err := service.RecordPayment(context.Background(), RecordRecurringPaymentInput{
			OrganizationID: organizationID,
			CreatedBy:      userID,
			ExpenseID:      expense.ID,
			PaymentDate:    time.Date(2024, time.March, 19, 15, 4, 5, 0, time.UTC),
		})
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), record.PaymentDate)
		assert.True(t, record.Amount.Equal(expense.Amount), "falls back to the expense amount")
		paymentRepo.AssertExpectations(t)
	})

	t.Run("reports conflict when the month is already paid", func(t *testing.T) {
		expenseRepo := new(mockExpenseRepository)
		paymentRepo := new(mockRecurringPaymentRepository)
		service := NewRecurringPaymentService(expenseRepo, paymentRepo, zap.NewNop())

		expense := recurringExpense(t, organizationID)
		expenseRepo.On("FindByIDForOrg", mock.Anything, organizationID, expense.ID).Return(expense, nil)
		paymentRepo.On("Save", mock.Anything, mock.Anything).Return(shared.ErrAlreadyExists)

		_, err := service.RecordPayment(context.Background(), RecordRecurringPaymentInput{
			OrganizationID: organizationID,
			CreatedBy:      userID,
			ExpenseID:      expense.ID,
			PaymentDate:    time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC),
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("reports not found for a missing or cross-tenant expense", func(t *testing.T) {
		expenseRepo := new(mockExpenseRepository)
		paymentRepo := new(mockRecurringPaymentRepository)
		service := NewRecurringPaymentService(expenseRepo, paymentRepo, zap.NewNop())

		expenseID := uuid.New()
		expenseRepo.On("FindByIDForOrg", mock.Anything, organizationID, expenseID).Return(nil, shared.ErrNotFound)

		_, err := service.RecordPayment(context.Background(), RecordRecurringPaymentInput{
			OrganizationID: organizationID,
			ExpenseID:      expenseID,
			PaymentDate:    time.Now(),
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("reports not found for a non-recurring expense", func(t *testing.T) {
		expenseRepo := new(mockExpenseRepository)
		paymentRepo := new(mockRecurringPaymentRepository)
		service := NewRecurringPaymentService(expenseRepo, paymentRepo, zap.NewNop())

		expense, err := ledger.NewExpense(organizationID, userID, "One-off purchase",
			decimal.RequireFromString("80.00"), time.Now())
		require.NoError(t, err)
		expenseRepo.On("FindByIDForOrg", mock.Anything, organizationID, expense.ID).Return(expense, nil)

		_, err = service.RecordPayment(context.Background(), RecordRecurringPaymentInput{
			OrganizationID: organizationID,
			ExpenseID:      expense.ID,
			PaymentDate:    time.Now(),
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		paymentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("keeps an explicit amount override", func(t *testing.T) {
		expenseRepo := new(mockExpenseRepository)
		paymentRepo := new(mockRecurringPaymentRepository)
		service := NewRecurringPaymentService(expenseRepo, paymentRepo, zap.NewNop())

		expense := recurringExpense(t, organizationID)
		expenseRepo.On("FindByIDForOrg", mock.Anything, organizationID, expense.ID).Return(expense, nil)
		paymentRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		record, err := service.RecordPayment(context.Background(), RecordRecurringPaymentInput{
			OrganizationID: organizationID,
			CreatedBy:      userID,
			ExpenseID:      expense.ID,
			PaymentDate:    time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
			Amount:         decimal.RequireFromString("1625.50"),
			Notes:          "adjusted for utilities",
		})
		require.NoError(t, err)
		assert.True(t, record.Amount.Equal(decimal.RequireFromString("1625.50")))
		assert.Equal(t, "adjusted for utilities", record.Notes)
	})
}

func TestRecurringPaymentService_IsMonthPaid(t *testing.T) {
	organizationID := uuid.New()
	expenseID := uuid.New()

	expenseRepo := new(mockExpenseRepository)
	paymentRepo := new(mockRecurringPaymentRepository)
	service := NewRecurringPaymentService(expenseRepo, paymentRepo, zap.NewNop())

	month := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)
	paymentRepo.On("FindByExpenseAndMonth", mock.Anything, organizationID, expenseID, month).
		Return(nil, shared.ErrNotFound)

	paid, err := service.IsMonthPaid(context.Background(), RecordRecurringPaymentInput{
		OrganizationID: organizationID,
		ExpenseID:      expenseID,
		PaymentDate:    month,
	})
	require.NoError(t, err)
	assert.False(t, paid)
}

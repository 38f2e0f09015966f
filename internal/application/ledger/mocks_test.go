package ledger

import (
	"context"
	"time"

	"github.com/doug-fsg/controlei/internal/domain/ledger"
	"github.com/doug-fsg/controlei/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockClientRepository struct {
	mock.Mock
}

func (m *mockClientRepository) FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*ledger.Client, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Client), args.Error(1)
}

func (m *mockClientRepository) FindAllForOrg(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]ledger.Client, error) {
	args := m.Called(ctx, organizationID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Client), args.Error(1)
}

func (m *mockClientRepository) CountForOrg(ctx context.Context, organizationID uuid.UUID) (int64, error) {
	args := m.Called(ctx, organizationID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockClientRepository) Save(ctx context.Context, client *ledger.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *mockClientRepository) DeleteForOrg(ctx context.Context, organizationID, id uuid.UUID) error {
	args := m.Called(ctx, organizationID, id)
	return args.Error(0)
}

type mockSaleRepository struct {
	mock.Mock
}

func (m *mockSaleRepository) FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*ledger.Sale, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Sale), args.Error(1)
}

func (m *mockSaleRepository) FindAllForOrg(ctx context.Context, organizationID uuid.UUID, filter ledger.SaleFilter) ([]ledger.Sale, error) {
	args := m.Called(ctx, organizationID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Sale), args.Error(1)
}

func (m *mockSaleRepository) FindForPeriod(ctx context.Context, organizationID uuid.UUID, start, end, now time.Time) ([]ledger.Sale, error) {
	args := m.Called(ctx, organizationID, start, end, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Sale), args.Error(1)
}

func (m *mockSaleRepository) FindRecent(ctx context.Context, organizationID uuid.UUID, limit int) ([]ledger.Sale, error) {
	args := m.Called(ctx, organizationID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Sale), args.Error(1)
}

func (m *mockSaleRepository) FindPaymentForOrg(ctx context.Context, organizationID, paymentID uuid.UUID) (*ledger.SalePayment, error) {
	args := m.Called(ctx, organizationID, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.SalePayment), args.Error(1)
}

func (m *mockSaleRepository) Save(ctx context.Context, sale *ledger.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *mockSaleRepository) SavePayment(ctx context.Context, payment *ledger.SalePayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *mockSaleRepository) DeleteForOrg(ctx context.Context, organizationID, id uuid.UUID) error {
	args := m.Called(ctx, organizationID, id)
	return args.Error(0)
}

type mockExpenseCategoryRepository struct {
	mock.Mock
}

func (m *mockExpenseCategoryRepository) FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*ledger.ExpenseCategory, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.ExpenseCategory), args.Error(1)
}

func (m *mockExpenseCategoryRepository) FindByNameForOrg(ctx context.Context, organizationID uuid.UUID, name string) (*ledger.ExpenseCategory, error) {
	args := m.Called(ctx, organizationID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.ExpenseCategory), args.Error(1)
}

func (m *mockExpenseCategoryRepository) FindAllForOrg(ctx context.Context, organizationID uuid.UUID) ([]ledger.ExpenseCategory, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.ExpenseCategory), args.Error(1)
}

func (m *mockExpenseCategoryRepository) Save(ctx context.Context, category *ledger.ExpenseCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *mockExpenseCategoryRepository) DeleteForOrg(ctx context.Context, organizationID, id uuid.UUID) error {
	args := m.Called(ctx, organizationID, id)
	return args.Error(0)
}

type mockExpenseRepository struct {
	mock.Mock
}

func (m *mockExpenseRepository) FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*ledger.Expense, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Expense), args.Error(1)
}

func (m *mockExpenseRepository) FindAllForOrg(ctx context.Context, organizationID uuid.UUID, filter ledger.ExpenseFilter) ([]ledger.Expense, error) {
	args := m.Called(ctx, organizationID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Expense), args.Error(1)
}

func (m *mockExpenseRepository) FindForPeriod(ctx context.Context, organizationID uuid.UUID, start, end, now time.Time) ([]ledger.Expense, error) {
	args := m.Called(ctx, organizationID, start, end, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Expense), args.Error(1)
}

func (m *mockExpenseRepository) FindRecurringTemplates(ctx context.Context, organizationID uuid.UUID) ([]ledger.Expense, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Expense), args.Error(1)
}

func (m *mockExpenseRepository) FindRecent(ctx context.Context, organizationID uuid.UUID, limit int) ([]ledger.Expense, error) {
	args := m.Called(ctx, organizationID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Expense), args.Error(1)
}

func (m *mockExpenseRepository) Save(ctx context.Context, expense *ledger.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *mockExpenseRepository) DeleteForOrg(ctx context.Context, organizationID, id uuid.UUID) error {
	args := m.Called(ctx, organizationID, id)
	return args.Error(0)
}

type mockRecurringPaymentRepository struct {
	mock.Mock
}

func (m *mockRecurringPaymentRepository) FindByExpenseAndMonth(ctx context.Context, organizationID, expenseID uuid.UUID, month time.Time) (*ledger.RecurringExpensePayment, error) {
	args := m.Called(ctx, organizationID, expenseID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.RecurringExpensePayment), args.Error(1)
}

func (m *mockRecurringPaymentRepository) FindByExpense(ctx context.Context, organizationID, expenseID uuid.UUID) ([]ledger.RecurringExpensePayment, error) {
	args := m.Called(ctx, organizationID, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.RecurringExpensePayment), args.Error(1)
}

func (m *mockRecurringPaymentRepository) Save(ctx context.Context, payment *ledger.RecurringExpensePayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

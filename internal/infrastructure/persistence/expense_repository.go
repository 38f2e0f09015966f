package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-fsg/controlei/internal/domain/ledger"
	"github.com/doug-fsg/controlei/internal/domain/shared"
	"github.com/doug-fsg/controlei/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormExpenseRepository implements ledger.ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByIDForOrg finds an expense by ID within an organization
func (r *GormExpenseRepository) FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*ledger.Expense, error) {
	var model models.ExpenseModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForOrg finds the organization's expenses with filtering
func (r *GormExpenseRepository) FindAllForOrg(ctx context.Context, organizationID uuid.UUID, filter ledger.ExpenseFilter) ([]ledger.Expense, error) {
	query := r.db.WithContext(ctx).
		Model(&models.ExpenseModel{}).
		Where("organization_id = ?", organizationID)

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.IsRecurring != nil {
		if *filter.IsRecurring {
			query = query.Where("recurrence_frequency IS NOT NULL")
		} else {
			query = query.Where("recurrence_frequency IS NULL")
		}
	}
	if filter.From != nil {
		query = query.Where("due_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("due_date <= ?", *filter.To)
	}
	if filter.Search != "" {
		query = query.Where("description ILIKE ?", "%"+filter.Search+"%")
	}

	orderBy := ValidateSortField(filter.OrderBy, ExpenseSortFields, "due_date")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir)).
		Offset(filter.Offset()).
		Limit(filter.Limit())

	var expenseModels []models.ExpenseModel
	if err := query.Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	return expensesToDomain(expenseModels), nil
}

// FindForPeriod finds expenses whose due or paid date falls in range, plus
// unpaid expenses due before now. Overdue is judged against now, not the
// range end, so a past-range query still surfaces every overdue expense.
func (r *GormExpenseRepository) FindForPeriod(ctx context.Context, organizationID uuid.UUID, start, end, now time.Time) ([]ledger.Expense, error) {
	var expenseModels []models.ExpenseModel
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Where(
			r.db.Where("due_date >= ? AND due_date <= ?", start, end).
				Or("paid_date >= ? AND paid_date <= ?", start, end).
				Or("status NOT IN ? AND due_date < ?", settledStatuses, now),
		).
		Order("due_date ASC").
		Find(&expenseModels).Error
	if err != nil {
		return nil, err
	}
	return expensesToDomain(expenseModels), nil
}

// FindRecurringTemplates finds recurring expense templates, excluding
// generated occurrence rows
func (r *GormExpenseRepository) FindRecurringTemplates(ctx context.Context, organizationID uuid.UUID) ([]ledger.Expense, error) {
	var expenseModels []models.ExpenseModel
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Where("is_recurring = ? AND parent_expense_id IS NULL", true).
		Order("due_date ASC").
		Find(&expenseModels).Error
	if err != nil {
		return nil, err
	}
	return expensesToDomain(expenseModels), nil
}

// FindRecent finds the most recent expenses by due date
func (r *GormExpenseRepository) FindRecent(ctx context.Context, organizationID uuid.UUID, limit int) ([]ledger.Expense, error) {
	var expenseModels []models.ExpenseModel
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("due_date DESC, created_at DESC").
		Limit(limit).
		Find(&expenseModels).Error
	if err != nil {
		return nil, err
	}
	return expensesToDomain(expenseModels), nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *ledger.Expense) error {
	model := models.ExpenseModelFromDomain(expense)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(model).Error
}

// DeleteForOrg deletes an expense within an organization
func (r *GormExpenseRepository) DeleteForOrg(ctx context.Context, organizationID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Where("organization_id = ? AND id = ?", organizationID, id).
			Delete(&models.ExpenseModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Where("expense_id = ?", id).
			Delete(&models.RecurringExpensePaymentModel{}).Error
	})
}

func expensesToDomain(expenseModels []models.ExpenseModel) []ledger.Expense {
	expenses := make([]ledger.Expense, len(expenseModels))
	for i, model := range expenseModels {
		expenses[i] = *model.ToDomain()
	}
	return expenses
}

var _ ledger.ExpenseRepository = (*GormExpenseRepository)(nil)

package persistence

import (
	"context"
	"errors"

	"github.com/doug-fsg/controlei/internal/domain/ledger"
	"github.com/doug-fsg/controlei/internal/domain/shared"
	"github.com/doug-fsg/controlei/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormExpenseCategoryRepository implements ledger.ExpenseCategoryRepository using GORM
type GormExpenseCategoryRepository struct {
	db *gorm.DB
}

// NewGormExpenseCategoryRepository creates a new GormExpenseCategoryRepository
func NewGormExpenseCategoryRepository(db *gorm.DB) *GormExpenseCategoryRepository {
	return &GormExpenseCategoryRepository{db: db}
}

// FindByIDForOrg finds a category by ID within an organization
func (r *GormExpenseCategoryRepository) FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*ledger.ExpenseCategory, error) {
	var model models.ExpenseCategoryModel
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

// FindByNameForOrg finds a category by exact name within an organization
func (r *GormExpenseCategoryRepository) FindByNameForOrg(ctx context.Context, organizationID uuid.UUID, name string) (*ledger.ExpenseCategory, error) {
	var model models.ExpenseCategoryModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND name = ?", organizationID, name).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForOrg finds all categories of an organization
func (r *GormExpenseCategoryRepository) FindAllForOrg(ctx context.Context, organizationID uuid.UUID) ([]ledger.ExpenseCategory, error) {
	var categoryModels []models.ExpenseCategoryModel
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("name ASC").
		Find(&categoryModels).Error
	if err != nil {
		return nil, err
	}

	categories := make([]ledger.ExpenseCategory, len(categoryModels))
	for i, model := range categoryModels {
		categories[i] = *model.ToDomain()
	}
	return categories, nil
}

// Save creates or updates a category. A duplicate name within the
// organization surfaces as shared.ErrAlreadyExists.
func (r *GormExpenseCategoryRepository) Save(ctx context.Context, category *ledger.ExpenseCategory) error {
	model := models.ExpenseCategoryModelFromDomain(category)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(model).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists
	}
	return err
}

// DeleteForOrg deletes a category within an organization
func (r *GormExpenseCategoryRepository) DeleteForOrg(ctx context.Context, organizationID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", organizationID, id).
		Delete(&models.ExpenseCategoryModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ ledger.ExpenseCategoryRepository = (*GormExpenseCategoryRepository)(nil)

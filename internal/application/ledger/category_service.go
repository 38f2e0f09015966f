package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/doug-fsg/controlei/internal/domain/ledger"
	"github.com/doug-fsg/controlei/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CategoryService manages expense categories.
type CategoryService struct {
	categoryRepo ledger.ExpenseCategoryRepository
	logger       *zap.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo ledger.ExpenseCategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, logger: logger}
}

// Create creates a category. The name must be unique per organization.
func (s *CategoryService) Create(ctx context.Context, input CreateCategoryInput) (*ledger.ExpenseCategory, error) {
	category, err := ledger.NewExpenseCategory(input.OrganizationID, input.CreatedBy, input.Name, input.Color)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	s.logger.Info("Category created",
		zap.String("category_id", category.ID.String()),
		zap.String("organization_id", input.OrganizationID.String()))
	return category, nil
}

// List returns all categories of the organization
func (s *CategoryService) List(ctx context.Context, organizationID uuid.UUID) ([]ledger.ExpenseCategory, error) {
	return s.categoryRepo.FindAllForOrg(ctx, organizationID)
}

// Update renames or recolors a category
func (s *CategoryService) Update(ctx context.Context, input UpdateCategoryInput) (*ledger.ExpenseCategory, error) {
	category, err := s.categoryRepo.FindByIDForOrg(ctx, input.OrganizationID, input.CategoryID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "category name is required")
	}
	category.Name = name
	category.Color = input.Color
	category.UpdatedAt = time.Now()

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category
func (s *CategoryService) Delete(ctx context.Context, organizationID, categoryID uuid.UUID) error {
	return s.categoryRepo.DeleteForOrg(ctx, organizationID, categoryID)
}

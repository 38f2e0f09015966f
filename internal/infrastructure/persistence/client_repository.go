package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-fsg/controlei/internal/domain/ledger"
	"github.com/doug-fsg/controlei/internal/domain/shared"
	"github.com/doug-fsg/controlei/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormClientRepository implements ledger.ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByIDForOrg finds a client by ID within an organization
func (r *GormClientRepository) FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*ledger.Client, error) {
	var model models.ClientModel
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

// FindAllForOrg finds all clients of an organization
func (r *GormClientRepository) FindAllForOrg(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]ledger.Client, error) {
	query := r.db.WithContext(ctx).
		Model(&models.ClientModel{}).
		Where("organization_id = ?", organizationID)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}

	orderBy := ValidateSortField(filter.OrderBy, ClientSortFields, "name")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir)).
		Offset(filter.Offset()).
		Limit(filter.Limit())

	var clientModels []models.ClientModel
	if err := query.Find(&clientModels).Error; err != nil {
		return nil, err
	}

	clients := make([]ledger.Client, len(clientModels))
	for i, model := range clientModels {
		clients[i] = *model.ToDomain()
	}
	return clients, nil
}

// CountForOrg counts the organization's clients
func (r *GormClientRepository) CountForOrg(ctx context.Context, organizationID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ClientModel{}).
		Where("organization_id = ?", organizationID).
		Count(&count).Error
	return count, err
}

// Save creates or updates a client
func (r *GormClientRepository) Save(ctx context.Context, client *ledger.Client) error {
	model := models.ClientModelFromDomain(client)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(model).Error
}

// DeleteForOrg deletes a client within an organization
func (r *GormClientRepository) DeleteForOrg(ctx context.Context, organizationID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", organizationID, id).
		Delete(&models.ClientModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ ledger.ClientRepository = (*GormClientRepository)(nil)

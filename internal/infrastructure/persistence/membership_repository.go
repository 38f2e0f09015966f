package persistence

import (
	"context"
	"errors"

	"github.com/doug-fsg/controlei/internal/domain/identity"
	"github.com/doug-fsg/controlei/internal/domain/shared"
	"github.com/doug-fsg/controlei/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormMembershipRepository implements identity.MembershipRepository
// using GORM.
type GormMembershipRepository struct {
	db *gorm.DB
}

// NewGormMembershipRepository creates a new GormMembershipRepository
func NewGormMembershipRepository(db *gorm.DB) *GormMembershipRepository {
	return &GormMembershipRepository{db: db}
}

// Find finds the membership for a (user, organization) pair
func (r *GormMembershipRepository) Find(ctx context.Context, userID, organizationID uuid.UUID) (*identity.Membership, error) {
	var model models.MembershipModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND organization_id = ?", userID, organizationID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUser finds all memberships for a user
func (r *GormMembershipRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]identity.Membership, error) {
	var membershipModels []models.MembershipModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&membershipModels).Error; err != nil {
		return nil, err
	}

	memberships := make([]identity.Membership, len(membershipModels))
	for i, model := range membershipModels {
		memberships[i] = *model.ToDomain()
	}
	return memberships, nil
}

// FindActiveByUser finds all active memberships for a user
func (r *GormMembershipRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]identity.Membership, error) {
	var membershipModels []models.MembershipModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at ASC").
		Find(&membershipModels).Error; err != nil {
		return nil, err
	}

	memberships := make([]identity.Membership, len(membershipModels))
	for i, model := range membershipModels {
		memberships[i] = *model.ToDomain()
	}
	return memberships, nil
}

// Save creates or updates a membership. A second membership for the same
// (user, organization) pair surfaces as shared.ErrAlreadyExists.
func (r *GormMembershipRepository) Save(ctx context.Context, membership *identity.Membership) error {
	model := models.MembershipModelFromDomain(membership)
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

var _ identity.MembershipRepository = (*GormMembershipRepository)(nil)

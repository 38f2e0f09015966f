package persistence

import (
	"context"
	"errors"

	"github.com/doug-fsg/controlei/internal/domain/identity"
	"github.com/doug-fsg/controlei/internal/domain/shared"
	"github.com/doug-fsg/controlei/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// reparentedTables are the tables whose orphaned rows the backfill adopts,
// in foreign-key-safe order.
var reparentedTables = []string{
	"clients",
	"sales",
	"expense_categories",
	"expenses",
	"recurring_expense_payments",
}

// GormBackfillStore is the persistence side of the tenant backfill. It is
// the only place that queries tenant tables without an organization scope.
type GormBackfillStore struct {
	db *gorm.DB
}

// NewGormBackfillStore creates a new GormBackfillStore
func NewGormBackfillStore(db *gorm.DB) *GormBackfillStore {
	return &GormBackfillStore{db: db}
}

// FindUsersOrderedByID returns every user, id ascending
func (s *GormBackfillStore) FindUsersOrderedByID(ctx context.Context) ([]identity.User, error) {
	var userModels []models.UserModel
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&userModels).Error; err != nil {
		return nil, err
	}
	users := make([]identity.User, len(userModels))
	for i, model := range userModels {
		users[i] = *model.ToDomain()
	}
	return users, nil
}

// HasMembership reports whether the user already belongs to any organization
func (s *GormBackfillStore) HasMembership(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.MembershipModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count > 0, err
}

// MigrateUser creates the organization and owner membership and re-parents
// the user's orphaned rows in one transaction. Rows are matched by their
// creator and a missing organization; rows already owned by an
// organization are never touched.
func (s *GormBackfillStore) MigrateUser(ctx context.Context, org *identity.Organization, membership *identity.Membership) (map[string]int64, error) {
	reparented := make(map[string]int64, len(reparentedTables))

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.OrganizationModelFromDomain(org)).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return shared.ErrAlreadyExists
			}
			return err
		}
		if err := tx.Create(models.MembershipModelFromDomain(membership)).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return shared.ErrAlreadyExists
			}
			return err
		}

		for _, table := range reparentedTables {
			result := tx.Exec(
				"UPDATE "+table+" SET organization_id = ? WHERE created_by = ? AND organization_id IS NULL",
				org.ID, membership.UserID,
			)
			if result.Error != nil {
				return result.Error
			}
			reparented[table] = result.RowsAffected
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reparented, nil
}

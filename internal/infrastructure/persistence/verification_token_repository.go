package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/doug-fsg/controlei/internal/domain/identity"
	"github.com/doug-fsg/controlei/internal/domain/shared"
	"github.com/doug-fsg/controlei/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormVerificationTokenRepository implements
// identity.VerificationTokenRepository using GORM.
type GormVerificationTokenRepository struct {
	db *gorm.DB
}

// NewGormVerificationTokenRepository creates a new repository
func NewGormVerificationTokenRepository(db *gorm.DB) *GormVerificationTokenRepository {
	return &GormVerificationTokenRepository{db: db}
}

// Save stores a new token
func (r *GormVerificationTokenRepository) Save(ctx context.Context, token *identity.VerificationToken) error {
	model := &models.VerificationTokenModel{}
	model.FromDomain(token)
	err := r.db.WithContext(ctx).Create(model).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists
	}
	return err
}

// Consume looks up a token and deletes it in the same transaction, so a
// token can be used exactly once even under concurrent requests.
func (r *GormVerificationTokenRepository) Consume(ctx context.Context, token string) (*identity.VerificationToken, error) {
	var model models.VerificationTokenModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("token = ?", token).
			First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}
		return tx.Where("token = ?", token).Delete(&models.VerificationTokenModel{}).Error
	})
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// DeleteExpired removes all tokens that expired before the given time
func (r *GormVerificationTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires < ?", before).
		Delete(&models.VerificationTokenModel{})
	return result.RowsAffected, result.Error
}

var _ identity.VerificationTokenRepository = (*GormVerificationTokenRepository)(nil)

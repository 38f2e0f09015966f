package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/doug-fsg/controlei/internal/domain/ledger"
	"github.com/doug-fsg/controlei/internal/domain/shared"
	"github.com/doug-fsg/controlei/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRecurringExpensePaymentRepository implements
// ledger.RecurringExpensePaymentRepository using GORM. Records are
// append-only; the (expense_id, payment_date) unique index is the
// authority on one-payment-per-month.
type GormRecurringExpensePaymentRepository struct {
	db *gorm.DB
}

// NewGormRecurringExpensePaymentRepository creates a new GormRecurringExpensePaymentRepository
func NewGormRecurringExpensePaymentRepository(db *gorm.DB) *GormRecurringExpensePaymentRepository {
	return &GormRecurringExpensePaymentRepository{db: db}
}

// FindByExpenseAndMonth finds the record paying the month containing the
// given date, if any
func (r *GormRecurringExpensePaymentRepository) FindByExpenseAndMonth(ctx context.Context, organizationID, expenseID uuid.UUID, month time.Time) (*ledger.RecurringExpensePayment, error) {
	normalized := ledger.NormalizePaymentMonth(month)

	var model models.RecurringExpensePaymentModel
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND expense_id = ? AND payment_date = ?",
			organizationID, expenseID, normalized).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByExpense finds all payment records of an expense, oldest first
func (r *GormRecurringExpensePaymentRepository) FindByExpense(ctx context.Context, organizationID, expenseID uuid.UUID) ([]ledger.RecurringExpensePayment, error) {
	var paymentModels []models.RecurringExpensePaymentModel
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND expense_id = ?", organizationID, expenseID).
		Order("payment_date ASC").
		Find(&paymentModels).Error
	if err != nil {
		return nil, err
	}

	payments := make([]ledger.RecurringExpensePayment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = *model.ToDomain()
	}
	return payments, nil
}

// Save inserts a payment record. No upsert: a second insert for the same
// expense and month must fail, not silently overwrite.
func (r *GormRecurringExpensePaymentRepository) Save(ctx context.Context, payment *ledger.RecurringExpensePayment) error {
	model := models.RecurringExpensePaymentModelFromDomain(payment)
	err := r.db.WithContext(ctx).Create(model).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists
	}
	return err
}

var _ ledger.RecurringExpensePaymentRepository = (*GormRecurringExpensePaymentRepository)(nil)

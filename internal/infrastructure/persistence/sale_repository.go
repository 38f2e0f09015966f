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

// settledStatuses are the status values that count as paid in SQL
// predicates, mirroring ledger.PaymentStatus.IsSettled.
var settledStatuses = []string{
	string(ledger.PaymentStatusPaid),
	string(ledger.PaymentStatusCompleted),
}

// GormSaleRepository implements ledger.SaleRepository using GORM. Payments
// are always preloaded: classification and status derivation need them.
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByIDForOrg finds a sale with payments within an organization
func (r *GormSaleRepository) FindByIDForOrg(ctx context.Context, organizationID, id uuid.UUID) (*ledger.Sale, error) {
	var model models.SaleModel
	if err := r.db.WithContext(ctx).
		Preload("Payments").
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForOrg finds the organization's sales with filtering
func (r *GormSaleRepository) FindAllForOrg(ctx context.Context, organizationID uuid.UUID, filter ledger.SaleFilter) ([]ledger.Sale, error) {
	query := r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Preload("Payments").
		Where("organization_id = ?", organizationID)

	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.From != nil {
		query = query.Where("sale_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("sale_date <= ?", *filter.To)
	}
	if filter.Search != "" {
		query = query.Where("description ILIKE ?", "%"+filter.Search+"%")
	}

	orderBy := ValidateSortField(filter.OrderBy, SaleSortFields, "sale_date")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir)).
		Offset(filter.Offset()).
		Limit(filter.Limit())

	var saleModels []models.SaleModel
	if err := query.Find(&saleModels).Error; err != nil {
		return nil, err
	}
	return salesToDomain(saleModels), nil
}

// FindForPeriod finds sales relevant to an aggregation window: sales dated
// in range, sales owning a payment due or paid in range, and sales with
// unpaid payments due before now. Overdue is judged against now, not the
// range end, so a past-range query still surfaces every overdue payment.
func (r *GormSaleRepository) FindForPeriod(ctx context.Context, organizationID uuid.UUID, start, end, now time.Time) ([]ledger.Sale, error) {
	paymentMatch := r.db.
		Model(&models.SalePaymentModel{}).
		Select("sale_id").
		Where(
			r.db.Where("due_date >= ? AND due_date <= ?", start, end).
				Or("paid_date >= ? AND paid_date <= ?", start, end).
				Or("status NOT IN ? AND due_date < ?", settledStatuses, now),
		)

	var saleModels []models.SaleModel
	err := r.db.WithContext(ctx).
		Preload("Payments").
		Where("organization_id = ?", organizationID).
		Where(
			r.db.Where("sale_date >= ? AND sale_date <= ?", start, end).
				Or("id IN (?)", paymentMatch),
		).
		Order("sale_date ASC").
		Find(&saleModels).Error
	if err != nil {
		return nil, err
	}
	return salesToDomain(saleModels), nil
}

// FindRecent finds the most recent sales by sale date
func (r *GormSaleRepository) FindRecent(ctx context.Context, organizationID uuid.UUID, limit int) ([]ledger.Sale, error) {
	var saleModels []models.SaleModel
	err := r.db.WithContext(ctx).
		Preload("Payments").
		Where("organization_id = ?", organizationID).
		Order("sale_date DESC, created_at DESC").
		Limit(limit).
		Find(&saleModels).Error
	if err != nil {
		return nil, err
	}
	return salesToDomain(saleModels), nil
}

// FindPaymentForOrg finds a single payment, checking the owning sale's
// organization. Cross-tenant lookups report not found.
func (r *GormSaleRepository) FindPaymentForOrg(ctx context.Context, organizationID, paymentID uuid.UUID) (*ledger.SalePayment, error) {
	var model models.SalePaymentModel
	err := r.db.WithContext(ctx).
		Joins("JOIN sales ON sales.id = sale_payments.sale_id").
		Where("sale_payments.id = ? AND sales.organization_id = ?", paymentID, organizationID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a sale together with its payments
func (r *GormSaleRepository) Save(ctx context.Context, sale *ledger.Sale) error {
	model := models.SaleModelFromDomain(sale)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).
			Omit("Payments").
			Create(model).Error; err != nil {
			return err
		}

		// Replace the payment set wholesale. Installment edits change
		// counts and amounts; diffing rows is not worth it.
		keep := make([]uuid.UUID, 0, len(model.Payments))
		for i := range model.Payments {
			keep = append(keep, model.Payments[i].ID)
		}
		stale := tx.Where("sale_id = ?", model.ID)
		if len(keep) > 0 {
			stale = stale.Where("id NOT IN ?", keep)
		}
		if err := stale.Delete(&models.SalePaymentModel{}).Error; err != nil {
			return err
		}
		if len(model.Payments) == 0 {
			return nil
		}
		return tx.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).
			Create(&model.Payments).Error
	})
}

// SavePayment persists a payment transition. Status and paid date are
// written in one statement so they cannot drift apart.
func (r *GormSaleRepository) SavePayment(ctx context.Context, payment *ledger.SalePayment) error {
	model := models.SalePaymentModelFromDomain(payment)
	result := r.db.WithContext(ctx).
		Model(&models.SalePaymentModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"status":     model.Status,
			"paid_date":  model.PaidDate,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteForOrg deletes a sale and its payments within an organization
func (r *GormSaleRepository) DeleteForOrg(ctx context.Context, organizationID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Where("organization_id = ? AND id = ?", organizationID, id).
			Delete(&models.SaleModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		// Cascade also exists at the schema level; this keeps behavior
		// identical on stores created without the constraint.
		return tx.Where("sale_id = ?", id).Delete(&models.SalePaymentModel{}).Error
	})
}

func salesToDomain(saleModels []models.SaleModel) []ledger.Sale {
	sales := make([]ledger.Sale, len(saleModels))
	for i, model := range saleModels {
		sales[i] = *model.ToDomain()
	}
	return sales
}

var _ ledger.SaleRepository = (*GormSaleRepository)(nil)

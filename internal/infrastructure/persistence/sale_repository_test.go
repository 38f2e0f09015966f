package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/doug-fsg/controlei/internal/domain/ledger"
	"github.com/doug-fsg/controlei/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func salePaymentColumns() []string {
	return []string{
		"id", "created_at", "updated_at", "sale_id", "type", "amount",
		"due_date", "status", "paid_date", "installment_number", "total_installments",
	}
}

func TestGormSaleRepository_FindPaymentForOrg(t *testing.T) {
	t.Run("resolves a payment through the owning sale's organization", func(t *testing.T) {
		db, mock := newMockGormDB(t)
		repo := NewGormSaleRepository(db)

		organizationID := uuid.New()
		saleID := uuid.New()
		paymentID := uuid.New()
		now := time.Now()
		due := time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`SELECT .* FROM "sale_payments" JOIN sales ON sales\.id = sale_payments\.sale_id WHERE sale_payments\.id = \$1 AND sales\.organization_id = \$2`).
			WillReturnRows(sqlmock.NewRows(salePaymentColumns()).
				AddRow(paymentID, now, now, saleID, "INSTALLMENT", "250.00", due, "PENDING", nil, 2, 4))

		payment, err := repo.FindPaymentForOrg(context.Background(), organizationID, paymentID)
		require.NoError(t, err)
		assert.Equal(t, paymentID, payment.ID)
		assert.Equal(t, saleID, payment.SaleID)
		assert.Equal(t, ledger.PaymentStatusPending, payment.Status)
		assert.True(t, payment.Amount.Equal(decimal.RequireFromString("250.00")))
		require.NotNil(t, payment.InstallmentNumber)
		assert.Equal(t, 2, *payment.InstallmentNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports not found when the sale belongs to another organization", func(t *testing.T) {
		db, mock := newMockGormDB(t)
		repo := NewGormSaleRepository(db)

		mock.ExpectQuery(`SELECT .* FROM "sale_payments" JOIN sales ON sales\.id = sale_payments\.sale_id`).
			WillReturnRows(sqlmock.NewRows(salePaymentColumns()))

		_, err := repo.FindPaymentForOrg(context.Background(), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormSaleRepository_SavePayment(t *testing.T) {
	t.Run("writes status and paid date in a single statement", func(t *testing.T) {
		db, mock := newMockGormDB(t)
		repo := NewGormSaleRepository(db)

		paidAt := time.Date(2024, time.July, 10, 0, 0, 0, 0, time.UTC)
		payment := &ledger.SalePayment{
			BaseEntity: shared.BaseEntity{ID: uuid.New(), UpdatedAt: time.Now()},
			SaleID:     uuid.New(),
			Type:       ledger.PaymentTypeInstallment,
			Amount:     decimal.RequireFromString("250.00"),
			DueDate:    paidAt,
			Status:     ledger.PaymentStatusPaid,
			PaidDate:   &paidAt,
		}

		mock.ExpectExec(`UPDATE "sale_payments" SET .* WHERE id = \$4`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SavePayment(context.Background(), payment)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports not found for an unknown payment", func(t *testing.T) {
		db, mock := newMockGormDB(t)
		repo := NewGormSaleRepository(db)

		payment := &ledger.SalePayment{
			BaseEntity: shared.BaseEntity{ID: uuid.New()},
			Status:     ledger.PaymentStatusPending,
		}

		mock.ExpectExec(`UPDATE "sale_payments"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SavePayment(context.Background(), payment)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormSaleRepository_FindRecent(t *testing.T) {
	db, mock := newMockGormDB(t)
	repo := NewGormSaleRepository(db)

	organizationID := uuid.New()
	saleID := uuid.New()
	now := time.Now()
	saleDate := time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC)

	saleColumns := []string{
		"id", "created_at", "updated_at", "organization_id", "created_by",
		"client_id", "description", "total_amount", "sale_date",
	}

	mock.ExpectQuery(`SELECT \* FROM "sales" WHERE organization_id = \$1 ORDER BY sale_date DESC, created_at DESC`).
		WillReturnRows(sqlmock.NewRows(saleColumns).
			AddRow(saleID, now, now, organizationID, nil, nil, "single installment", "99.90", saleDate))

	mock.ExpectQuery(`SELECT \* FROM "sale_payments" WHERE "sale_payments"\."sale_id" = \$1`).
		WithArgs(saleID).
		WillReturnRows(sqlmock.NewRows(salePaymentColumns()).
			AddRow(uuid.New(), now, now, saleID, "INSTALLMENT", "99.90", saleDate, "PAID", saleDate, 1, 1))

	sales, err := repo.FindRecent(context.Background(), organizationID, 5)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	require.Len(t, sales[0].Payments, 1)
	assert.Equal(t, ledger.PaymentStatusPaid, sales[0].Payments[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormSaleRepository_FindForPeriod(t *testing.T) {
	t.Run("binds the overdue cutoff to now, not the range start", func(t *testing.T) {
		db, mock := newMockGormDB(t)
		repo := NewGormSaleRepository(db)

		organizationID := uuid.New()
		saleID := uuid.New()
		created := time.Now()
		start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
		now := time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC)
		due := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

		saleColumns := []string{
			"id", "created_at", "updated_at", "organization_id", "created_by",
			"client_id", "description", "total_amount", "sale_date",
		}

		// The sale is dated outside the range, but its unpaid payment is
		// overdue relative to now, so it must still come back.
		mock.ExpectQuery(`SELECT \* FROM "sales" WHERE organization_id = \$1`).
			WithArgs(organizationID, start, end, start, end, start, end, "PAID", "COMPLETED", now).
			WillReturnRows(sqlmock.NewRows(saleColumns).
				AddRow(saleID, created, created, organizationID, nil, nil, "financed order", "300.00",
					time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC)))

		mock.ExpectQuery(`SELECT \* FROM "sale_payments" WHERE "sale_payments"\."sale_id" = \$1`).
			WithArgs(saleID).
			WillReturnRows(sqlmock.NewRows(salePaymentColumns()).
				AddRow(uuid.New(), created, created, saleID, "INSTALLMENT", "300.00", due, "PENDING", nil, 1, 1))

		sales, err := repo.FindForPeriod(context.Background(), organizationID, start, end, now)
		require.NoError(t, err)
		require.Len(t, sales, 1)
		require.Len(t, sales[0].Payments, 1)
		assert.Equal(t, ledger.PaymentStatusPending, sales[0].Payments[0].Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

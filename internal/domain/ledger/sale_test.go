package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSale(t *testing.T, total decimal.Decimal) *Sale {
	t.Helper()
	sale, err := NewSale(uuid.New(), uuid.New(), total, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return sale
}

func TestNewSale_Validation(t *testing.T) {
	_, err := NewSale(uuid.New(), uuid.New(), d(0), time.Now())
	assert.Error(t, err)

	_, err = NewSale(uuid.New(), uuid.New(), d(-100), time.Now())
	assert.Error(t, err)
}

func TestSale_CashSaleIsAlwaysSettled(t *testing.T) {
	sale := newTestSale(t, d(500))

	assert.True(t, sale.IsCashSale())
	assert.True(t, sale.IsSettled())
	assert.Equal(t, PaymentStatusPaid, sale.RollupStatus(time.Now()))
}

func TestSale_SettledWhenPaymentsCoverTotal(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	sale := newTestSale(t, d(1000))

	_, err := sale.AddPayment(PaymentTypeAdvance, d(400), now.AddDate(0, 0, -30))
	require.NoError(t, err)
	_, err = sale.AddPayment(PaymentTypeInstallment, d(600), now.AddDate(0, 1, 0))
	require.NoError(t, err)

	assert.False(t, sale.IsCashSale())
	assert.False(t, sale.IsSettled())

	sale.Payments[0].MarkPaid(now.AddDate(0, 0, -30))
	assert.False(t, sale.IsSettled())
	assert.Equal(t, d(400).String(), sale.PaidAmount().String())
	assert.Equal(t, PaymentStatusPartial, sale.RollupStatus(now))

	sale.Payments[1].MarkPaid(now)
	assert.True(t, sale.IsSettled())
	assert.Equal(t, PaymentStatusCompleted, sale.RollupStatus(now))
}

func TestSale_RollupStatusOverdue(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	sale := newTestSale(t, d(300))

	_, err := sale.AddPayment(PaymentTypeInstallment, d(300), now.AddDate(0, 0, -5))
	require.NoError(t, err)

	assert.Equal(t, PaymentStatusOverdue, sale.RollupStatus(now))
}

func TestSale_RollupStatusPending(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	sale := newTestSale(t, d(300))

	_, err := sale.AddPayment(PaymentTypeInstallment, d(300), now.AddDate(0, 0, 15))
	require.NoError(t, err)

	assert.Equal(t, PaymentStatusPending, sale.RollupStatus(now))
}

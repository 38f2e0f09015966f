package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePaymentMonth(t *testing.T) {
	got := NormalizePaymentMonth(time.Date(2024, 1, 20, 14, 30, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), got)

	// Already the first of the month stays unchanged.
	first := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, first, NormalizePaymentMonth(first))
}

func TestNewRecurringExpensePayment_FloorsDate(t *testing.T) {
	orgID := uuid.New()
	expenseID := uuid.New()

	payment, err := NewRecurringExpensePayment(orgID, expenseID,
		time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), d(150), "january rent")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), payment.PaymentDate)
	assert.Equal(t, orgID, payment.OrganizationID)
	assert.Equal(t, expenseID, payment.ExpenseID)
}

func TestNewRecurringExpensePayment_RejectsNonPositiveAmount(t *testing.T) {
	_, err := NewRecurringExpensePayment(uuid.New(), uuid.New(), time.Now(), d(0), "")
	assert.Error(t, err)

	_, err = NewRecurringExpensePayment(uuid.New(), uuid.New(), time.Now(), d(-10), "")
	assert.Error(t, err)
}

func TestRecurringExpensePayment_CoversMonth(t *testing.T) {
	payment, err := NewRecurringExpensePayment(uuid.New(), uuid.New(),
		time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), d(150), "")
	require.NoError(t, err)

	// Any day of January is covered.
	assert.True(t, payment.CoversMonth(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, payment.CoversMonth(time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC)))

	// Neighboring months are not.
	assert.False(t, payment.CoversMonth(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, payment.CoversMonth(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)))
	// Same month in another year is a different month.
	assert.False(t, payment.CoversMonth(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)))
}

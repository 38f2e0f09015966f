package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExpense(t *testing.T, dueDate time.Time) *Expense {
	t.Helper()
	expense, err := NewExpense(uuid.New(), uuid.New(), "Rent", d(1200), dueDate)
	require.NoError(t, err)
	return expense
}

func TestExpense_EffectiveStatus(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("pending before the due date", func(t *testing.T) {
		expense := newTestExpense(t, now.AddDate(0, 0, 10))
		assert.Equal(t, PaymentStatusPending, expense.EffectiveStatus(now))
	})

	t.Run("overdue after the due date", func(t *testing.T) {
		expense := newTestExpense(t, now.AddDate(0, 0, -10))
		assert.Equal(t, PaymentStatusOverdue, expense.EffectiveStatus(now))
	})

	t.Run("paid stays paid regardless of now", func(t *testing.T) {
		expense := newTestExpense(t, now.AddDate(0, 0, -10))
		expense.MarkPaid(now)
		assert.Equal(t, PaymentStatusPaid, expense.EffectiveStatus(now))
	})

	t.Run("partial keeps its stored state", func(t *testing.T) {
		expense := newTestExpense(t, now.AddDate(0, 0, -10))
		expense.Status = PaymentStatusPartial
		assert.Equal(t, PaymentStatusPartial, expense.EffectiveStatus(now))
	})
}

func TestExpense_NextOccurrence(t *testing.T) {
	t.Run("monthly step clamps at month end", func(t *testing.T) {
		expense := newTestExpense(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC))
		require.NoError(t, expense.SetRecurrence(RecurrenceMonthly, nil, nil))

		next, ok := expense.NextOccurrence(expense.DueDate)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), next)
	})

	t.Run("monthly step honors the configured day of month", func(t *testing.T) {
		day := 31
		expense := newTestExpense(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC))
		require.NoError(t, expense.SetRecurrence(RecurrenceMonthly, &day, nil))

		next, ok := expense.NextOccurrence(expense.DueDate)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), next)

		next, ok = expense.NextOccurrence(next)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), next)
	})

	t.Run("weekly steps seven days", func(t *testing.T) {
		expense := newTestExpense(t, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC))
		require.NoError(t, expense.SetRecurrence(RecurrenceWeekly, nil, nil))

		next, ok := expense.NextOccurrence(expense.DueDate)
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC), next)
	})

	t.Run("stops past the recurrence end date", func(t *testing.T) {
		endDate := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)
		expense := newTestExpense(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, expense.SetRecurrence(RecurrenceMonthly, nil, &endDate))

		_, ok := expense.NextOccurrence(expense.DueDate)
		assert.False(t, ok)
	})

	t.Run("non-recurring expense has no occurrences", func(t *testing.T) {
		expense := newTestExpense(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
		_, ok := expense.NextOccurrence(expense.DueDate)
		assert.False(t, ok)
	})
}

func TestAddMonthsClamped(t *testing.T) {
	cases := []struct {
		name   string
		from   time.Time
		months int
		want   time.Time
	}{
		{"regular day", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), 1, time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)},
		{"january 31 into february", time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), 1, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)},
		{"leap february", time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), 1, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{"anchored two months out", time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), 2, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)},
		{"zero months", time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC), 0, time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AddMonthsClamped(tc.from, tc.months))
		})
	}
}

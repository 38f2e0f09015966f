package ledger

import (
	"bytes"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashFlowType tags a cash-flow item as money in or money out
type CashFlowType string

const (
	CashFlowIncome  CashFlowType = "INCOME"
	CashFlowExpense CashFlowType = "EXPENSE"
)

// CashFlowItem is the unified projection of a sale payment or an expense
// into the cash-flow ledger. RunningBalance is filled by ProjectCashFlow
// and is defined only over the filtered item set it was computed for.
type CashFlowItem struct {
	ID             uuid.UUID       `json:"id"`
	Type           CashFlowType    `json:"type"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	DueDate        time.Time       `json:"due_date"`
	Status         PaymentStatus   `json:"status"`
	Party          string          `json:"party"` // client or supplier
	Category       string          `json:"category"`
	RunningBalance decimal.Decimal `json:"running_balance"`
}

// signedAmount returns the item's contribution to the running balance
func (i *CashFlowItem) signedAmount() decimal.Decimal {
	if i.Type == CashFlowExpense {
		return i.Amount.Neg()
	}
	return i.Amount
}

// CashFlowBucket groups the items of one period
type CashFlowBucket struct {
	PeriodStart time.Time       `json:"period_start"`
	Income      decimal.Decimal `json:"income"`
	Expenses    decimal.Decimal `json:"expenses"`
	NetFlow     decimal.Decimal `json:"net_flow"`
	Items       []CashFlowItem  `json:"items"`
}

// CashFlowSummary totals the projected item set
type CashFlowSummary struct {
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetFlow       decimal.Decimal `json:"net_flow"`
}

// CashFlowStatement is the full projection result
type CashFlowStatement struct {
	Items          []CashFlowItem   `json:"items"`
	PeriodAnalysis []CashFlowBucket `json:"period_analysis"`
	Summary        CashFlowSummary  `json:"summary"`
}

// ProjectCashFlow orders the given items, computes the running balance and
// buckets them by period.
//
// Items are sorted ascending by due date with the entity ID breaking ties,
// so the projection is deterministic. The running balance is a strict
// left-to-right cumulative sum seeded at zero over exactly this item set;
// it is never persisted and must be recomputed whenever the filter
// producing the set changes.
func ProjectCashFlow(items []CashFlowItem, granularity Granularity) CashFlowStatement {
	sorted := make([]CashFlowItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(a, b int) bool {
		if !sorted[a].DueDate.Equal(sorted[b].DueDate) {
			return sorted[a].DueDate.Before(sorted[b].DueDate)
		}
		return bytes.Compare(sorted[a].ID[:], sorted[b].ID[:]) < 0
	})

	summary := CashFlowSummary{
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	balance := decimal.Zero
	for i := range sorted {
		balance = balance.Add(sorted[i].signedAmount())
		sorted[i].RunningBalance = balance
		if sorted[i].Type == CashFlowIncome {
			summary.TotalIncome = summary.TotalIncome.Add(sorted[i].Amount)
		} else {
			summary.TotalExpenses = summary.TotalExpenses.Add(sorted[i].Amount)
		}
	}
	summary.NetFlow = summary.TotalIncome.Sub(summary.TotalExpenses)

	return CashFlowStatement{
		Items:          sorted,
		PeriodAnalysis: bucketByPeriod(sorted, granularity),
		Summary:        summary,
	}
}

// bucketByPeriod groups already-sorted items into non-overlapping buckets
// keyed by the period start containing each item's due date. Buckets come
// out in chronological order because the input is sorted.
func bucketByPeriod(sorted []CashFlowItem, granularity Granularity) []CashFlowBucket {
	buckets := make([]CashFlowBucket, 0)
	index := make(map[time.Time]int)

	for i := range sorted {
		periodStart := granularity.PeriodStart(sorted[i].DueDate)
		pos, ok := index[periodStart]
		if !ok {
			pos = len(buckets)
			index[periodStart] = pos
			buckets = append(buckets, CashFlowBucket{
				PeriodStart: periodStart,
				Income:      decimal.Zero,
				Expenses:    decimal.Zero,
				NetFlow:     decimal.Zero,
			})
		}
		bucket := &buckets[pos]
		bucket.Items = append(bucket.Items, sorted[i])
		if sorted[i].Type == CashFlowIncome {
			bucket.Income = bucket.Income.Add(sorted[i].Amount)
		} else {
			bucket.Expenses = bucket.Expenses.Add(sorted[i].Amount)
		}
		bucket.NetFlow = bucket.Income.Sub(bucket.Expenses)
	}

	return buckets
}

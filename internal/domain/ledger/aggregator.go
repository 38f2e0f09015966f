package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PeriodTotals are the tenant-scoped financial totals over a date range.
// Overdue figures are always evaluated against "now", not the range end.
type PeriodTotals struct {
	TotalSales      decimal.Decimal `json:"total_sales"`
	TotalIncome     decimal.Decimal `json:"total_income"`
	TotalExpenses   decimal.Decimal `json:"total_expenses"`
	PendingIncome   decimal.Decimal `json:"pending_income"`
	PendingExpenses decimal.Decimal `json:"pending_expenses"`
	NetFlow         decimal.Decimal `json:"net_flow"`
	OverdueAmount   decimal.Decimal `json:"overdue_amount"`
	OverdueCount    int             `json:"overdue_count"`
}

// AggregatePeriod computes totals for sales and expenses of one tenant
// over the inclusive [start, end] range.
//
// A sale with no payments is a cash sale: its full amount counts as both
// a sale and income at its sale date, and it never produces pending or
// overdue figures. Sales are deduplicated by identity first, since the
// caller may have assembled them from joins that repeat rows.
func AggregatePeriod(sales []Sale, expenses []Expense, start, end, now time.Time) PeriodTotals {
	totals := PeriodTotals{
		TotalSales:      decimal.Zero,
		TotalIncome:     decimal.Zero,
		TotalExpenses:   decimal.Zero,
		PendingIncome:   decimal.Zero,
		PendingExpenses: decimal.Zero,
		NetFlow:         decimal.Zero,
		OverdueAmount:   decimal.Zero,
	}

	seen := make(map[uuid.UUID]bool, len(sales))
	for i := range sales {
		sale := &sales[i]
		if seen[sale.ID] {
			continue
		}
		seen[sale.ID] = true

		if sale.IsCashSale() {
			if inRange(sale.SaleDate, start, end) {
				totals.TotalSales = totals.TotalSales.Add(sale.TotalAmount)
				totals.TotalIncome = totals.TotalIncome.Add(sale.TotalAmount)
			}
			continue
		}

		if sale.IsSettled() && inRange(sale.SaleDate, start, end) {
			totals.TotalSales = totals.TotalSales.Add(sale.TotalAmount)
		}

		for j := range sale.Payments {
			p := &sale.Payments[j]
			if p.IsPaid() {
				if p.PaidDate != nil && inRange(*p.PaidDate, start, end) {
					totals.TotalIncome = totals.TotalIncome.Add(p.Amount)
				}
				continue
			}
			if inRange(p.DueDate, start, end) {
				totals.PendingIncome = totals.PendingIncome.Add(p.Amount)
			}
			if p.DueDate.Before(now) {
				totals.OverdueAmount = totals.OverdueAmount.Add(p.Amount)
				totals.OverdueCount++
			}
		}
	}

	for i := range expenses {
		e := &expenses[i]
		if e.IsPaid() {
			if inRange(e.RelevantDate(), start, end) {
				totals.TotalExpenses = totals.TotalExpenses.Add(e.Amount)
			}
			continue
		}
		if inRange(e.DueDate, start, end) {
			totals.PendingExpenses = totals.PendingExpenses.Add(e.Amount)
		}
		if e.DueDate.Before(now) {
			totals.OverdueAmount = totals.OverdueAmount.Add(e.Amount)
			totals.OverdueCount++
		}
	}

	totals.NetFlow = totals.TotalIncome.Sub(totals.TotalExpenses)
	return totals
}

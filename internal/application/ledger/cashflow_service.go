package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-fsg/controlei/internal/domain/ledger"
	"github.com/doug-fsg/controlei/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CashFlowService projects sales payments and expenses into a unified
// cash-flow statement.
type CashFlowService struct {
	saleRepo      ledger.SaleRepository
	expenseRepo   ledger.ExpenseRepository
	clientRepo    ledger.ClientRepository
	categoryRepo  ledger.ExpenseCategoryRepository
	recurringRepo ledger.RecurringExpensePaymentRepository
	logger        *zap.Logger
}

// NewCashFlowService creates a new cash-flow service
func NewCashFlowService(
	saleRepo ledger.SaleRepository,
	expenseRepo ledger.ExpenseRepository,
	clientRepo ledger.ClientRepository,
	categoryRepo ledger.ExpenseCategoryRepository,
	recurringRepo ledger.RecurringExpensePaymentRepository,
	logger *zap.Logger,
) *CashFlowService {
	return &CashFlowService{
		saleRepo:      saleRepo,
		expenseRepo:   expenseRepo,
		clientRepo:    clientRepo,
		categoryRepo:  categoryRepo,
		recurringRepo: recurringRepo,
		logger:        logger,
	}
}

// GetCashFlow builds the filtered item set and projects it. The running
// balance is computed over exactly the filtered set, so changing any
// filter restarts it from zero.
func (s *CashFlowService) GetCashFlow(ctx context.Context, query CashFlowQuery) (*ledger.CashFlowStatement, error) {
	if query.EndDate.Before(query.StartDate) {
		return nil, shared.NewDomainError("INVALID_INPUT", "end date must not be before start date")
	}
	granularity, err := ledger.ParseGranularity(query.Granularity)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	items := make([]ledger.CashFlowItem, 0, 64)

	if query.Type == nil || *query.Type == ledger.CashFlowIncome {
		incomeItems, err := s.collectIncomeItems(ctx, query, now)
		if err != nil {
			return nil, err
		}
		items = append(items, incomeItems...)
	}
	if query.Type == nil || *query.Type == ledger.CashFlowExpense {
		expenseItems, err := s.collectExpenseItems(ctx, query, now)
		if err != nil {
			return nil, err
		}
		items = append(items, expenseItems...)
	}

	if query.Status != nil {
		filtered := items[:0]
		for _, item := range items {
			if item.Status == *query.Status {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	statement := ledger.ProjectCashFlow(items, granularity)

	s.logger.Debug("Cash flow projected",
		zap.String("organization_id", query.OrganizationID.String()),
		zap.String("granularity", string(granularity)),
		zap.Int("items", len(statement.Items)))

	return &statement, nil
}

// collectIncomeItems turns sales into income items: a cash sale is one
// paid item at its sale date; a credit sale contributes one item per
// payment at its due date.
func (s *CashFlowService) collectIncomeItems(ctx context.Context, query CashFlowQuery, now time.Time) ([]ledger.CashFlowItem, error) {
	// Income is never category-filtered; categories belong to expenses.
	if query.CategoryID != nil {
		return nil, nil
	}

	sales, err := s.saleRepo.FindForPeriod(ctx, query.OrganizationID, query.StartDate, query.EndDate, now)
	if err != nil {
		return nil, err
	}

	clientNames, err := s.clientNames(ctx, query.OrganizationID, sales)
	if err != nil {
		return nil, err
	}

	items := make([]ledger.CashFlowItem, 0, len(sales))
	for i := range sales {
		sale := &sales[i]
		party := ""
		if sale.ClientID != nil {
			party = clientNames[*sale.ClientID]
		}

		if sale.IsCashSale() {
			if !withinRange(sale.SaleDate, query.StartDate, query.EndDate) {
				continue
			}
			items = append(items, ledger.CashFlowItem{
				ID:          sale.ID,
				Type:        ledger.CashFlowIncome,
				Description: sale.Description,
				Amount:      sale.TotalAmount,
				DueDate:     sale.SaleDate,
				Status:      ledger.PaymentStatusPaid,
				Party:       party,
			})
			continue
		}

		for j := range sale.Payments {
			p := &sale.Payments[j]
			if !withinRange(p.DueDate, query.StartDate, query.EndDate) {
				continue
			}
			description := sale.Description
			if p.InstallmentNumber != nil && p.TotalInstallments != nil {
				description = fmt.Sprintf("%s (%d/%d)", sale.Description, *p.InstallmentNumber, *p.TotalInstallments)
			}
			items = append(items, ledger.CashFlowItem{
				ID:          p.ID,
				Type:        ledger.CashFlowIncome,
				Description: description,
				Amount:      p.Amount,
				DueDate:     p.DueDate,
				Status:      p.EffectiveStatus(now),
				Party:       party,
			})
		}
	}
	return items, nil
}

// collectExpenseItems turns expenses into expense items at their due date,
// then expands recurring templates into one item per occurrence falling in
// the queried window.
func (s *CashFlowService) collectExpenseItems(ctx context.Context, query CashFlowQuery, now time.Time) ([]ledger.CashFlowItem, error) {
	expenses, err := s.expenseRepo.FindForPeriod(ctx, query.OrganizationID, query.StartDate, query.EndDate, now)
	if err != nil {
		return nil, err
	}

	categoryNames, err := s.categoryNames(ctx, query.OrganizationID)
	if err != nil {
		return nil, err
	}

	// Months already represented by a materialized occurrence row must not
	// be expanded again from the template.
	materialized := make(map[string]bool)
	for i := range expenses {
		e := &expenses[i]
		if e.ParentExpenseID != nil {
			materialized[occurrenceKey(*e.ParentExpenseID, e.DueDate)] = true
		}
	}

	items := make([]ledger.CashFlowItem, 0, len(expenses))
	for i := range expenses {
		e := &expenses[i]
		if !withinRange(e.DueDate, query.StartDate, query.EndDate) {
			continue
		}
		if query.CategoryID != nil && (e.CategoryID == nil || *e.CategoryID != *query.CategoryID) {
			continue
		}
		category := ""
		if e.CategoryID != nil {
			category = categoryNames[*e.CategoryID]
		}
		items = append(items, ledger.CashFlowItem{
			ID:          e.ID,
			Type:        ledger.CashFlowExpense,
			Description: e.Description,
			Amount:      e.Amount,
			DueDate:     e.DueDate,
			Status:      e.EffectiveStatus(now),
			Category:    category,
		})
	}

	occurrences, err := s.expandRecurringOccurrences(ctx, query, now, categoryNames, materialized)
	if err != nil {
		return nil, err
	}
	return append(items, occurrences...), nil
}

// expandRecurringOccurrences projects recurring expense templates into the
// queried window. Occurrences after the template's own due date are
// synthesized; a month with a recorded payment shows as paid, the rest
// derive their status from the occurrence due date.
func (s *CashFlowService) expandRecurringOccurrences(ctx context.Context, query CashFlowQuery, now time.Time, categoryNames map[uuid.UUID]string, materialized map[string]bool) ([]ledger.CashFlowItem, error) {
	templates, err := s.expenseRepo.FindRecurringTemplates(ctx, query.OrganizationID)
	if err != nil {
		return nil, err
	}

	var items []ledger.CashFlowItem
	for i := range templates {
		t := &templates[i]
		if query.CategoryID != nil && (t.CategoryID == nil || *t.CategoryID != *query.CategoryID) {
			continue
		}
		category := ""
		if t.CategoryID != nil {
			category = categoryNames[*t.CategoryID]
		}

		for cursor := t.DueDate; ; {
			occ, ok := t.NextOccurrence(cursor)
			if !ok || occ.After(query.EndDate) {
				break
			}
			cursor = occ
			if occ.Before(query.StartDate) || materialized[occurrenceKey(t.ID, occ)] {
				continue
			}

			amount := t.Amount
			status := ledger.DeriveStatus(t.Amount, decimal.Zero, occ, now)
			payment, err := s.recurringRepo.FindByExpenseAndMonth(ctx, query.OrganizationID, t.ID, occ)
			switch {
			case err == nil:
				amount = payment.Amount
				status = ledger.PaymentStatusPaid
			case !errors.Is(err, shared.ErrNotFound):
				return nil, err
			}

			items = append(items, ledger.CashFlowItem{
				ID:          uuid.NewSHA1(t.ID, []byte(occ.Format("2006-01-02"))),
				Type:        ledger.CashFlowExpense,
				Description: t.Description,
				Amount:      amount,
				DueDate:     occ,
				Status:      status,
				Category:    category,
			})
		}
	}
	return items, nil
}

// occurrenceKey identifies one month of one recurring template
func occurrenceKey(templateID uuid.UUID, dueDate time.Time) string {
	return templateID.String() + "/" + dueDate.Format("2006-01")
}

func (s *CashFlowService) clientNames(ctx context.Context, organizationID uuid.UUID, sales []ledger.Sale) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string)
	for i := range sales {
		clientID := sales[i].ClientID
		if clientID == nil {
			continue
		}
		if _, ok := names[*clientID]; ok {
			continue
		}
		client, err := s.clientRepo.FindByIDForOrg(ctx, organizationID, *clientID)
		if err != nil {
			// The client may have been deleted since the sale was made.
			names[*clientID] = ""
			continue
		}
		names[*clientID] = client.Name
	}
	return names, nil
}

func (s *CashFlowService) categoryNames(ctx context.Context, organizationID uuid.UUID) (map[uuid.UUID]string, error) {
	categories, err := s.categoryRepo.FindAllForOrg(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(categories))
	for i := range categories {
		names[categories[i].ID] = categories[i].Name
	}
	return names, nil
}

// withinRange reports whether d falls in the inclusive [start, end] range
func withinRange(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

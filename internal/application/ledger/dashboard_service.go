package ledger

import (
	"context"
	"time"

	"github.com/doug-fsg/controlei/internal/domain/ledger"
	"github.com/doug-fsg/controlei/internal/domain/shared"
	"go.uber.org/zap"
)

// recentLimit is how many recent sales and expenses the dashboard carries
const recentLimit = 5

// DashboardService assembles the aggregated view behind the main screen.
type DashboardService struct {
	saleRepo    ledger.SaleRepository
	expenseRepo ledger.ExpenseRepository
	clientRepo  ledger.ClientRepository
	logger      *zap.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	saleRepo ledger.SaleRepository,
	expenseRepo ledger.ExpenseRepository,
	clientRepo ledger.ClientRepository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		saleRepo:    saleRepo,
		expenseRepo: expenseRepo,
		clientRepo:  clientRepo,
		logger:      logger,
	}
}

// GetDashboard computes the period totals over the inclusive date range
// plus recent activity. Overdue figures are always judged against "now",
// even when the range lies in the past.
func (s *DashboardService) GetDashboard(ctx context.Context, query DashboardQuery) (*DashboardResult, error) {
	if query.EndDate.Before(query.StartDate) {
		return nil, shared.NewDomainError("INVALID_INPUT", "end date must not be before start date")
	}

	now := time.Now()
	sales, err := s.saleRepo.FindForPeriod(ctx, query.OrganizationID, query.StartDate, query.EndDate, now)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.FindForPeriod(ctx, query.OrganizationID, query.StartDate, query.EndDate, now)
	if err != nil {
		return nil, err
	}

	totals := ledger.AggregatePeriod(sales, expenses, query.StartDate, query.EndDate, now)

	recentSales, err := s.saleRepo.FindRecent(ctx, query.OrganizationID, recentLimit)
	if err != nil {
		return nil, err
	}
	recentExpenses, err := s.expenseRepo.FindRecent(ctx, query.OrganizationID, recentLimit)
	if err != nil {
		return nil, err
	}
	totalClients, err := s.clientRepo.CountForOrg(ctx, query.OrganizationID)
	if err != nil {
		return nil, err
	}

	result := &DashboardResult{
		Totals:         totals,
		RecentSales:    make([]SaleSummary, len(recentSales)),
		RecentExpenses: make([]ExpenseSummary, len(recentExpenses)),
		TotalClients:   totalClients,
	}
	for i := range recentSales {
		result.RecentSales[i] = saleSummaryFrom(&recentSales[i], now)
	}
	for i := range recentExpenses {
		result.RecentExpenses[i] = expenseSummaryFrom(&recentExpenses[i], now)
	}

	s.logger.Debug("Dashboard computed",
		zap.String("organization_id", query.OrganizationID.String()),
		zap.Time("start", query.StartDate),
		zap.Time("end", query.EndDate),
		zap.Int("sales", len(sales)),
		zap.Int("expenses", len(expenses)))

	return result, nil
}

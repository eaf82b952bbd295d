package service

import (
	"github.com/farmbook/farmbook-backend/internal/domain"
	"github.com/google/uuid"
)

// recentRecordLimit caps the pass-through transaction lists on the
// dashboard; full history stays behind the list endpoints.
const recentRecordLimit = 5

// DashboardService assembles the dashboard view model from the ledger
// and soil calculators. It introduces no business rules of its own.
type DashboardService struct {
	expenseRepo  domain.ExpenseRepository
	incomeRepo   domain.IncomeRepository
	soilService  *SoilService
	cropPlanRepo domain.CropPlanRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(expenseRepo domain.ExpenseRepository, incomeRepo domain.IncomeRepository, soilService *SoilService, cropPlanRepo domain.CropPlanRepository) *DashboardService {
	return &DashboardService{
		expenseRepo:  expenseRepo,
		incomeRepo:   incomeRepo,
		soilService:  soilService,
		cropPlanRepo: cropPlanRepo,
	}
}

// GetSummary fetches the owner's records and assembles the dashboard
// view model, optionally restricted to a ledger date range. Fetch
// failures abort assembly; the view model is never built from a
// partially fetched snapshot.
func (s *DashboardService) GetSummary(ownerID uuid.UUID, filters *domain.LedgerFilters) (*domain.DashboardViewModel, error) {
	expenses, err := s.expenseRepo.GetByOwner(ownerID, filters)
	if err != nil {
		return nil, err
	}

	incomes, err := s.incomeRepo.GetByOwner(ownerID, filters)
	if err != nil {
		return nil, err
	}

	soil, err := s.soilService.GetCurrentHealth(ownerID)
	if err != nil {
		return nil, err
	}

	cropPlans, err := s.cropPlanRepo.GetByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	return AssembleDashboard(ComputeLedgerSummary(expenses, incomes), *soil, cropPlans, expenses, incomes), nil
}

// AssembleDashboard merges the computed summaries with the pass-through
// record lists. Pure: identical inputs always yield a structurally
// identical view model.
func AssembleDashboard(ledger domain.LedgerSummary, soil domain.SoilHealthResult, cropPlans []*domain.CropPlan, expenses []*domain.ExpenseRecord, incomes []*domain.IncomeRecord) *domain.DashboardViewModel {
	if cropPlans == nil {
		cropPlans = []*domain.CropPlan{}
	}

	return &domain.DashboardViewModel{
		Ledger:         ledger,
		Soil:           soil,
		CropPlans:      cropPlans,
		RecentExpenses: recentExpenses(expenses),
		RecentIncomes:  recentIncomes(incomes),
	}
}

// recentExpenses returns the head of the date-descending expense list
func recentExpenses(expenses []*domain.ExpenseRecord) []*domain.ExpenseRecord {
	if len(expenses) > recentRecordLimit {
		expenses = expenses[:recentRecordLimit]
	}
	out := make([]*domain.ExpenseRecord, len(expenses))
	copy(out, expenses)
	return out
}

// recentIncomes returns the head of the date-descending income list
func recentIncomes(incomes []*domain.IncomeRecord) []*domain.IncomeRecord {
	if len(incomes) > recentRecordLimit {
		incomes = incomes[:recentRecordLimit]
	}
	out := make([]*domain.IncomeRecord, len(incomes))
	copy(out, incomes)
	return out
}

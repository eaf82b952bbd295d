package service

import (
	"strings"
	"time"

	"github.com/farmbook/farmbook-backend/internal/domain"
	"github.com/farmbook/farmbook-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	oneHundred = decimal.NewFromInt(100)
	half       = decimal.New(5, -1)
)

// ComputeLedgerSummary aggregates already-fetched, owner-scoped expense
// and income records into the dashboard financial metrics. Pure and
// deterministic; records are assumed validated at the write boundary,
// so amounts are non-negative here.
func ComputeLedgerSummary(expenses []*domain.ExpenseRecord, incomes []*domain.IncomeRecord) domain.LedgerSummary {
	totalIncome := decimal.Zero
	for _, inc := range incomes {
		totalIncome = totalIncome.Add(inc.Amount)
	}

	totalExpenses := decimal.Zero
	for _, exp := range expenses {
		totalExpenses = totalExpenses.Add(exp.Amount)
	}

	netProfit := totalIncome.Sub(totalExpenses)

	// Margin is defined as 0 when there is no income; the division
	// below must never run with a zero denominator. Rounding is half
	// up, so a -0.5% margin rounds to 0, not -1.
	margin := 0
	if totalIncome.IsPositive() {
		margin = int(netProfit.Div(totalIncome).Mul(oneHundred).Add(half).Floor().IntPart())
	}

	return domain.LedgerSummary{
		TotalIncome:         totalIncome,
		TotalExpenses:       totalExpenses,
		NetProfit:           netProfit,
		ProfitMarginPercent: margin,
		ExpenseCount:        len(expenses),
		IncomeCount:         len(incomes),
	}
}

// LedgerService handles expense and income record business logic
type LedgerService struct {
	expenseRepo    domain.ExpenseRepository
	incomeRepo     domain.IncomeRepository
	eventPublisher websocket.EventPublisher
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(expenseRepo domain.ExpenseRepository, incomeRepo domain.IncomeRepository) *LedgerService {
	return &LedgerService{
		expenseRepo: expenseRepo,
		incomeRepo:  incomeRepo,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *LedgerService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// publishEvent publishes a WebSocket event if a publisher is configured
func (s *LedgerService) publishEvent(ownerID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(ownerID, event)
	}
}

// CreateExpenseInput holds the input for creating an expense record
type CreateExpenseInput struct {
	Type        string
	Category    string
	Amount      decimal.Decimal
	Description *string
	Date        *time.Time
}

// CreateExpense creates a new expense record with validation
func (s *LedgerService) CreateExpense(ownerID uuid.UUID, input CreateExpenseInput) (*domain.ExpenseRecord, error) {
	recordType := strings.TrimSpace(input.Type)
	if recordType == "" {
		return nil, domain.ErrTypeRequired
	}
	if len(recordType) > domain.MaxTypeLength {
		return nil, domain.ErrTypeTooLong
	}

	// Negative amounts are rejected at the boundary, never summed.
	if input.Amount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	description, err := normalizeDescription(input.Description)
	if err != nil {
		return nil, err
	}

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if input.Date != nil {
		date = *input.Date
	}

	expense := &domain.ExpenseRecord{
		OwnerID:     ownerID,
		Type:        recordType,
		Category:    strings.TrimSpace(input.Category),
		Amount:      input.Amount,
		Description: description,
		Date:        date,
	}

	created, err := s.expenseRepo.Create(expense)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ownerID, websocket.ExpenseCreated(created))
	return created, nil
}

// GetExpenses retrieves expense records for an owner, ordered by date
// descending, with optional date-range filters
func (s *LedgerService) GetExpenses(ownerID uuid.UUID, filters *domain.LedgerFilters) ([]*domain.ExpenseRecord, error) {
	return s.expenseRepo.GetByOwner(ownerID, filters)
}

// UpdateExpenseInput holds the input for updating an expense record
type UpdateExpenseInput struct {
	Type        string
	Category    string
	Amount      decimal.Decimal
	Description *string
	Date        time.Time
}

// UpdateExpense updates an existing expense record with validation
func (s *LedgerService) UpdateExpense(ownerID, id uuid.UUID, input UpdateExpenseInput) (*domain.ExpenseRecord, error) {
	recordType := strings.TrimSpace(input.Type)
	if recordType == "" {
		return nil, domain.ErrTypeRequired
	}
	if len(recordType) > domain.MaxTypeLength {
		return nil, domain.ErrTypeTooLong
	}
	if input.Amount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	description, err := normalizeDescription(input.Description)
	if err != nil {
		return nil, err
	}

	updated, err := s.expenseRepo.Update(ownerID, id, &domain.UpdateExpenseData{
		Type:        recordType,
		Category:    strings.TrimSpace(input.Category),
		Amount:      input.Amount,
		Description: description,
		Date:        input.Date,
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ownerID, websocket.ExpenseUpdated(updated))
	return updated, nil
}

// DeleteExpense deletes an expense record by ID
func (s *LedgerService) DeleteExpense(ownerID, id uuid.UUID) error {
	if err := s.expenseRepo.Delete(ownerID, id); err != nil {
		return err
	}
	s.publishEvent(ownerID, websocket.ExpenseDeleted(map[string]string{"id": id.String()}))
	return nil
}

// CreateIncomeInput holds the input for creating an income record
type CreateIncomeInput struct {
	Type        string
	Amount      decimal.Decimal
	Source      string
	Description *string
	Date        *time.Time
}

// CreateIncome creates a new income record with validation
func (s *LedgerService) CreateIncome(ownerID uuid.UUID, input CreateIncomeInput) (*domain.IncomeRecord, error) {
	recordType := strings.TrimSpace(input.Type)
	if recordType == "" {
		return nil, domain.ErrTypeRequired
	}
	if len(recordType) > domain.MaxTypeLength {
		return nil, domain.ErrTypeTooLong
	}

	source := strings.TrimSpace(input.Source)
	if source == "" {
		return nil, domain.ErrSourceRequired
	}
	if len(source) > domain.MaxNameLength {
		return nil, domain.ErrTextTooLong
	}

	if input.Amount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	description, err := normalizeDescription(input.Description)
	if err != nil {
		return nil, err
	}

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if input.Date != nil {
		date = *input.Date
	}

	income := &domain.IncomeRecord{
		OwnerID:     ownerID,
		Type:        recordType,
		Amount:      input.Amount,
		Source:      source,
		Description: description,
		Date:        date,
	}

	created, err := s.incomeRepo.Create(income)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ownerID, websocket.IncomeCreated(created))
	return created, nil
}

// GetIncomes retrieves income records for an owner, ordered by date
// descending, with optional date-range filters
func (s *LedgerService) GetIncomes(ownerID uuid.UUID, filters *domain.LedgerFilters) ([]*domain.IncomeRecord, error) {
	return s.incomeRepo.GetByOwner(ownerID, filters)
}

// UpdateIncomeInput holds the input for updating an income record
type UpdateIncomeInput struct {
	Type        string
	Amount      decimal.Decimal
	Source      string
	Description *string
	Date        time.Time
}

// UpdateIncome updates an existing income record with validation
func (s *LedgerService) UpdateIncome(ownerID, id uuid.UUID, input UpdateIncomeInput) (*domain.IncomeRecord, error) {
	recordType := strings.TrimSpace(input.Type)
	if recordType == "" {
		return nil, domain.ErrTypeRequired
	}
	if len(recordType) > domain.MaxTypeLength {
		return nil, domain.ErrTypeTooLong
	}

	source := strings.TrimSpace(input.Source)
	if source == "" {
		return nil, domain.ErrSourceRequired
	}
	if len(source) > domain.MaxNameLength {
		return nil, domain.ErrTextTooLong
	}

	if input.Amount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	description, err := normalizeDescription(input.Description)
	if err != nil {
		return nil, err
	}

	updated, err := s.incomeRepo.Update(ownerID, id, &domain.UpdateIncomeData{
		Type:        recordType,
		Amount:      input.Amount,
		Source:      source,
		Description: description,
		Date:        input.Date,
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ownerID, websocket.IncomeUpdated(updated))
	return updated, nil
}

// DeleteIncome deletes an income record by ID
func (s *LedgerService) DeleteIncome(ownerID, id uuid.UUID) error {
	if err := s.incomeRepo.Delete(ownerID, id); err != nil {
		return err
	}
	s.publishEvent(ownerID, websocket.IncomeDeleted(map[string]string{"id": id.String()}))
	return nil
}

// GetSummary fetches the owner's ledger and computes the aggregated
// financial metrics, optionally restricted to a date range
func (s *LedgerService) GetSummary(ownerID uuid.UUID, filters *domain.LedgerFilters) (*domain.LedgerSummary, error) {
	expenses, err := s.expenseRepo.GetByOwner(ownerID, filters)
	if err != nil {
		return nil, err
	}

	incomes, err := s.incomeRepo.GetByOwner(ownerID, filters)
	if err != nil {
		return nil, err
	}

	summary := ComputeLedgerSummary(expenses, incomes)
	return &summary, nil
}

// normalizeDescription trims an optional description and drops it when
// empty, rejecting over-length values
func normalizeDescription(description *string) (*string, error) {
	if description == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*description)
	if trimmed == "" {
		return nil, nil
	}
	if len(trimmed) > domain.MaxDescriptionLength {
		return nil, domain.ErrTextTooLong
	}
	return &trimmed, nil
}

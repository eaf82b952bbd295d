package testutil

import (
	"sort"
	"time"

	"github.com/farmbook/farmbook-backend/internal/domain"
	"github.com/google/uuid"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users    map[string]*domain.User
	ByID     map[uuid.UUID]*domain.User
	CreateFn func(auth0ID, email string, displayName *string) (*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*domain.User),
		ByID:  make(map[uuid.UUID]*domain.User),
	}
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByAuth0ID retrieves a user by Auth0 ID
func (m *MockUserRepository) GetByAuth0ID(auth0ID string) (*domain.User, error) {
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// CreateOrGetByAuth0ID creates or retrieves a user by Auth0 ID
func (m *MockUserRepository) CreateOrGetByAuth0ID(auth0ID, email string, displayName *string) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(auth0ID, email, displayName)
	}
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	user := &domain.User{
		ID:          uuid.New(),
		Auth0ID:     auth0ID,
		Email:       email,
		DisplayName: displayName,
		UserType:    domain.UserTypeFarmer,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	m.Users[auth0ID] = user
	m.ByID[user.ID] = user
	return user, nil
}

// UpdateDisplayName updates only the user's display name
func (m *MockUserRepository) UpdateDisplayName(id uuid.UUID, displayName string) (*domain.User, error) {
	user, ok := m.ByID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user.DisplayName = &displayName
	user.UpdatedAt = time.Now()
	return user, nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.Users[user.Auth0ID] = user
	m.ByID[user.ID] = user
}

// MockExpenseRepository is a mock implementation of domain.ExpenseRepository
type MockExpenseRepository struct {
	Expenses   map[uuid.UUID]*domain.ExpenseRecord
	CreateFn   func(expense *domain.ExpenseRecord) (*domain.ExpenseRecord, error)
	GetOwnerFn func(ownerID uuid.UUID, filters *domain.LedgerFilters) ([]*domain.ExpenseRecord, error)
}

// NewMockExpenseRepository creates a new MockExpenseRepository
func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{
		Expenses: make(map[uuid.UUID]*domain.ExpenseRecord),
	}
}

// Create creates a new expense record
func (m *MockExpenseRepository) Create(expense *domain.ExpenseRecord) (*domain.ExpenseRecord, error) {
	if m.CreateFn != nil {
		return m.CreateFn(expense)
	}
	if expense.ID == uuid.Nil {
		expense.ID = uuid.New()
	}
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now()
	}
	m.Expenses[expense.ID] = expense
	return expense, nil
}

// GetByOwner returns the owner's expenses ordered by date descending
func (m *MockExpenseRepository) GetByOwner(ownerID uuid.UUID, filters *domain.LedgerFilters) ([]*domain.ExpenseRecord, error) {
	if m.GetOwnerFn != nil {
		return m.GetOwnerFn(ownerID, filters)
	}
	results := make([]*domain.ExpenseRecord, 0)
	for _, e := range m.Expenses {
		if e.OwnerID != ownerID {
			continue
		}
		if !matchesDateRange(e.Date, filters) {
			continue
		}
		results = append(results, e)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Date.After(results[j].Date)
	})
	return results, nil
}

// GetByID retrieves a single expense scoped to the owner
func (m *MockExpenseRepository) GetByID(ownerID, id uuid.UUID) (*domain.ExpenseRecord, error) {
	e, ok := m.Expenses[id]
	if !ok || e.OwnerID != ownerID {
		return nil, domain.ErrExpenseNotFound
	}
	return e, nil
}

// Update modifies an existing expense scoped to the owner
func (m *MockExpenseRepository) Update(ownerID, id uuid.UUID, data *domain.UpdateExpenseData) (*domain.ExpenseRecord, error) {
	e, ok := m.Expenses[id]
	if !ok || e.OwnerID != ownerID {
		return nil, domain.ErrExpenseNotFound
	}
	e.Type = data.Type
	e.Category = data.Category
	e.Amount = data.Amount
	e.Description = data.Description
	e.Date = data.Date
	return e, nil
}

// Delete removes an expense scoped to the owner
func (m *MockExpenseRepository) Delete(ownerID, id uuid.UUID) error {
	e, ok := m.Expenses[id]
	if !ok || e.OwnerID != ownerID {
		return domain.ErrExpenseNotFound
	}
	delete(m.Expenses, id)
	return nil
}

// MockIncomeRepository is a mock implementation of domain.IncomeRepository
type MockIncomeRepository struct {
	Incomes    map[uuid.UUID]*domain.IncomeRecord
	CreateFn   func(income *domain.IncomeRecord) (*domain.IncomeRecord, error)
	GetOwnerFn func(ownerID uuid.UUID, filters *domain.LedgerFilters) ([]*domain.IncomeRecord, error)
}

// NewMockIncomeRepository creates a new MockIncomeRepository
func NewMockIncomeRepository() *MockIncomeRepository {
	return &MockIncomeRepository{
		Incomes: make(map[uuid.UUID]*domain.IncomeRecord),
	}
}

// Create creates a new income record
func (m *MockIncomeRepository) Create(income *domain.IncomeRecord) (*domain.IncomeRecord, error) {
	if m.CreateFn != nil {
		return m.CreateFn(income)
	}
	if income.ID == uuid.Nil {
		income.ID = uuid.New()
	}
	if income.CreatedAt.IsZero() {
		income.CreatedAt = time.Now()
	}
	m.Incomes[income.ID] = income
	return income, nil
}

// GetByOwner returns the owner's incomes ordered by date descending
func (m *MockIncomeRepository) GetByOwner(ownerID uuid.UUID, filters *domain.LedgerFilters) ([]*domain.IncomeRecord, error) {
	if m.GetOwnerFn != nil {
		return m.GetOwnerFn(ownerID, filters)
	}
	results := make([]*domain.IncomeRecord, 0)
	for _, in := range m.Incomes {
		if in.OwnerID != ownerID {
			continue
		}
		if !matchesDateRange(in.Date, filters) {
			continue
		}
		results = append(results, in)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Date.After(results[j].Date)
	})
	return results, nil
}

// GetByID retrieves a single income record scoped to the owner
func (m *MockIncomeRepository) GetByID(ownerID, id uuid.UUID) (*domain.IncomeRecord, error) {
	in, ok := m.Incomes[id]
	if !ok || in.OwnerID != ownerID {
		return nil, domain.ErrIncomeNotFound
	}
	return in, nil
}

// Update modifies an existing income record scoped to the owner
func (m *MockIncomeRepository) Update(ownerID, id uuid.UUID, data *domain.UpdateIncomeData) (*domain.IncomeRecord, error) {
	in, ok := m.Incomes[id]
	if !ok || in.OwnerID != ownerID {
		return nil, domain.ErrIncomeNotFound
	}
	in.Type = data.Type
	in.Amount = data.Amount
	in.Source = data.Source
	in.Description = data.Description
	in.Date = data.Date
	return in, nil
}

// Delete removes an income record scoped to the owner
func (m *MockIncomeRepository) Delete(ownerID, id uuid.UUID) error {
	in, ok := m.Incomes[id]
	if !ok || in.OwnerID != ownerID {
		return domain.ErrIncomeNotFound
	}
	delete(m.Incomes, id)
	return nil
}

// MockSoilTestRepository is a mock implementation of domain.SoilTestRepository
type MockSoilTestRepository struct {
	Tests    []*domain.SoilTestRecord
	CreateFn func(test *domain.SoilTestRecord) (*domain.SoilTestRecord, error)
	LatestFn func(ownerID uuid.UUID) (*domain.SoilTestRecord, error)
}

// NewMockSoilTestRepository creates a new MockSoilTestRepository
func NewMockSoilTestRepository() *MockSoilTestRepository {
	return &MockSoilTestRepository{
		Tests: make([]*domain.SoilTestRecord, 0),
	}
}

// Create creates a new soil test record
func (m *MockSoilTestRepository) Create(test *domain.SoilTestRecord) (*domain.SoilTestRecord, error) {
	if m.CreateFn != nil {
		return m.CreateFn(test)
	}
	if test.ID == uuid.Nil {
		test.ID = uuid.New()
	}
	if test.CreatedAt.IsZero() {
		test.CreatedAt = time.Now()
	}
	m.Tests = append(m.Tests, test)
	return test, nil
}

// GetByOwner returns the owner's soil tests ordered by test date descending
func (m *MockSoilTestRepository) GetByOwner(ownerID uuid.UUID) ([]*domain.SoilTestRecord, error) {
	results := make([]*domain.SoilTestRecord, 0)
	for _, test := range m.Tests {
		if test.OwnerID == ownerID {
			results = append(results, test)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		if !results[i].TestDate.Equal(results[j].TestDate) {
			return results[i].TestDate.After(results[j].TestDate)
		}
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	return results, nil
}

// GetLatest returns the owner's most recent soil test
func (m *MockSoilTestRepository) GetLatest(ownerID uuid.UUID) (*domain.SoilTestRecord, error) {
	if m.LatestFn != nil {
		return m.LatestFn(ownerID)
	}
	tests, err := m.GetByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	if len(tests) == 0 {
		return nil, domain.ErrSoilTestNotFound
	}
	return tests[0], nil
}

// MockCropPlanRepository is a mock implementation of domain.CropPlanRepository
type MockCropPlanRepository struct {
	Plans    map[uuid.UUID]*domain.CropPlan
	CreateFn func(plan *domain.CropPlan) (*domain.CropPlan, error)
}

// NewMockCropPlanRepository creates a new MockCropPlanRepository
func NewMockCropPlanRepository() *MockCropPlanRepository {
	return &MockCropPlanRepository{
		Plans: make(map[uuid.UUID]*domain.CropPlan),
	}
}

// Create creates a new crop plan
func (m *MockCropPlanRepository) Create(plan *domain.CropPlan) (*domain.CropPlan, error) {
	if m.CreateFn != nil {
		return m.CreateFn(plan)
	}
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	now := time.Now()
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = now
	}
	plan.UpdatedAt = now
	m.Plans[plan.ID] = plan
	return plan, nil
}

// GetByOwner returns the owner's crop plans ordered by planting date descending
func (m *MockCropPlanRepository) GetByOwner(ownerID uuid.UUID) ([]*domain.CropPlan, error) {
	results := make([]*domain.CropPlan, 0)
	for _, plan := range m.Plans {
		if plan.OwnerID == ownerID {
			results = append(results, plan)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].PlantingDate.After(results[j].PlantingDate)
	})
	return results, nil
}

// GetByID retrieves a single crop plan scoped to the owner
func (m *MockCropPlanRepository) GetByID(ownerID, id uuid.UUID) (*domain.CropPlan, error) {
	plan, ok := m.Plans[id]
	if !ok || plan.OwnerID != ownerID {
		return nil, domain.ErrCropPlanNotFound
	}
	return plan, nil
}

// Update modifies an existing crop plan scoped to the owner
func (m *MockCropPlanRepository) Update(ownerID, id uuid.UUID, data *domain.UpdateCropPlanData) (*domain.CropPlan, error) {
	plan, ok := m.Plans[id]
	if !ok || plan.OwnerID != ownerID {
		return nil, domain.ErrCropPlanNotFound
	}
	plan.CropName = data.CropName
	plan.PlantingDate = data.PlantingDate
	plan.HarvestDate = data.HarvestDate
	plan.Area = data.Area
	plan.Location = data.Location
	plan.SoilType = data.SoilType
	plan.Season = data.Season
	plan.WaterSource = data.WaterSource
	plan.Budget = data.Budget
	plan.Status = data.Status
	plan.Notes = data.Notes
	plan.UpdatedAt = time.Now()
	return plan, nil
}

// Delete removes a crop plan scoped to the owner
func (m *MockCropPlanRepository) Delete(ownerID, id uuid.UUID) error {
	plan, ok := m.Plans[id]
	if !ok || plan.OwnerID != ownerID {
		return domain.ErrCropPlanNotFound
	}
	delete(m.Plans, id)
	return nil
}

func matchesDateRange(date time.Time, filters *domain.LedgerFilters) bool {
	if filters == nil {
		return true
	}
	if filters.StartDate != nil && date.Before(*filters.StartDate) {
		return false
	}
	if filters.EndDate != nil && date.After(*filters.EndDate) {
		return false
	}
	return true
}

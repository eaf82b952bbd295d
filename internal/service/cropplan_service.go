package service

import (
	"strings"
	"time"

	"github.com/farmbook/farmbook-backend/internal/domain"
	"github.com/farmbook/farmbook-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CropPlanService handles crop plan business logic
type CropPlanService struct {
	cropPlanRepo   domain.CropPlanRepository
	eventPublisher websocket.EventPublisher
}

// NewCropPlanService creates a new CropPlanService
func NewCropPlanService(cropPlanRepo domain.CropPlanRepository) *CropPlanService {
	return &CropPlanService{
		cropPlanRepo: cropPlanRepo,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *CropPlanService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *CropPlanService) publishEvent(ownerID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(ownerID, event)
	}
}

// CreateCropPlanInput holds the input for creating a crop plan
type CreateCropPlanInput struct {
	CropName     string
	PlantingDate time.Time
	HarvestDate  *time.Time
	Area         float64
	Location     string
	SoilType     string
	Season       string
	WaterSource  string
	Budget       decimal.Decimal
	Status       *domain.CropStatus
	Notes        *string
}

// CreateCropPlan creates a new crop plan with validation
func (s *CropPlanService) CreateCropPlan(ownerID uuid.UUID, input CreateCropPlanInput) (*domain.CropPlan, error) {
	name := strings.TrimSpace(input.CropName)
	if name == "" {
		return nil, domain.ErrCropNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrTextTooLong
	}

	if input.Area < 0 {
		return nil, domain.ErrInvalidArea
	}
	if input.Budget.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	if input.HarvestDate != nil && input.HarvestDate.Before(input.PlantingDate) {
		return nil, domain.ErrInvalidDateRange
	}

	status := domain.CropStatusPlanned
	if input.Status != nil {
		if !domain.ValidCropStatus(*input.Status) {
			return nil, domain.ErrInvalidStatus
		}
		status = *input.Status
	}

	notes, err := normalizeDescription(input.Notes)
	if err != nil {
		return nil, err
	}

	plan := &domain.CropPlan{
		OwnerID:      ownerID,
		CropName:     name,
		PlantingDate: input.PlantingDate,
		HarvestDate:  input.HarvestDate,
		Area:         input.Area,
		Location:     strings.TrimSpace(input.Location),
		SoilType:     strings.TrimSpace(input.SoilType),
		Season:       strings.TrimSpace(input.Season),
		WaterSource:  strings.TrimSpace(input.WaterSource),
		Budget:       input.Budget,
		Status:       status,
		Notes:        notes,
	}

	created, err := s.cropPlanRepo.Create(plan)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ownerID, websocket.CropPlanCreated(created))
	return created, nil
}

// GetCropPlans retrieves all crop plans for an owner, newest first
func (s *CropPlanService) GetCropPlans(ownerID uuid.UUID) ([]*domain.CropPlan, error) {
	return s.cropPlanRepo.GetByOwner(ownerID)
}

// GetCropPlanByID retrieves a crop plan by ID within an owner's scope
func (s *CropPlanService) GetCropPlanByID(ownerID, id uuid.UUID) (*domain.CropPlan, error) {
	return s.cropPlanRepo.GetByID(ownerID, id)
}

// UpdateCropPlanInput holds the input for updating a crop plan
type UpdateCropPlanInput struct {
	CropName     string
	PlantingDate time.Time
	HarvestDate  *time.Time
	Area         float64
	Location     string
	SoilType     string
	Season       string
	WaterSource  string
	Budget       decimal.Decimal
	Status       domain.CropStatus
	Notes        *string
}

// UpdateCropPlan updates an existing crop plan with validation
func (s *CropPlanService) UpdateCropPlan(ownerID, id uuid.UUID, input UpdateCropPlanInput) (*domain.CropPlan, error) {
	name := strings.TrimSpace(input.CropName)
	if name == "" {
		return nil, domain.ErrCropNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrTextTooLong
	}

	if input.Area < 0 {
		return nil, domain.ErrInvalidArea
	}
	if input.Budget.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	if input.HarvestDate != nil && input.HarvestDate.Before(input.PlantingDate) {
		return nil, domain.ErrInvalidDateRange
	}

	if !domain.ValidCropStatus(input.Status) {
		return nil, domain.ErrInvalidStatus
	}

	notes, err := normalizeDescription(input.Notes)
	if err != nil {
		return nil, err
	}

	updated, err := s.cropPlanRepo.Update(ownerID, id, &domain.UpdateCropPlanData{
		CropName:     name,
		PlantingDate: input.PlantingDate,
		HarvestDate:  input.HarvestDate,
		Area:         input.Area,
		Location:     strings.TrimSpace(input.Location),
		SoilType:     strings.TrimSpace(input.SoilType),
		Season:       strings.TrimSpace(input.Season),
		WaterSource:  strings.TrimSpace(input.WaterSource),
		Budget:       input.Budget,
		Status:       input.Status,
		Notes:        notes,
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ownerID, websocket.CropPlanUpdated(updated))
	return updated, nil
}

// DeleteCropPlan deletes a crop plan by ID
func (s *CropPlanService) DeleteCropPlan(ownerID, id uuid.UUID) error {
	if err := s.cropPlanRepo.Delete(ownerID, id); err != nil {
		return err
	}
	s.publishEvent(ownerID, websocket.CropPlanDeleted(map[string]string{"id": id.String()}))
	return nil
}

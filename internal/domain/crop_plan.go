package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CropStatus string

const (
	CropStatusPlanned   CropStatus = "planned"
	CropStatusPlanted   CropStatus = "planted"
	CropStatusGrowing   CropStatus = "growing"
	CropStatusHarvested CropStatus = "harvested"
)

// ValidCropStatus reports whether s is one of the known statuses
func ValidCropStatus(s CropStatus) bool {
	switch s {
	case CropStatusPlanned, CropStatusPlanted, CropStatusGrowing, CropStatusHarvested:
		return true
	}
	return false
}

// CropPlan represents a planned or ongoing crop cycle
type CropPlan struct {
	ID           uuid.UUID       `json:"id"`
	OwnerID      uuid.UUID       `json:"ownerId"`
	CropName     string          `json:"cropName"`
	PlantingDate time.Time       `json:"plantingDate"`
	HarvestDate  *time.Time      `json:"harvestDate,omitempty"`
	Area         float64         `json:"area"` // acres
	Location     string          `json:"location,omitempty"`
	SoilType     string          `json:"soilType,omitempty"`
	Season       string          `json:"season,omitempty"`
	WaterSource  string          `json:"waterSource,omitempty"`
	Budget       decimal.Decimal `json:"budget"`
	Status       CropStatus      `json:"status"`
	Notes        *string         `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// UpdateCropPlanData holds the fields applied by a crop plan update
type UpdateCropPlanData struct {
	CropName     string
	PlantingDate time.Time
	HarvestDate  *time.Time
	Area         float64
	Location     string
	SoilType     string
	Season       string
	WaterSource  string
	Budget       decimal.Decimal
	Status       CropStatus
	Notes        *string
}

// CropPlanRepository defines persistence operations for crop plans
type CropPlanRepository interface {
	Create(plan *CropPlan) (*CropPlan, error)
	GetByOwner(ownerID uuid.UUID) ([]*CropPlan, error)
	GetByID(ownerID, id uuid.UUID) (*CropPlan, error)
	Update(ownerID, id uuid.UUID, data *UpdateCropPlanData) (*CropPlan, error)
	Delete(ownerID, id uuid.UUID) error
}

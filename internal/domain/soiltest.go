package domain

import (
	"time"

	"github.com/google/uuid"
)

// SoilTestRecord represents the results of one physical soil test.
// Nutrient concentrations are in mg/kg; organic matter and moisture
// are percentages. Moisture is optional because older lab reports did
// not include it.
type SoilTestRecord struct {
	ID              uuid.UUID `json:"id"`
	OwnerID         uuid.UUID `json:"ownerId"`
	PHLevel         float64   `json:"phLevel"`
	Nitrogen        float64   `json:"nitrogen"`
	Phosphorus      float64   `json:"phosphorus"`
	Potassium       float64   `json:"potassium"`
	OrganicMatter   float64   `json:"organicMatter"`
	Moisture        *float64  `json:"moisture,omitempty"`
	TestDate        time.Time `json:"testDate"`
	Recommendations []string  `json:"recommendations,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// SoilTestRepository defines persistence operations for soil tests.
// GetByOwner returns records ordered by test date descending, ties
// broken by creation time descending, so the first element is always
// the current test.
type SoilTestRepository interface {
	Create(test *SoilTestRecord) (*SoilTestRecord, error)
	GetByOwner(ownerID uuid.UUID) ([]*SoilTestRecord, error)
	GetLatest(ownerID uuid.UUID) (*SoilTestRecord, error)
}

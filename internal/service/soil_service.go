package service

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/farmbook/farmbook-backend/internal/domain"
	"github.com/farmbook/farmbook-backend/internal/websocket"
	"github.com/google/uuid"
)

// Band scoring thresholds. Each of the four nutrient bands contributes
// 25, 15, or 5 points depending on where the measured value falls.
const (
	phOptimalMin = 6.0
	phOptimalMax = 7.5
	phFairMin    = 5.5
	phFairMax    = 8.0

	nitrogenOptimal = 50.0 // mg/kg
	nitrogenFair    = 30.0

	phosphorusOptimalMin = 40.0
	phosphorusOptimalMax = 60.0
	phosphorusFairMin    = 20.0
	phosphorusFairMax    = 80.0

	potassiumOptimal = 200.0
	potassiumFair    = 150.0

	bandOptimalPoints = 25
	bandFairPoints    = 15
	bandPoorPoints    = 5

	organicMatterGood = 2.0 // percent
	moistureOptimalMin = 20.0
	moistureOptimalMax = 30.0
)

// ComputeSoilHealth scores the given soil test on a 0-100 scale and
// derives the status label and per-nutrient badges. Pure and
// deterministic. A nil record yields the sentinel result (score 0,
// status "no-data", no badges) which the dashboard renders as an
// empty state. Callers must pass the most recent test; no sorting or
// tie-breaking happens here.
func ComputeSoilHealth(latest *domain.SoilTestRecord) domain.SoilHealthResult {
	if latest == nil {
		return domain.SoilHealthResult{
			Score:  0,
			Status: domain.SoilStatusNoData,
		}
	}

	score := phBand(latest.PHLevel) +
		nitrogenBand(latest.Nitrogen) +
		phosphorusBand(latest.Phosphorus) +
		potassiumBand(latest.Potassium)

	// The bands cannot leave [0, 100], but the invariant is cheap to
	// hold explicitly.
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	testDate := latest.TestDate
	return domain.SoilHealthResult{
		Score:    score,
		Status:   statusForScore(score),
		Badges:   deriveBadges(latest),
		TestDate: &testDate,
	}
}

func phBand(ph float64) int {
	switch {
	case ph >= phOptimalMin && ph <= phOptimalMax:
		return bandOptimalPoints
	case ph >= phFairMin && ph <= phFairMax:
		return bandFairPoints
	default:
		return bandPoorPoints
	}
}

func nitrogenBand(n float64) int {
	switch {
	case n >= nitrogenOptimal:
		return bandOptimalPoints
	case n >= nitrogenFair:
		return bandFairPoints
	default:
		return bandPoorPoints
	}
}

func phosphorusBand(p float64) int {
	switch {
	case p >= phosphorusOptimalMin && p <= phosphorusOptimalMax:
		return bandOptimalPoints
	case p >= phosphorusFairMin && p <= phosphorusFairMax:
		return bandFairPoints
	default:
		return bandPoorPoints
	}
}

func potassiumBand(k float64) int {
	switch {
	case k >= potassiumOptimal:
		return bandOptimalPoints
	case k >= potassiumFair:
		return bandFairPoints
	default:
		return bandPoorPoints
	}
}

func statusForScore(score int) domain.SoilHealthStatus {
	switch {
	case score >= 80:
		return domain.SoilStatusExcellent
	case score >= 60:
		return domain.SoilStatusGood
	default:
		return domain.SoilStatusNeedsImprovement
	}
}

// deriveBadges computes the display badges. Absent moisture is shown
// as "monitor"; it never contributes to the score.
func deriveBadges(test *domain.SoilTestRecord) *domain.NutrientBadges {
	badges := &domain.NutrientBadges{
		PH:            domain.BadgeAdjust,
		Nitrogen:      domain.BadgeLow,
		OrganicMatter: domain.BadgeLow,
		Moisture:      domain.BadgeMonitor,
	}

	if test.PHLevel >= phOptimalMin && test.PHLevel <= phOptimalMax {
		badges.PH = domain.BadgeOptimal
	}
	if test.Nitrogen >= nitrogenOptimal {
		badges.Nitrogen = domain.BadgeGood
	}
	if test.OrganicMatter >= organicMatterGood {
		badges.OrganicMatter = domain.BadgeGood
	}
	if test.Moisture != nil && *test.Moisture >= moistureOptimalMin && *test.Moisture <= moistureOptimalMax {
		badges.Moisture = domain.BadgeOptimal
	}

	return badges
}

// SoilService handles soil test business logic
type SoilService struct {
	soilTestRepo   domain.SoilTestRepository
	eventPublisher websocket.EventPublisher
}

// NewSoilService creates a new SoilService
func NewSoilService(soilTestRepo domain.SoilTestRepository) *SoilService {
	return &SoilService{
		soilTestRepo: soilTestRepo,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *SoilService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateSoilTestInput holds the input for recording a soil test
type CreateSoilTestInput struct {
	PHLevel         float64
	Nitrogen        float64
	Phosphorus      float64
	Potassium       float64
	OrganicMatter   float64
	Moisture        *float64
	TestDate        *time.Time
	Recommendations []string
}

// CreateSoilTest records a new soil test with validation. Malformed
// nutrient values are rejected here so the evaluator never sees NaN
// or negative inputs.
func (s *SoilService) CreateSoilTest(ownerID uuid.UUID, input CreateSoilTestInput) (*domain.SoilTestRecord, error) {
	if !isFinite(input.PHLevel) || input.PHLevel < 0 || input.PHLevel > 14 {
		return nil, domain.ErrInvalidPH
	}
	for _, v := range []float64{input.Nitrogen, input.Phosphorus, input.Potassium, input.OrganicMatter} {
		if !isFinite(v) || v < 0 {
			return nil, domain.ErrInvalidNutrient
		}
	}
	if input.Moisture != nil {
		if !isFinite(*input.Moisture) || *input.Moisture < 0 || *input.Moisture > 100 {
			return nil, domain.ErrInvalidMoisture
		}
	}

	testDate := time.Now().UTC().Truncate(24 * time.Hour)
	if input.TestDate != nil {
		testDate = *input.TestDate
	}

	recommendations := make([]string, 0, len(input.Recommendations))
	for _, r := range input.Recommendations {
		if trimmed := strings.TrimSpace(r); trimmed != "" {
			recommendations = append(recommendations, trimmed)
		}
	}

	test := &domain.SoilTestRecord{
		OwnerID:         ownerID,
		PHLevel:         input.PHLevel,
		Nitrogen:        input.Nitrogen,
		Phosphorus:      input.Phosphorus,
		Potassium:       input.Potassium,
		OrganicMatter:   input.OrganicMatter,
		Moisture:        input.Moisture,
		TestDate:        testDate,
		Recommendations: recommendations,
	}

	created, err := s.soilTestRepo.Create(test)
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		s.eventPublisher.Publish(ownerID, websocket.SoilTestCreated(created))
	}
	return created, nil
}

// GetSoilTests retrieves all soil tests for an owner, most recent first
func (s *SoilService) GetSoilTests(ownerID uuid.UUID) ([]*domain.SoilTestRecord, error) {
	return s.soilTestRepo.GetByOwner(ownerID)
}

// GetCurrentHealth computes the soil health summary from the owner's
// most recent test. No test yet is not an error: the sentinel result
// is returned instead.
func (s *SoilService) GetCurrentHealth(ownerID uuid.UUID) (*domain.SoilHealthResult, error) {
	latest, err := s.soilTestRepo.GetLatest(ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrSoilTestNotFound) {
			result := ComputeSoilHealth(nil)
			return &result, nil
		}
		return nil, err
	}

	result := ComputeSoilHealth(latest)
	return &result, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

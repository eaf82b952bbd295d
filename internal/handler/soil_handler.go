package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/farmbook/farmbook-backend/internal/domain"
	"github.com/farmbook/farmbook-backend/internal/middleware"
	"github.com/farmbook/farmbook-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// SoilHandler handles soil test and soil health HTTP requests
type SoilHandler struct {
	soilService *service.SoilService
}

// NewSoilHandler creates a new SoilHandler
func NewSoilHandler(soilService *service.SoilService) *SoilHandler {
	return &SoilHandler{
		soilService: soilService,
	}
}

// CreateSoilTestRequest represents the create soil test request body.
// Older clients send the pH reading as "ph"; both spellings are
// accepted and "phLevel" wins when both are present.
type CreateSoilTestRequest struct {
	PHLevel         *float64 `json:"phLevel,omitempty"`
	PH              *float64 `json:"ph,omitempty"`
	Nitrogen        float64  `json:"nitrogen"`
	Phosphorus      float64  `json:"phosphorus"`
	Potassium       float64  `json:"potassium"`
	OrganicMatter   float64  `json:"organicMatter"`
	Moisture        *float64 `json:"moisture,omitempty"`
	TestDate        *string  `json:"testDate,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// SoilTestResponse represents a soil test in API responses
type SoilTestResponse struct {
	ID              string   `json:"id"`
	PHLevel         float64  `json:"phLevel"`
	Nitrogen        float64  `json:"nitrogen"`
	Phosphorus      float64  `json:"phosphorus"`
	Potassium       float64  `json:"potassium"`
	OrganicMatter   float64  `json:"organicMatter"`
	Moisture        *float64 `json:"moisture,omitempty"`
	TestDate        string   `json:"testDate"`
	Recommendations []string `json:"recommendations"`
	CreatedAt       string   `json:"createdAt"`
}

func toSoilTestResponse(t *domain.SoilTestRecord) SoilTestResponse {
	recommendations := t.Recommendations
	if recommendations == nil {
		recommendations = []string{}
	}
	return SoilTestResponse{
		ID:              t.ID.String(),
		PHLevel:         t.PHLevel,
		Nitrogen:        t.Nitrogen,
		Phosphorus:      t.Phosphorus,
		Potassium:       t.Potassium,
		OrganicMatter:   t.OrganicMatter,
		Moisture:        t.Moisture,
		TestDate:        t.TestDate.Format("2006-01-02"),
		Recommendations: recommendations,
		CreatedAt:       t.CreatedAt.Format(time.RFC3339),
	}
}

// CreateSoilTest handles POST /soil-tests
func (h *SoilHandler) CreateSoilTest(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateSoilTestRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	// Normalize the legacy "ph" field
	var phLevel float64
	switch {
	case req.PHLevel != nil:
		phLevel = *req.PHLevel
	case req.PH != nil:
		phLevel = *req.PH
	default:
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "phLevel", Message: "pH level is required"},
		})
	}

	testDate, err := parseOptionalDate(req.TestDate)
	if err != nil {
		return NewValidationError(c, "Invalid test date", []ValidationError{
			{Field: "testDate", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	test, err := h.soilService.CreateSoilTest(ownerID, service.CreateSoilTestInput{
		PHLevel:         phLevel,
		Nitrogen:        req.Nitrogen,
		Phosphorus:      req.Phosphorus,
		Potassium:       req.Potassium,
		OrganicMatter:   req.OrganicMatter,
		Moisture:        req.Moisture,
		TestDate:        testDate,
		Recommendations: req.Recommendations,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPH):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "phLevel", Message: "pH must be between 0 and 14"},
			})
		case errors.Is(err, domain.ErrInvalidNutrient):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "nutrients", Message: "Nutrient values must be non-negative finite numbers"},
			})
		case errors.Is(err, domain.ErrInvalidMoisture):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "moisture", Message: "Moisture must be between 0 and 100"},
			})
		}
		log.Error().Err(err).Str("owner_id", ownerID.String()).Msg("Failed to create soil test")
		return NewInternalError(c, "Failed to create soil test")
	}

	return c.JSON(http.StatusCreated, toSoilTestResponse(test))
}

// GetSoilTests handles GET /soil-tests
func (h *SoilHandler) GetSoilTests(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	tests, err := h.soilService.GetSoilTests(ownerID)
	if err != nil {
		log.Error().Err(err).Str("owner_id", ownerID.String()).Msg("Failed to get soil tests")
		return NewInternalError(c, "Failed to get soil tests")
	}

	responses := make([]SoilTestResponse, 0, len(tests))
	for _, t := range tests {
		responses = append(responses, toSoilTestResponse(t))
	}
	return c.JSON(http.StatusOK, responses)
}

// GetSoilHealth handles GET /soil-health
func (h *SoilHandler) GetSoilHealth(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	health, err := h.soilService.GetCurrentHealth(ownerID)
	if err != nil {
		log.Error().Err(err).Str("owner_id", ownerID.String()).Msg("Failed to compute soil health")
		return NewInternalError(c, "Failed to compute soil health")
	}

	return c.JSON(http.StatusOK, health)
}

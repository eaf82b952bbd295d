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
	"github.com/shopspring/decimal"
)

// CropPlanHandler handles crop plan HTTP requests
type CropPlanHandler struct {
	cropPlanService *service.CropPlanService
}

// NewCropPlanHandler creates a new CropPlanHandler
func NewCropPlanHandler(cropPlanService *service.CropPlanService) *CropPlanHandler {
	return &CropPlanHandler{
		cropPlanService: cropPlanService,
	}
}

// CreateCropPlanRequest represents the create crop plan request body
type CreateCropPlanRequest struct {
	CropName     string  `json:"cropName"`
	PlantingDate string  `json:"plantingDate"`
	HarvestDate  *string `json:"harvestDate,omitempty"`
	Area         float64 `json:"area"`
	Location     string  `json:"location,omitempty"`
	SoilType     string  `json:"soilType,omitempty"`
	Season       string  `json:"season,omitempty"`
	WaterSource  string  `json:"waterSource,omitempty"`
	Budget       *string `json:"budget,omitempty"`
	Status       *string `json:"status,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// UpdateCropPlanRequest represents the update crop plan request body
type UpdateCropPlanRequest struct {
	CropName     string  `json:"cropName"`
	PlantingDate string  `json:"plantingDate"`
	HarvestDate  *string `json:"harvestDate,omitempty"`
	Area         float64 `json:"area"`
	Location     string  `json:"location,omitempty"`
	SoilType     string  `json:"soilType,omitempty"`
	Season       string  `json:"season,omitempty"`
	WaterSource  string  `json:"waterSource,omitempty"`
	Budget       *string `json:"budget,omitempty"`
	Status       string  `json:"status"`
	Notes        *string `json:"notes,omitempty"`
}

// CropPlanResponse represents a crop plan in API responses
type CropPlanResponse struct {
	ID           string  `json:"id"`
	CropName     string  `json:"cropName"`
	PlantingDate string  `json:"plantingDate"`
	HarvestDate  *string `json:"harvestDate,omitempty"`
	Area         float64 `json:"area"`
	Location     string  `json:"location,omitempty"`
	SoilType     string  `json:"soilType,omitempty"`
	Season       string  `json:"season,omitempty"`
	WaterSource  string  `json:"waterSource,omitempty"`
	Budget       string  `json:"budget"`
	Status       string  `json:"status"`
	Notes        *string `json:"notes,omitempty"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

func toCropPlanResponse(p *domain.CropPlan) CropPlanResponse {
	resp := CropPlanResponse{
		ID:           p.ID.String(),
		CropName:     p.CropName,
		PlantingDate: p.PlantingDate.Format("2006-01-02"),
		Area:         p.Area,
		Location:     p.Location,
		SoilType:     p.SoilType,
		Season:       p.Season,
		WaterSource:  p.WaterSource,
		Budget:       p.Budget.StringFixed(2),
		Status:       string(p.Status),
		Notes:        p.Notes,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    p.UpdatedAt.Format(time.RFC3339),
	}
	if p.HarvestDate != nil {
		harvest := p.HarvestDate.Format("2006-01-02")
		resp.HarvestDate = &harvest
	}
	return resp
}

// CreateCropPlan handles POST /crop-plans
func (h *CropPlanHandler) CreateCropPlan(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateCropPlanRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	plantingDate, err := time.Parse("2006-01-02", req.PlantingDate)
	if err != nil {
		return NewValidationError(c, "Invalid planting date", []ValidationError{
			{Field: "plantingDate", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	harvestDate, err := parseOptionalDate(req.HarvestDate)
	if err != nil {
		return NewValidationError(c, "Invalid harvest date", []ValidationError{
			{Field: "harvestDate", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	budget := decimal.Zero
	if req.Budget != nil && *req.Budget != "" {
		budget, err = decimal.NewFromString(*req.Budget)
		if err != nil {
			return NewValidationError(c, "Invalid budget", []ValidationError{
				{Field: "budget", Message: "Must be a valid decimal number"},
			})
		}
	}

	var status *domain.CropStatus
	if req.Status != nil && *req.Status != "" {
		s := domain.CropStatus(*req.Status)
		status = &s
	}

	plan, err := h.cropPlanService.CreateCropPlan(ownerID, service.CreateCropPlanInput{
		CropName:     req.CropName,
		PlantingDate: plantingDate,
		HarvestDate:  harvestDate,
		Area:         req.Area,
		Location:     req.Location,
		SoilType:     req.SoilType,
		Season:       req.Season,
		WaterSource:  req.WaterSource,
		Budget:       budget,
		Status:       status,
		Notes:        req.Notes,
	})
	if err != nil {
		if verr := mapCropPlanError(c, err); verr != nil {
			return verr
		}
		log.Error().Err(err).Str("owner_id", ownerID.String()).Msg("Failed to create crop plan")
		return NewInternalError(c, "Failed to create crop plan")
	}

	return c.JSON(http.StatusCreated, toCropPlanResponse(plan))
}

// GetCropPlans handles GET /crop-plans
func (h *CropPlanHandler) GetCropPlans(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	plans, err := h.cropPlanService.GetCropPlans(ownerID)
	if err != nil {
		log.Error().Err(err).Str("owner_id", ownerID.String()).Msg("Failed to get crop plans")
		return NewInternalError(c, "Failed to get crop plans")
	}

	responses := make([]CropPlanResponse, 0, len(plans))
	for _, p := range plans {
		responses = append(responses, toCropPlanResponse(p))
	}
	return c.JSON(http.StatusOK, responses)
}

// GetCropPlan handles GET /crop-plans/:id
func (h *CropPlanHandler) GetCropPlan(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid crop plan ID", nil)
	}

	plan, err := h.cropPlanService.GetCropPlanByID(ownerID, id)
	if err != nil {
		if errors.Is(err, domain.ErrCropPlanNotFound) {
			return NewNotFoundError(c, "Crop plan not found")
		}
		log.Error().Err(err).Str("owner_id", ownerID.String()).Msg("Failed to get crop plan")
		return NewInternalError(c, "Failed to get crop plan")
	}

	return c.JSON(http.StatusOK, toCropPlanResponse(plan))
}

// UpdateCropPlan handles PUT /crop-plans/:id
func (h *CropPlanHandler) UpdateCropPlan(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid crop plan ID", nil)
	}

	var req UpdateCropPlanRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	plantingDate, err := time.Parse("2006-01-02", req.PlantingDate)
	if err != nil {
		return NewValidationError(c, "Invalid planting date", []ValidationError{
			{Field: "plantingDate", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	harvestDate, err := parseOptionalDate(req.HarvestDate)
	if err != nil {
		return NewValidationError(c, "Invalid harvest date", []ValidationError{
			{Field: "harvestDate", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	budget := decimal.Zero
	if req.Budget != nil && *req.Budget != "" {
		budget, err = decimal.NewFromString(*req.Budget)
		if err != nil {
			return NewValidationError(c, "Invalid budget", []ValidationError{
				{Field: "budget", Message: "Must be a valid decimal number"},
			})
		}
	}

	plan, err := h.cropPlanService.UpdateCropPlan(ownerID, id, service.UpdateCropPlanInput{
		CropName:     req.CropName,
		PlantingDate: plantingDate,
		HarvestDate:  harvestDate,
		Area:         req.Area,
		Location:     req.Location,
		SoilType:     req.SoilType,
		Season:       req.Season,
		WaterSource:  req.WaterSource,
		Budget:       budget,
		Status:       domain.CropStatus(req.Status),
		Notes:        req.Notes,
	})
	if err != nil {
		if errors.Is(err, domain.ErrCropPlanNotFound) {
			return NewNotFoundError(c, "Crop plan not found")
		}
		if verr := mapCropPlanError(c, err); verr != nil {
			return verr
		}
		log.Error().Err(err).Str("owner_id", ownerID.String()).Msg("Failed to update crop plan")
		return NewInternalError(c, "Failed to update crop plan")
	}

	return c.JSON(http.StatusOK, toCropPlanResponse(plan))
}

// DeleteCropPlan handles DELETE /crop-plans/:id
func (h *CropPlanHandler) DeleteCropPlan(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid crop plan ID", nil)
	}

	if err := h.cropPlanService.DeleteCropPlan(ownerID, id); err != nil {
		if errors.Is(err, domain.ErrCropPlanNotFound) {
			return NewNotFoundError(c, "Crop plan not found")
		}
		log.Error().Err(err).Str("owner_id", ownerID.String()).Msg("Failed to delete crop plan")
		return NewInternalError(c, "Failed to delete crop plan")
	}

	return c.NoContent(http.StatusNoContent)
}

// mapCropPlanError translates crop plan validation errors into problem
// responses; returns nil for errors it does not recognize
func mapCropPlanError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrCropNameRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "cropName", Message: "Crop name is required"},
		})
	case errors.Is(err, domain.ErrInvalidArea):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "area", Message: "Area must not be negative"},
		})
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "budget", Message: "Budget must not be negative"},
		})
	case errors.Is(err, domain.ErrInvalidDateRange):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "harvestDate", Message: "Harvest date must not precede planting date"},
		})
	case errors.Is(err, domain.ErrInvalidStatus):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "status", Message: "Must be one of: planned, planted, growing, harvested"},
		})
	case errors.Is(err, domain.ErrTextTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "notes", Message: "Text exceeds the maximum length"},
		})
	}
	return nil
}

package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/farmbook/farmbook-backend/internal/domain"
	"github.com/farmbook/farmbook-backend/internal/middleware"
	"github.com/farmbook/farmbook-backend/internal/service"
	"github.com/farmbook/farmbook-backend/internal/util"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// DashboardHandler handles dashboard summary HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetSummary handles GET /dashboard/summary.
// Without query parameters the full ledger history is aggregated.
// Passing year (and optionally month) restricts the ledger metrics to
// that period; soil health and crop plans are always current.
func (h *DashboardHandler) GetSummary(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	filters, err := parsePeriodFilters(c)
	if err != nil {
		return NewValidationError(c, "Invalid period", []ValidationError{
			{Field: "year/month", Message: "Year must be a four-digit number and month between 1 and 12"},
		})
	}

	summary, err := h.dashboardService.GetSummary(ownerID, filters)
	if err != nil {
		log.Error().Err(err).Str("owner_id", ownerID.String()).Msg("Failed to build dashboard summary")
		return NewInternalError(c, "Failed to build dashboard summary")
	}

	return c.JSON(http.StatusOK, summary)
}

// parsePeriodFilters converts optional year/month query params into
// ledger date-range filters
func parsePeriodFilters(c echo.Context) (*domain.LedgerFilters, error) {
	yearStr := c.QueryParam("year")
	monthStr := c.QueryParam("month")
	if yearStr == "" && monthStr == "" {
		return nil, nil
	}
	if yearStr == "" {
		return nil, strconv.ErrSyntax
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 1000 || year > 9999 {
		return nil, strconv.ErrSyntax
	}

	var start, end time.Time
	if monthStr != "" {
		month, err := strconv.Atoi(monthStr)
		if err != nil || month < 1 || month > 12 {
			return nil, strconv.ErrSyntax
		}
		start, end = util.MonthRange(year, time.Month(month))
	} else {
		start, end = util.YearRange(year)
	}

	return &domain.LedgerFilters{StartDate: &start, EndDate: &end}, nil
}

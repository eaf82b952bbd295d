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

// IncomeHandler handles income-related HTTP requests
type IncomeHandler struct {
	ledgerService *service.LedgerService
}

// NewIncomeHandler creates a new IncomeHandler
func NewIncomeHandler(ledgerService *service.LedgerService) *IncomeHandler {
	return &IncomeHandler{
		ledgerService: ledgerService,
	}
}

// CreateIncomeRequest represents the create income request body
type CreateIncomeRequest struct {
	Type        string  `json:"type"`
	Amount      string  `json:"amount"`
	Source      string  `json:"source"`
	Description *string `json:"description,omitempty"`
	Date        *string `json:"date,omitempty"`
}

// UpdateIncomeRequest represents the update income request body
type UpdateIncomeRequest struct {
	Type        string  `json:"type"`
	Amount      string  `json:"amount"`
	Source      string  `json:"source"`
	Description *string `json:"description,omitempty"`
	Date        string  `json:"date"`
}

// IncomeResponse represents an income record in API responses
type IncomeResponse struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Amount      string  `json:"amount"`
	Source      string  `json:"source"`
	Description *string `json:"description,omitempty"`
	Date        string  `json:"date"`
	CreatedAt   string  `json:"createdAt"`
}

func toIncomeResponse(in *domain.IncomeRecord) IncomeResponse {
	return IncomeResponse{
		ID:          in.ID.String(),
		Type:        in.Type,
		Amount:      in.Amount.StringFixed(2),
		Source:      in.Source,
		Description: in.Description,
		Date:        in.Date.Format("2006-01-02"),
		CreatedAt:   in.CreatedAt.Format(time.RFC3339),
	}
}

// CreateIncome handles POST /incomes
func (h *IncomeHandler) CreateIncome(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateIncomeRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	date, err := parseOptionalDate(req.Date)
	if err != nil {
		return NewValidationError(c, "Invalid date", []ValidationError{
			{Field: "date", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	income, err := h.ledgerService.CreateIncome(ownerID, service.CreateIncomeInput{
		Type:        req.Type,
		Amount:      amount,
		Source:      req.Source,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		if verr := mapLedgerError(c, err); verr != nil {
			return verr
		}
		log.Error().Err(err).Str("owner_id", ownerID.String()).Msg("Failed to create income")
		return NewInternalError(c, "Failed to create income")
	}

	return c.JSON(http.StatusCreated, toIncomeResponse(income))
}

// GetIncomes handles GET /incomes with optional startDate/endDate filters
func (h *IncomeHandler) GetIncomes(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	filters, err := parseLedgerFilters(c)
	if err != nil {
		return NewValidationError(c, "Invalid date filter", []ValidationError{
			{Field: "startDate/endDate", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	incomes, err := h.ledgerService.GetIncomes(ownerID, filters)
	if err != nil {
		log.Error().Err(err).Str("owner_id", ownerID.String()).Msg("Failed to get incomes")
		return NewInternalError(c, "Failed to get incomes")
	}

	responses := make([]IncomeResponse, 0, len(incomes))
	for _, in := range incomes {
		responses = append(responses, toIncomeResponse(in))
	}
	return c.JSON(http.StatusOK, responses)
}

// UpdateIncome handles PUT /incomes/:id
func (h *IncomeHandler) UpdateIncome(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid income ID", nil)
	}

	var req UpdateIncomeRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return NewValidationError(c, "Invalid date", []ValidationError{
			{Field: "date", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	income, err := h.ledgerService.UpdateIncome(ownerID, id, service.UpdateIncomeInput{
		Type:        req.Type,
		Amount:      amount,
		Source:      req.Source,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		if errors.Is(err, domain.ErrIncomeNotFound) {
			return NewNotFoundError(c, "Income not found")
		}
		if verr := mapLedgerError(c, err); verr != nil {
			return verr
		}
		log.Error().Err(err).Str("owner_id", ownerID.String()).Msg("Failed to update income")
		return NewInternalError(c, "Failed to update income")
	}

	return c.JSON(http.StatusOK, toIncomeResponse(income))
}

// DeleteIncome handles DELETE /incomes/:id
func (h *IncomeHandler) DeleteIncome(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid income ID", nil)
	}

	if err := h.ledgerService.DeleteIncome(ownerID, id); err != nil {
		if errors.Is(err, domain.ErrIncomeNotFound) {
			return NewNotFoundError(c, "Income not found")
		}
		log.Error().Err(err).Str("owner_id", ownerID.String()).Msg("Failed to delete income")
		return NewInternalError(c, "Failed to delete income")
	}

	return c.NoContent(http.StatusNoContent)
}

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

// ExpenseHandler handles expense-related HTTP requests
type ExpenseHandler struct {
	ledgerService *service.LedgerService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(ledgerService *service.LedgerService) *ExpenseHandler {
	return &ExpenseHandler{
		ledgerService: ledgerService,
	}
}

// CreateExpenseRequest represents the create expense request body
type CreateExpenseRequest struct {
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Amount      string  `json:"amount"`
	Description *string `json:"description,omitempty"`
	Date        *string `json:"date,omitempty"`
}

// UpdateExpenseRequest represents the update expense request body
type UpdateExpenseRequest struct {
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Amount      string  `json:"amount"`
	Description *string `json:"description,omitempty"`
	Date        string  `json:"date"`
}

// ExpenseResponse represents an expense record in API responses
type ExpenseResponse struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Amount      string  `json:"amount"`
	Description *string `json:"description,omitempty"`
	Date        string  `json:"date"`
	CreatedAt   string  `json:"createdAt"`
}

func toExpenseResponse(e *domain.ExpenseRecord) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID.String(),
		Type:        e.Type,
		Category:    e.Category,
		Amount:      e.Amount.StringFixed(2),
		Description: e.Description,
		Date:        e.Date.Format("2006-01-02"),
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	}
}

// CreateExpense handles POST /expenses
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateExpenseRequest
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

	expense, err := h.ledgerService.CreateExpense(ownerID, service.CreateExpenseInput{
		Type:        req.Type,
		Category:    req.Category,
		Amount:      amount,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		if verr := mapLedgerError(c, err); verr != nil {
			return verr
		}
		log.Error().Err(err).Str("owner_id", ownerID.String()).Msg("Failed to create expense")
		return NewInternalError(c, "Failed to create expense")
	}

	return c.JSON(http.StatusCreated, toExpenseResponse(expense))
}

// GetExpenses handles GET /expenses with optional startDate/endDate filters
func (h *ExpenseHandler) GetExpenses(c echo.Context) error {
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

	expenses, err := h.ledgerService.GetExpenses(ownerID, filters)
	if err != nil {
		log.Error().Err(err).Str("owner_id", ownerID.String()).Msg("Failed to get expenses")
		return NewInternalError(c, "Failed to get expenses")
	}

	responses := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		responses = append(responses, toExpenseResponse(e))
	}
	return c.JSON(http.StatusOK, responses)
}

// UpdateExpense handles PUT /expenses/:id
func (h *ExpenseHandler) UpdateExpense(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid expense ID", nil)
	}

	var req UpdateExpenseRequest
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

	expense, err := h.ledgerService.UpdateExpense(ownerID, id, service.UpdateExpenseInput{
		Type:        req.Type,
		Category:    req.Category,
		Amount:      amount,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return NewNotFoundError(c, "Expense not found")
		}
		if verr := mapLedgerError(c, err); verr != nil {
			return verr
		}
		log.Error().Err(err).Str("owner_id", ownerID.String()).Msg("Failed to update expense")
		return NewInternalError(c, "Failed to update expense")
	}

	return c.JSON(http.StatusOK, toExpenseResponse(expense))
}

// DeleteExpense handles DELETE /expenses/:id
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid expense ID", nil)
	}

	if err := h.ledgerService.DeleteExpense(ownerID, id); err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return NewNotFoundError(c, "Expense not found")
		}
		log.Error().Err(err).Str("owner_id", ownerID.String()).Msg("Failed to delete expense")
		return NewInternalError(c, "Failed to delete expense")
	}

	return c.NoContent(http.StatusNoContent)
}

// mapLedgerError translates ledger validation errors into problem
// responses; returns nil for errors it does not recognize
func mapLedgerError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrTypeRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "type", Message: "Type is required"},
		})
	case errors.Is(err, domain.ErrTypeTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "type", Message: "Type must be 100 characters or less"},
		})
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must not be negative"},
		})
	case errors.Is(err, domain.ErrSourceRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "source", Message: "Source is required"},
		})
	case errors.Is(err, domain.ErrTextTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "description", Message: "Text exceeds the maximum length"},
		})
	}
	return nil
}

// parseOptionalDate parses an optional YYYY-MM-DD string
func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// parseLedgerFilters extracts optional startDate/endDate query params
func parseLedgerFilters(c echo.Context) (*domain.LedgerFilters, error) {
	startStr := c.QueryParam("startDate")
	endStr := c.QueryParam("endDate")
	if startStr == "" && endStr == "" {
		return nil, nil
	}

	filters := &domain.LedgerFilters{}
	if startStr != "" {
		start, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			return nil, err
		}
		filters.StartDate = &start
	}
	if endStr != "" {
		end, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			return nil, err
		}
		// Make the end bound inclusive of the whole day
		end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
		filters.EndDate = &end
	}
	return filters, nil
}

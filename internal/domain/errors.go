package domain

import "errors"

// Domain errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrStoreUnavailable = errors.New("store unavailable")

	ErrUserNotFound     = errors.New("user not found")
	ErrExpenseNotFound  = errors.New("expense not found")
	ErrIncomeNotFound   = errors.New("income record not found")
	ErrSoilTestNotFound = errors.New("soil test not found")
	ErrCropPlanNotFound = errors.New("crop plan not found")

	ErrInvalidAmount    = errors.New("amount must be a non-negative number")
	ErrTypeRequired     = errors.New("type is required")
	ErrTypeTooLong      = errors.New("type exceeds maximum length")
	ErrSourceRequired   = errors.New("source is required")
	ErrCropNameRequired = errors.New("crop name is required")
	ErrInvalidStatus    = errors.New("invalid crop status")
	ErrInvalidNutrient  = errors.New("nutrient values must be non-negative finite numbers")
	ErrInvalidPH        = errors.New("pH must be between 0 and 14")
	ErrInvalidMoisture  = errors.New("moisture must be between 0 and 100")
	ErrInvalidArea      = errors.New("area must be a non-negative number")
	ErrInvalidDateRange = errors.New("harvest date must not precede planting date")
	ErrTextTooLong      = errors.New("text exceeds maximum length")
)

// Validation constants
const (
	MaxTypeLength        = 100
	MaxNameLength        = 255
	MaxDescriptionLength = 1000
)

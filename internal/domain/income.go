package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IncomeRecord represents a single farm income entry
type IncomeRecord struct {
	ID          uuid.UUID       `json:"id"`
	OwnerID     uuid.UUID       `json:"ownerId"`
	Type        string          `json:"type"` // source category, e.g. "crop-sale", "subsidy"
	Amount      decimal.Decimal `json:"amount"`
	Source      string          `json:"source"` // counterparty/buyer
	Description *string         `json:"description,omitempty"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// UpdateIncomeData holds the fields applied by an income update
type UpdateIncomeData struct {
	Type        string
	Amount      decimal.Decimal
	Source      string
	Description *string
	Date        time.Time
}

// IncomeRepository defines persistence operations for income records
type IncomeRepository interface {
	Create(income *IncomeRecord) (*IncomeRecord, error)
	GetByOwner(ownerID uuid.UUID, filters *LedgerFilters) ([]*IncomeRecord, error)
	GetByID(ownerID, id uuid.UUID) (*IncomeRecord, error)
	Update(ownerID, id uuid.UUID, data *UpdateIncomeData) (*IncomeRecord, error)
	Delete(ownerID, id uuid.UUID) error
}

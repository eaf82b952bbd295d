package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseRecord represents a single farm expense entry
type ExpenseRecord struct {
	ID          uuid.UUID       `json:"id"`
	OwnerID     uuid.UUID       `json:"ownerId"`
	Type        string          `json:"type"`     // free-text category, e.g. "seeds", "fertilizer"
	Category    string          `json:"category"` // secondary classification, e.g. "farming", "equipment"
	Amount      decimal.Decimal `json:"amount"`
	Description *string         `json:"description,omitempty"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// LedgerFilters holds optional date-range filters for ledger queries
type LedgerFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// UpdateExpenseData holds the fields applied by an expense update
type UpdateExpenseData struct {
	Type        string
	Category    string
	Amount      decimal.Decimal
	Description *string
	Date        time.Time
}

// ExpenseRepository defines persistence operations for expense records.
// All reads are owner-scoped: records whose owner_id differs from the
// given owner are never returned.
type ExpenseRepository interface {
	Create(expense *ExpenseRecord) (*ExpenseRecord, error)
	GetByOwner(ownerID uuid.UUID, filters *LedgerFilters) ([]*ExpenseRecord, error)
	GetByID(ownerID, id uuid.UUID) (*ExpenseRecord, error)
	Update(ownerID, id uuid.UUID, data *UpdateExpenseData) (*ExpenseRecord, error)
	Delete(ownerID, id uuid.UUID) error
}

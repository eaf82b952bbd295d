package postgres

import (
	"context"
	"strconv"

	"github.com/farmbook/farmbook-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// IncomeRepository implements domain.IncomeRepository using PostgreSQL
type IncomeRepository struct {
	pool *pgxpool.Pool
}

// NewIncomeRepository creates a new IncomeRepository
func NewIncomeRepository(pool *pgxpool.Pool) *IncomeRepository {
	return &IncomeRepository{pool: pool}
}

const incomeColumns = "id, owner_id, type, amount::text, source, description, date, created_at"

func scanIncome(row pgx.Row) (*domain.IncomeRecord, error) {
	var (
		id          pgtype.UUID
		ownerID     pgtype.UUID
		incType     string
		amount      pgtype.Text
		source      string
		description pgtype.Text
		date        pgtype.Timestamptz
		createdAt   pgtype.Timestamptz
	)
	if err := row.Scan(&id, &ownerID, &incType, &amount, &source, &description, &date, &createdAt); err != nil {
		return nil, err
	}
	return &domain.IncomeRecord{
		ID:          pgToUUID(id),
		OwnerID:     pgToUUID(ownerID),
		Type:        incType,
		Amount:      pgNumericText(amount),
		Source:      source,
		Description: pgTextToStringPtr(description),
		Date:        date.Time,
		CreatedAt:   createdAt.Time,
	}, nil
}

// Create inserts a new income record
func (r *IncomeRepository) Create(income *domain.IncomeRecord) (*domain.IncomeRecord, error) {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO incomes (owner_id, type, amount, source, description, date)
		VALUES ($1, $2, $3::numeric, $4, $5, $6)
		RETURNING `+incomeColumns,
		uuidToPg(income.OwnerID),
		income.Type,
		income.Amount.String(),
		income.Source,
		stringPtrToPgText(income.Description),
		income.Date)
	return scanIncome(row)
}

// GetByOwner returns the owner's incomes ordered by date descending,
// optionally filtered to a date range
func (r *IncomeRepository) GetByOwner(ownerID uuid.UUID, filters *domain.LedgerFilters) ([]*domain.IncomeRecord, error) {
	query := "SELECT " + incomeColumns + " FROM incomes WHERE owner_id = $1"
	args := []interface{}{uuidToPg(ownerID)}

	if filters != nil {
		if filters.StartDate != nil {
			args = append(args, *filters.StartDate)
			query += " AND date >= $" + strconv.Itoa(len(args))
		}
		if filters.EndDate != nil {
			args = append(args, *filters.EndDate)
			query += " AND date <= $" + strconv.Itoa(len(args))
		}
	}
	query += " ORDER BY date DESC, created_at DESC"

	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	incomes := make([]*domain.IncomeRecord, 0)
	for rows.Next() {
		income, err := scanIncome(rows)
		if err != nil {
			return nil, err
		}
		incomes = append(incomes, income)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return incomes, nil
}

// GetByID retrieves a single income record scoped to the owner
func (r *IncomeRepository) GetByID(ownerID, id uuid.UUID) (*domain.IncomeRecord, error) {
	row := r.pool.QueryRow(context.Background(),
		"SELECT "+incomeColumns+" FROM incomes WHERE owner_id = $1 AND id = $2",
		uuidToPg(ownerID), uuidToPg(id))
	income, err := scanIncome(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrIncomeNotFound
		}
		return nil, err
	}
	return income, nil
}

// Update modifies an existing income record scoped to the owner
func (r *IncomeRepository) Update(ownerID, id uuid.UUID, data *domain.UpdateIncomeData) (*domain.IncomeRecord, error) {
	row := r.pool.QueryRow(context.Background(), `
		UPDATE incomes
		SET type = $3, amount = $4::numeric, source = $5, description = $6, date = $7
		WHERE owner_id = $1 AND id = $2
		RETURNING `+incomeColumns,
		uuidToPg(ownerID),
		uuidToPg(id),
		data.Type,
		data.Amount.String(),
		data.Source,
		stringPtrToPgText(data.Description),
		data.Date)
	income, err := scanIncome(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrIncomeNotFound
		}
		return nil, err
	}
	return income, nil
}

// Delete removes an income record scoped to the owner
func (r *IncomeRepository) Delete(ownerID, id uuid.UUID) error {
	tag, err := r.pool.Exec(context.Background(),
		"DELETE FROM incomes WHERE owner_id = $1 AND id = $2",
		uuidToPg(ownerID), uuidToPg(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrIncomeNotFound
	}
	return nil
}

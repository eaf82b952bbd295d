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

// ExpenseRepository implements domain.ExpenseRepository using PostgreSQL
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

const expenseColumns = "id, owner_id, type, category, amount::text, description, date, created_at"

func scanExpense(row pgx.Row) (*domain.ExpenseRecord, error) {
	var (
		id          pgtype.UUID
		ownerID     pgtype.UUID
		expType     string
		category    string
		amount      pgtype.Text
		description pgtype.Text
		date        pgtype.Timestamptz
		createdAt   pgtype.Timestamptz
	)
	if err := row.Scan(&id, &ownerID, &expType, &category, &amount, &description, &date, &createdAt); err != nil {
		return nil, err
	}
	return &domain.ExpenseRecord{
		ID:          pgToUUID(id),
		OwnerID:     pgToUUID(ownerID),
		Type:        expType,
		Category:    category,
		Amount:      pgNumericText(amount),
		Description: pgTextToStringPtr(description),
		Date:        date.Time,
		CreatedAt:   createdAt.Time,
	}, nil
}

// Create inserts a new expense record
func (r *ExpenseRepository) Create(expense *domain.ExpenseRecord) (*domain.ExpenseRecord, error) {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO expenses (owner_id, type, category, amount, description, date)
		VALUES ($1, $2, $3, $4::numeric, $5, $6)
		RETURNING `+expenseColumns,
		uuidToPg(expense.OwnerID),
		expense.Type,
		expense.Category,
		expense.Amount.String(),
		stringPtrToPgText(expense.Description),
		expense.Date)
	return scanExpense(row)
}

// GetByOwner returns the owner's expenses ordered by date descending,
// optionally filtered to a date range
func (r *ExpenseRepository) GetByOwner(ownerID uuid.UUID, filters *domain.LedgerFilters) ([]*domain.ExpenseRecord, error) {
	query := "SELECT " + expenseColumns + " FROM expenses WHERE owner_id = $1"
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

	expenses := make([]*domain.ExpenseRecord, 0)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return expenses, nil
}

// GetByID retrieves a single expense scoped to the owner
func (r *ExpenseRepository) GetByID(ownerID, id uuid.UUID) (*domain.ExpenseRecord, error) {
	row := r.pool.QueryRow(context.Background(),
		"SELECT "+expenseColumns+" FROM expenses WHERE owner_id = $1 AND id = $2",
		uuidToPg(ownerID), uuidToPg(id))
	expense, err := scanExpense(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}
	return expense, nil
}

// Update modifies an existing expense scoped to the owner
func (r *ExpenseRepository) Update(ownerID, id uuid.UUID, data *domain.UpdateExpenseData) (*domain.ExpenseRecord, error) {
	row := r.pool.QueryRow(context.Background(), `
		UPDATE expenses
		SET type = $3, category = $4, amount = $5::numeric, description = $6, date = $7
		WHERE owner_id = $1 AND id = $2
		RETURNING `+expenseColumns,
		uuidToPg(ownerID),
		uuidToPg(id),
		data.Type,
		data.Category,
		data.Amount.String(),
		stringPtrToPgText(data.Description),
		data.Date)
	expense, err := scanExpense(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}
	return expense, nil
}

// Delete removes an expense scoped to the owner
func (r *ExpenseRepository) Delete(ownerID, id uuid.UUID) error {
	tag, err := r.pool.Exec(context.Background(),
		"DELETE FROM expenses WHERE owner_id = $1 AND id = $2",
		uuidToPg(ownerID), uuidToPg(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

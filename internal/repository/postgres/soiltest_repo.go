package postgres

import (
	"context"

	"github.com/farmbook/farmbook-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SoilTestRepository implements domain.SoilTestRepository using PostgreSQL
type SoilTestRepository struct {
	pool *pgxpool.Pool
}

// NewSoilTestRepository creates a new SoilTestRepository
func NewSoilTestRepository(pool *pgxpool.Pool) *SoilTestRepository {
	return &SoilTestRepository{pool: pool}
}

const soilTestColumns = "id, owner_id, ph_level, nitrogen, phosphorus, potassium, organic_matter, moisture, test_date, recommendations, created_at"

func scanSoilTest(row pgx.Row) (*domain.SoilTestRecord, error) {
	var (
		id              pgtype.UUID
		ownerID         pgtype.UUID
		phLevel         float64
		nitrogen        float64
		phosphorus      float64
		potassium       float64
		organicMatter   float64
		moisture        pgtype.Float8
		testDate        pgtype.Timestamptz
		recommendations []string
		createdAt       pgtype.Timestamptz
	)
	if err := row.Scan(&id, &ownerID, &phLevel, &nitrogen, &phosphorus, &potassium,
		&organicMatter, &moisture, &testDate, &recommendations, &createdAt); err != nil {
		return nil, err
	}
	return &domain.SoilTestRecord{
		ID:              pgToUUID(id),
		OwnerID:         pgToUUID(ownerID),
		PHLevel:         phLevel,
		Nitrogen:        nitrogen,
		Phosphorus:      phosphorus,
		Potassium:       potassium,
		OrganicMatter:   organicMatter,
		Moisture:        pgFloat8ToFloat64Ptr(moisture),
		TestDate:        testDate.Time,
		Recommendations: recommendations,
		CreatedAt:       createdAt.Time,
	}, nil
}

// Create inserts a new soil test record
func (r *SoilTestRepository) Create(test *domain.SoilTestRecord) (*domain.SoilTestRecord, error) {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO soil_tests (owner_id, ph_level, nitrogen, phosphorus, potassium, organic_matter, moisture, test_date, recommendations)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+soilTestColumns,
		uuidToPg(test.OwnerID),
		test.PHLevel,
		test.Nitrogen,
		test.Phosphorus,
		test.Potassium,
		test.OrganicMatter,
		float64PtrToPgFloat8(test.Moisture),
		test.TestDate,
		test.Recommendations)
	return scanSoilTest(row)
}

// GetByOwner returns the owner's soil tests ordered by test date descending,
// ties broken by creation time descending
func (r *SoilTestRepository) GetByOwner(ownerID uuid.UUID) ([]*domain.SoilTestRecord, error) {
	rows, err := r.pool.Query(context.Background(),
		"SELECT "+soilTestColumns+" FROM soil_tests WHERE owner_id = $1 ORDER BY test_date DESC, created_at DESC",
		uuidToPg(ownerID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tests := make([]*domain.SoilTestRecord, 0)
	for rows.Next() {
		test, err := scanSoilTest(rows)
		if err != nil {
			return nil, err
		}
		tests = append(tests, test)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tests, nil
}

// GetLatest returns the owner's most recent soil test
func (r *SoilTestRepository) GetLatest(ownerID uuid.UUID) (*domain.SoilTestRecord, error) {
	row := r.pool.QueryRow(context.Background(),
		"SELECT "+soilTestColumns+" FROM soil_tests WHERE owner_id = $1 ORDER BY test_date DESC, created_at DESC LIMIT 1",
		uuidToPg(ownerID))
	test, err := scanSoilTest(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrSoilTestNotFound
		}
		return nil, err
	}
	return test, nil
}

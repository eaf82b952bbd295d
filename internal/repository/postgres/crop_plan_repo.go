package postgres

import (
	"context"

	"github.com/farmbook/farmbook-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CropPlanRepository implements domain.CropPlanRepository using PostgreSQL
type CropPlanRepository struct {
	pool *pgxpool.Pool
}

// NewCropPlanRepository creates a new CropPlanRepository
func NewCropPlanRepository(pool *pgxpool.Pool) *CropPlanRepository {
	return &CropPlanRepository{pool: pool}
}

const cropPlanColumns = "id, owner_id, crop_name, planting_date, harvest_date, area, location, soil_type, season, water_source, budget::text, status, notes, created_at, updated_at"

func scanCropPlan(row pgx.Row) (*domain.CropPlan, error) {
	var (
		id           pgtype.UUID
		ownerID      pgtype.UUID
		cropName     string
		plantingDate pgtype.Timestamptz
		harvestDate  pgtype.Timestamptz
		area         float64
		location     string
		soilType     string
		season       string
		waterSource  string
		budget       pgtype.Text
		status       string
		notes        pgtype.Text
		createdAt    pgtype.Timestamptz
		updatedAt    pgtype.Timestamptz
	)
	if err := row.Scan(&id, &ownerID, &cropName, &plantingDate, &harvestDate, &area,
		&location, &soilType, &season, &waterSource, &budget, &status, &notes,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	plan := &domain.CropPlan{
		ID:           pgToUUID(id),
		OwnerID:      pgToUUID(ownerID),
		CropName:     cropName,
		PlantingDate: plantingDate.Time,
		Area:         area,
		Location:     location,
		SoilType:     soilType,
		Season:       season,
		WaterSource:  waterSource,
		Budget:       pgNumericText(budget),
		Status:       domain.CropStatus(status),
		Notes:        pgTextToStringPtr(notes),
		CreatedAt:    createdAt.Time,
		UpdatedAt:    updatedAt.Time,
	}
	if harvestDate.Valid {
		t := harvestDate.Time
		plan.HarvestDate = &t
	}
	return plan, nil
}

// Create inserts a new crop plan
func (r *CropPlanRepository) Create(plan *domain.CropPlan) (*domain.CropPlan, error) {
	var harvestDate pgtype.Timestamptz
	if plan.HarvestDate != nil {
		harvestDate = pgtype.Timestamptz{Time: *plan.HarvestDate, Valid: true}
	}

	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO crop_plans (owner_id, crop_name, planting_date, harvest_date, area, location, soil_type, season, water_source, budget, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::numeric, $11, $12)
		RETURNING `+cropPlanColumns,
		uuidToPg(plan.OwnerID),
		plan.CropName,
		plan.PlantingDate,
		harvestDate,
		plan.Area,
		plan.Location,
		plan.SoilType,
		plan.Season,
		plan.WaterSource,
		plan.Budget.String(),
		string(plan.Status),
		stringPtrToPgText(plan.Notes))
	return scanCropPlan(row)
}

// GetByOwner returns the owner's crop plans ordered by planting date descending
func (r *CropPlanRepository) GetByOwner(ownerID uuid.UUID) ([]*domain.CropPlan, error) {
	rows, err := r.pool.Query(context.Background(),
		"SELECT "+cropPlanColumns+" FROM crop_plans WHERE owner_id = $1 ORDER BY planting_date DESC, created_at DESC",
		uuidToPg(ownerID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := make([]*domain.CropPlan, 0)
	for rows.Next() {
		plan, err := scanCropPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return plans, nil
}

// GetByID retrieves a single crop plan scoped to the owner
func (r *CropPlanRepository) GetByID(ownerID, id uuid.UUID) (*domain.CropPlan, error) {
	row := r.pool.QueryRow(context.Background(),
		"SELECT "+cropPlanColumns+" FROM crop_plans WHERE owner_id = $1 AND id = $2",
		uuidToPg(ownerID), uuidToPg(id))
	plan, err := scanCropPlan(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCropPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// Update modifies an existing crop plan scoped to the owner
func (r *CropPlanRepository) Update(ownerID, id uuid.UUID, data *domain.UpdateCropPlanData) (*domain.CropPlan, error) {
	var harvestDate pgtype.Timestamptz
	if data.HarvestDate != nil {
		harvestDate = pgtype.Timestamptz{Time: *data.HarvestDate, Valid: true}
	}

	row := r.pool.QueryRow(context.Background(), `
		UPDATE crop_plans
		SET crop_name = $3, planting_date = $4, harvest_date = $5, area = $6,
		    location = $7, soil_type = $8, season = $9, water_source = $10,
		    budget = $11::numeric, status = $12, notes = $13, updated_at = now()
		WHERE owner_id = $1 AND id = $2
		RETURNING `+cropPlanColumns,
		uuidToPg(ownerID),
		uuidToPg(id),
		data.CropName,
		data.PlantingDate,
		harvestDate,
		data.Area,
		data.Location,
		data.SoilType,
		data.Season,
		data.WaterSource,
		data.Budget.String(),
		string(data.Status),
		stringPtrToPgText(data.Notes))
	plan, err := scanCropPlan(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCropPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// Delete removes a crop plan scoped to the owner
func (r *CropPlanRepository) Delete(ownerID, id uuid.UUID) error {
	tag, err := r.pool.Exec(context.Background(),
		"DELETE FROM crop_plans WHERE owner_id = $1 AND id = $2",
		uuidToPg(ownerID), uuidToPg(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCropPlanNotFound
	}
	return nil
}

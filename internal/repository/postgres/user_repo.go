package postgres

import (
	"context"

	"github.com/farmbook/farmbook-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = "id, auth0_id, email, display_name, user_type, created_at, updated_at"

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		id          pgtype.UUID
		auth0ID     string
		email       string
		displayName pgtype.Text
		userType    string
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)
	if err := row.Scan(&id, &auth0ID, &email, &displayName, &userType, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return &domain.User{
		ID:          pgToUUID(id),
		Auth0ID:     auth0ID,
		Email:       email,
		DisplayName: pgTextToStringPtr(displayName),
		UserType:    domain.UserType(userType),
		CreatedAt:   createdAt.Time,
		UpdatedAt:   updatedAt.Time,
	}, nil
}

// GetByID retrieves a user by their UUID
func (r *UserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(),
		"SELECT "+userColumns+" FROM users WHERE id = $1",
		uuidToPg(id))
	user, err := scanUser(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetByAuth0ID retrieves a user by their Auth0 ID
func (r *UserRepository) GetByAuth0ID(auth0ID string) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(),
		"SELECT "+userColumns+" FROM users WHERE auth0_id = $1",
		auth0ID)
	user, err := scanUser(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// CreateOrGetByAuth0ID creates a new user or returns the existing one (upsert on login)
func (r *UserRepository) CreateOrGetByAuth0ID(auth0ID, email string, displayName *string) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO users (auth0_id, email, display_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (auth0_id) DO UPDATE
			SET email = EXCLUDED.email,
			    updated_at = now()
		RETURNING `+userColumns,
		auth0ID, email, stringPtrToPgText(displayName))
	return scanUser(row)
}

// UpdateDisplayName updates only the user's display name
func (r *UserRepository) UpdateDisplayName(id uuid.UUID, displayName string) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(), `
		UPDATE users
		SET display_name = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		uuidToPg(id), displayName)
	user, err := scanUser(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserType string

const (
	UserTypeFarmer UserType = "farmer"
	UserTypeBuyer  UserType = "buyer"
	UserTypeAdmin  UserType = "admin"
)

// User represents an authenticated user profile
type User struct {
	ID          uuid.UUID `json:"id"`
	Auth0ID     string    `json:"-"`
	Email       string    `json:"email"`
	DisplayName *string   `json:"displayName,omitempty"`
	UserType    UserType  `json:"userType"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UserRepository defines persistence operations for users
type UserRepository interface {
	GetByID(id uuid.UUID) (*User, error)
	GetByAuth0ID(auth0ID string) (*User, error)
	CreateOrGetByAuth0ID(auth0ID, email string, displayName *string) (*User, error)
	UpdateDisplayName(id uuid.UUID, displayName string) (*User, error)
}

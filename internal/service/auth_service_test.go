package service

import (
	"testing"

	"github.com/farmbook/farmbook-backend/internal/domain"
	"github.com/farmbook/farmbook-backend/internal/testutil"
	"github.com/google/uuid"
)

func TestAuthenticateUser_NewUser(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	service := NewAuthService(userRepo)

	auth0ID := "auth0|12345"
	email := "farmer@example.com"
	name := "Test Farmer"

	result, err := service.AuthenticateUser(auth0ID, email, &name)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result == nil {
		t.Fatal("Expected result, got nil")
	}

	if !result.IsNewUser {
		t.Error("Expected IsNewUser to be true for new user")
	}

	if result.User == nil {
		t.Fatal("Expected user, got nil")
	}

	if result.User.Auth0ID != auth0ID {
		t.Errorf("Expected auth0ID %s, got %s", auth0ID, result.User.Auth0ID)
	}

	if result.User.Email != email {
		t.Errorf("Expected email %s, got %s", email, result.User.Email)
	}

	if result.User.UserType != domain.UserTypeFarmer {
		t.Errorf("Expected user type %s, got %s", domain.UserTypeFarmer, result.User.UserType)
	}
}

func TestAuthenticateUser_ExistingUser(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	service := NewAuthService(userRepo)

	auth0ID := "auth0|existing"
	email := "existing@example.com"
	name := "Existing Farmer"

	existingUser := &domain.User{
		ID:          uuid.New(),
		Auth0ID:     auth0ID,
		Email:       email,
		DisplayName: &name,
		UserType:    domain.UserTypeFarmer,
	}
	userRepo.AddUser(existingUser)

	result, err := service.AuthenticateUser(auth0ID, email, &name)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.IsNewUser {
		t.Error("Expected IsNewUser to be false for existing user")
	}

	if result.User.ID != existingUser.ID {
		t.Errorf("Expected user ID %s, got %s", existingUser.ID, result.User.ID)
	}
}

func TestGetUserByID(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	service := NewAuthService(userRepo)

	userID := uuid.New()
	user := &domain.User{
		ID:      userID,
		Auth0ID: "auth0|test",
		Email:   "test@example.com",
	}
	userRepo.AddUser(user)

	found, err := service.GetUserByID(userID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if found.ID != userID {
		t.Errorf("Expected user ID %s, got %s", userID, found.ID)
	}

	// Test user not found
	_, err = service.GetUserByID(uuid.New())
	if err != domain.ErrUserNotFound {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestGetUserByAuth0ID(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	service := NewAuthService(userRepo)

	auth0ID := "auth0|findme"
	user := &domain.User{
		ID:      uuid.New(),
		Auth0ID: auth0ID,
		Email:   "findme@example.com",
	}
	userRepo.AddUser(user)

	found, err := service.GetUserByAuth0ID(auth0ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if found.Auth0ID != auth0ID {
		t.Errorf("Expected auth0ID %s, got %s", auth0ID, found.Auth0ID)
	}

	// Test not found
	_, err = service.GetUserByAuth0ID("auth0|notexist")
	if err != domain.ErrUserNotFound {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}

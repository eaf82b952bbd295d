package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/farmbook/farmbook-backend/internal/domain"
	"github.com/farmbook/farmbook-backend/internal/middleware"
	"github.com/farmbook/farmbook-backend/internal/service"
	"github.com/farmbook/farmbook-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Helper to set up auth context as the middleware would
func setupAuthContext(c echo.Context, auth0ID, email, name string) {
	setupAuthContextWithOwner(c, auth0ID, email, name, uuid.Nil)
}

// Helper to set up auth context with a resolved owner ID
func setupAuthContextWithOwner(c echo.Context, auth0ID, email, name string, ownerID uuid.UUID) {
	customClaims := &middleware.CustomClaims{
		Email: email,
		Name:  name,
	}
	claims := &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{
			Subject: auth0ID,
		},
		CustomClaims: customClaims,
	}
	ctx := context.WithValue(c.Request().Context(), middleware.ClaimsKey, claims)
	ctx = context.WithValue(ctx, middleware.Auth0IDKey, auth0ID)
	if ownerID != uuid.Nil {
		ctx = context.WithValue(ctx, middleware.OwnerIDKey, ownerID)
	}
	c.SetRequest(c.Request().WithContext(ctx))
}

// Helper to set up an owner-scoped context for record endpoints
func setupOwnerContext(c echo.Context, ownerID uuid.UUID) {
	setupAuthContextWithOwner(c, "auth0|test", "test@example.com", "Test Farmer", ownerID)
}

func TestCallback_NewUser(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	authService := service.NewAuthService(userRepo)
	handler := NewAuthHandler(authService, userRepo)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/callback", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, "auth0|newuser", "new@example.com", "New Farmer")

	if err := handler.Callback(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response AuthCallbackResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if !response.IsNewUser {
		t.Error("Expected isNewUser to be true")
	}
	if response.User.Email != "new@example.com" {
		t.Errorf("Expected email 'new@example.com', got %s", response.User.Email)
	}
	if response.User.UserType != string(domain.UserTypeFarmer) {
		t.Errorf("Expected user type 'farmer', got %s", response.User.UserType)
	}
}

func TestCallback_ExistingUser(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	authService := service.NewAuthService(userRepo)
	handler := NewAuthHandler(authService, userRepo)

	name := "Existing Farmer"
	userRepo.AddUser(&domain.User{
		ID:          uuid.New(),
		Auth0ID:     "auth0|existing",
		Email:       "existing@example.com",
		DisplayName: &name,
		UserType:    domain.UserTypeFarmer,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/callback", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, "auth0|existing", "existing@example.com", name)

	if err := handler.Callback(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response AuthCallbackResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.IsNewUser {
		t.Error("Expected isNewUser to be false")
	}
}

func TestCallback_MissingEmail(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	authService := service.NewAuthService(userRepo)
	handler := NewAuthHandler(authService, userRepo)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/callback", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, "auth0|noemail", "", "")

	if err := handler.Callback(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCallback_NoAuthContext(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	authService := service.NewAuthService(userRepo)
	handler := NewAuthHandler(authService, userRepo)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/callback", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Callback(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestMe(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	authService := service.NewAuthService(userRepo)
	handler := NewAuthHandler(authService, userRepo)

	user := &domain.User{
		ID:       uuid.New(),
		Auth0ID:  "auth0|me",
		Email:    "me@example.com",
		UserType: domain.UserTypeFarmer,
	}
	userRepo.AddUser(user)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, "auth0|me", "me@example.com", "")

	if err := handler.Me(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response AuthCallbackResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.User.ID != user.ID.String() {
		t.Errorf("Expected user ID %s, got %s", user.ID, response.User.ID)
	}
}

func TestMe_UserNotFound(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	authService := service.NewAuthService(userRepo)
	handler := NewAuthHandler(authService, userRepo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, "auth0|unknown", "unknown@example.com", "")

	if err := handler.Me(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestUpdateProfile(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	authService := service.NewAuthService(userRepo)
	handler := NewAuthHandler(authService, userRepo)

	user := &domain.User{
		ID:       uuid.New(),
		Auth0ID:  "auth0|profile",
		Email:    "profile@example.com",
		UserType: domain.UserTypeFarmer,
	}
	userRepo.AddUser(user)

	reqBody := `{"displayName": "  Updated Name  "}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/auth/profile", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupOwnerContext(c, user.ID)

	if err := handler.UpdateProfile(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response UserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.DisplayName == nil || *response.DisplayName != "Updated Name" {
		t.Errorf("Expected trimmed display name 'Updated Name', got %v", response.DisplayName)
	}
}

func TestUpdateProfile_EmptyName(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	authService := service.NewAuthService(userRepo)
	handler := NewAuthHandler(authService, userRepo)

	reqBody := `{"displayName": "   "}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/auth/profile", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupOwnerContext(c, uuid.New())

	if err := handler.UpdateProfile(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestLogout(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	authService := service.NewAuthService(userRepo)
	handler := NewAuthHandler(authService, userRepo)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, "auth0|bye", "bye@example.com", "")

	if err := handler.Logout(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
}

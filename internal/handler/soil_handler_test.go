package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/farmbook/farmbook-backend/internal/domain"
	"github.com/farmbook/farmbook-backend/internal/service"
	"github.com/farmbook/farmbook-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newSoilFixture() (*service.SoilService, *testutil.MockSoilTestRepository) {
	repo := testutil.NewMockSoilTestRepository()
	return service.NewSoilService(repo), repo
}

func TestCreateSoilTest_Success(t *testing.T) {
	e := echo.New()
	soilService, _ := newSoilFixture()
	handler := NewSoilHandler(soilService)

	reqBody := `{"phLevel": 6.8, "nitrogen": 60, "phosphorus": 45, "potassium": 210, "organicMatter": 2.8, "moisture": 24.5, "testDate": "2026-05-01", "recommendations": ["add compost"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/soil-tests", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupOwnerContext(c, uuid.New())

	if err := handler.CreateSoilTest(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response SoilTestResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.PHLevel != 6.8 {
		t.Errorf("Expected phLevel 6.8, got %f", response.PHLevel)
	}
	if response.TestDate != "2026-05-01" {
		t.Errorf("Expected test date '2026-05-01', got %s", response.TestDate)
	}
	if len(response.Recommendations) != 1 {
		t.Errorf("Expected 1 recommendation, got %d", len(response.Recommendations))
	}
}

func TestCreateSoilTest_LegacyPHField(t *testing.T) {
	e := echo.New()
	soilService, _ := newSoilFixture()
	handler := NewSoilHandler(soilService)

	reqBody := `{"ph": 7.1, "nitrogen": 40, "phosphorus": 30, "potassium": 180, "organicMatter": 2.1}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/soil-tests", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupOwnerContext(c, uuid.New())

	if err := handler.CreateSoilTest(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rec.Code)
	}

	var response SoilTestResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	// Response always uses the canonical field
	if response.PHLevel != 7.1 {
		t.Errorf("Expected phLevel 7.1, got %f", response.PHLevel)
	}
}

func TestCreateSoilTest_PHLevelWinsOverLegacy(t *testing.T) {
	e := echo.New()
	soilService, _ := newSoilFixture()
	handler := NewSoilHandler(soilService)

	reqBody := `{"phLevel": 6.5, "ph": 5.0, "nitrogen": 40, "phosphorus": 30, "potassium": 180, "organicMatter": 2.1}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/soil-tests", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupOwnerContext(c, uuid.New())

	if err := handler.CreateSoilTest(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response SoilTestResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.PHLevel != 6.5 {
		t.Errorf("Expected phLevel 6.5 to win over legacy ph, got %f", response.PHLevel)
	}
}

func TestCreateSoilTest_MissingPH(t *testing.T) {
	e := echo.New()
	soilService, _ := newSoilFixture()
	handler := NewSoilHandler(soilService)

	reqBody := `{"nitrogen": 40, "phosphorus": 30, "potassium": 180, "organicMatter": 2.1}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/soil-tests", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupOwnerContext(c, uuid.New())

	if err := handler.CreateSoilTest(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCreateSoilTest_PHOutOfRange(t *testing.T) {
	e := echo.New()
	soilService, _ := newSoilFixture()
	handler := NewSoilHandler(soilService)

	reqBody := `{"phLevel": 15.0, "nitrogen": 40, "phosphorus": 30, "potassium": 180, "organicMatter": 2.1}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/soil-tests", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupOwnerContext(c, uuid.New())

	if err := handler.CreateSoilTest(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetSoilHealth_NoTests(t *testing.T) {
	e := echo.New()
	soilService, _ := newSoilFixture()
	handler := NewSoilHandler(soilService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/soil-health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupOwnerContext(c, uuid.New())

	if err := handler.GetSoilHealth(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var result domain.SoilHealthResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if result.Score != 0 {
		t.Errorf("Expected score 0, got %d", result.Score)
	}
	if result.Status != domain.SoilStatusNoData {
		t.Errorf("Expected status no-data, got %s", result.Status)
	}
	if result.Badges != nil {
		t.Errorf("Expected no badges, got %+v", result.Badges)
	}
}

func TestGetSoilHealth_WithTest(t *testing.T) {
	e := echo.New()
	soilService, _ := newSoilFixture()
	handler := NewSoilHandler(soilService)

	ownerID := uuid.New()
	if _, err := soilService.CreateSoilTest(ownerID, service.CreateSoilTestInput{
		PHLevel:       6.8,
		Nitrogen:      60,
		Phosphorus:    45,
		Potassium:     210,
		OrganicMatter: 2.8,
	}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/soil-health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupOwnerContext(c, ownerID)

	if err := handler.GetSoilHealth(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var result domain.SoilHealthResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if result.Score != 100 {
		t.Errorf("Expected score 100, got %d", result.Score)
	}
	if result.Status != domain.SoilStatusExcellent {
		t.Errorf("Expected status excellent, got %s", result.Status)
	}
	if result.Badges == nil {
		t.Fatal("Expected badges, got nil")
	}
	if result.Badges.Moisture != domain.BadgeMonitor {
		t.Errorf("Expected moisture badge monitor, got %s", result.Badges.Moisture)
	}
}

func TestGetSoilTests_EmptyList(t *testing.T) {
	e := echo.New()
	soilService, _ := newSoilFixture()
	handler := NewSoilHandler(soilService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/soil-tests", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupOwnerContext(c, uuid.New())

	if err := handler.GetSoilTests(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Empty result is a JSON array, never null
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("Expected empty array, got %s", body)
	}
}

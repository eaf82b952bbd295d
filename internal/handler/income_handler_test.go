package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/farmbook/farmbook-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func TestCreateIncome_Success(t *testing.T) {
	e := echo.New()
	ledgerService, _, _ := newLedgerFixture()
	handler := NewIncomeHandler(ledgerService)

	reqBody := `{"type": "crop-sale", "amount": "85000.00", "source": "wholesale market", "date": "2026-06-01"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/incomes", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupOwnerContext(c, uuid.New())

	if err := handler.CreateIncome(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response IncomeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Source != "wholesale market" {
		t.Errorf("Expected source 'wholesale market', got %s", response.Source)
	}
	if response.Amount != "85000.00" {
		t.Errorf("Expected amount '85000.00', got %s", response.Amount)
	}
}

func TestCreateIncome_MissingSource(t *testing.T) {
	e := echo.New()
	ledgerService, _, _ := newLedgerFixture()
	handler := NewIncomeHandler(ledgerService)

	reqBody := `{"type": "crop-sale", "amount": "100.00", "source": ""}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/incomes", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupOwnerContext(c, uuid.New())

	if err := handler.CreateIncome(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal problem response: %v", err)
	}
	if problem.Type != ErrorTypeValidation {
		t.Errorf("Expected problem type %s, got %s", ErrorTypeValidation, problem.Type)
	}
}

func TestGetIncomes_NewestFirst(t *testing.T) {
	e := echo.New()
	ledgerService, _, incomeRepo := newLedgerFixture()
	handler := NewIncomeHandler(ledgerService)

	ownerID := uuid.New()
	for _, d := range []string{"2026-02-01", "2026-05-01", "2026-03-01"} {
		date, _ := time.Parse("2006-01-02", d)
		if _, err := incomeRepo.Create(&domain.IncomeRecord{
			OwnerID: ownerID,
			Type:    "crop-sale",
			Source:  "market",
			Amount:  decimal.NewFromInt(100),
			Date:    date,
		}); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/incomes", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupOwnerContext(c, ownerID)

	if err := handler.GetIncomes(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var responses []IncomeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &responses); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(responses) != 3 {
		t.Fatalf("Expected 3 incomes, got %d", len(responses))
	}
	if responses[0].Date != "2026-05-01" {
		t.Errorf("Expected newest income first, got %s", responses[0].Date)
	}
}

func TestUpdateIncome_Success(t *testing.T) {
	e := echo.New()
	ledgerService, _, incomeRepo := newLedgerFixture()
	handler := NewIncomeHandler(ledgerService)

	ownerID := uuid.New()
	income, err := incomeRepo.Create(&domain.IncomeRecord{
		OwnerID: ownerID,
		Type:    "crop-sale",
		Source:  "market",
		Amount:  decimal.NewFromInt(100),
		Date:    time.Now(),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	reqBody := `{"type": "subsidy", "amount": "2500.00", "source": "government scheme", "date": "2026-07-01"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/incomes/"+income.ID.String(), strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(income.ID.String())

	setupOwnerContext(c, ownerID)

	if err := handler.UpdateIncome(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response IncomeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Type != "subsidy" {
		t.Errorf("Expected type 'subsidy', got %s", response.Type)
	}
}

func TestDeleteIncome_ForeignOwner(t *testing.T) {
	e := echo.New()
	ledgerService, _, incomeRepo := newLedgerFixture()
	handler := NewIncomeHandler(ledgerService)

	income, err := incomeRepo.Create(&domain.IncomeRecord{
		OwnerID: uuid.New(),
		Type:    "crop-sale",
		Source:  "market",
		Amount:  decimal.NewFromInt(100),
		Date:    time.Now(),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/incomes/"+income.ID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(income.ID.String())

	setupOwnerContext(c, uuid.New())

	if err := handler.DeleteIncome(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

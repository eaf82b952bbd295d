package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventType_String(t *testing.T) {
	tests := []struct {
		name     string
		et       EventType
		expected string
	}{
		{"created", EventTypeCreated, "created"},
		{"updated", EventTypeUpdated, "updated"},
		{"deleted", EventTypeDeleted, "deleted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.et))
		})
	}
}

func TestEntityType_String(t *testing.T) {
	tests := []struct {
		name     string
		et       EntityType
		expected string
	}{
		{"expense", EntityTypeExpense, "expense"},
		{"income", EntityTypeIncome, "income"},
		{"soil test", EntityTypeSoilTest, "soil_test"},
		{"crop plan", EntityTypeCropPlan, "crop_plan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.et))
		})
	}
}

func TestNewEvent(t *testing.T) {
	payload := map[string]interface{}{
		"id":     "b7cba2e3-41f7-4b16-9228-111111111111",
		"type":   "Seeds",
		"amount": "15000.00",
	}

	before := time.Now()
	evt := NewEvent(EventTypeCreated, EntityTypeExpense, payload)
	after := time.Now()

	assert.Equal(t, "expense.created", evt.Type)
	assert.Equal(t, EntityTypeExpense, evt.Entity)
	assert.Equal(t, payload, evt.Payload)
	assert.True(t, !evt.Timestamp.Before(before) && !evt.Timestamp.After(after))
}

func TestEvent_JSON_Serialization(t *testing.T) {
	fixedTime := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	payload := map[string]interface{}{
		"id":     "b7cba2e3-41f7-4b16-9228-111111111111",
		"type":   "Seeds",
		"amount": "15000.00",
	}

	evt := Event{
		Type:      "expense.created",
		Entity:    EntityTypeExpense,
		Payload:   payload,
		Timestamp: fixedTime,
	}

	data, err := json.Marshal(evt)
	require.NoError(t, err)

	var decoded Event
	err = json.Unmarshal(data, &decoded)
	require.NoError(t, err)

	assert.Equal(t, evt.Type, decoded.Type)
	assert.Equal(t, evt.Entity, decoded.Entity)
	assert.Equal(t, fixedTime.UTC(), decoded.Timestamp.UTC())

	// Payload should be preserved
	decodedPayload, ok := decoded.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "b7cba2e3-41f7-4b16-9228-111111111111", decodedPayload["id"])
	assert.Equal(t, "Seeds", decodedPayload["type"])
	assert.Equal(t, "15000.00", decodedPayload["amount"])
}

func TestEvent_ToJSON(t *testing.T) {
	payload := map[string]interface{}{
		"id": "b7cba2e3-41f7-4b16-9228-111111111111",
	}

	evt := NewEvent(EventTypeUpdated, EntityTypeIncome, payload)

	data, err := evt.ToJSON()
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	// Verify it's valid JSON
	var decoded map[string]interface{}
	err = json.Unmarshal(data, &decoded)
	require.NoError(t, err)

	assert.Equal(t, "income.updated", decoded["type"])
	assert.Equal(t, "income", decoded["entity"])
	assert.NotNil(t, decoded["payload"])
	assert.NotNil(t, decoded["timestamp"])
}

func TestExpenseEvent_Helpers(t *testing.T) {
	payload := map[string]interface{}{
		"id":       "b7cba2e3-41f7-4b16-9228-111111111111",
		"type":     "Fertilizer",
		"category": "fertilizer",
		"amount":   "8500.00",
	}

	t.Run("ExpenseCreated", func(t *testing.T) {
		evt := ExpenseCreated(payload)
		assert.Equal(t, "expense.created", evt.Type)
		assert.Equal(t, EntityTypeExpense, evt.Entity)
		assert.Equal(t, payload, evt.Payload)
	})

	t.Run("ExpenseUpdated", func(t *testing.T) {
		evt := ExpenseUpdated(payload)
		assert.Equal(t, "expense.updated", evt.Type)
		assert.Equal(t, EntityTypeExpense, evt.Entity)
		assert.Equal(t, payload, evt.Payload)
	})

	t.Run("ExpenseDeleted", func(t *testing.T) {
		evt := ExpenseDeleted(payload)
		assert.Equal(t, "expense.deleted", evt.Type)
		assert.Equal(t, EntityTypeExpense, evt.Entity)
		assert.Equal(t, payload, evt.Payload)
	})
}

func TestIncomeEvent_Helpers(t *testing.T) {
	payload := map[string]interface{}{
		"id":     "d9b79e01-7b21-4f33-a1a4-222222222222",
		"type":   "Rice Harvest Sale",
		"source": "Local market",
		"amount": "85000.00",
	}

	t.Run("IncomeCreated", func(t *testing.T) {
		evt := IncomeCreated(payload)
		assert.Equal(t, "income.created", evt.Type)
		assert.Equal(t, EntityTypeIncome, evt.Entity)
		assert.Equal(t, payload, evt.Payload)
	})

	t.Run("IncomeUpdated", func(t *testing.T) {
		evt := IncomeUpdated(payload)
		assert.Equal(t, "income.updated", evt.Type)
		assert.Equal(t, EntityTypeIncome, evt.Entity)
		assert.Equal(t, payload, evt.Payload)
	})

	t.Run("IncomeDeleted", func(t *testing.T) {
		evt := IncomeDeleted(payload)
		assert.Equal(t, "income.deleted", evt.Type)
		assert.Equal(t, EntityTypeIncome, evt.Entity)
		assert.Equal(t, payload, evt.Payload)
	})
}

func TestSoilTestEvent_Helpers(t *testing.T) {
	payload := map[string]interface{}{
		"id":      "f1a2b3c4-0000-4f33-a1a4-333333333333",
		"phLevel": 6.8,
	}

	evt := SoilTestCreated(payload)
	assert.Equal(t, "soil_test.created", evt.Type)
	assert.Equal(t, EntityTypeSoilTest, evt.Entity)
	assert.Equal(t, payload, evt.Payload)
}

func TestCropPlanEvent_Helpers(t *testing.T) {
	payload := map[string]interface{}{
		"id":       "a4b5c6d7-0000-4f33-a1a4-444444444444",
		"cropName": "Rice",
		"status":   "growing",
	}

	t.Run("CropPlanCreated", func(t *testing.T) {
		evt := CropPlanCreated(payload)
		assert.Equal(t, "crop_plan.created", evt.Type)
		assert.Equal(t, EntityTypeCropPlan, evt.Entity)
		assert.Equal(t, payload, evt.Payload)
	})

	t.Run("CropPlanUpdated", func(t *testing.T) {
		evt := CropPlanUpdated(payload)
		assert.Equal(t, "crop_plan.updated", evt.Type)
		assert.Equal(t, EntityTypeCropPlan, evt.Entity)
		assert.Equal(t, payload, evt.Payload)
	})

	t.Run("CropPlanDeleted", func(t *testing.T) {
		evt := CropPlanDeleted(payload)
		assert.Equal(t, "crop_plan.deleted", evt.Type)
		assert.Equal(t, EntityTypeCropPlan, evt.Entity)
		assert.Equal(t, payload, evt.Payload)
	})
}

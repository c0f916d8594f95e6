package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
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
		{"prospect", EntityTypeProspect, "prospect"},
		{"client", EntityTypeClient, "client"},
		{"service", EntityTypeService, "service"},
		{"sale", EntityTypeSale, "sale"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.et))
		})
	}
}

func TestNewEvent(t *testing.T) {
	payload := map[string]interface{}{
		"id":          "b9f1c3a2-0000-4000-8000-000000000001",
		"amountCents": 10000,
	}

	before := time.Now()
	evt := NewEvent(EventTypeCreated, EntityTypeSale, payload)
	after := time.Now()

	assert.Equal(t, "sale.created", evt.Type)
	assert.Equal(t, EntityTypeSale, evt.Entity)
	assert.Equal(t, payload, evt.Payload)
	assert.True(t, !evt.Timestamp.Before(before) && !evt.Timestamp.After(after))
}

func TestEvent_ToJSON(t *testing.T) {
	evt := NewEvent(EventTypeUpdated, EntityTypeClient, map[string]interface{}{"firstName": "Marie"})

	data, err := evt.ToJSON()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "client.updated", decoded["type"])
	assert.Equal(t, "client", decoded["entity"])
	assert.NotNil(t, decoded["payload"])
	assert.NotNil(t, decoded["timestamp"])
}

func TestEvent_Helpers(t *testing.T) {
	payload := map[string]interface{}{"name": "Assurance emprunteur"}

	t.Run("Created", func(t *testing.T) {
		evt := Created(EntityTypeService, payload)
		assert.Equal(t, "service.created", evt.Type)
		assert.Equal(t, EntityTypeService, evt.Entity)
		assert.Equal(t, payload, evt.Payload)
	})

	t.Run("Updated", func(t *testing.T) {
		evt := Updated(EntityTypeProspect, payload)
		assert.Equal(t, "prospect.updated", evt.Type)
		assert.Equal(t, EntityTypeProspect, evt.Entity)
	})

	t.Run("Deleted carries only the id", func(t *testing.T) {
		id := uuid.New()
		evt := Deleted(EntityTypeSale, id)
		assert.Equal(t, "sale.deleted", evt.Type)
		assert.Equal(t, map[string]string{"id": id.String()}, evt.Payload)
	})
}

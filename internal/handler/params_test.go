package handler

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dafibh/mandataire/mandataire-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptionalID(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name    string
		raw     string
		want    *uuid.UUID
		wantErr error
	}{
		{"empty means all", "", nil, nil},
		{"all sentinel", "all", nil, nil},
		{"all sentinel any case", " ALL ", nil, nil},
		{"uuid", id.String(), &id, nil},
		{"garbage", "abc", nil, domain.ErrInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseOptionalID(tt.raw)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	got, err := parseTimestamp("2024-03-05", paris)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 3, 4, 23, 0, 0, 0, time.UTC)))

	got, err = parseTimestamp("2024-03-05T10:15:00Z", paris)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 3, 5, 10, 15, 0, 0, time.UTC)))

	_, err = parseTimestamp("5 mars", paris)
	assert.Error(t, err)
}

func TestNullableInt64(t *testing.T) {
	var absent struct {
		V nullableInt64 `json:"v"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	assert.False(t, absent.V.Set)

	var null struct {
		V nullableInt64 `json:"v"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"v": null}`), &null))
	assert.True(t, null.V.Set)
	assert.Nil(t, null.V.Value)

	var value struct {
		V nullableInt64 `json:"v"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"v": 250}`), &value))
	assert.True(t, value.V.Set)
	require.NotNil(t, value.V.Value)
	assert.Equal(t, int64(250), *value.V.Value)

	var bad struct {
		V nullableInt64 `json:"v"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"v": "x"}`), &bad))
}

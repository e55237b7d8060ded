package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceList_Unmarshal(t *testing.T) {
	var req BookingRequest

	require.NoError(t, json.Unmarshal([]byte(`{"services":["a","b"]}`), &req))
	assert.Equal(t, ServiceList{"a", "b"}, req.Services)

	req = BookingRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"services":[1,"x"]}`), &req))
	assert.Equal(t, ServiceList{"1", "x"}, req.Services)

	req = BookingRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"services":null}`), &req))
	assert.Nil(t, req.Services)

	err := json.Unmarshal([]byte(`{"services":"11111111-1111-1111-1111-111111111111"}`), &req)
	assert.True(t, errors.Is(err, ErrServicesNotList))
}

func TestAppointmentFromRow(t *testing.T) {
	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	a := AppointmentFromRow(map[string]interface{}{
		"id":         "a1",
		"user_id":    "u1",
		"company_id": "e1",
		"date":       "2024-05-01",
		"time":       "10:00",
		"status":     AppointmentStatusPending,
		"created_at": created.Format(time.RFC3339Nano),
	})

	assert.Equal(t, "a1", a.ID)
	assert.Equal(t, "e1", a.CompanyID)
	assert.Equal(t, AppointmentStatusPending, a.Status)
	assert.True(t, created.Equal(a.CreatedAt))
}

func TestServiceFromRow_NumericShapes(t *testing.T) {
	s := ServiceFromRow(map[string]interface{}{"id": int64(7), "price": float64(35.5), "duration_minutes": float64(30)})

	assert.Equal(t, "7", s.ID)
	assert.Equal(t, 35.5, s.Price)
	assert.Equal(t, 30, s.DurationMinutes)
}

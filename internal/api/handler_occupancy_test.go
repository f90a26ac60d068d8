package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parking-backend/internal/model"
)

// TestOccupancyLifecycle walks a spot through the full create → check-in →
// check-out → delete flow and verifies the state at each step.
func TestOccupancyLifecycle(t *testing.T) {
	router := setupRouter()

	spot := createSpot(t, router, "A1", "regular")
	assert.Equal(t, "available", spot.Status)
	assert.Equal(t, 5.0, spot.HourlyRate)

	var entryTime string
	t.Run("check-in occupies the spot", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/spots/"+spot.ID+"/checkin", gin.H{
			"vehicle_license": "ABC123",
			"driver_name":     "Dana",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		occupied := decodeSpot(t, w)
		assert.Equal(t, "occupied", occupied.Status)
		assert.True(t, occupied.IsOccupied)
		require.NotNil(t, occupied.VehicleLicense)
		assert.Equal(t, "ABC123", *occupied.VehicleLicense)
		require.NotNil(t, occupied.EntryTime)
		assert.Nil(t, occupied.ExitTime)
		entryTime = occupied.EntryTime.String()
	})

	t.Run("second check-in is rejected", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/spots/"+spot.ID+"/checkin", gin.H{
			"vehicle_license": "XYZ789",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Parking spot is not available"}`, w.Body.String())

		// The stored record still holds the first vehicle.
		w = doJSON(t, router, http.MethodGet, "/api/spots/"+spot.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := decodeSpot(t, w)
		require.NotNil(t, got.VehicleLicense)
		assert.Equal(t, "ABC123", *got.VehicleLicense)
		require.NotNil(t, got.EntryTime)
		assert.Equal(t, entryTime, got.EntryTime.String())
	})

	t.Run("check-out releases the spot", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/spots/"+spot.ID+"/checkout", nil)
		require.Equal(t, http.StatusOK, w.Code)

		released := decodeSpot(t, w)
		assert.Equal(t, "available", released.Status)
		assert.False(t, released.IsOccupied)
		assert.Nil(t, released.VehicleLicense)
		assert.Nil(t, released.DriverName)
		require.NotNil(t, released.EntryTime, "entry time survives checkout")
		require.NotNil(t, released.ExitTime)
		assert.False(t, released.ExitTime.Before(*released.EntryTime))
	})

	t.Run("second check-out is rejected", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/spots/"+spot.ID+"/checkout", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Parking spot is not occupied"}`, w.Body.String())
	})

	t.Run("delete then get returns 404", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/api/spots/"+spot.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, router, http.MethodGet, "/api/spots/"+spot.ID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCheckInValidation(t *testing.T) {
	router := setupRouter()
	spot := createSpot(t, router, "A1", "regular")

	// vehicle_license is required.
	w := doJSON(t, router, http.MethodPost, "/api/spots/"+spot.ID+"/checkin", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/spots/no-such-id/checkin", gin.H{
		"vehicle_license": "ABC123",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/spots/no-such-id/checkout", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDashboardStatsEndpoint(t *testing.T) {
	router := setupRouter()

	a1 := createSpot(t, router, "A1", "regular")
	createSpot(t, router, "A2", "regular")
	createSpot(t, router, "V1", "vip")

	w := doJSON(t, router, http.MethodPost, "/api/spots/"+a1.ID+"/checkin", gin.H{
		"vehicle_license": "ABC123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats model.DashboardStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))

	assert.Equal(t, 3, stats.TotalSpots)
	assert.Equal(t, 2, stats.AvailableSpots)
	assert.Equal(t, 1, stats.OccupiedSpots)
	assert.Equal(t, 0, stats.ReservedSpots)
	assert.Equal(t, 0, stats.MaintenanceSpots)
	assert.Equal(t, 5.0, stats.TotalRevenue)
}

func TestDashboardStatsEmpty(t *testing.T) {
	router := setupRouter()

	w := doJSON(t, router, http.MethodGet, "/api/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"total_spots": 0,
		"available_spots": 0,
		"occupied_spots": 0,
		"reserved_spots": 0,
		"maintenance_spots": 0,
		"total_revenue": 0
	}`, w.Body.String())
}

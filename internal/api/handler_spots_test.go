package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parking-backend/config"
	"parking-backend/internal/model"
	"parking-backend/internal/service"
	"parking-backend/internal/store"
)

// setupRouter wires the router against a fresh in-memory store, with rate
// limiting and response caching disabled.
func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewParkingService(store.NewMemoryStore())
	return NewRouter(svc, &config.ServerConfig{})
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	w := httptest.NewRecorder()
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func decodeSpot(t *testing.T, w *httptest.ResponseRecorder) model.ParkingSpot {
	t.Helper()
	var spot model.ParkingSpot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &spot))
	return spot
}

func createSpot(t *testing.T, router *gin.Engine, number, spotType string) model.ParkingSpot {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/spots", gin.H{
		"spot_number": number,
		"spot_type":   spotType,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeSpot(t, w)
}

func TestCreateSpot(t *testing.T) {
	router := setupRouter()

	w := doJSON(t, router, http.MethodPost, "/api/spots", gin.H{
		"spot_number": "A1",
		"spot_type":   "regular",
		"hourly_rate": 7.5,
	})
	require.Equal(t, http.StatusOK, w.Code)

	spot := decodeSpot(t, w)
	assert.NotEmpty(t, spot.ID)
	assert.Equal(t, "A1", spot.SpotNumber)
	assert.Equal(t, "available", spot.Status)
	assert.Equal(t, 7.5, spot.HourlyRate)
	assert.False(t, spot.IsOccupied)
}

func TestCreateSpotValidation(t *testing.T) {
	router := setupRouter()

	// spot_number and spot_type are required.
	w := doJSON(t, router, http.MethodPost, "/api/spots", gin.H{"spot_type": "regular"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/spots", gin.H{"spot_number": "A1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateSpotDuplicateNumber(t *testing.T) {
	router := setupRouter()
	createSpot(t, router, "A1", "regular")

	w := doJSON(t, router, http.MethodPost, "/api/spots", gin.H{
		"spot_number": "A1",
		"spot_type":   "vip",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Spot number already exists"}`, w.Body.String())
}

func TestGetSpotNotFound(t *testing.T) {
	router := setupRouter()

	w := doJSON(t, router, http.MethodGet, "/api/spots/no-such-id", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Parking spot not found"}`, w.Body.String())
}

func TestUpdateSpotPartial(t *testing.T) {
	router := setupRouter()
	spot := createSpot(t, router, "A1", "regular")

	w := doJSON(t, router, http.MethodPut, "/api/spots/"+spot.ID, gin.H{
		"status": "maintenance",
	})
	require.Equal(t, http.StatusOK, w.Code)

	updated := decodeSpot(t, w)
	assert.Equal(t, "maintenance", updated.Status)
	assert.Equal(t, "A1", updated.SpotNumber)
	assert.Equal(t, spot.HourlyRate, updated.HourlyRate)

	w = doJSON(t, router, http.MethodPut, "/api/spots/no-such-id", gin.H{"status": "reserved"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListSpotsFilterAndSearch(t *testing.T) {
	router := setupRouter()
	createSpot(t, router, "A1", "regular")
	b2 := createSpot(t, router, "B2", "vip")
	createSpot(t, router, "C3", "electric")

	w := doJSON(t, router, http.MethodPost, "/api/spots/"+b2.ID+"/checkin", gin.H{
		"vehicle_license": "XYZ789",
	})
	require.Equal(t, http.StatusOK, w.Code)

	listNumbers := func(path string) []string {
		w := doJSON(t, router, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var spots []model.ParkingSpot
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &spots))
		numbers := make([]string, 0, len(spots))
		for _, sp := range spots {
			numbers = append(numbers, sp.SpotNumber)
		}
		return numbers
	}

	assert.Equal(t, []string{"A1", "B2", "C3"}, listNumbers("/api/spots"))
	assert.Equal(t, []string{"A1", "C3"}, listNumbers("/api/spots?status=available"))
	assert.Equal(t, []string{"B2"}, listNumbers("/api/spots?spot_type=vip"))
	assert.Equal(t, []string{"A1"}, listNumbers("/api/spots?search=a1"), "search is case-insensitive on spot_number")
	assert.Equal(t, []string{"B2"}, listNumbers("/api/spots?search=xyz"), "search matches vehicle_license")
	assert.Empty(t, listNumbers("/api/spots?search=zzz"))
}

func TestDeleteSpot(t *testing.T) {
	router := setupRouter()
	spot := createSpot(t, router, "A1", "regular")

	w := doJSON(t, router, http.MethodDelete, "/api/spots/"+spot.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Parking spot deleted successfully"}`, w.Body.String())

	w = doJSON(t, router, http.MethodDelete, "/api/spots/"+spot.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLiveness(t *testing.T) {
	router := setupRouter()

	w := doJSON(t, router, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Parking Management API"}`, w.Body.String())
}

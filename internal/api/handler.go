package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"parking-backend/internal/service"
	"parking-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	svc *service.ParkingService
}

// NewHandler creates a new API handler.
func NewHandler(svc *service.ParkingService) *Handler {
	return &Handler{svc: svc}
}

// respondError maps service and store failures onto HTTP status codes. No
// failure is fatal to the process; every error terminates only its request.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrSpotNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Parking spot not found"})
	case errors.Is(err, store.ErrDuplicateSpotNumber):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Spot number already exists"})
	case errors.Is(err, service.ErrSpotNotAvailable):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parking spot is not available"})
	case errors.Is(err, service.ErrSpotNotOccupied):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parking spot is not occupied"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parking-backend/internal/service"
	"parking-backend/internal/store"
)

type createSpotRequest struct {
	SpotNumber string   `json:"spot_number" binding:"required"`
	SpotType   string   `json:"spot_type" binding:"required"`
	HourlyRate *float64 `json:"hourly_rate"`
	Status     string   `json:"status"`
}

type updateSpotRequest struct {
	SpotNumber *string  `json:"spot_number"`
	SpotType   *string  `json:"spot_type"`
	HourlyRate *float64 `json:"hourly_rate"`
	Status     *string  `json:"status"`
}

// ListSpots handles GET /api/spots with optional status, spot_type and
// search query parameters.
func (h *Handler) ListSpots(c *gin.Context) {
	filter := store.SpotFilter{
		Status:   c.Query("status"),
		SpotType: c.Query("spot_type"),
		Search:   c.Query("search"),
	}

	spots, err := h.svc.ListSpots(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, spots)
}

// GetSpot handles GET /api/spots/:id.
func (h *Handler) GetSpot(c *gin.Context) {
	spot, err := h.svc.GetSpot(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, spot)
}

// CreateSpot handles POST /api/spots.
func (h *Handler) CreateSpot(c *gin.Context) {
	var req createSpotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	spot, err := h.svc.CreateSpot(c.Request.Context(), service.CreateSpotInput{
		SpotNumber: req.SpotNumber,
		SpotType:   req.SpotType,
		HourlyRate: req.HourlyRate,
		Status:     req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, spot)
}

// UpdateSpot handles PUT /api/spots/:id. Fields omitted from the body are
// left untouched.
func (h *Handler) UpdateSpot(c *gin.Context) {
	var req updateSpotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	spot, err := h.svc.UpdateSpot(c.Request.Context(), c.Param("id"), service.UpdateSpotInput{
		SpotNumber: req.SpotNumber,
		SpotType:   req.SpotType,
		HourlyRate: req.HourlyRate,
		Status:     req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, spot)
}

// DeleteSpot handles DELETE /api/spots/:id.
func (h *Handler) DeleteSpot(c *gin.Context) {
	if err := h.svc.DeleteSpot(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Parking spot deleted successfully"})
}

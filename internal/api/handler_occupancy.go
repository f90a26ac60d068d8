package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parking-backend/internal/service"
)

type checkInRequest struct {
	VehicleLicense string  `json:"vehicle_license" binding:"required"`
	DriverName     *string `json:"driver_name"`
	DriverPhone    *string `json:"driver_phone"`
}

// CheckIn handles POST /api/spots/:id/checkin.
func (h *Handler) CheckIn(c *gin.Context) {
	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	spot, err := h.svc.CheckIn(c.Request.Context(), c.Param("id"), service.CheckInInput{
		VehicleLicense: req.VehicleLicense,
		DriverName:     req.DriverName,
		DriverPhone:    req.DriverPhone,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, spot)
}

// CheckOut handles POST /api/spots/:id/checkout.
func (h *Handler) CheckOut(c *gin.Context) {
	spot, err := h.svc.CheckOut(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, spot)
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats handles GET /api/dashboard/stats.
func (h *Handler) GetDashboardStats(c *gin.Context) {
	stats, err := h.svc.DashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

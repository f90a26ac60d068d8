package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"parking-backend/config"
	"parking-backend/internal/mw"
	"parking-backend/internal/service"
)

// NewRouter creates and configures a new Gin router. Rate limiting and
// dashboard caching are skipped when their config values are zero.
func NewRouter(svc *service.ParkingService, cfg *config.ServerConfig) *gin.Engine {
	r := gin.Default()
	r.Use(mw.CORS())

	handler := NewHandler(svc)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Parking Management API"})
	})

	api := r.Group("/api")
	if cfg.RateLimitPerSec > 0 {
		api.Use(mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst))
	}

	statsHandlers := []gin.HandlerFunc{handler.GetDashboardStats}
	if cfg.CacheTTLSeconds > 0 {
		ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
		cacheStore := cache.New(ttl, 2*ttl)
		statsHandlers = []gin.HandlerFunc{mw.Cache(cacheStore, ttl), handler.GetDashboardStats}
	}

	{
		api.GET("/dashboard/stats", statsHandlers...)

		api.GET("/spots", handler.ListSpots)
		api.POST("/spots", handler.CreateSpot)
		api.GET("/spots/:id", handler.GetSpot)
		api.PUT("/spots/:id", handler.UpdateSpot)
		api.DELETE("/spots/:id", handler.DeleteSpot)

		api.POST("/spots/:id/checkin", handler.CheckIn)
		api.POST("/spots/:id/checkout", handler.CheckOut)
	}

	return r
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educafric/tracking-backend-go/internal/config"
	"github.com/educafric/tracking-backend-go/internal/handler"
	"github.com/educafric/tracking-backend-go/internal/middleware"
)

// Handlers groups the handler set wired into the router
type Handlers struct {
	Devices  *handler.DeviceHandler
	Tracking *handler.TrackingHandler
	Alerts   *handler.AlertHandler
	Geocode  *handler.GeocodeHandler
}

// SetupRouter builds the gin engine with middleware and all routes
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "EDUCAFRIC tracking API is running",
		})
	})

	api := r.Group("/api/tracking")
	api.Use(
		middleware.RateLimit(cfg.RateLimit, cfg.RateWindow),
		middleware.Auth(cfg.JWTSecret),
	)
	{
		devices := api.Group("/devices")
		{
			devices.POST("", h.Devices.Register)
			devices.GET("/:id", h.Devices.Get)
			devices.PATCH("/:id", h.Devices.Patch)
			devices.PATCH("/:id/settings", h.Devices.PatchSettings)
			devices.POST("/:id/safe-zones", h.Devices.AddSafeZone)
			devices.POST("/:id/contacts", h.Devices.AddContact)

			devices.POST("/:id/location", h.Tracking.ReportLocation)
			devices.GET("/:id/last-location", h.Tracking.LastLocation)
			devices.POST("/:id/tracking/start", h.Tracking.Start)
			devices.POST("/:id/tracking/stop", h.Tracking.Stop)
			devices.GET("/:id/zone-status/:zoneId", h.Tracking.ZoneStatus)
			devices.POST("/:id/zone-status/:zoneId", h.Tracking.SetZoneStatus)
			devices.POST("/:id/emergency", h.Tracking.Emergency)

			devices.GET("/:id/alerts", h.Alerts.DeviceAlerts)
		}

		api.GET("/students/:id/devices", h.Devices.ByStudent)
		api.GET("/parents/:id/devices", h.Devices.ByParent)

		api.POST("/alerts", h.Alerts.Create)
		api.PATCH("/alerts/:id/read", h.Alerts.MarkRead)
		api.POST("/emergency-alert", h.Tracking.EmergencyAlert)

		api.GET("/geocode/reverse", h.Geocode.Reverse)
		api.GET("/geocode/cities", h.Geocode.Cities)
	}

	return r
}

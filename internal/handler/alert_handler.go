package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/educafric/tracking-backend-go/internal/models"
	"github.com/educafric/tracking-backend-go/internal/service"
	"github.com/educafric/tracking-backend-go/pkg/response"
)

// AlertHandler handles HTTP requests for alerts
type AlertHandler struct {
	tracking *service.TrackingService
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(tracking *service.TrackingService) *AlertHandler {
	return &AlertHandler{tracking: tracking}
}

// DeviceAlerts handles GET /api/tracking/devices/:id/alerts?limit=N
func (h *AlertHandler) DeviceAlerts(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		response.BadRequest(c, "Invalid limit parameter")
		return
	}

	alerts, err := h.tracking.DeviceAlerts(id, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{
		"data":  alerts,
		"count": len(alerts),
	})
}

// Create handles POST /api/tracking/alerts
func (h *AlertHandler) Create(c *gin.Context) {
	var req models.AlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid alert payload")
		return
	}

	alert, err := h.tracking.RecordAlert(req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, alert)
}

// MarkRead handles PATCH /api/tracking/alerts/:id/read
func (h *AlertHandler) MarkRead(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "Invalid alert ID")
		return
	}

	if err := h.tracking.MarkAlertRead(id); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{"isRead": true})
}

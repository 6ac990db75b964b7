package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/educafric/tracking-backend-go/internal/models"
	"github.com/educafric/tracking-backend-go/internal/service"
	"github.com/educafric/tracking-backend-go/pkg/response"
)

// TrackingHandler handles location ingest, sessions and zone status
type TrackingHandler struct {
	tracking *service.TrackingService
}

// NewTrackingHandler creates a new tracking handler
func NewTrackingHandler(tracking *service.TrackingService) *TrackingHandler {
	return &TrackingHandler{tracking: tracking}
}

// ReportLocation handles POST /api/tracking/devices/:id/location
func (h *TrackingHandler) ReportLocation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var report models.LocationReport
	if err := c.ShouldBindJSON(&report); err != nil {
		response.BadRequest(c, "Invalid location payload")
		return
	}
	if !report.Valid() {
		response.BadRequest(c, "Coordinates out of range")
		return
	}

	sample, alerts, err := h.tracking.ProcessLocation(c.Request.Context(), id, report)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{
		"location": sample,
		"alerts":   alerts,
	})
}

// LastLocation handles GET /api/tracking/devices/:id/last-location
func (h *TrackingHandler) LastLocation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	sample, err := h.tracking.LastLocation(id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, sample)
}

// Start handles POST /api/tracking/devices/:id/tracking/start
func (h *TrackingHandler) Start(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.tracking.Start(id); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{"tracking": true})
}

// Stop handles POST /api/tracking/devices/:id/tracking/stop
func (h *TrackingHandler) Stop(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.tracking.Stop(id); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{"tracking": false})
}

// ZoneStatus handles GET /api/tracking/devices/:id/zone-status/:zoneId
func (h *TrackingHandler) ZoneStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	zoneID, ok := pathID(c, "zoneId")
	if !ok {
		return
	}

	status, err := h.tracking.ZoneStatus(id, zoneID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, status)
}

// SetZoneStatus handles POST /api/tracking/devices/:id/zone-status/:zoneId
func (h *TrackingHandler) SetZoneStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	zoneID, ok := pathID(c, "zoneId")
	if !ok {
		return
	}

	var body struct {
		Inside bool `json:"inside"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "Invalid zone status payload")
		return
	}

	if err := h.tracking.SetZoneStatus(id, zoneID, body.Inside); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{"inside": body.Inside})
}

// Emergency handles POST /api/tracking/devices/:id/emergency
func (h *TrackingHandler) Emergency(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	report, err := h.tracking.ActivateEmergencyMode(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, report)
}

// EmergencyAlert handles POST /api/tracking/emergency-alert, the body-based
// variant older clients use
func (h *TrackingHandler) EmergencyAlert(c *gin.Context) {
	var body struct {
		DeviceID int64 `json:"deviceId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "Invalid emergency payload")
		return
	}

	report, err := h.tracking.ActivateEmergencyMode(c.Request.Context(), body.DeviceID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, report)
}

package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/educafric/tracking-backend-go/internal/models"
	"github.com/educafric/tracking-backend-go/internal/service"
	"github.com/educafric/tracking-backend-go/pkg/response"
)

// DeviceHandler handles HTTP requests for tracked devices
type DeviceHandler struct {
	devices *service.DeviceService
}

// NewDeviceHandler creates a new device handler
func NewDeviceHandler(devices *service.DeviceService) *DeviceHandler {
	return &DeviceHandler{devices: devices}
}

// Register handles POST /api/tracking/devices
func (h *DeviceHandler) Register(c *gin.Context) {
	var req models.RegisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid device payload")
		return
	}

	device, err := h.devices.Register(req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, device)
}

// Get handles GET /api/tracking/devices/:id
func (h *DeviceHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	device, err := h.devices.Detail(id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, device)
}

// Patch handles PATCH /api/tracking/devices/:id
func (h *DeviceHandler) Patch(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var patch models.DevicePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, "Invalid device patch")
		return
	}

	device, err := h.devices.Update(id, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, device)
}

// PatchSettings handles PATCH /api/tracking/devices/:id/settings
func (h *DeviceHandler) PatchSettings(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var patch models.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, "Invalid settings patch")
		return
	}

	settings, err := h.devices.UpdateSettings(id, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, settings)
}

// AddSafeZone handles POST /api/tracking/devices/:id/safe-zones
func (h *DeviceHandler) AddSafeZone(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var zone models.SafeZone
	if err := c.ShouldBindJSON(&zone); err != nil {
		response.BadRequest(c, "Invalid safe zone payload")
		return
	}

	created, err := h.devices.AddSafeZone(id, zone)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, created)
}

// AddContact handles POST /api/tracking/devices/:id/contacts
func (h *DeviceHandler) AddContact(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var contact models.EmergencyContact
	if err := c.ShouldBindJSON(&contact); err != nil {
		response.BadRequest(c, "Invalid contact payload")
		return
	}

	created, err := h.devices.AddContact(id, contact)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, created)
}

// ByStudent handles GET /api/tracking/students/:id/devices
func (h *DeviceHandler) ByStudent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	devices, err := h.devices.ByStudent(id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, devices)
}

// ByParent handles GET /api/tracking/parents/:id/devices
func (h *DeviceHandler) ByParent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	devices, err := h.devices.ByParent(id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, devices)
}

// pathID parses an int64 path parameter, replying 400 on failure
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return id, true
}

// respondError maps domain errors to HTTP responses
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrDeviceNotFound),
		errors.Is(err, models.ErrZoneNotFound),
		errors.Is(err, models.ErrSettingsNotFound),
		errors.Is(err, models.ErrAlertNotFound),
		errors.Is(err, models.ErrNoLocation):
		response.NotFound(c, err.Error())
	default:
		response.InternalError(c, err.Error())
	}
}

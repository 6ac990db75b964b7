package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/educafric/tracking-backend-go/internal/models"
	"github.com/educafric/tracking-backend-go/internal/spatial"
)

// DeviceService handles device registration and record management
type DeviceService struct {
	devices  DeviceStore
	settings SettingsStore
	zones    ZoneStore
	contacts ContactStore
	location LocationStore
}

// NewDeviceService creates a new device service
func NewDeviceService(devices DeviceStore, settings SettingsStore, zones ZoneStore, contacts ContactStore, location LocationStore) *DeviceService {
	return &DeviceService{
		devices:  devices,
		settings: settings,
		zones:    zones,
		contacts: contacts,
		location: location,
	}
}

var deviceTypes = map[string]bool{
	"smartwatch": true,
	"phone":      true,
	"tablet":     true,
	"gps-tag":    true,
}

// Register creates a device with default settings and a generated tracker token
func (s *DeviceService) Register(req models.RegisterDeviceRequest) (*models.TrackedDevice, error) {
	if !deviceTypes[req.DeviceType] {
		return nil, fmt.Errorf("unsupported device type %q", req.DeviceType)
	}

	device, err := s.devices.Create(req, uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("device registration failed: %w", err)
	}

	return s.Detail(device.ID)
}

// Detail retrieves a device with its settings, zones, contacts and last location
func (s *DeviceService) Detail(id int64) (*models.TrackedDevice, error) {
	device, err := s.devices.GetByID(id)
	if err != nil {
		return nil, err
	}

	if device.Settings, err = s.settings.GetByDevice(id); err != nil {
		return nil, err
	}
	if device.SafeZones, err = s.zones.ListByDevice(id, false); err != nil {
		return nil, err
	}
	if device.EmergencyContacts, err = s.contacts.ListByDevice(id); err != nil {
		return nil, err
	}

	last, err := s.location.Latest(id)
	if err != nil && !errors.Is(err, models.ErrNoLocation) {
		return nil, err
	}
	device.CurrentLocation = last

	return device, nil
}

// Update applies a partial update to mutable device state
func (s *DeviceService) Update(id int64, patch models.DevicePatch) (*models.TrackedDevice, error) {
	return s.devices.Update(id, patch)
}

// UpdateSettings merges a partial update into a device's settings and
// replaces the stored row wholesale
func (s *DeviceService) UpdateSettings(deviceID int64, patch models.SettingsPatch) (*models.TrackingSettings, error) {
	current, err := s.settings.GetByDevice(deviceID)
	if err != nil {
		return nil, err
	}

	patch.Apply(current)
	if current.UpdateInterval < 10 {
		return nil, fmt.Errorf("update interval below 10s is not allowed")
	}

	if err := s.settings.Replace(*current); err != nil {
		return nil, err
	}

	return current, nil
}

// AddSafeZone attaches a safe zone to a device
func (s *DeviceService) AddSafeZone(deviceID int64, zone models.SafeZone) (*models.SafeZone, error) {
	if _, err := s.devices.GetByID(deviceID); err != nil {
		return nil, err
	}

	zone.DeviceID = deviceID
	if zone.Category == "" {
		zone.Category = models.ZoneCategoryOther
	}
	if zone.Radius <= 0 {
		zone.Radius = spatial.DefaultSchoolZoneRadius
	}

	created, err := s.zones.Create(zone)
	if err != nil {
		return nil, fmt.Errorf("failed to add safe zone: %w", err)
	}

	return created, nil
}

// AddContact attaches an emergency contact to a device
func (s *DeviceService) AddContact(deviceID int64, contact models.EmergencyContact) (*models.EmergencyContact, error) {
	if _, err := s.devices.GetByID(deviceID); err != nil {
		return nil, err
	}

	contact.DeviceID = deviceID
	return s.contacts.Create(contact)
}

// ByStudent lists a student's devices
func (s *DeviceService) ByStudent(studentID int64) ([]models.TrackedDevice, error) {
	return s.devices.ListByStudent(studentID)
}

// ByParent lists the devices a parent can see
func (s *DeviceService) ByParent(parentID int64) ([]models.TrackedDevice, error) {
	return s.devices.ListByParent(parentID)
}

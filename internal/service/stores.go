package service

import (
	"context"

	"github.com/educafric/tracking-backend-go/internal/geocode"
	"github.com/educafric/tracking-backend-go/internal/models"
)

// Store interfaces consumed by the services. The repository package provides
// the sqlite implementations; tests substitute in-memory fakes.

// DeviceStore persists tracked devices
type DeviceStore interface {
	Create(req models.RegisterDeviceRequest, trackerToken string) (*models.TrackedDevice, error)
	GetByID(id int64) (*models.TrackedDevice, error)
	Update(id int64, patch models.DevicePatch) (*models.TrackedDevice, error)
	SetActive(id int64, active bool) error
	TouchLastSeen(id int64, ts int64) error
	UpdateBattery(id int64, level int) error
	ListByStudent(studentID int64) ([]models.TrackedDevice, error)
	ListByParent(parentID int64) ([]models.TrackedDevice, error)
}

// SettingsStore persists tracking settings
type SettingsStore interface {
	GetByDevice(deviceID int64) (*models.TrackingSettings, error)
	Replace(s models.TrackingSettings) error
}

// ZoneStore persists safe zones
type ZoneStore interface {
	Create(z models.SafeZone) (*models.SafeZone, error)
	GetByID(id int64) (*models.SafeZone, error)
	ListByDevice(deviceID int64, activeOnly bool) ([]models.SafeZone, error)
}

// StatusStore persists per-(device, zone) membership
type StatusStore interface {
	Get(deviceID, zoneID int64) (inside bool, known bool, err error)
	Set(deviceID, zoneID int64, inside bool, ts int64) error
	GetStatus(deviceID, zoneID int64) (*models.ZoneStatus, error)
}

// LocationStore persists location samples
type LocationStore interface {
	Insert(s models.LocationSample) (*models.LocationSample, error)
	Latest(deviceID int64) (*models.LocationSample, error)
}

// AlertStore persists alerts
type AlertStore interface {
	Insert(a models.LocationAlert) error
	ListByDevice(deviceID int64, limit int) ([]models.LocationAlert, error)
	MarkRead(id string) error
}

// ContactStore persists emergency contacts
type ContactStore interface {
	Create(c models.EmergencyContact) (*models.EmergencyContact, error)
	ListByDevice(deviceID int64) ([]models.EmergencyContact, error)
}

// Geocoder resolves coordinates to addresses, best effort
type Geocoder interface {
	Reverse(ctx context.Context, lat, lon float64) geocode.Result
}

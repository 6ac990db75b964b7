package models

// TrackedDevice represents a student device registered for location tracking
type TrackedDevice struct {
	ID           int64  `json:"id" db:"id"`
	StudentID    int64  `json:"studentId" db:"student_id"`
	Name         string `json:"name" db:"name"`
	DeviceType   string `json:"deviceType" db:"device_type"` // smartwatch, phone, tablet, gps-tag
	MACAddress   string `json:"macAddress,omitempty" db:"mac_address"`
	IMEI         string `json:"imei,omitempty" db:"imei"`
	TrackerToken string `json:"trackerToken" db:"tracker_token"`
	BatteryLevel int    `json:"batteryLevel" db:"battery_level"`
	IsActive     bool   `json:"isActive" db:"is_active"`
	LastSeen     *int64 `json:"lastSeen,omitempty" db:"last_seen"` // Unix timestamp in seconds

	// Metadata
	CreatedAt *string `json:"createdAt,omitempty" db:"created_at"`
	UpdatedAt *string `json:"updatedAt,omitempty" db:"updated_at"`

	// Owned records, populated on detail reads
	CurrentLocation   *LocationSample    `json:"currentLocation,omitempty"`
	SafeZones         []SafeZone         `json:"safeZones,omitempty"`
	EmergencyContacts []EmergencyContact `json:"emergencyContacts,omitempty"`
	Settings          *TrackingSettings  `json:"settings,omitempty"`
}

// RegisterDeviceRequest is the payload for device registration
type RegisterDeviceRequest struct {
	StudentID  int64  `json:"studentId" binding:"required"`
	Name       string `json:"name" binding:"required"`
	DeviceType string `json:"deviceType" binding:"required"`
	MACAddress string `json:"macAddress"`
	IMEI       string `json:"imei"`

	ParentIDs         []int64            `json:"parentIds"`
	EmergencyContacts []EmergencyContact `json:"emergencyContacts"`
}

// DevicePatch carries partial updates to mutable device state
type DevicePatch struct {
	Name         *string `json:"name"`
	BatteryLevel *int    `json:"batteryLevel"`
	IsActive     *bool   `json:"isActive"`
}

// EmergencyContact is a person notified when a device enters emergency mode
type EmergencyContact struct {
	ID           int64  `json:"id" db:"id"`
	DeviceID     int64  `json:"deviceId" db:"device_id"`
	Name         string `json:"name" db:"name"`
	Phone        string `json:"phone" db:"phone"`
	Relationship string `json:"relationship,omitempty" db:"relationship"`
	Priority     int    `json:"priority" db:"priority"`
	CanTrack     bool   `json:"canTrack" db:"can_track"`
}

// TrackingSettings configures sampling and alerting for one device
type TrackingSettings struct {
	DeviceID              int64   `json:"deviceId" db:"device_id"`
	UpdateInterval        int     `json:"updateInterval" db:"update_interval"` // seconds
	BatteryAlertThreshold int     `json:"batteryAlertThreshold" db:"battery_alert_threshold"`
	SpeedAlertThreshold   float64 `json:"speedAlertThreshold" db:"speed_alert_threshold"` // km/h
	NightModeStart        string  `json:"nightModeStart" db:"night_mode_start"`           // HH:MM
	NightModeEnd          string  `json:"nightModeEnd" db:"night_mode_end"`               // HH:MM
	ShareWithSchool       bool    `json:"shareWithSchool" db:"share_with_school"`
	ShareWithFamily       bool    `json:"shareWithFamily" db:"share_with_family"`
	EmergencyMode         bool    `json:"emergencyMode" db:"emergency_mode"`
}

// SettingsPatch carries a partial settings update; nil fields are left unchanged
type SettingsPatch struct {
	UpdateInterval        *int     `json:"updateInterval"`
	BatteryAlertThreshold *int     `json:"batteryAlertThreshold"`
	SpeedAlertThreshold   *float64 `json:"speedAlertThreshold"`
	NightModeStart        *string  `json:"nightModeStart"`
	NightModeEnd          *string  `json:"nightModeEnd"`
	ShareWithSchool       *bool    `json:"shareWithSchool"`
	ShareWithFamily       *bool    `json:"shareWithFamily"`
	EmergencyMode         *bool    `json:"emergencyMode"`
}

// Apply merges the patch into existing settings
func (p SettingsPatch) Apply(s *TrackingSettings) {
	if p.UpdateInterval != nil {
		s.UpdateInterval = *p.UpdateInterval
	}
	if p.BatteryAlertThreshold != nil {
		s.BatteryAlertThreshold = *p.BatteryAlertThreshold
	}
	if p.SpeedAlertThreshold != nil {
		s.SpeedAlertThreshold = *p.SpeedAlertThreshold
	}
	if p.NightModeStart != nil {
		s.NightModeStart = *p.NightModeStart
	}
	if p.NightModeEnd != nil {
		s.NightModeEnd = *p.NightModeEnd
	}
	if p.ShareWithSchool != nil {
		s.ShareWithSchool = *p.ShareWithSchool
	}
	if p.ShareWithFamily != nil {
		s.ShareWithFamily = *p.ShareWithFamily
	}
	if p.EmergencyMode != nil {
		s.EmergencyMode = *p.EmergencyMode
	}
}

// DefaultSettings returns the settings a device starts with
func DefaultSettings(deviceID int64) TrackingSettings {
	return TrackingSettings{
		DeviceID:              deviceID,
		UpdateInterval:        300,
		BatteryAlertThreshold: 20,
		SpeedAlertThreshold:   80,
		NightModeStart:        "21:00",
		NightModeEnd:          "06:00",
		ShareWithSchool:       true,
		ShareWithFamily:       true,
	}
}

// EmergencyUpdateInterval is the sampling interval applied in emergency mode
const EmergencyUpdateInterval = 30 // seconds

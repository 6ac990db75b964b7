package models

// Alert types
const (
	AlertTypeEntry     = "entry"
	AlertTypeExit      = "exit"
	AlertTypeEmergency = "emergency"
	AlertTypeSpeed     = "speed"
	AlertTypeBattery   = "battery"
	AlertTypeOffline   = "offline"
)

// Alert severities
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// LocationAlert is an immutable alert event; only IsRead may change after creation
type LocationAlert struct {
	ID        string   `json:"id" db:"id"`
	DeviceID  int64    `json:"deviceId" db:"device_id"`
	Type      string   `json:"type" db:"type"`
	Severity  string   `json:"severity" db:"severity"`
	Message   string   `json:"message" db:"message"`
	Latitude  *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude *float64 `json:"longitude,omitempty" db:"longitude"`
	IsRead    bool     `json:"isRead" db:"is_read"`
	CreatedAt int64    `json:"createdAt" db:"created_at"` // Unix timestamp in seconds
}

// AlertRequest is the payload for manually recorded alerts
type AlertRequest struct {
	DeviceID  int64    `json:"deviceId" binding:"required"`
	Type      string   `json:"type" binding:"required"`
	Severity  string   `json:"severity"`
	Message   string   `json:"message" binding:"required"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// ValidAlertType reports whether t is a known alert type
func ValidAlertType(t string) bool {
	switch t {
	case AlertTypeEntry, AlertTypeExit, AlertTypeEmergency, AlertTypeSpeed, AlertTypeBattery, AlertTypeOffline:
		return true
	}
	return false
}

// ValidSeverity reports whether s is a known severity
func ValidSeverity(s string) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// ContactDispatch is the per-contact outcome of an emergency fan-out
type ContactDispatch struct {
	ContactID int64  `json:"contactId"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Sent      bool   `json:"sent"`
	Error     string `json:"error,omitempty"`
}

// EmergencyReport summarizes an emergency-mode activation
type EmergencyReport struct {
	DeviceID   int64             `json:"deviceId"`
	AlertID    string            `json:"alertId"`
	Dispatches []ContactDispatch `json:"dispatches"`
	Notified   int               `json:"notified"`
	Failed     int               `json:"failed"`
}

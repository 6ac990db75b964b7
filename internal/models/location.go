package models

// LocationSample is a point-in-time position report from a device
type LocationSample struct {
	ID         int64   `json:"id" db:"id"`
	DeviceID   int64   `json:"deviceId" db:"device_id"`
	Latitude   float64 `json:"latitude" db:"latitude"`
	Longitude  float64 `json:"longitude" db:"longitude"`
	Accuracy   float64 `json:"accuracy" db:"accuracy"`
	RecordedAt int64   `json:"recordedAt" db:"recorded_at"` // Unix timestamp in seconds

	// Resolved by reverse geocoding, best effort
	Address string `json:"address,omitempty" db:"address"`
	City    string `json:"city,omitempty" db:"city"`
	Country string `json:"country,omitempty" db:"country"`
}

// LocationReport is the payload devices POST on each sample
type LocationReport struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Accuracy     float64 `json:"accuracy"`
	RecordedAt   int64   `json:"recordedAt"` // Unix seconds; zero means "now"
	BatteryLevel *int    `json:"batteryLevel"`
}

// Valid reports whether the report carries plausible coordinates
func (r LocationReport) Valid() bool {
	return r.Latitude >= -90 && r.Latitude <= 90 &&
		r.Longitude >= -180 && r.Longitude <= 180
}

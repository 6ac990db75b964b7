package spatial

import (
	"math"

	"github.com/golang/geo/s2"
)

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm     = 6371.0    // Earth's mean radius in kilometers

	// DefaultSchoolZoneRadius is the containment radius used when a school
	// zone does not specify its own, in meters
	DefaultSchoolZoneRadius = 500.0
)

// Distance calculates the great-circle distance between two points in
// kilometers using the Haversine formula
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// DistanceMeters calculates the great-circle distance between two points in meters
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// WithinZone reports whether a point lies inside a circular geofence.
// A point exactly on the boundary counts as inside.
func WithinZone(lat, lon, centerLat, centerLon, radiusMeters float64) bool {
	return DistanceMeters(lat, lon, centerLat, centerLon) <= radiusMeters
}

// WithinSchoolZone reports containment against the default school radius
func WithinSchoolZone(lat, lon, schoolLat, schoolLon float64) bool {
	return WithinZone(lat, lon, schoolLat, schoolLon, DefaultSchoolZoneRadius)
}

// Bearing calculates the initial bearing (forward azimuth) from point 1 to point 2.
// Returns bearing in degrees (0-360), where 0 is North, 90 is East, etc.
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lonDiff := (lon2 - lon1) * math.Pi / 180

	y := math.Sin(lonDiff) * math.Cos(lat2Rad)
	x := math.Cos(lat1Rad)*math.Sin(lat2Rad) - math.Sin(lat1Rad)*math.Cos(lat2Rad)*math.Cos(lonDiff)
	bearing := math.Atan2(y, x)

	bearingDeg := bearing * 180 / math.Pi
	return math.Mod(bearingDeg+360, 360)
}

// SpeedKmh derives speed in km/h from two samples. Returns 0 when the
// elapsed time is non-positive, since no meaningful speed can be computed.
func SpeedKmh(lat1, lon1 float64, t1 int64, lat2, lon2 float64, t2 int64) float64 {
	elapsed := t2 - t1
	if elapsed <= 0 {
		return 0
	}
	hours := float64(elapsed) / 3600.0
	return Distance(lat1, lon1, lat2, lon2) / hours
}

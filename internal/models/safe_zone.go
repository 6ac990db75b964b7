package models

import (
	"strconv"
	"strings"
	"time"
)

// Zone categories
const (
	ZoneCategorySchool = "school"
	ZoneCategoryHome   = "home"
	ZoneCategoryFamily = "family"
	ZoneCategoryOther  = "other"
)

// SafeZone is a named circular geofence owned by one device
type SafeZone struct {
	ID            int64   `json:"id" db:"id"`
	DeviceID      int64   `json:"deviceId" db:"device_id"`
	Name          string  `json:"name" db:"name" binding:"required"`
	Category      string  `json:"category" db:"category"`
	CenterLat     float64 `json:"centerLat" db:"center_lat"`
	CenterLon     float64 `json:"centerLon" db:"center_lon"`
	Radius        float64 `json:"radius" db:"radius"` // meters
	IsActive      bool    `json:"isActive" db:"is_active"`
	NotifyOnEntry bool    `json:"notifyOnEntry" db:"notify_on_entry"`
	NotifyOnExit  bool    `json:"notifyOnExit" db:"notify_on_exit"`

	// Optional time restriction; empty means always in effect
	ScheduleStart string `json:"scheduleStart,omitempty" db:"schedule_start"` // HH:MM
	ScheduleEnd   string `json:"scheduleEnd,omitempty" db:"schedule_end"`     // HH:MM
	ScheduleDays  string `json:"scheduleDays,omitempty" db:"schedule_days"`   // comma-separated weekdays, 0=Sunday

	CreatedAt *string `json:"createdAt,omitempty" db:"created_at"`
}

// InWindow reports whether the zone's schedule covers the given instant.
// A zone without a schedule is always in window.
func (z SafeZone) InWindow(t time.Time) bool {
	if z.ScheduleDays != "" {
		day := int(t.Weekday())
		found := false
		for _, part := range strings.Split(z.ScheduleDays, ",") {
			d, err := strconv.Atoi(strings.TrimSpace(part))
			if err == nil && d == day {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if z.ScheduleStart == "" || z.ScheduleEnd == "" {
		return true
	}

	start, err1 := minuteOfDay(z.ScheduleStart)
	end, err2 := minuteOfDay(z.ScheduleEnd)
	if err1 != nil || err2 != nil {
		return true
	}

	now := t.Hour()*60 + t.Minute()
	if start <= end {
		return now >= start && now <= end
	}
	// Window spans midnight
	return now >= start || now <= end
}

func minuteOfDay(hhmm string) (int, error) {
	parsed, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, err
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// ZoneStatus records whether a device was inside a zone at the last sample
type ZoneStatus struct {
	DeviceID  int64 `json:"deviceId" db:"device_id"`
	ZoneID    int64 `json:"zoneId" db:"zone_id"`
	Inside    bool  `json:"inside" db:"inside"`
	UpdatedAt int64 `json:"updatedAt" db:"updated_at"` // Unix timestamp in seconds
}

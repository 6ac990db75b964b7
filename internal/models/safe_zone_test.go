package models

import (
	"testing"
	"time"
)

func TestSafeZoneInWindow(t *testing.T) {
	// Monday 2026-01-05 10:30 local
	monMorning := time.Date(2026, 1, 5, 10, 30, 0, 0, time.UTC)
	// Saturday 2026-01-10 10:30
	satMorning := time.Date(2026, 1, 10, 10, 30, 0, 0, time.UTC)
	// Monday 23:30
	monNight := time.Date(2026, 1, 5, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		zone SafeZone
		at   time.Time
		want bool
	}{
		{name: "no schedule always in window", zone: SafeZone{}, at: monMorning, want: true},
		{
			name: "school hours on a school day",
			zone: SafeZone{ScheduleStart: "07:00", ScheduleEnd: "17:00", ScheduleDays: "1,2,3,4,5"},
			at:   monMorning,
			want: true,
		},
		{
			name: "school hours on a weekend",
			zone: SafeZone{ScheduleStart: "07:00", ScheduleEnd: "17:00", ScheduleDays: "1,2,3,4,5"},
			at:   satMorning,
			want: false,
		},
		{
			name: "outside the daily window",
			zone: SafeZone{ScheduleStart: "07:00", ScheduleEnd: "17:00"},
			at:   monNight,
			want: false,
		},
		{
			name: "overnight window spanning midnight",
			zone: SafeZone{ScheduleStart: "21:00", ScheduleEnd: "06:00"},
			at:   monNight,
			want: true,
		},
		{
			name: "overnight window, daytime",
			zone: SafeZone{ScheduleStart: "21:00", ScheduleEnd: "06:00"},
			at:   monMorning,
			want: false,
		},
		{
			name: "days only, matching day",
			zone: SafeZone{ScheduleDays: "1"},
			at:   monMorning,
			want: true,
		},
		{
			name: "days only, other day",
			zone: SafeZone{ScheduleDays: "0,6"},
			at:   monMorning,
			want: false,
		},
		{
			name: "malformed times fall open",
			zone: SafeZone{ScheduleStart: "late", ScheduleEnd: "early"},
			at:   monMorning,
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.zone.InWindow(tt.at); got != tt.want {
				t.Errorf("InWindow() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSettingsPatchApply(t *testing.T) {
	s := DefaultSettings(7)

	interval := 60
	threshold := 50.0
	share := false
	patch := SettingsPatch{
		UpdateInterval:      &interval,
		SpeedAlertThreshold: &threshold,
		ShareWithSchool:     &share,
	}
	patch.Apply(&s)

	if s.UpdateInterval != 60 {
		t.Errorf("UpdateInterval = %d, want 60", s.UpdateInterval)
	}
	if s.SpeedAlertThreshold != 50 {
		t.Errorf("SpeedAlertThreshold = %v, want 50", s.SpeedAlertThreshold)
	}
	if s.ShareWithSchool {
		t.Error("ShareWithSchool should be false after patch")
	}
	// Untouched fields keep their defaults
	if s.BatteryAlertThreshold != 20 {
		t.Errorf("BatteryAlertThreshold = %d, want 20", s.BatteryAlertThreshold)
	}
	if s.NightModeStart != "21:00" {
		t.Errorf("NightModeStart = %q, want 21:00", s.NightModeStart)
	}
}

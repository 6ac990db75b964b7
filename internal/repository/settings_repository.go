package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/educafric/tracking-backend-go/internal/models"
)

// SettingsRepository handles database operations for tracking settings
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetByDevice retrieves the settings for a device
func (r *SettingsRepository) GetByDevice(deviceID int64) (*models.TrackingSettings, error) {
	query := `SELECT device_id, update_interval, battery_alert_threshold, speed_alert_threshold,
		night_mode_start, night_mode_end, share_with_school, share_with_family, emergency_mode
		FROM tracking_settings WHERE device_id = ?`

	var s models.TrackingSettings
	err := r.db.QueryRow(query, deviceID).Scan(
		&s.DeviceID, &s.UpdateInterval, &s.BatteryAlertThreshold, &s.SpeedAlertThreshold,
		&s.NightModeStart, &s.NightModeEnd, &s.ShareWithSchool, &s.ShareWithFamily, &s.EmergencyMode,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	return &s, nil
}

// Replace overwrites the settings row for a device wholesale
func (r *SettingsRepository) Replace(s models.TrackingSettings) error {
	res, err := r.db.Exec(`
		UPDATE tracking_settings
		SET update_interval = ?, battery_alert_threshold = ?, speed_alert_threshold = ?,
			night_mode_start = ?, night_mode_end = ?, share_with_school = ?,
			share_with_family = ?, emergency_mode = ?
		WHERE device_id = ?`,
		s.UpdateInterval, s.BatteryAlertThreshold, s.SpeedAlertThreshold,
		s.NightModeStart, s.NightModeEnd, s.ShareWithSchool,
		s.ShareWithFamily, s.EmergencyMode, s.DeviceID,
	)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrSettingsNotFound
	}

	return nil
}

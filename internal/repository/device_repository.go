package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/educafric/tracking-backend-go/internal/database"
	"github.com/educafric/tracking-backend-go/internal/models"
)

// DeviceRepository handles database operations for tracked devices
type DeviceRepository struct {
	db *sql.DB
}

// NewDeviceRepository creates a new device repository
func NewDeviceRepository(db *sql.DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

const deviceColumns = `id, student_id, name, device_type, mac_address, imei, tracker_token,
	battery_level, is_active, last_seen, created_at, updated_at`

// Create inserts a device with its default settings, guardians and emergency
// contacts in one transaction and returns the created record.
func (r *DeviceRepository) Create(req models.RegisterDeviceRequest, trackerToken string) (*models.TrackedDevice, error) {
	var deviceID int64

	err := database.Transaction(r.db, func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			INSERT INTO devices (student_id, name, device_type, mac_address, imei, tracker_token)
			VALUES (?, ?, ?, ?, ?, ?)`,
			req.StudentID, req.Name, req.DeviceType, req.MACAddress, req.IMEI, trackerToken,
		)
		if err != nil {
			return fmt.Errorf("failed to insert device: %w", err)
		}

		deviceID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get device id: %w", err)
		}

		s := models.DefaultSettings(deviceID)
		_, err = tx.Exec(`
			INSERT INTO tracking_settings (device_id, update_interval, battery_alert_threshold,
				speed_alert_threshold, night_mode_start, night_mode_end,
				share_with_school, share_with_family, emergency_mode)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.DeviceID, s.UpdateInterval, s.BatteryAlertThreshold, s.SpeedAlertThreshold,
			s.NightModeStart, s.NightModeEnd, s.ShareWithSchool, s.ShareWithFamily, s.EmergencyMode,
		)
		if err != nil {
			return fmt.Errorf("failed to insert settings: %w", err)
		}

		for _, parentID := range req.ParentIDs {
			if _, err := tx.Exec(`
				INSERT INTO device_guardians (device_id, parent_id) VALUES (?, ?)`,
				deviceID, parentID,
			); err != nil {
				return fmt.Errorf("failed to insert guardian: %w", err)
			}
		}

		for _, contact := range req.EmergencyContacts {
			if _, err := tx.Exec(`
				INSERT INTO emergency_contacts (device_id, name, phone, relationship, priority, can_track)
				VALUES (?, ?, ?, ?, ?, ?)`,
				deviceID, contact.Name, contact.Phone, contact.Relationship, contact.Priority, contact.CanTrack,
			); err != nil {
				return fmt.Errorf("failed to insert emergency contact: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(deviceID)
}

// GetByID retrieves a device by its ID
func (r *DeviceRepository) GetByID(id int64) (*models.TrackedDevice, error) {
	query := fmt.Sprintf(`SELECT %s FROM devices WHERE id = ?`, deviceColumns)

	d, err := scanDevice(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrDeviceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	return d, nil
}

// Update applies a partial update to mutable device state
func (r *DeviceRepository) Update(id int64, patch models.DevicePatch) (*models.TrackedDevice, error) {
	if _, err := r.GetByID(id); err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if _, err := r.db.Exec(`UPDATE devices SET name = ?, updated_at = datetime('now') WHERE id = ?`, *patch.Name, id); err != nil {
			return nil, fmt.Errorf("failed to update device name: %w", err)
		}
	}
	if patch.BatteryLevel != nil {
		if _, err := r.db.Exec(`UPDATE devices SET battery_level = ?, updated_at = datetime('now') WHERE id = ?`, *patch.BatteryLevel, id); err != nil {
			return nil, fmt.Errorf("failed to update battery level: %w", err)
		}
	}
	if patch.IsActive != nil {
		if _, err := r.db.Exec(`UPDATE devices SET is_active = ?, updated_at = datetime('now') WHERE id = ?`, *patch.IsActive, id); err != nil {
			return nil, fmt.Errorf("failed to update active flag: %w", err)
		}
	}

	return r.GetByID(id)
}

// SetActive marks a device as actively tracked or not
func (r *DeviceRepository) SetActive(id int64, active bool) error {
	res, err := r.db.Exec(`UPDATE devices SET is_active = ?, updated_at = datetime('now') WHERE id = ?`, active, id)
	if err != nil {
		return fmt.Errorf("failed to set active flag: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrDeviceNotFound
	}
	return nil
}

// TouchLastSeen records the time of the latest sample from a device
func (r *DeviceRepository) TouchLastSeen(id int64, ts int64) error {
	if _, err := r.db.Exec(`UPDATE devices SET last_seen = ?, updated_at = datetime('now') WHERE id = ?`, ts, id); err != nil {
		return fmt.Errorf("failed to update last seen: %w", err)
	}
	return nil
}

// UpdateBattery records the battery level reported with a sample
func (r *DeviceRepository) UpdateBattery(id int64, level int) error {
	if _, err := r.db.Exec(`UPDATE devices SET battery_level = ?, updated_at = datetime('now') WHERE id = ?`, level, id); err != nil {
		return fmt.Errorf("failed to update battery level: %w", err)
	}
	return nil
}

// ListByStudent retrieves all devices registered for a student
func (r *DeviceRepository) ListByStudent(studentID int64) ([]models.TrackedDevice, error) {
	query := fmt.Sprintf(`SELECT %s FROM devices WHERE student_id = ? ORDER BY id`, deviceColumns)
	return r.queryDevices(query, studentID)
}

// ListByParent retrieves all devices a parent is a guardian of
func (r *DeviceRepository) ListByParent(parentID int64) ([]models.TrackedDevice, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM devices
		WHERE id IN (SELECT device_id FROM device_guardians WHERE parent_id = ?)
		ORDER BY id`, deviceColumns)
	return r.queryDevices(query, parentID)
}

func (r *DeviceRepository) queryDevices(query string, args ...interface{}) ([]models.TrackedDevice, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query devices: %w", err)
	}
	defer rows.Close()

	var devices []models.TrackedDevice
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan device: %w", err)
		}
		devices = append(devices, *d)
	}

	return devices, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDevice(row rowScanner) (*models.TrackedDevice, error) {
	var d models.TrackedDevice
	err := row.Scan(
		&d.ID, &d.StudentID, &d.Name, &d.DeviceType, &d.MACAddress, &d.IMEI,
		&d.TrackerToken, &d.BatteryLevel, &d.IsActive, &d.LastSeen,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/educafric/tracking-backend-go/internal/models"
)

// SafeZoneRepository handles database operations for safe zones
type SafeZoneRepository struct {
	db *sql.DB
}

// NewSafeZoneRepository creates a new safe zone repository
func NewSafeZoneRepository(db *sql.DB) *SafeZoneRepository {
	return &SafeZoneRepository{db: db}
}

const zoneColumns = `id, device_id, name, category, center_lat, center_lon, radius,
	is_active, notify_on_entry, notify_on_exit, schedule_start, schedule_end, schedule_days, created_at`

// Create inserts a safe zone and returns the created record
func (r *SafeZoneRepository) Create(z models.SafeZone) (*models.SafeZone, error) {
	res, err := r.db.Exec(`
		INSERT INTO safe_zones (device_id, name, category, center_lat, center_lon, radius,
			is_active, notify_on_entry, notify_on_exit, schedule_start, schedule_end, schedule_days)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		z.DeviceID, z.Name, z.Category, z.CenterLat, z.CenterLon, z.Radius,
		z.IsActive, z.NotifyOnEntry, z.NotifyOnExit,
		nullableString(z.ScheduleStart), nullableString(z.ScheduleEnd), nullableString(z.ScheduleDays),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert safe zone: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get safe zone id: %w", err)
	}

	return r.GetByID(id)
}

// GetByID retrieves a safe zone by its ID
func (r *SafeZoneRepository) GetByID(id int64) (*models.SafeZone, error) {
	query := fmt.Sprintf(`SELECT %s FROM safe_zones WHERE id = ?`, zoneColumns)

	z, err := scanZone(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrZoneNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get safe zone: %w", err)
	}

	return z, nil
}

// ListByDevice retrieves the zones owned by a device, optionally only active ones
func (r *SafeZoneRepository) ListByDevice(deviceID int64, activeOnly bool) ([]models.SafeZone, error) {
	query := fmt.Sprintf(`SELECT %s FROM safe_zones WHERE device_id = ?`, zoneColumns)
	if activeOnly {
		query += ` AND is_active = 1`
	}
	query += ` ORDER BY id`

	rows, err := r.db.Query(query, deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query safe zones: %w", err)
	}
	defer rows.Close()

	var zones []models.SafeZone
	for rows.Next() {
		z, err := scanZone(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan safe zone: %w", err)
		}
		zones = append(zones, *z)
	}

	return zones, rows.Err()
}

func scanZone(row rowScanner) (*models.SafeZone, error) {
	var z models.SafeZone
	var start, end, days sql.NullString
	err := row.Scan(
		&z.ID, &z.DeviceID, &z.Name, &z.Category, &z.CenterLat, &z.CenterLon, &z.Radius,
		&z.IsActive, &z.NotifyOnEntry, &z.NotifyOnExit, &start, &end, &days, &z.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	z.ScheduleStart = start.String
	z.ScheduleEnd = end.String
	z.ScheduleDays = days.String
	return &z, nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

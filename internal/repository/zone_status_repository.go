package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/educafric/tracking-backend-go/internal/models"
)

// ZoneStatusRepository owns the per-(device, zone) membership state used to
// detect entry/exit transitions between samples
type ZoneStatusRepository struct {
	db *sql.DB
}

// NewZoneStatusRepository creates a new zone status repository
func NewZoneStatusRepository(db *sql.DB) *ZoneStatusRepository {
	return &ZoneStatusRepository{db: db}
}

// Get returns the recorded membership for a (device, zone) pair. The known
// flag is false when no sample has been evaluated against the zone yet.
func (r *ZoneStatusRepository) Get(deviceID, zoneID int64) (inside bool, known bool, err error) {
	err = r.db.QueryRow(
		`SELECT inside FROM zone_status WHERE device_id = ? AND zone_id = ?`,
		deviceID, zoneID,
	).Scan(&inside)
	if errors.Is(err, sql.ErrNoRows) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("failed to get zone status: %w", err)
	}

	return inside, true, nil
}

// Set records the membership for a (device, zone) pair
func (r *ZoneStatusRepository) Set(deviceID, zoneID int64, inside bool, ts int64) error {
	_, err := r.db.Exec(`
		INSERT INTO zone_status (device_id, zone_id, inside, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(device_id, zone_id) DO UPDATE SET inside = excluded.inside, updated_at = excluded.updated_at`,
		deviceID, zoneID, inside, ts,
	)
	if err != nil {
		return fmt.Errorf("failed to set zone status: %w", err)
	}
	return nil
}

// GetStatus returns the full status record for a (device, zone) pair
func (r *ZoneStatusRepository) GetStatus(deviceID, zoneID int64) (*models.ZoneStatus, error) {
	var st models.ZoneStatus
	err := r.db.QueryRow(
		`SELECT device_id, zone_id, inside, updated_at FROM zone_status WHERE device_id = ? AND zone_id = ?`,
		deviceID, zoneID,
	).Scan(&st.DeviceID, &st.ZoneID, &st.Inside, &st.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrZoneNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get zone status: %w", err)
	}

	return &st, nil
}

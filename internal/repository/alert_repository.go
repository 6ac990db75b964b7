package repository

import (
	"database/sql"
	"fmt"

	"github.com/educafric/tracking-backend-go/internal/models"
)

// AlertRepository handles database operations for location alerts
type AlertRepository struct {
	db *sql.DB
}

// NewAlertRepository creates a new alert repository
func NewAlertRepository(db *sql.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// Insert persists an alert
func (r *AlertRepository) Insert(a models.LocationAlert) error {
	_, err := r.db.Exec(`
		INSERT INTO alerts (id, device_id, type, severity, message, latitude, longitude, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.DeviceID, a.Type, a.Severity, a.Message, a.Latitude, a.Longitude, a.IsRead, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert alert: %w", err)
	}
	return nil
}

// ListByDevice retrieves the most recent alerts for a device
func (r *AlertRepository) ListByDevice(deviceID int64, limit int) ([]models.LocationAlert, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}

	rows, err := r.db.Query(`
		SELECT id, device_id, type, severity, message, latitude, longitude, is_read, created_at
		FROM alerts WHERE device_id = ? ORDER BY created_at DESC LIMIT ?`,
		deviceID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	var alerts []models.LocationAlert
	for rows.Next() {
		var a models.LocationAlert
		var lat, lon sql.NullFloat64
		if err := rows.Scan(&a.ID, &a.DeviceID, &a.Type, &a.Severity, &a.Message, &lat, &lon, &a.IsRead, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		if lat.Valid {
			a.Latitude = &lat.Float64
		}
		if lon.Valid {
			a.Longitude = &lon.Float64
		}
		alerts = append(alerts, a)
	}

	return alerts, rows.Err()
}

// MarkRead flips the single mutable field on an alert
func (r *AlertRepository) MarkRead(id string) error {
	res, err := r.db.Exec(`UPDATE alerts SET is_read = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to mark alert read: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrAlertNotFound
	}
	return nil
}

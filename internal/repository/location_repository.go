package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/educafric/tracking-backend-go/internal/models"
)

// LocationRepository handles database operations for location samples
type LocationRepository struct {
	db *sql.DB
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *sql.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// Insert persists a location sample
func (r *LocationRepository) Insert(s models.LocationSample) (*models.LocationSample, error) {
	res, err := r.db.Exec(`
		INSERT INTO locations (device_id, latitude, longitude, accuracy, recorded_at, address, city, country)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.DeviceID, s.Latitude, s.Longitude, s.Accuracy, s.RecordedAt,
		nullableString(s.Address), nullableString(s.City), nullableString(s.Country),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert location: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get location id: %w", err)
	}
	s.ID = id

	return &s, nil
}

// Latest retrieves the most recent sample for a device
func (r *LocationRepository) Latest(deviceID int64) (*models.LocationSample, error) {
	query := `SELECT id, device_id, latitude, longitude, accuracy, recorded_at, address, city, country
		FROM locations WHERE device_id = ? ORDER BY recorded_at DESC, id DESC LIMIT 1`

	var s models.LocationSample
	var address, city, country sql.NullString
	err := r.db.QueryRow(query, deviceID).Scan(
		&s.ID, &s.DeviceID, &s.Latitude, &s.Longitude, &s.Accuracy, &s.RecordedAt,
		&address, &city, &country,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNoLocation
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest location: %w", err)
	}

	s.Address = address.String
	s.City = city.String
	s.Country = country.String
	return &s, nil
}

package repository

import (
	"database/sql"
	"fmt"

	"github.com/educafric/tracking-backend-go/internal/models"
)

// ContactRepository handles database operations for emergency contacts
type ContactRepository struct {
	db *sql.DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create inserts an emergency contact
func (r *ContactRepository) Create(c models.EmergencyContact) (*models.EmergencyContact, error) {
	res, err := r.db.Exec(`
		INSERT INTO emergency_contacts (device_id, name, phone, relationship, priority, can_track)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.DeviceID, c.Name, c.Phone, c.Relationship, c.Priority, c.CanTrack,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert emergency contact: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get contact id: %w", err)
	}
	c.ID = id

	return &c, nil
}

// ListByDevice retrieves a device's emergency contacts ordered by priority
func (r *ContactRepository) ListByDevice(deviceID int64) ([]models.EmergencyContact, error) {
	rows, err := r.db.Query(`
		SELECT id, device_id, name, phone, relationship, priority, can_track
		FROM emergency_contacts WHERE device_id = ? ORDER BY priority, id`,
		deviceID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query emergency contacts: %w", err)
	}
	defer rows.Close()

	var contacts []models.EmergencyContact
	for rows.Next() {
		var c models.EmergencyContact
		var relationship sql.NullString
		if err := rows.Scan(&c.ID, &c.DeviceID, &c.Name, &c.Phone, &relationship, &c.Priority, &c.CanTrack); err != nil {
			return nil, fmt.Errorf("failed to scan emergency contact: %w", err)
		}
		c.Relationship = relationship.String
		contacts = append(contacts, c)
	}

	return contacts, rows.Err()
}

package database

import (
	"database/sql"
	"fmt"
	"log"
	"sort"
)

// Migration represents a schema migration applied at startup
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered list of schema changes. The schema ships with the
// binary, so migrations are compiled in rather than loaded from disk.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_devices",
		SQL: `
			CREATE TABLE IF NOT EXISTS devices (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				student_id INTEGER NOT NULL,
				name TEXT NOT NULL,
				device_type TEXT NOT NULL,
				mac_address TEXT,
				imei TEXT,
				tracker_token TEXT NOT NULL UNIQUE,
				battery_level INTEGER NOT NULL DEFAULT 100,
				is_active INTEGER NOT NULL DEFAULT 0,
				last_seen INTEGER,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_devices_student ON devices(student_id);

			CREATE TABLE IF NOT EXISTS device_guardians (
				device_id INTEGER NOT NULL REFERENCES devices(id) ON DELETE CASCADE,
				parent_id INTEGER NOT NULL,
				relationship TEXT,
				PRIMARY KEY (device_id, parent_id)
			);
			CREATE INDEX IF NOT EXISTS idx_guardians_parent ON device_guardians(parent_id);
		`,
	},
	{
		Version: 2,
		Name:    "create_tracking_settings",
		SQL: `
			CREATE TABLE IF NOT EXISTS tracking_settings (
				device_id INTEGER PRIMARY KEY REFERENCES devices(id) ON DELETE CASCADE,
				update_interval INTEGER NOT NULL DEFAULT 300,
				battery_alert_threshold INTEGER NOT NULL DEFAULT 20,
				speed_alert_threshold REAL NOT NULL DEFAULT 80,
				night_mode_start TEXT NOT NULL DEFAULT '21:00',
				night_mode_end TEXT NOT NULL DEFAULT '06:00',
				share_with_school INTEGER NOT NULL DEFAULT 1,
				share_with_family INTEGER NOT NULL DEFAULT 1,
				emergency_mode INTEGER NOT NULL DEFAULT 0
			);
		`,
	},
	{
		Version: 3,
		Name:    "create_safe_zones",
		SQL: `
			CREATE TABLE IF NOT EXISTS safe_zones (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				device_id INTEGER NOT NULL REFERENCES devices(id) ON DELETE CASCADE,
				name TEXT NOT NULL,
				category TEXT NOT NULL DEFAULT 'other',
				center_lat REAL NOT NULL,
				center_lon REAL NOT NULL,
				radius REAL NOT NULL,
				is_active INTEGER NOT NULL DEFAULT 1,
				notify_on_entry INTEGER NOT NULL DEFAULT 1,
				notify_on_exit INTEGER NOT NULL DEFAULT 1,
				schedule_start TEXT,
				schedule_end TEXT,
				schedule_days TEXT,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_zones_device ON safe_zones(device_id);

			CREATE TABLE IF NOT EXISTS zone_status (
				device_id INTEGER NOT NULL REFERENCES devices(id) ON DELETE CASCADE,
				zone_id INTEGER NOT NULL REFERENCES safe_zones(id) ON DELETE CASCADE,
				inside INTEGER NOT NULL DEFAULT 0,
				updated_at INTEGER NOT NULL,
				PRIMARY KEY (device_id, zone_id)
			);
		`,
	},
	{
		Version: 4,
		Name:    "create_emergency_contacts",
		SQL: `
			CREATE TABLE IF NOT EXISTS emergency_contacts (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				device_id INTEGER NOT NULL REFERENCES devices(id) ON DELETE CASCADE,
				name TEXT NOT NULL,
				phone TEXT NOT NULL,
				relationship TEXT,
				priority INTEGER NOT NULL DEFAULT 1,
				can_track INTEGER NOT NULL DEFAULT 0
			);
			CREATE INDEX IF NOT EXISTS idx_contacts_device ON emergency_contacts(device_id);
		`,
	},
	{
		Version: 5,
		Name:    "create_locations",
		SQL: `
			CREATE TABLE IF NOT EXISTS locations (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				device_id INTEGER NOT NULL REFERENCES devices(id) ON DELETE CASCADE,
				latitude REAL NOT NULL,
				longitude REAL NOT NULL,
				accuracy REAL NOT NULL DEFAULT 0,
				recorded_at INTEGER NOT NULL,
				address TEXT,
				city TEXT,
				country TEXT
			);
			CREATE INDEX IF NOT EXISTS idx_locations_device_time ON locations(device_id, recorded_at DESC);
		`,
	},
	{
		Version: 6,
		Name:    "create_alerts",
		SQL: `
			CREATE TABLE IF NOT EXISTS alerts (
				id TEXT PRIMARY KEY,
				device_id INTEGER NOT NULL REFERENCES devices(id) ON DELETE CASCADE,
				type TEXT NOT NULL,
				severity TEXT NOT NULL,
				message TEXT NOT NULL,
				latitude REAL,
				longitude REAL,
				is_read INTEGER NOT NULL DEFAULT 0,
				created_at INTEGER NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_alerts_device_time ON alerts(device_id, created_at DESC);
		`,
	},
}

// Migrate applies all pending migrations in version order
func Migrate(db *sql.DB) error {
	if err := initMigrationsTable(db); err != nil {
		return err
	}

	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}

	pending := make([]Migration, 0, len(migrations))
	for _, m := range migrations {
		if !applied[m.Version] {
			pending = append(pending, m)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Version < pending[j].Version })

	for _, m := range pending {
		if err := applyMigration(db, m); err != nil {
			return err
		}
		log.Printf("[Database] Applied migration %d_%s", m.Version, m.Name)
	}

	return nil
}

func initMigrationsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

func appliedMigrations(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}

	return applied, rows.Err()
}

func applyMigration(db *sql.DB, m Migration) error {
	return Transaction(db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(m.SQL); err != nil {
			return fmt.Errorf("migration %d_%s failed: %w", m.Version, m.Name, err)
		}
		if _, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
		return nil
	})
}

package store

import (
	"database/sql"
	"fmt"
	"log"
	"time"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "Initial schema",
		SQL: `
CREATE TABLE IF NOT EXISTS stations (
    station_id TEXT PRIMARY KEY,
    name TEXT,
    source TEXT NOT NULL,
    latitude REAL,
    longitude REAL,
    elevation REAL,
    is_primary BOOLEAN DEFAULT FALSE,
    active BOOLEAN DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS readings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    station_id TEXT NOT NULL,
    observed_at DATETIME NOT NULL,
    pressure REAL,
    temperature REAL,
    wind_speed REAL,
    wind_dir REAL,
    quality_flags TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(station_id, observed_at)
);

CREATE INDEX IF NOT EXISTS idx_readings_station_time ON readings(station_id, observed_at);
`,
	},
	{
		Version:     2,
		Description: "Add snapshots table for forecast history",
		SQL: `
CREATE TABLE IF NOT EXISTS snapshots (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    station_id TEXT NOT NULL,
    computed_at DATETIME NOT NULL,
    p0 REAL NOT NULL,
    pressure_change_3h REAL,
    trend INTEGER NOT NULL,
    zambretti_type INTEGER NOT NULL,
    zambretti_letter TEXT NOT NULL,
    neg_zam_number INTEGER NOT NULL,
    is_night BOOLEAN NOT NULL DEFAULT FALSE,
    payload_json TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_computed ON snapshots(computed_at);
`,
	},
	{
		Version:     3,
		Description: "Add source payloads and refresh runs",
		SQL: `
CREATE TABLE IF NOT EXISTS source_payloads (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    source TEXT NOT NULL,
    first_seen_at DATETIME NOT NULL,
    size_bytes INTEGER NOT NULL,
    gzip_body BLOB NOT NULL,
    sha256 TEXT NOT NULL UNIQUE
);

CREATE INDEX IF NOT EXISTS idx_source_payloads_seen ON source_payloads(first_seen_at);

CREATE TABLE IF NOT EXISTS refresh_runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    station_id TEXT NOT NULL,
    source TEXT NOT NULL,
    endpoint TEXT NOT NULL,
    started_at DATETIME NOT NULL,
    finished_at DATETIME,
    payload_id INTEGER REFERENCES source_payloads(id) ON DELETE SET NULL,
    pressure REAL,
    reading_stored BOOLEAN NOT NULL DEFAULT FALSE,
    snapshot_id INTEGER REFERENCES snapshots(id) ON DELETE SET NULL,
    failure TEXT,
    error TEXT
);

CREATE INDEX IF NOT EXISTS idx_refresh_runs_started ON refresh_runs(started_at);
CREATE INDEX IF NOT EXISTS idx_refresh_runs_failure ON refresh_runs(failure);
`,
	},
}

func (s *Store) Migrate() error {
	if err := s.ensureMigrationsTable(); err != nil {
		return fmt.Errorf("ensure migrations table: %w", err)
	}

	applied, err := s.getAppliedMigrations()
	if err != nil {
		return fmt.Errorf("get applied migrations: %w", err)
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}

		log.Printf("migrations: applying %d - %s", m.Version, m.Description)

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("begin tx for migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("execute migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_migrations (version, description, applied_at) VALUES (?, ?, ?)",
			m.Version, m.Description, time.Now().UTC(),
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

func (s *Store) ensureMigrationsTable() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			description TEXT,
			applied_at DATETIME
		)
	`)
	return err
}

func (s *Store) getAppliedMigrations() (map[int]bool, error) {
	rows, err := s.db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

// MigrationVersion returns the highest applied schema version, or 0.
func (s *Store) MigrationVersion() (int, error) {
	var version sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, err
	}
	if !version.Valid {
		return 0, nil
	}
	return int(version.Int64), nil
}

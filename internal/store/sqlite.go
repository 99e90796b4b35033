package store

import (
	"database/sql"
	"time"

	"github.com/lox/barocast/internal/models"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// UpsertStation inserts or updates a station. Marking a station primary
// clears the flag on every other station.
func (s *Store) UpsertStation(st models.Station) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if st.IsPrimary {
		if _, err := tx.Exec(`UPDATE stations SET is_primary = FALSE WHERE station_id != ?`, st.StationID); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`
		INSERT INTO stations (station_id, name, source, latitude, longitude, elevation, is_primary, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(station_id) DO UPDATE SET
			name = excluded.name,
			source = excluded.source,
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			elevation = excluded.elevation,
			is_primary = excluded.is_primary,
			active = excluded.active
	`, st.StationID, st.Name, st.Source, st.Latitude, st.Longitude, st.Elevation, st.IsPrimary, st.Active); err != nil {
		return err
	}
	return tx.Commit()
}

const stationColumns = `station_id, name, source, latitude, longitude, elevation, is_primary, active`

func scanStation(sc interface{ Scan(...any) error }) (models.Station, error) {
	var st models.Station
	var name sql.NullString
	err := sc.Scan(&st.StationID, &name, &st.Source, &st.Latitude, &st.Longitude, &st.Elevation, &st.IsPrimary, &st.Active)
	st.Name = name.String
	return st, err
}

// GetPrimaryStation returns the primary station, or nil if none is marked.
func (s *Store) GetPrimaryStation() (*models.Station, error) {
	row := s.db.QueryRow(`SELECT ` + stationColumns + ` FROM stations WHERE is_primary = TRUE LIMIT 1`)
	st, err := scanStation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// InsertReading stores a reading. A second reading for the same station and
// observation time is ignored.
func (s *Store) InsertReading(r models.Reading) (bool, error) {
	result, err := s.db.Exec(`
		INSERT INTO readings (station_id, observed_at, pressure, temperature, wind_speed, wind_dir, quality_flags)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(station_id, observed_at) DO NOTHING
	`, r.StationID, r.ObservedAt.UTC(), r.Pressure, r.Temperature, r.WindSpeed, r.WindDirection, r.QualityFlags)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

const readingColumns = `id, station_id, observed_at, pressure, temperature, wind_speed, wind_dir, quality_flags, created_at`

func scanReading(sc interface{ Scan(...any) error }) (models.Reading, error) {
	var r models.Reading
	var flags sql.NullString
	err := sc.Scan(&r.ID, &r.StationID, &r.ObservedAt, &r.Pressure, &r.Temperature, &r.WindSpeed, &r.WindDirection, &flags, &r.CreatedAt)
	r.QualityFlags = flags.String
	return r, err
}

func (s *Store) GetLatestReading(stationID string) (*models.Reading, error) {
	row := s.db.QueryRow(`
		SELECT `+readingColumns+`
		FROM readings
		WHERE station_id = ?
		ORDER BY observed_at DESC
		LIMIT 1
	`, stationID)

	r, err := scanReading(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) GetReadings(stationID string, start, end time.Time) ([]models.Reading, error) {
	rows, err := s.db.Query(`
		SELECT `+readingColumns+`
		FROM readings
		WHERE station_id = ? AND observed_at >= ? AND observed_at <= ?
		ORDER BY observed_at ASC
	`, stationID, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readings []models.Reading
	for rows.Next() {
		r, err := scanReading(rows)
		if err != nil {
			return nil, err
		}
		readings = append(readings, r)
	}
	return readings, rows.Err()
}

// PruneReadings deletes readings observed before cutoff and returns the count.
func (s *Store) PruneReadings(cutoff time.Time) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM readings WHERE observed_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

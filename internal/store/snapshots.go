package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lox/barocast/internal/forecast"
)

// SnapshotRecord is a stored forecast snapshot. The full payload is kept as
// JSON; the scalar columns exist for querying history.
type SnapshotRecord struct {
	ID               int64
	StationID        string
	ComputedAt       time.Time
	P0               float64
	PressureChange3h float64
	Trend            forecast.Trend
	ZambrettiType    int
	ZambrettiLetter  string
	NegZamNumber     int
	IsNight          bool
	PayloadJSON      string
}

func (s *Store) InsertSnapshot(stationID string, snap *forecast.Snapshot) (int64, error) {
	payload, err := json.Marshal(snap)
	if err != nil {
		return 0, fmt.Errorf("marshal snapshot: %w", err)
	}

	result, err := s.db.Exec(`
		INSERT INTO snapshots (station_id, computed_at, p0, pressure_change_3h, trend,
			zambretti_type, zambretti_letter, neg_zam_number, is_night, payload_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, stationID, snap.ComputedAt.UTC(), snap.Pressure, snap.PressureChange, int(snap.Trend),
		snap.Attributes.Zambretti.Code, snap.Attributes.Zambretti.Letter,
		snap.Attributes.NegZam.Code, snap.IsNight, string(payload))
	if err != nil {
		return 0, fmt.Errorf("insert snapshot: %w", err)
	}
	return result.LastInsertId()
}

const snapshotColumns = `id, station_id, computed_at, p0, pressure_change_3h, trend,
	zambretti_type, zambretti_letter, neg_zam_number, is_night, payload_json`

func scanSnapshot(sc interface{ Scan(...any) error }) (SnapshotRecord, error) {
	var rec SnapshotRecord
	var change sql.NullFloat64
	var trend int
	err := sc.Scan(&rec.ID, &rec.StationID, &rec.ComputedAt, &rec.P0, &change, &trend,
		&rec.ZambrettiType, &rec.ZambrettiLetter, &rec.NegZamNumber, &rec.IsNight, &rec.PayloadJSON)
	rec.PressureChange3h = change.Float64
	rec.Trend = forecast.Trend(trend)
	return rec, err
}

// GetLatestSnapshot returns the most recent snapshot, or nil if none exist.
func (s *Store) GetLatestSnapshot() (*SnapshotRecord, error) {
	row := s.db.QueryRow(`SELECT ` + snapshotColumns + ` FROM snapshots ORDER BY computed_at DESC, id DESC LIMIT 1`)
	rec, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetSnapshots returns snapshots computed in [start, end], oldest first.
func (s *Store) GetSnapshots(start, end time.Time) ([]SnapshotRecord, error) {
	rows, err := s.db.Query(`SELECT `+snapshotColumns+` FROM snapshots
		WHERE computed_at >= ? AND computed_at <= ?
		ORDER BY computed_at ASC, id ASC`, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []SnapshotRecord
	for rows.Next() {
		rec, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *Store) PruneSnapshots(cutoff time.Time) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM snapshots WHERE computed_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

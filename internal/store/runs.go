package store

import (
	"database/sql"
	"time"
)

// Failure classifies why a refresh run did not produce a snapshot. The empty
// value means the run succeeded.
type Failure string

const (
	FailureFetch             Failure = "fetch"
	FailureSourceUnavailable Failure = "source_unavailable"
	FailureNoReading         Failure = "no_reading"
	FailureMissingPressure   Failure = "missing_pressure"
	FailureInvalidPressure   Failure = "invalid_pressure"
	FailureEngine            Failure = "engine"
)

// RefreshRun is the audit row for one forecast refresh: what the source
// returned, the pressure it yielded, and the snapshot it produced or the
// reason it produced none.
type RefreshRun struct {
	ID            int64
	StationID     string
	Source        string
	Endpoint      string
	StartedAt     time.Time
	FinishedAt    sql.NullTime
	PayloadID     sql.NullInt64
	Pressure      sql.NullFloat64
	ReadingStored bool
	SnapshotID    sql.NullInt64
	Failure       Failure
	Error         string
}

// OK reports whether the run finished with a snapshot.
func (r *RefreshRun) OK() bool {
	return r.FinishedAt.Valid && r.Failure == "" && r.SnapshotID.Valid
}

// Fail records why the run stopped.
func (r *RefreshRun) Fail(class Failure, err error) {
	r.Failure = class
	if err != nil {
		r.Error = err.Error()
	}
}

func (s *Store) BeginRun(stationID, source, endpoint string, at time.Time) (*RefreshRun, error) {
	run := &RefreshRun{
		StationID: stationID,
		Source:    source,
		Endpoint:  endpoint,
		StartedAt: at.UTC(),
	}
	result, err := s.db.Exec(`
		INSERT INTO refresh_runs (station_id, source, endpoint, started_at)
		VALUES (?, ?, ?, ?)
	`, run.StationID, run.Source, run.Endpoint, run.StartedAt)
	if err != nil {
		return nil, err
	}
	run.ID, err = result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return run, nil
}

// FinishRun writes the run's outcome. A nil run is ignored so callers can
// carry on when BeginRun failed.
func (s *Store) FinishRun(run *RefreshRun, at time.Time) error {
	if run == nil {
		return nil
	}
	run.FinishedAt = sql.NullTime{Time: at.UTC(), Valid: true}

	var failure, msg sql.NullString
	if run.Failure != "" {
		failure = sql.NullString{String: string(run.Failure), Valid: true}
	}
	if run.Error != "" {
		msg = sql.NullString{String: run.Error, Valid: true}
	}

	_, err := s.db.Exec(`
		UPDATE refresh_runs SET
			finished_at = ?, payload_id = ?, pressure = ?, reading_stored = ?,
			snapshot_id = ?, failure = ?, error = ?
		WHERE id = ?
	`, run.FinishedAt, run.PayloadID, run.Pressure, run.ReadingStored,
		run.SnapshotID, failure, msg, run.ID)
	return err
}

const runColumns = `id, station_id, source, endpoint, started_at, finished_at,
	payload_id, pressure, reading_stored, snapshot_id, failure, error`

func scanRun(sc interface{ Scan(...any) error }) (RefreshRun, error) {
	var r RefreshRun
	var failure, msg sql.NullString
	err := sc.Scan(&r.ID, &r.StationID, &r.Source, &r.Endpoint, &r.StartedAt, &r.FinishedAt,
		&r.PayloadID, &r.Pressure, &r.ReadingStored, &r.SnapshotID, &failure, &msg)
	r.Failure = Failure(failure.String)
	r.Error = msg.String
	return r, err
}

// GetRecentRuns returns up to limit finished runs, newest first. With
// failedOnly set only runs that recorded a failure are returned.
func (s *Store) GetRecentRuns(limit int, failedOnly bool) ([]RefreshRun, error) {
	query := `SELECT ` + runColumns + ` FROM refresh_runs WHERE finished_at IS NOT NULL`
	if failedOnly {
		query += ` AND failure IS NOT NULL`
	}
	query += ` ORDER BY started_at DESC, id DESC LIMIT ?`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RefreshRun
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunDay totals a day of refresh runs for one source.
type RunDay struct {
	Date      string          `json:"date"`
	Source    string          `json:"source"`
	Runs      int             `json:"runs"`
	Snapshots int             `json:"snapshots"`
	Readings  int             `json:"readings"`
	Failures  map[Failure]int `json:"failures"`
}

// GetRunDays summarises finished runs started at or after since, newest day
// first.
func (s *Store) GetRunDays(since time.Time) ([]RunDay, error) {
	rows, err := s.db.Query(`
		SELECT
			DATE(SUBSTR(started_at, 1, 19)) AS day,
			source,
			COALESCE(failure, ''),
			COUNT(*),
			SUM(CASE WHEN snapshot_id IS NOT NULL THEN 1 ELSE 0 END),
			SUM(CASE WHEN reading_stored THEN 1 ELSE 0 END)
		FROM refresh_runs
		WHERE finished_at IS NOT NULL AND SUBSTR(started_at, 1, 19) >= ?
		GROUP BY day, source, failure
		ORDER BY day DESC, source
	`, since.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []RunDay
	for rows.Next() {
		var day, source, failure string
		var runs, snapshots, readings int
		if err := rows.Scan(&day, &source, &failure, &runs, &snapshots, &readings); err != nil {
			return nil, err
		}
		if n := len(days); n == 0 || days[n-1].Date != day || days[n-1].Source != source {
			days = append(days, RunDay{Date: day, Source: source, Failures: map[Failure]int{}})
		}
		d := &days[len(days)-1]
		d.Runs += runs
		d.Snapshots += snapshots
		d.Readings += readings
		if failure != "" {
			d.Failures[Failure(failure)] += runs
		}
	}
	return days, rows.Err()
}

func (s *Store) PruneRuns(cutoff time.Time) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM refresh_runs WHERE started_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

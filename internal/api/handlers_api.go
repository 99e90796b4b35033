package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/lox/barocast/internal/models"
	"github.com/lox/barocast/internal/store"
)

const (
	defaultReadingHours = 24
	maxReadingHours     = 24 * 30
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("api: write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleAPIForecast(w http.ResponseWriter, r *http.Request) {
	snap := s.provider.Latest()
	if snap == nil {
		writeError(w, http.StatusServiceUnavailable, "no forecast yet")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleAPIZambretti(w http.ResponseWriter, r *http.Request) {
	snap := s.provider.Latest()
	if snap == nil {
		writeError(w, http.StatusServiceUnavailable, "no forecast yet")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"state":  snap.ZambrettiState,
		"detail": snap.Zambretti,
	})
}

func (s *Server) handleAPINegZam(w http.ResponseWriter, r *http.Request) {
	snap := s.provider.Latest()
	if snap == nil {
		writeError(w, http.StatusServiceUnavailable, "no forecast yet")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"state":  snap.NegZamState,
		"detail": snap.NegZam,
	})
}

// ReadingView is a stored reading with absent values as null.
type ReadingView struct {
	ObservedAt    time.Time `json:"observed_at"`
	Pressure      *float64  `json:"pressure"`
	Temperature   *float64  `json:"temperature"`
	WindSpeed     *float64  `json:"wind_speed"`
	WindDirection *float64  `json:"wind_direction"`
	QualityFlags  []string  `json:"quality_flags,omitempty"`
}

func newReadingView(r models.Reading) ReadingView {
	v := ReadingView{
		ObservedAt:    r.ObservedAt,
		Pressure:      nullable(r.Pressure.Float64, r.Pressure.Valid),
		Temperature:   nullable(r.Temperature.Float64, r.Temperature.Valid),
		WindSpeed:     nullable(r.WindSpeed.Float64, r.WindSpeed.Valid),
		WindDirection: nullable(r.WindDirection.Float64, r.WindDirection.Valid),
	}
	if r.QualityFlags != "" {
		if err := json.Unmarshal([]byte(r.QualityFlags), &v.QualityFlags); err != nil {
			log.Printf("api: reading %s quality flags: %v", r.ObservedAt.Format(time.RFC3339), err)
		}
	}
	return v
}

func nullable(v float64, valid bool) *float64 {
	if !valid {
		return nil
	}
	return &v
}

func parseHours(r *http.Request) int {
	hours, err := strconv.Atoi(r.URL.Query().Get("hours"))
	if err != nil || hours <= 0 {
		return defaultReadingHours
	}
	return min(hours, maxReadingHours)
}

func (s *Server) handleAPIReadings(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "no database")
		return
	}

	stationID := s.provider.Station().StationID
	end := s.now()
	start := end.Add(-time.Duration(parseHours(r)) * time.Hour)

	readings, err := s.store.GetReadings(stationID, start, end)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	views := make([]ReadingView, 0, len(readings))
	for _, rd := range readings {
		views = append(views, newReadingView(rd))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"station_id": stationID,
		"readings":   views,
	})
}

// RunView is one refresh run as served by /api/ingest.
type RunView struct {
	ID            int64         `json:"id"`
	StartedAt     time.Time     `json:"started_at"`
	Source        string        `json:"source"`
	Endpoint      string        `json:"endpoint"`
	Pressure      *float64      `json:"pressure"`
	ReadingStored bool          `json:"reading_stored"`
	SnapshotID    *int64        `json:"snapshot_id"`
	Failure       store.Failure `json:"failure,omitempty"`
	Error         string        `json:"error,omitempty"`
}

func newRunView(run store.RefreshRun) RunView {
	v := RunView{
		ID:            run.ID,
		StartedAt:     run.StartedAt,
		Source:        run.Source,
		Endpoint:      run.Endpoint,
		Pressure:      nullable(run.Pressure.Float64, run.Pressure.Valid),
		ReadingStored: run.ReadingStored,
		Failure:       run.Failure,
		Error:         run.Error,
	}
	if run.SnapshotID.Valid {
		id := run.SnapshotID.Int64
		v.SnapshotID = &id
	}
	return v
}

type IngestView struct {
	Days     []store.RunDay       `json:"days"`
	Runs     []RunView            `json:"runs"`
	Failures []RunView            `json:"failures"`
	Payloads []store.PayloadUsage `json:"payloads"`
}

func (s *Server) handleAPIIngest(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "no database")
		return
	}

	days, err := s.store.GetRunDays(time.Now().AddDate(0, 0, -7))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	runs, err := s.store.GetRecentRuns(20, false)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	failures, err := s.store.GetRecentRuns(10, true)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	payloads, err := s.store.GetPayloadUsage()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	view := IngestView{
		Days:     days,
		Runs:     make([]RunView, 0, len(runs)),
		Failures: make([]RunView, 0, len(failures)),
		Payloads: payloads,
	}
	if view.Days == nil {
		view.Days = []store.RunDay{}
	}
	if view.Payloads == nil {
		view.Payloads = []store.PayloadUsage{}
	}
	for _, run := range runs {
		view.Runs = append(view.Runs, newRunView(run))
	}
	for _, run := range failures {
		view.Failures = append(view.Failures, newRunView(run))
	}
	writeJSON(w, http.StatusOK, view)
}

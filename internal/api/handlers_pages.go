package api

import (
	"log"
	"net/http"
	"time"

	"github.com/lox/barocast/internal/card"
	"github.com/lox/barocast/internal/forecast"
)

type IndexData struct {
	Station   string
	Snapshot  *forecast.Snapshot
	Palette   forecast.Palette
	LastError string
	Interval  time.Duration
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	status := s.provider.Status()
	data := IndexData{
		Station:  s.provider.Station().Name,
		Snapshot: status.Snapshot,
		Palette:  forecast.DefaultPalette,
		Interval: s.provider.Interval(),
	}
	if status.Snapshot != nil {
		data.Palette = forecast.GetPalette(status.Snapshot.Zambretti.Forecast[0], status.Snapshot.IsNight)
	}
	if status.LastError != nil {
		data.LastError = status.LastError.Error()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		log.Printf("template error: %v", err)
	}
}

type HealthStatus struct {
	Status             string    `json:"status"`
	StationID          string    `json:"station_id"`
	SnapshotAt         time.Time `json:"snapshot_at,omitzero"`
	SnapshotAgeSeconds int       `json:"snapshot_age_seconds"`
	LastReadingAt      time.Time `json:"last_reading_at,omitzero"`
	LastAttemptAt      time.Time `json:"last_attempt_at,omitzero"`
	Stale              bool      `json:"stale"`
	LastError          string    `json:"last_error,omitempty"`
}

// handleHealth reports "starting" until the first snapshot, then "ok", or
// "degraded" once the snapshot is older than three refresh intervals.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := s.provider.Status()
	now := s.now()

	health := HealthStatus{
		Status:             "ok",
		StationID:          s.provider.Station().StationID,
		SnapshotAgeSeconds: -1,
		LastAttemptAt:      status.LastAttemptAt,
	}
	if status.LastError != nil {
		health.LastError = status.LastError.Error()
	}
	if status.LastReading != nil {
		health.LastReadingAt = status.LastReading.ObservedAt
	}

	if status.Snapshot == nil {
		health.Status = "starting"
		health.Stale = true
		s.fillStoredHealth(&health, now)
	} else {
		age := now.Sub(status.Snapshot.ComputedAt)
		health.SnapshotAt = status.Snapshot.ComputedAt
		health.SnapshotAgeSeconds = int(age.Seconds())
		health.Stale = age > 3*s.provider.Interval()
		if health.Stale {
			health.Status = "degraded"
		}
	}

	code := http.StatusOK
	if health.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, health)
}

// fillStoredHealth reports what the previous process left in the database
// until this one publishes its first snapshot.
func (s *Server) fillStoredHealth(health *HealthStatus, now time.Time) {
	if s.store == nil {
		return
	}
	if health.LastReadingAt.IsZero() {
		reading, err := s.store.GetLatestReading(health.StationID)
		if err != nil {
			log.Printf("api: health: latest reading: %v", err)
		} else if reading != nil {
			health.LastReadingAt = reading.ObservedAt
		}
	}
	rec, err := s.store.GetLatestSnapshot()
	if err != nil {
		log.Printf("api: health: latest snapshot: %v", err)
		return
	}
	if rec != nil {
		health.SnapshotAt = rec.ComputedAt
		health.SnapshotAgeSeconds = int(now.Sub(rec.ComputedAt).Seconds())
	}
}

func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	snap := s.provider.Latest()
	if snap == nil {
		http.Error(w, "no forecast yet", http.StatusServiceUnavailable)
		return
	}

	data, err := s.cards.Render(card.Data{Snapshot: snap, Station: s.provider.Station().Name})
	if err != nil {
		log.Printf("card: %v", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=60")
	w.Write(data)
}

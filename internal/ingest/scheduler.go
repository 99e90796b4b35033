package ingest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/lox/barocast/internal/forecast"
	"github.com/lox/barocast/internal/metrics"
	"github.com/lox/barocast/internal/models"
	"github.com/lox/barocast/internal/store"
)

// Refresh interval bounds.
const (
	DefaultInterval  = 300 * time.Second
	MinInterval      = 30 * time.Second
	MaxInterval      = time.Hour
	DefaultRetention = 30 * 24 * time.Hour
	pruneInterval    = time.Hour
)

// ClampInterval applies the default and bounds to a refresh interval.
func ClampInterval(d time.Duration) time.Duration {
	switch {
	case d <= 0:
		return DefaultInterval
	case d < MinInterval:
		return MinInterval
	case d > MaxInterval:
		return MaxInterval
	}
	return d
}

// Status is what the scheduler last published.
type Status struct {
	Snapshot      *forecast.Snapshot
	LastReading   *models.Reading
	LastAttemptAt time.Time
	LastError     error
}

// Publisher receives every snapshot the scheduler publishes.
type Publisher interface {
	Publish(ctx context.Context, snap *forecast.Snapshot) error
}

// Scheduler runs forecast refresh cycles: fetch a reading, record it, run the
// engine and publish the snapshot. Only one cycle runs at a time; a failed
// cycle leaves the previous snapshot published.
type Scheduler struct {
	store     *store.Store
	source    Source
	engine    *forecast.Engine
	station   models.Station
	interval  time.Duration
	retention time.Duration
	now       func() time.Time

	publishers []Publisher

	refreshMu sync.Mutex

	mu     sync.RWMutex
	status Status
}

// NewScheduler creates a scheduler. st may be nil, in which case nothing is
// persisted.
func NewScheduler(st *store.Store, source Source, engine *forecast.Engine, station models.Station) *Scheduler {
	return &Scheduler{
		store:     st,
		source:    source,
		engine:    engine,
		station:   station,
		interval:  DefaultInterval,
		retention: DefaultRetention,
		now:       time.Now,
	}
}

func (s *Scheduler) SetInterval(d time.Duration) {
	s.interval = ClampInterval(d)
}

func (s *Scheduler) SetRetention(d time.Duration) {
	if d > 0 {
		s.retention = d
	}
}

// AddPublisher registers p. Publishers are called after each successful
// cycle; their errors are logged and do not fail the cycle.
func (s *Scheduler) AddPublisher(p Publisher) {
	s.publishers = append(s.publishers, p)
}

func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Latest returns the most recent snapshot, or nil before the first
// successful cycle.
func (s *Scheduler) Latest() *forecast.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status.Snapshot
}

func (s *Scheduler) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Scheduler) Station() models.Station {
	return s.station
}

func (s *Scheduler) Run(ctx context.Context) {
	s.Refresh(ctx)
	s.prune()

	refreshTicker := time.NewTicker(s.interval)
	pruneTicker := time.NewTicker(pruneInterval)
	defer refreshTicker.Stop()
	defer pruneTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("scheduler: shutting down")
			return
		case <-refreshTicker.C:
			s.Refresh(ctx)
		case <-pruneTicker.C:
			s.prune()
		}
	}
}

// Refresh runs one cycle and returns the new snapshot.
func (s *Scheduler) Refresh(ctx context.Context) (*forecast.Snapshot, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	start := time.Now()
	snap, reading, err := s.refresh(ctx)
	metrics.RefreshDuration.Observe(time.Since(start).Seconds())

	s.mu.Lock()
	s.status.LastAttemptAt = s.now()
	s.status.LastError = err
	if err == nil {
		s.status.Snapshot = snap
		s.status.LastReading = reading
	}
	s.mu.Unlock()

	if err != nil {
		metrics.RefreshTotal.WithLabelValues(string(failureClass(err))).Inc()
		log.Printf("scheduler: refresh failed: %v", err)
		return nil, err
	}

	metrics.RefreshTotal.WithLabelValues("ok").Inc()
	metrics.LastRefreshTimestamp.Set(float64(snap.ComputedAt.Unix()))
	metrics.SeaLevelPressure.Set(snap.Pressure)
	metrics.PressureChange3h.Set(snap.PressureChange)
	metrics.PressureTrend.Set(float64(snap.Trend))
	metrics.ForecastCode.WithLabelValues("zambretti").Set(float64(snap.Attributes.Zambretti.Code))
	metrics.ForecastCode.WithLabelValues("neg_zam").Set(float64(snap.Attributes.NegZam.Code))

	log.Printf("scheduler: %s: %.1f hPa %s, zambretti %s (%s), neg_zam %s (%s)",
		s.source.StationID(), snap.Pressure, snap.Trend,
		snap.Attributes.Zambretti.Letter, snap.Attributes.Zambretti.Text,
		snap.Attributes.NegZam.Letter, snap.Attributes.NegZam.Text)

	for _, p := range s.publishers {
		if err := p.Publish(ctx, snap); err != nil {
			log.Printf("scheduler: publish: %v", err)
		}
	}
	return snap, nil
}

// ErrNoReading is returned when a source answers without a reading.
var ErrNoReading = errors.New("no reading returned")

var errForecast = errors.New("forecast")

// failureClass maps a refresh error onto the class recorded against its run.
// Station-side pressure faults are kept apart from transport failures.
func failureClass(err error) store.Failure {
	switch {
	case errors.Is(err, ErrSourceUnavailable):
		return store.FailureSourceUnavailable
	case errors.Is(err, ErrNoReading):
		return store.FailureNoReading
	case errors.Is(err, forecast.ErrMissingPressure):
		return store.FailureMissingPressure
	case errors.Is(err, forecast.ErrInvalidPressure):
		return store.FailureInvalidPressure
	case errors.Is(err, errForecast):
		return store.FailureEngine
	}
	return store.FailureFetch
}

func (s *Scheduler) refresh(ctx context.Context) (*forecast.Snapshot, *models.Reading, error) {
	name := s.source.Name()

	var run *store.RefreshRun
	if s.store != nil {
		var err error
		run, err = s.store.BeginRun(s.station.StationID, name, s.source.Endpoint(), s.now())
		if err != nil {
			log.Printf("scheduler: begin run: %v", err)
		}
	}

	reading, raw, err := s.source.Fetch(ctx)

	if len(raw) > 0 && run != nil {
		id, fresh, err := s.store.SavePayload(name, raw, s.now())
		if err != nil {
			log.Printf("scheduler: save %s payload: %v", name, err)
		} else {
			run.PayloadID = sql.NullInt64{Int64: id, Valid: true}
			if !fresh {
				metrics.PayloadsDeduplicated.WithLabelValues(name).Inc()
			}
		}
	}

	if err == nil && reading == nil {
		err = ErrNoReading
	}
	if err != nil {
		err = fmt.Errorf("fetch %s: %w", name, err)
		s.finishRun(run, err)
		return nil, nil, err
	}

	if reading.StationID == "" {
		reading.StationID = s.station.StationID
	}
	if reading.ObservedAt.IsZero() {
		reading.ObservedAt = s.now().UTC()
	}
	if run != nil {
		run.Pressure = reading.Pressure
	}

	flags := ValidateReading(reading)
	for _, f := range flags {
		metrics.ReadingQualityFlags.WithLabelValues(f).Inc()
	}
	if len(flags) > 0 {
		log.Printf("scheduler: %s: quality flags %v", reading.StationID, flags)
	}
	reading.QualityFlags = QualityFlagsToJSON(flags)

	if s.store != nil {
		inserted, err := s.store.InsertReading(*reading)
		if err != nil {
			log.Printf("scheduler: insert reading %s: %v", reading.StationID, err)
		} else if inserted {
			metrics.ReadingsIngested.WithLabelValues(reading.StationID).Inc()
			if run != nil {
				run.ReadingStored = true
			}
		}
	}

	now := s.now()
	isNight := forecast.IsNight(now, s.station.Latitude, s.station.Longitude)

	snap, err := s.engine.Refresh(now, *reading, isNight)
	if err != nil {
		err = fmt.Errorf("%w %s: %w", errForecast, reading.StationID, err)
		s.finishRun(run, err)
		return nil, nil, err
	}

	if s.store != nil {
		id, err := s.store.InsertSnapshot(reading.StationID, snap)
		if err != nil {
			log.Printf("scheduler: insert snapshot: %v", err)
		} else if run != nil {
			run.SnapshotID = sql.NullInt64{Int64: id, Valid: true}
		}
	}

	s.finishRun(run, nil)
	return snap, reading, nil
}

func (s *Scheduler) finishRun(run *store.RefreshRun, err error) {
	if run == nil {
		return
	}
	if err != nil {
		run.Fail(failureClass(err), err)
	}
	if err := s.store.FinishRun(run, s.now()); err != nil {
		log.Printf("scheduler: finish run %d: %v", run.ID, err)
	}
}

func (s *Scheduler) prune() {
	if s.store == nil {
		return
	}
	cutoff := s.now().Add(-s.retention)

	prunes := []struct {
		table string
		fn    func(time.Time) (int64, error)
	}{
		{"readings", s.store.PruneReadings},
		{"snapshots", s.store.PruneSnapshots},
		{"refresh_runs", s.store.PruneRuns},
		{"source_payloads", s.store.PrunePayloads},
	}
	for _, p := range prunes {
		n, err := p.fn(cutoff)
		if err != nil {
			log.Printf("scheduler: prune %s: %v", p.table, err)
			continue
		}
		if n > 0 {
			metrics.DBPruned.WithLabelValues(p.table).Add(float64(n))
			log.Printf("scheduler: pruned %d %s older than %s", n, p.table, cutoff.Format(time.RFC3339))
		}
	}
}

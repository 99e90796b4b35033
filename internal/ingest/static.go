package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/lox/barocast/internal/forecast"
	"github.com/lox/barocast/internal/models"
)

// StaticValues are readings as free-form strings, the way a home-automation
// host reports sensor states ("1013.2", "unknown", "unavailable").
type StaticValues struct {
	Pressure      string
	Temperature   string
	WindSpeed     string
	WindDirection string
}

// Static serves the same values on every fetch, stamped with the fetch time.
type Static struct {
	stationID string
	values    StaticValues
	now       func() time.Time
}

func NewStatic(stationID string, values StaticValues) *Static {
	return &Static{stationID: stationID, values: values, now: time.Now}
}

func (s *Static) Name() string      { return "static" }
func (s *Static) Endpoint() string  { return "static" }
func (s *Static) StationID() string { return s.stationID }

func (s *Static) Fetch(ctx context.Context) (*models.Reading, []byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	raw := fmt.Appendf(nil, "pressure=%s temperature=%s wind_speed=%s wind_direction=%s",
		s.values.Pressure, s.values.Temperature, s.values.WindSpeed, s.values.WindDirection)

	r, err := ParseReading(s.stationID, s.now(), s.values)
	if err != nil {
		return nil, raw, err
	}
	return r, raw, nil
}

// ParseReading converts string values into a reading. Pressure is required:
// an empty value is ErrMissingPressure and a non-numeric one is
// ErrInvalidPressure. Optional values that do not parse are left absent.
func ParseReading(stationID string, at time.Time, v StaticValues) (*models.Reading, error) {
	p := strings.TrimSpace(v.Pressure)
	if p == "" {
		return nil, forecast.ErrMissingPressure
	}
	pressure, ok := parseFinite(p)
	if !ok {
		return nil, fmt.Errorf("%w: %q", forecast.ErrInvalidPressure, p)
	}

	return &models.Reading{
		StationID:     stationID,
		ObservedAt:    at.UTC(),
		Pressure:      sql.NullFloat64{Float64: pressure, Valid: true},
		Temperature:   optionalValue(v.Temperature),
		WindSpeed:     optionalValue(v.WindSpeed),
		WindDirection: optionalValue(v.WindDirection),
	}, nil
}

func optionalValue(s string) sql.NullFloat64 {
	f, ok := parseFinite(strings.TrimSpace(s))
	return sql.NullFloat64{Float64: f, Valid: ok}
}

func parseFinite(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

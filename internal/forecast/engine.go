package forecast

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lox/barocast/internal/models"
)

var (
	ErrMissingPressure = errors.New("pressure reading missing")
	ErrInvalidPressure = errors.New("pressure reading is not a finite number")
)

// Window lengths for the pressure and temperature deltas.
const (
	PressureWindow    = 3 * time.Hour
	TemperatureWindow = 1 * time.Hour
)

// Options configures how an Engine interprets its readings.
type Options struct {
	PressureIsSeaLevel bool
	Altitude           float64 // metres, used when pressure is station-level
	Northern           bool
	Language           Language
}

// Engine turns successive readings into forecast snapshots. It owns the
// pressure and temperature windows, so a single Engine must only be refreshed
// by one caller at a time.
type Engine struct {
	opts        Options
	pressure    *SampleWindow
	temperature *SampleWindow
}

// NewEngine creates an engine with empty windows. An out-of-range language
// falls back to DefaultLanguage.
func NewEngine(opts Options) *Engine {
	if !opts.Language.Valid() {
		opts.Language = DefaultLanguage
	}
	return &Engine{
		opts:        opts,
		pressure:    NewSampleWindow(PressureWindow),
		temperature: NewSampleWindow(TemperatureWindow),
	}
}

// Options returns the options in effect, after defaults are applied.
func (e *Engine) Options() Options {
	return e.opts
}

// Refresh runs one forecast cycle. A missing or non-finite pressure fails the
// cycle without touching the windows; missing optional values count as zero.
func (e *Engine) Refresh(now time.Time, r models.Reading, isNight bool) (*Snapshot, error) {
	if !r.Pressure.Valid {
		return nil, ErrMissingPressure
	}
	if math.IsNaN(r.Pressure.Float64) || math.IsInf(r.Pressure.Float64, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPressure, r.Pressure.Float64)
	}

	temperature := optional(r.Temperature)
	windSpeed := optional(r.WindSpeed)
	windDirection := optional(r.WindDirection)

	p0 := r.Pressure.Float64
	if !e.opts.PressureIsSeaLevel {
		p0 = ToSeaLevel(p0, temperature, e.opts.Altitude)
	}

	e.pressure.Append(now, p0)
	e.temperature.Append(now, temperature)
	pressureChange := e.pressure.Delta(p0)
	temperatureChange := e.temperature.Delta(temperature)

	return buildSnapshot(now, e.opts, snapshotInput{
		p0:                p0,
		temperature:       temperature,
		windSpeed:         windSpeed,
		windDirection:     windDirection,
		pressureChange:    pressureChange,
		temperatureChange: temperatureChange,
		isNight:           isNight,
	}), nil
}

type snapshotInput struct {
	p0                float64
	temperature       float64
	windSpeed         float64
	windDirection     float64
	pressureChange    float64
	temperatureChange float64
	isNight           bool
}

func buildSnapshot(now time.Time, opts Options, in snapshotInput) *Snapshot {
	lang := opts.Language

	cond := Conditions{
		SeaLevelPressure: in.p0,
		PressureChange3h: in.pressureChange,
		WindDirection:    in.windDirection,
		WindSpeed:        in.windSpeed,
		Northern:         opts.Northern,
		Now:              now,
	}

	// The two classifiers share nothing but their input.
	zambretti := Zambretti(cond, lang)
	negZam := NegrettiZambra(cond, lang)

	zDetail := ZambrettiDetail(zambretti.Code, in.isNight, now)
	nDetail := NegZamDetail(negZam.Code, in.isNight, now)

	tempShort := ShortTemperatureForecast(in.temperature, in.temperatureChange,
		zDetail.FirstTime.Minutes, zDetail.SecondTime.Minutes)

	trend := ClassifyTrend(in.pressureChange)
	shortCondition, pressureSystem := ShortTermConditions(in.p0, lang)

	return &Snapshot{
		ComputedAt: now,
		State:      lang.Title(),
		Attributes: Attributes{
			Language:    lang,
			Temperature: round(in.temperature, 1),
			P0:          round(in.p0, 1),
			Wind: Wind{
				DirectionFactor: WindDirectionFactor(in.windDirection),
				Degrees:         round(in.windDirection, 1),
				Compass:         CompassLabel(in.windDirection),
				SpeedFactor:     WindSpeedFactor(in.windSpeed),
			},
			ShortTerm:           [2]string{shortCondition, pressureSystem},
			Zambretti:           zambretti,
			NegZam:              negZam,
			PressureTrend:       [2]string{trend.Text(lang), trend.Code()},
			TempShort:           tempShort,
			PressureChange3h:    round(in.pressureChange, 2),
			TemperatureChange1h: round(in.temperatureChange, 2),
		},
		ZambrettiState:    fmt.Sprintf("More details on zambretti forecast (%d)", zambretti.Code+1),
		Zambretti:         zDetail,
		NegZamState:       fmt.Sprintf("More details on neg_zam forecast (%d)", negZam.Code+1),
		NegZam:            nDetail,
		Pressure:          round(in.p0, 1),
		Temperature:       round(in.temperature, 1),
		PressureChange:    round(in.pressureChange, 2),
		TemperatureChange: round(in.temperatureChange, 2),
		Trend:             trend,
		IsNight:           in.isNight,
	}
}

func optional(v sql.NullFloat64) float64 {
	if !v.Valid || math.IsNaN(v.Float64) || math.IsInf(v.Float64, 0) {
		return 0.0
	}
	return v.Float64
}

// Snapshot is the immutable result of one forecast cycle.
type Snapshot struct {
	ComputedAt        time.Time  `json:"computed_at"`
	State             string     `json:"state"`
	Attributes        Attributes `json:"attributes"`
	ZambrettiState    string     `json:"zambretti_state"`
	Zambretti         Detail     `json:"zambretti_detail"`
	NegZamState       string     `json:"neg_zam_state"`
	NegZam            Detail     `json:"neg_zam_detail"`
	Pressure          float64    `json:"pressure"`
	Temperature       float64    `json:"temperature"`
	PressureChange    float64    `json:"pressure_change"`
	TemperatureChange float64    `json:"temperature_change"`
	Trend             Trend      `json:"-"`
	IsNight           bool       `json:"is_night"`
}

// Attributes mirrors the attribute payload consumed by dashboard cards.
type Attributes struct {
	Language            Language       `json:"language"`
	Temperature         float64        `json:"temperature"`
	P0                  float64        `json:"p0"`
	Wind                Wind           `json:"wind_direction"`
	ShortTerm           [2]string      `json:"forecast_short_term"`
	Zambretti           Result         `json:"forecast_zambretti"`
	NegZam              Result         `json:"forecast_neg_zam"`
	PressureTrend       [2]string      `json:"forecast_pressure_trend"`
	TempShort           TempProjection `json:"forecast_temp_short"`
	PressureChange3h    float64        `json:"pressure_change_3h"`
	TemperatureChange1h float64        `json:"temperature_change_1h"`
}

// Wind encodes as [directionFactor, degrees, compass, speedFactor].
type Wind struct {
	DirectionFactor int
	Degrees         float64
	Compass         string
	SpeedFactor     int
}

func (w Wind) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]any{w.DirectionFactor, w.Degrees, w.Compass, w.SpeedFactor})
}

// MarshalJSON encodes [text, code, letter].
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]any{r.Text, r.Code, r.Letter})
}

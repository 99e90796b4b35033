package models

import (
	"database/sql"
	"time"
)

type Station struct {
	StationID string
	Name      string
	Source    string // "pws", "bom" or "static"
	Latitude  float64
	Longitude float64
	Elevation float64
	IsPrimary bool
	Active    bool
}

// Northern reports whether the station is in the northern hemisphere.
func (s Station) Northern() bool {
	return s.Latitude >= 0
}

// Reading is one station observation as fed to the forecast engine. Pressure
// is in hPa, wind speed in km/h and wind direction in degrees.
type Reading struct {
	ID            int64
	StationID     string
	ObservedAt    time.Time
	Pressure      sql.NullFloat64
	Temperature   sql.NullFloat64
	WindSpeed     sql.NullFloat64
	WindDirection sql.NullFloat64
	QualityFlags  string
	CreatedAt     time.Time
}

package forecast

import (
	"math"
	"time"

	"github.com/sixdouglas/suncalc"
)

// horizonElevation is the solar elevation in degrees at which the sun's upper
// limb touches the horizon, allowing for refraction.
const horizonElevation = -0.833

// SolarElevation returns the sun's elevation in degrees above the horizon at
// the given position.
func SolarElevation(t time.Time, lat, lon float64) float64 {
	pos := suncalc.GetPosition(t.UTC(), lat, lon)
	return pos.Altitude * 180 / math.Pi
}

// IsNight reports whether the sun is below the horizon.
func IsNight(t time.Time, lat, lon float64) bool {
	return SolarElevation(t, lat, lon) < horizonElevation
}

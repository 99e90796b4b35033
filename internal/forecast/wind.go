package forecast

import (
	"math"
	"sort"
	"time"
)

// WindCalmThreshold is the wind speed in km/h below which the air is calm.
const WindCalmThreshold = 1.0

// WindSpeedFactor is 0 for calm air and 1 for any breeze.
func WindSpeedFactor(kmh float64) int {
	if kmh < WindCalmThreshold {
		return 0
	}
	return 1
}

// WindDirectionFactor weights southerly winds 2, northerly winds 0 and the
// rest 1 when offsetting the Zambretti code.
func WindDirectionFactor(deg float64) int {
	if deg >= 135 && deg <= 225 {
		return 2
	}
	if deg >= 315 || deg <= 45 {
		return 0
	}
	return 1
}

// compassBand covers directions in (previous hi, hi].
type compassBand struct {
	hi         float64
	label      string
	correction float64 // percent of the barometer range
}

// compassBands is ordered by hi. The first and last bands are both north; the
// last has no upper bound.
var compassBands = [...]compassBand{
	{11.25, "N", 0},
	{33.75, "NNE", 5},
	{56.25, "NE", 4.6},
	{78.75, "ENE", 2},
	{101.25, "E", -0.5},
	{123.75, "ESE", -3.2},
	{146.25, "SE", -5},
	{168.75, "SSE", -8.5},
	{191.25, "S", -11.2},
	{213.75, "SSW", -10},
	{236.25, "SW", -6},
	{258.75, "WSW", -4.5},
	{281.25, "W", -3},
	{303.75, "WNW", -0.5},
	{326.25, "NW", 1.5},
	{348.75, "NNW", 3},
	{math.Inf(1), "N", 6},
}

func findCompassBand(deg float64) (compassBand, bool) {
	if math.IsNaN(deg) {
		return compassBand{}, false
	}
	i := sort.Search(len(compassBands), func(i int) bool {
		return deg <= compassBands[i].hi
	})
	return compassBands[i], true
}

// CompassLabel maps a bearing in degrees to a 16-point compass label.
func CompassLabel(deg float64) string {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	band, ok := findCompassBand(d)
	if !ok {
		return "N"
	}
	return band.label
}

// northernWindCorrection shifts pressure by the percentage of barRange that
// the bearing's band carries. Bearings at or below 11.25 are not corrected.
func northernWindCorrection(pressure, deg, barRange float64) float64 {
	band, ok := findCompassBand(deg)
	if !ok {
		return pressure
	}
	return pressure + band.correction/100*barRange
}

// IsSummer reports whether month falls in the algorithm's summer half-year:
// March through October in the northern hemisphere, inverted in the south.
func IsSummer(month time.Month, northern bool) bool {
	summer := month > time.February && month < time.November
	if northern {
		return summer
	}
	return !summer
}

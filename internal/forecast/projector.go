package forecast

import (
	"encoding/json"
	"math"
)

// TempProjection is a short-term temperature extrapolation. Selector is 0 or 1
// for the horizon used, or -1 when no positive horizon was available.
type TempProjection struct {
	Value     float64
	Selector  int
	Available bool
}

// MarshalJSON encodes [value, selector], or ["unavailable", -1].
func (p TempProjection) MarshalJSON() ([]byte, error) {
	if !p.Available {
		return json.Marshal([2]any{"unavailable", -1})
	}
	return json.Marshal([2]any{p.Value, p.Selector})
}

// ShortTemperatureForecast extrapolates temperature linearly from the 1-hour
// change over the first positive horizon.
func ShortTemperatureForecast(temperature, change1h, firstMinutes, secondMinutes float64) TempProjection {
	switch {
	case firstMinutes > 0:
		return TempProjection{Value: round(change1h/60*firstMinutes+temperature, 1), Selector: 0, Available: true}
	case secondMinutes > 0:
		return TempProjection{Value: round(change1h/60*secondMinutes+temperature, 1), Selector: 1, Available: true}
	default:
		return TempProjection{Selector: -1}
	}
}

// round rounds half to even at the given number of decimal places.
func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.RoundToEven(v*scale) / scale
}

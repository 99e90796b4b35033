package forecast

import "math"

// ToSeaLevel reduces station pressure (hPa) at altitudeM metres and
// temperatureC to sea-level pressure using the barometric approximation.
func ToSeaLevel(stationPressure, temperatureC, altitudeM float64) float64 {
	lapse := 0.0065 * altitudeM
	return stationPressure * math.Pow(1-lapse/(temperatureC+lapse+273.15), -5.257)
}

// ShortTermConditions returns the coarse condition and pressure-system text for
// a sea-level pressure.
func ShortTermConditions(p0 float64, lang Language) (condition, system string) {
	i := lang.index()
	switch {
	case p0 < 980:
		return shortConditions[0][i], pressureSystems[0][i]
	case p0 < 1000:
		return shortConditions[1][i], pressureSystems[0][i]
	case p0 < 1020:
		return shortConditions[2][i], pressureSystems[1][i]
	case p0 < 1040:
		return shortConditions[3][i], pressureSystems[2][i]
	default:
		return shortConditions[4][i], pressureSystems[2][i]
	}
}

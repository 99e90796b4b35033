package forecast

import "math"

const (
	barTop    = 1050.0
	barBottom = 950.0
	barRange  = barTop - barBottom
	barBands  = 22
)

// Negretti-Zambra forecast numbers by pressure band, lowest band first.
var (
	negZamRising  = [barBands]int{25, 25, 25, 24, 24, 19, 16, 12, 11, 9, 8, 6, 5, 2, 1, 1, 0, 0, 0, 0, 0, 0}
	negZamSteady  = [barBands]int{25, 25, 25, 25, 25, 25, 23, 23, 22, 18, 15, 13, 10, 4, 1, 1, 0, 0, 0, 0, 0, 0}
	negZamFalling = [barBands]int{25, 25, 25, 25, 25, 25, 25, 25, 23, 23, 21, 20, 17, 14, 7, 3, 1, 1, 1, 0, 0, 0}
)

// NegZamBand returns the adjusted pressure band index in [0, 21] and whether
// the pressure fell off either end of the scale.
func NegZamBand(c Conditions) (band int, exceptional bool) {
	trend := ClassifyTrend(c.PressureChange3h)
	z := c.SeaLevelPressure

	direction := c.WindDirection
	if !c.Northern {
		direction = math.Mod(direction+180, 360)
		if direction < 0 {
			direction += 360
		}
	}
	if WindSpeedFactor(c.WindSpeed) == 1 {
		z = northernWindCorrection(z, direction, barRange)
	}

	if IsSummer(c.Now.Month(), c.Northern) {
		switch trend {
		case TrendRising:
			z += 7.0 / 100 * barRange
		case TrendFalling:
			z -= 7.0 / 100 * barRange
		}
	}

	if z == barTop {
		z = barTop - 1
	}

	band = int(math.Floor((z - barBottom) / (barRange / barBands)))
	switch {
	case band < 0:
		return 0, true
	case band > barBands-1:
		return barBands - 1, true
	}
	return band, false
}

// NegrettiZambra classifies the conditions with the Negretti and Zambra
// method. Result.Code is the raw forecast number.
func NegrettiZambra(c Conditions, lang Language) Result {
	band, exceptional := NegZamBand(c)

	var n int
	switch ClassifyTrend(c.PressureChange3h) {
	case TrendRising:
		n = negZamRising[band]
	case TrendFalling:
		n = negZamFalling[band]
	default:
		n = negZamSteady[band]
	}

	text := forecastTexts[n][lang.index()]
	if exceptional {
		text = exceptionalTexts[lang.index()] + text
	}
	return Result{
		Text:   text,
		Code:   n,
		Letter: ForecastLetterFromNumber(n),
	}
}

package forecast

// PressureTrendThreshold is the 3-hour pressure change in hPa that separates a
// steady barometer from a rising or falling one.
const PressureTrendThreshold = 1.6

type Trend int

const (
	TrendFalling Trend = -1
	TrendSteady  Trend = 0
	TrendRising  Trend = 1
)

func (t Trend) String() string {
	switch t {
	case TrendFalling:
		return "falling"
	case TrendRising:
		return "rising"
	default:
		return "steady"
	}
}

// Code is the published trend code: "0" falling, "1" rising, "2" steady.
func (t Trend) Code() string {
	switch t {
	case TrendFalling:
		return "0"
	case TrendRising:
		return "1"
	default:
		return "2"
	}
}

// Text returns the localized trend word.
func (t Trend) Text(lang Language) string {
	switch t {
	case TrendFalling:
		return trendTexts[0][lang.index()]
	case TrendRising:
		return trendTexts[1][lang.index()]
	default:
		return trendTexts[2][lang.index()]
	}
}

// ClassifyTrend converts a 3-hour pressure delta into a trend. Each call is
// independent; there is no hysteresis.
func ClassifyTrend(delta3h float64) Trend {
	switch {
	case delta3h <= -PressureTrendThreshold:
		return TrendFalling
	case delta3h >= PressureTrendThreshold:
		return TrendRising
	default:
		return TrendSteady
	}
}

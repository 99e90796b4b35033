package forecast

import (
	"encoding/json"
	"time"
)

// Coarse conditions used by the detail tables, indexing iconConditions.
const (
	CondSunny = iota
	CondPartlyCloudy
	CondPartlyRainy
	CondCloudy
	CondRainy
	CondPouring
	CondLightningRainy
)

// iconConditions is indexed [condition][0 day, 1 night].
var iconConditions = [7][2]string{
	{"mdi:weather-sunny", "mdi:weather-night"},
	{"mdi:weather-partly-cloudy", "mdi:weather-night-partly-cloudy"},
	{"mdi:weather-partly-rainy", "mdi:weather-partly-rainy"},
	{"mdi:weather-cloudy", "mdi:weather-cloudy"},
	{"mdi:weather-rainy", "mdi:weather-rainy"},
	{"mdi:weather-pouring", "mdi:weather-pouring"},
	{"mdi:weather-lightning-rainy", "mdi:weather-lightning-rainy"},
}

// Detail codes run 1..25. Codes missing from a table resolve to
// defaultDetailPair.
const (
	minDetailCode = 1
	maxDetailCode = 25
)

var defaultDetailPair = [2]int{CondCloudy, CondCloudy}

// zambrettiDetailPairs and negZamDetailPairs map a detail code to the
// (now, later) coarse conditions. They differ at codes 5, 6 and 11 and are
// kept apart on purpose.
var zambrettiDetailPairs = map[int][2]int{
	1: {0, 0}, 2: {1, 1}, 3: {2, 1}, 4: {1, 2}, 5: {1, 1},
	6: {1, 0}, 7: {2, 1}, 8: {1, 4}, 9: {4, 2}, 10: {4, 4},
	11: {1, 1}, 12: {3, 1}, 13: {3, 3}, 14: {2, 2}, 15: {4, 5},
	16: {4, 4}, 17: {2, 2}, 18: {2, 4}, 19: {2, 2}, 20: {5, 5},
	21: {2, 4}, 22: {4, 4}, 23: {4, 4}, 24: {6, 4}, 25: {6, 6},
}

var negZamDetailPairs = map[int][2]int{
	1: {0, 0}, 2: {1, 1}, 3: {2, 1}, 4: {1, 2}, 5: {2, 2},
	6: {2, 1}, 7: {2, 1}, 8: {1, 4}, 9: {4, 2}, 10: {4, 4},
	11: {2, 2}, 12: {3, 1}, 13: {3, 3}, 14: {2, 2}, 15: {4, 5},
	16: {4, 4}, 17: {2, 2}, 18: {2, 4}, 19: {2, 2}, 20: {5, 5},
	21: {2, 4}, 22: {4, 4}, 23: {4, 4}, 24: {6, 4}, 25: {6, 6},
}

// rainRule matches a (now, later) condition pair. Rules are tried in order and
// the last rule of each table matches everything.
type rainRule struct {
	match func(now, later int) bool
	prob  [2]int
}

var zambrettiRainRules = []rainRule{
	{func(n, l int) bool { return n == 0 && l == 0 }, [2]int{0, 0}},
	{func(n, l int) bool { return n == 2 && l == 1 }, [2]int{60, 10}},
	{func(n, l int) bool { return n == 1 && l == 1 }, [2]int{30, 30}},
	{func(n, l int) bool { return n == 1 && l == 0 }, [2]int{10, 0}},
	{func(n, l int) bool { return n == 1 && l >= 2 }, [2]int{20, 60}},
	{func(n, l int) bool { return n == 2 && l == 2 }, [2]int{50, 50}},
	{func(n, l int) bool { return n == 2 && l > 2 }, [2]int{50, 70}},
	{func(n, l int) bool { return n >= 2 && l < 2 }, [2]int{50, 10}},
	{func(n, l int) bool { return true }, [2]int{90, 90}},
}

var negZamRainRules = []rainRule{
	{func(n, l int) bool { return n < 2 && l < 2 }, [2]int{0, 0}},
	{func(n, l int) bool { return n == 1 && l >= 2 }, [2]int{20, 60}},
	{func(n, l int) bool { return n == 2 && l == 2 }, [2]int{50, 50}},
	{func(n, l int) bool { return n == 2 && l > 2 }, [2]int{50, 70}},
	{func(n, l int) bool { return true }, [2]int{90, 90}},
}

func rainProbability(rules []rainRule, pair [2]int) [2]int {
	for _, r := range rules {
		if r.match(pair[0], pair[1]) {
			return r.prob
		}
	}
	return rules[len(rules)-1].prob
}

// Forecast horizons of the detail payload.
const (
	FirstHorizon  = 3 * time.Hour
	SecondHorizon = 9 * time.Hour
)

// Horizon is a forecast time as local "HH:MM" and the minutes until it. It
// encodes as a two-element JSON array.
type Horizon struct {
	Clock   string
	Minutes float64
}

func (h Horizon) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{h.Clock, h.Minutes})
}

func newHorizon(now time.Time, ahead time.Duration) Horizon {
	return Horizon{
		Clock:   now.Add(ahead).Format("15:04"),
		Minutes: round(ahead.Minutes(), 2),
	}
}

// Detail is the near/far forecast payload of one classifier.
type Detail struct {
	Forecast   [2]int    `json:"forecast"`
	RainProb   [2]int    `json:"rain_prob"`
	Icons      [2]string `json:"icons"`
	FirstTime  Horizon   `json:"first_time"`
	SecondTime Horizon   `json:"second_time"`
}

func zambrettiTypeToDetailCode(severityType int) int {
	return severityType + 1
}

func negZamNumberToDetailCode(number int) int {
	return number + 1
}

// ZambrettiDetail builds the detail payload for a Zambretti severity type.
func ZambrettiDetail(severityType int, isNight bool, now time.Time) Detail {
	return buildDetail(zambrettiTypeToDetailCode(severityType), isNight, now, zambrettiDetailPairs, zambrettiRainRules)
}

// NegZamDetail builds the detail payload for a Negretti-Zambra forecast number.
func NegZamDetail(number int, isNight bool, now time.Time) Detail {
	return buildDetail(negZamNumberToDetailCode(number), isNight, now, negZamDetailPairs, negZamRainRules)
}

func buildDetail(code int, isNight bool, now time.Time, pairs map[int][2]int, rules []rainRule) Detail {
	code = max(minDetailCode, min(maxDetailCode, code))
	pair, ok := pairs[code]
	if !ok {
		pair = defaultDetailPair
	}

	daynight := 0
	if isNight {
		daynight = 1
	}

	return Detail{
		Forecast:   pair,
		RainProb:   rainProbability(rules, pair),
		Icons:      [2]string{iconConditions[pair[0]][daynight], iconConditions[pair[1]][daynight]},
		FirstTime:  newHorizon(now, FirstHorizon),
		SecondTime: newHorizon(now, SecondHorizon),
	}
}

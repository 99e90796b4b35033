package forecast

import (
	"encoding/json"
	"testing"
	"time"
)

func TestZambrettiDetail_RainProbability(t *testing.T) {
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		typ      int
		pair     [2]int
		rainProb [2]int
	}{
		{name: "settled fine", typ: 0, pair: [2]int{0, 0}, rainProb: [2]int{0, 0}},
		{name: "partly rainy clearing", typ: 2, pair: [2]int{2, 1}, rainProb: [2]int{60, 10}},
		{name: "partly cloudy both", typ: 1, pair: [2]int{1, 1}, rainProb: [2]int{30, 30}},
		{name: "partly cloudy to sunny", typ: 5, pair: [2]int{1, 0}, rainProb: [2]int{10, 0}},
		{name: "partly cloudy to rainy", typ: 7, pair: [2]int{1, 4}, rainProb: [2]int{20, 60}},
		{name: "cloudy clearing", typ: 11, pair: [2]int{3, 1}, rainProb: [2]int{50, 10}},
		{name: "rain then partly rainy", typ: 8, pair: [2]int{4, 2}, rainProb: [2]int{90, 90}},
		{name: "storm", typ: 24, pair: [2]int{6, 6}, rainProb: [2]int{90, 90}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ZambrettiDetail(tt.typ, false, now)
			if d.Forecast != tt.pair {
				t.Errorf("Forecast = %v, want %v", d.Forecast, tt.pair)
			}
			if d.RainProb != tt.rainProb {
				t.Errorf("RainProb = %v, want %v", d.RainProb, tt.rainProb)
			}
		})
	}
}

func TestNegZamDetail_RainProbability(t *testing.T) {
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		number   int
		pair     [2]int
		rainProb [2]int
	}{
		{name: "fair", number: 0, pair: [2]int{0, 0}, rainProb: [2]int{0, 0}},
		{name: "partly cloudy to sunny", number: 5, pair: [2]int{2, 1}, rainProb: [2]int{90, 90}},
		{name: "partly rainy both", number: 4, pair: [2]int{2, 2}, rainProb: [2]int{50, 50}},
		{name: "partly rainy to rain", number: 17, pair: [2]int{2, 4}, rainProb: [2]int{50, 70}},
		{name: "partly cloudy to rain", number: 7, pair: [2]int{1, 4}, rainProb: [2]int{20, 60}},
		{name: "cloudy clearing", number: 11, pair: [2]int{3, 1}, rainProb: [2]int{90, 90}},
		{name: "code above range clamps", number: 40, pair: [2]int{6, 6}, rainProb: [2]int{90, 90}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NegZamDetail(tt.number, false, now)
			if d.Forecast != tt.pair {
				t.Errorf("Forecast = %v, want %v", d.Forecast, tt.pair)
			}
			if d.RainProb != tt.rainProb {
				t.Errorf("RainProb = %v, want %v", d.RainProb, tt.rainProb)
			}
		})
	}
}

func TestDetailTablesDiffer(t *testing.T) {
	for _, code := range []int{5, 6, 11} {
		if zambrettiDetailPairs[code] == negZamDetailPairs[code] {
			t.Errorf("detail code %d: tables should differ, both %v", code, zambrettiDetailPairs[code])
		}
	}
}

func TestDetail_IconsAndHorizons(t *testing.T) {
	now := time.Date(2025, 5, 1, 22, 30, 0, 0, time.UTC)

	d := ZambrettiDetail(0, true, now)
	if d.Icons != [2]string{"mdi:weather-night", "mdi:weather-night"} {
		t.Errorf("night icons = %v", d.Icons)
	}
	if d.FirstTime.Clock != "01:30" || d.FirstTime.Minutes != 180 {
		t.Errorf("FirstTime = %+v, want 01:30/180", d.FirstTime)
	}
	if d.SecondTime.Clock != "07:30" || d.SecondTime.Minutes != 540 {
		t.Errorf("SecondTime = %+v, want 07:30/540", d.SecondTime)
	}

	day := ZambrettiDetail(0, false, now)
	if day.Icons[0] != "mdi:weather-sunny" {
		t.Errorf("day icon = %q", day.Icons[0])
	}
}

func TestDetail_JSON(t *testing.T) {
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	b, err := json.Marshal(ZambrettiDetail(2, false, now))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	want := `{"forecast":[2,1],"rain_prob":[60,10],"icons":["mdi:weather-partly-rainy","mdi:weather-partly-cloudy"],"first_time":["13:00",180],"second_time":["19:00",540]}`
	if string(b) != want {
		t.Errorf("JSON =\n%s\nwant\n%s", b, want)
	}
}

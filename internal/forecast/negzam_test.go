package forecast

import (
	"strings"
	"testing"
	"time"
)

func TestNegZamBand(t *testing.T) {
	winter := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	summer := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		cond        Conditions
		band        int
		exceptional bool
	}{
		{
			name: "mid scale",
			cond: Conditions{SeaLevelPressure: 1013, Northern: true, Now: winter},
			band: 13,
		},
		{
			name: "summer rise lifts band",
			cond: Conditions{SeaLevelPressure: 1013, PressureChange3h: 2, Northern: true, Now: summer},
			band: 15,
		},
		{
			name: "summer fall lowers band",
			cond: Conditions{SeaLevelPressure: 1013, PressureChange3h: -2, Northern: true, Now: summer},
			band: 12,
		},
		{
			name: "top of scale is nudged down",
			cond: Conditions{SeaLevelPressure: 1050, Northern: true, Now: winter},
			band: 21,
		},
		{
			name:        "below scale",
			cond:        Conditions{SeaLevelPressure: 940, Northern: true, Now: winter},
			band:        0,
			exceptional: true,
		},
		{
			name:        "above scale",
			cond:        Conditions{SeaLevelPressure: 1060, Northern: true, Now: winter},
			band:        21,
			exceptional: true,
		},
		{
			name: "northerly breeze in the south is corrected as southerly",
			cond: Conditions{SeaLevelPressure: 1013, WindDirection: 0, WindSpeed: 10, Northern: false, Now: summer},
			band: 11,
		},
		{
			name: "calm wind is not corrected",
			cond: Conditions{SeaLevelPressure: 1013, WindDirection: 180, WindSpeed: 0, Northern: true, Now: winter},
			band: 13,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			band, exceptional := NegZamBand(tt.cond)
			if band != tt.band {
				t.Errorf("band = %d, want %d", band, tt.band)
			}
			if exceptional != tt.exceptional {
				t.Errorf("exceptional = %v, want %v", exceptional, tt.exceptional)
			}
		})
	}
}

func TestNegrettiZambra(t *testing.T) {
	winter := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

	res := NegrettiZambra(Conditions{SeaLevelPressure: 1013, Northern: true, Now: winter}, LangEN)
	if res.Code != 4 {
		t.Errorf("Code = %d, want 4", res.Code)
	}
	if res.Text != forecastTexts[4][1] {
		t.Errorf("Text = %q, want %q", res.Text, forecastTexts[4][1])
	}
	if res.Letter != ForecastLetterFromNumber(4) {
		t.Errorf("Letter = %q", res.Letter)
	}
}

func TestNegrettiZambra_Exceptional(t *testing.T) {
	winter := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

	res := NegrettiZambra(Conditions{SeaLevelPressure: 930, Northern: true, Now: winter}, LangEN)
	if !strings.HasPrefix(res.Text, "Exceptional Weather,") {
		t.Errorf("Text = %q, want exceptional prefix", res.Text)
	}
	if res.Code != 25 {
		t.Errorf("Code = %d, want 25", res.Code)
	}

	res = NegrettiZambra(Conditions{SeaLevelPressure: 1070, Northern: true, Now: winter}, LangFR)
	if !strings.HasPrefix(res.Text, "Temps exceptionnel,") {
		t.Errorf("Text = %q, want French exceptional prefix", res.Text)
	}
	if res.Letter != "none" {
		t.Errorf("Letter = %q, want none", res.Letter)
	}
}

func TestNegrettiZambra_Deterministic(t *testing.T) {
	now := time.Date(2025, 3, 1, 6, 0, 0, 0, time.UTC)
	for p := 940.0; p <= 1060; p += 0.5 {
		for _, delta := range []float64{-3, 0, 3} {
			c := Conditions{SeaLevelPressure: p, PressureChange3h: delta, WindDirection: 200, WindSpeed: 12, Northern: true, Now: now}
			a := NegrettiZambra(c, LangEN)
			b := NegrettiZambra(c, LangEN)
			if a != b {
				t.Fatalf("NegrettiZambra(%v, %v) not deterministic: %+v vs %+v", p, delta, a, b)
			}
			if a.Code < 0 || a.Code > 25 {
				t.Fatalf("NegrettiZambra(%v, %v) code %d out of range", p, delta, a.Code)
			}
		}
	}
}

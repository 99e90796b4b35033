package forecast

import (
	"encoding/json"
	"testing"
)

func TestShortTemperatureForecast(t *testing.T) {
	tests := []struct {
		name     string
		temp     float64
		change   float64
		first    float64
		second   float64
		want     float64
		selector int
	}{
		{name: "first horizon", temp: 20, change: 1.2, first: 180, second: 540, want: 23.6, selector: 0},
		{name: "cooling", temp: 12.4, change: -0.5, first: 180, second: 540, want: 10.9, selector: 0},
		{name: "second horizon fallback", temp: 20, change: 0.6, first: 0, second: 540, want: 25.4, selector: 1},
		{name: "no change", temp: 8, change: 0, first: 180, second: 540, want: 8, selector: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShortTemperatureForecast(tt.temp, tt.change, tt.first, tt.second)
			if !got.Available {
				t.Fatal("projection unavailable")
			}
			if got.Value != tt.want {
				t.Errorf("Value = %v, want %v", got.Value, tt.want)
			}
			if got.Selector != tt.selector {
				t.Errorf("Selector = %d, want %d", got.Selector, tt.selector)
			}
		})
	}
}

func TestShortTemperatureForecast_Unavailable(t *testing.T) {
	got := ShortTemperatureForecast(20, 1, 0, -5)
	if got.Available {
		t.Fatalf("expected unavailable, got %+v", got)
	}

	b, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `["unavailable",-1]` {
		t.Errorf("JSON = %s", b)
	}

	b, _ = json.Marshal(ShortTemperatureForecast(20, 1.2, 180, 540))
	if string(b) != `[23.6,0]` {
		t.Errorf("JSON = %s, want [23.6,0]", b)
	}
}

func TestRound_HalfToEven(t *testing.T) {
	tests := []struct {
		in     float64
		places int
		want   float64
	}{
		{20.25, 1, 20.2},
		{20.75, 1, 20.8},
		{1013.25, 1, 1013.2},
		{1013.75, 1, 1013.8},
		{-1.625, 2, -1.62},
		{2.5, 0, 2},
		{3.5, 0, 4},
		{18.46, 1, 18.5},
	}
	for _, tt := range tests {
		if got := round(tt.in, tt.places); got != tt.want {
			t.Errorf("round(%v, %d) = %v, want %v", tt.in, tt.places, got, tt.want)
		}
	}
}

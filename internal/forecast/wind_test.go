package forecast

import (
	"math"
	"testing"
	"time"
)

func TestCompassLabel(t *testing.T) {
	tests := []struct {
		deg  float64
		want string
	}{
		{0, "N"},
		{360, "N"},
		{11.25, "N"},
		{11.26, "NNE"},
		{45, "NE"},
		{90, "E"},
		{180, "S"},
		{200, "SSW"},
		{270, "W"},
		{348.75, "NNW"},
		{350, "N"},
		{-90, "W"},
		{720 + 90, "E"},
	}

	for _, tt := range tests {
		if got := CompassLabel(tt.deg); got != tt.want {
			t.Errorf("CompassLabel(%v) = %q, want %q", tt.deg, got, tt.want)
		}
	}
}

func TestCompassLabel_CoversSixteenPoints(t *testing.T) {
	valid := map[string]bool{
		"N": true, "NNE": true, "NE": true, "ENE": true,
		"E": true, "ESE": true, "SE": true, "SSE": true,
		"S": true, "SSW": true, "SW": true, "WSW": true,
		"W": true, "WNW": true, "NW": true, "NNW": true,
	}

	seen := make(map[string]bool)
	for deg := 0.0; deg < 360; deg += 0.25 {
		label := CompassLabel(deg)
		if !valid[label] {
			t.Fatalf("CompassLabel(%v) = %q, not a compass point", deg, label)
		}
		seen[label] = true
	}
	if len(seen) != 16 {
		t.Errorf("saw %d distinct labels, want 16", len(seen))
	}
}

func TestCompassLabel_NaN(t *testing.T) {
	if got := CompassLabel(math.NaN()); got != "N" {
		t.Errorf("CompassLabel(NaN) = %q, want N", got)
	}
}

func TestWindFactors(t *testing.T) {
	speeds := []struct {
		kmh  float64
		want int
	}{
		{0, 0},
		{0.99, 0},
		{1, 1},
		{35, 1},
	}
	for _, tt := range speeds {
		if got := WindSpeedFactor(tt.kmh); got != tt.want {
			t.Errorf("WindSpeedFactor(%v) = %d, want %d", tt.kmh, got, tt.want)
		}
	}

	directions := []struct {
		deg  float64
		want int
	}{
		{0, 0},
		{45, 0},
		{46, 1},
		{90, 1},
		{135, 2},
		{180, 2},
		{225, 2},
		{270, 1},
		{315, 0},
		{359, 0},
	}
	for _, tt := range directions {
		if got := WindDirectionFactor(tt.deg); got != tt.want {
			t.Errorf("WindDirectionFactor(%v) = %d, want %d", tt.deg, got, tt.want)
		}
	}
}

func TestNorthernWindCorrection(t *testing.T) {
	tests := []struct {
		deg  float64
		want float64
	}{
		{5, 1000},
		{180, 1000 - 11.2},
		{22, 1000 + 5},
		{355, 1000 + 6},
	}
	for _, tt := range tests {
		got := northernWindCorrection(1000, tt.deg, 100)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("northernWindCorrection(1000, %v) = %v, want %v", tt.deg, got, tt.want)
		}
	}
}

func TestIsSummer(t *testing.T) {
	tests := []struct {
		month    time.Month
		northern bool
		want     bool
	}{
		{time.January, true, false},
		{time.February, true, false},
		{time.March, true, true},
		{time.June, true, true},
		{time.October, true, true},
		{time.November, true, false},
		{time.December, true, false},
		{time.January, false, true},
		{time.June, false, false},
		{time.November, false, true},
	}
	for _, tt := range tests {
		if got := IsSummer(tt.month, tt.northern); got != tt.want {
			t.Errorf("IsSummer(%v, northern=%v) = %v, want %v", tt.month, tt.northern, got, tt.want)
		}
	}
}

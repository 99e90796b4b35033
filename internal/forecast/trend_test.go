package forecast

import "testing"

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		name  string
		delta float64
		want  Trend
	}{
		{name: "no change", delta: 0, want: TrendSteady},
		{name: "falling at threshold", delta: -1.6, want: TrendFalling},
		{name: "just above falling threshold", delta: -1.59, want: TrendSteady},
		{name: "past falling threshold", delta: -1.61, want: TrendFalling},
		{name: "rising at threshold", delta: 1.6, want: TrendRising},
		{name: "just below rising threshold", delta: 1.59, want: TrendSteady},
		{name: "sharp fall", delta: -6.2, want: TrendFalling},
		{name: "sharp rise", delta: 4.0, want: TrendRising},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyTrend(tt.delta); got != tt.want {
				t.Errorf("ClassifyTrend(%v) = %v, want %v", tt.delta, got, tt.want)
			}
		})
	}
}

func TestTrendCodeAndText(t *testing.T) {
	tests := []struct {
		trend Trend
		code  string
		en    string
		de    string
	}{
		{TrendFalling, "0", "Falling", "fallend"},
		{TrendRising, "1", "Rising", "steigend"},
		{TrendSteady, "2", "Steady", "stabil"},
	}

	for _, tt := range tests {
		t.Run(tt.trend.String(), func(t *testing.T) {
			if got := tt.trend.Code(); got != tt.code {
				t.Errorf("Code() = %q, want %q", got, tt.code)
			}
			if got := tt.trend.Text(LangEN); got != tt.en {
				t.Errorf("Text(en) = %q, want %q", got, tt.en)
			}
			if got := tt.trend.Text(LangDE); got != tt.de {
				t.Errorf("Text(de) = %q, want %q", got, tt.de)
			}
		})
	}
}

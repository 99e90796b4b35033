package forecast

import (
	"testing"
	"time"
)

func TestSampleWindow_EmptyDelta(t *testing.T) {
	w := NewSampleWindow(3 * time.Hour)
	for _, current := range []float64{0, 1013.25, -5} {
		if got := w.Delta(current); got != 0.0 {
			t.Errorf("Delta(%v) on empty window = %v, want 0", current, got)
		}
	}
}

func TestSampleWindow_DeltaAgainstOldest(t *testing.T) {
	base := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	w := NewSampleWindow(3 * time.Hour)

	w.Append(base, 1010.0)
	w.Append(base.Add(time.Hour), 1011.0)
	w.Append(base.Add(2*time.Hour), 1012.5)

	if got := w.Delta(1012.5); got != 2.5 {
		t.Errorf("Delta() = %v, want 2.5", got)
	}
	if len(w.samples) != 3 {
		t.Errorf("len(samples) = %d, want 3", len(w.samples))
	}
}

func TestSampleWindow_Eviction(t *testing.T) {
	base := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	w := NewSampleWindow(time.Hour)

	for i := 0; i <= 12; i++ {
		now := base.Add(time.Duration(i) * 10 * time.Minute)
		w.Append(now, float64(i))

		cutoff := now.Add(-w.maxAge)
		for _, s := range w.samples {
			if s.At.Before(cutoff) {
				t.Fatalf("after append at %v: sample at %v is older than %v", now, s.At, w.maxAge)
			}
		}
	}

	// 120 minutes in, samples from 60..120 remain (exactly one hour old stays).
	if w.samples[0].Value != 6 {
		t.Errorf("oldest value = %v, want 6", w.samples[0].Value)
	}
	if len(w.samples) != 7 {
		t.Errorf("len(samples) = %d, want 7", len(w.samples))
	}
}

func TestSampleWindow_GapEvictsEverythingButNewest(t *testing.T) {
	base := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	w := NewSampleWindow(3 * time.Hour)

	w.Append(base, 1000)
	w.Append(base.Add(10*time.Minute), 1001)
	w.Append(base.Add(5*time.Hour), 1020)

	if len(w.samples) != 1 {
		t.Fatalf("len(samples) = %d, want 1", len(w.samples))
	}
	if got := w.Delta(1020); got != 0 {
		t.Errorf("Delta() = %v, want 0", got)
	}
}

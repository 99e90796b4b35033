package forecast

import "time"

// Sample is a single timestamped value held by a SampleWindow.
type Sample struct {
	At    time.Time
	Value float64
}

// SampleWindow keeps the samples of one quantity that are no older than maxAge.
// Samples are appended in time order and evicted from the front.
type SampleWindow struct {
	maxAge  time.Duration
	samples []Sample
}

func NewSampleWindow(maxAge time.Duration) *SampleWindow {
	return &SampleWindow{maxAge: maxAge}
}

// Append adds a sample at now and drops every sample older than now-maxAge.
func (w *SampleWindow) Append(now time.Time, value float64) {
	w.samples = append(w.samples, Sample{At: now, Value: value})

	cutoff := now.Add(-w.maxAge)
	i := 0
	for i < len(w.samples) && w.samples[i].At.Before(cutoff) {
		i++
	}
	if i > 0 {
		w.samples = append(w.samples[:0], w.samples[i:]...)
	}
}

// Delta returns current minus the oldest retained value. An empty window
// reports no change.
func (w *SampleWindow) Delta(current float64) float64 {
	if len(w.samples) == 0 {
		return 0.0
	}
	return current - w.samples[0].Value
}

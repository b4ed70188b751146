package vitals

import (
	"testing"
	"time"

	"wardwatch/internal/model"
)

func TestNewHistoryRejectsInvalidWindow(t *testing.T) {
	for _, window := range []int{0, -1, -30} {
		if _, err := NewHistory(window); err != ErrInvalidWindow {
			t.Fatalf("window %d: expected ErrInvalidWindow, got %v", window, err)
		}
	}
}

func TestHistoryBoundBelowWindow(t *testing.T) {
	h, err := NewHistory(30)
	if err != nil {
		t.Fatalf("new history: %v", err)
	}
	base := time.Now().UTC()
	for i := 0; i < 10; i++ {
		h.Record(1, model.MetricHeartRate, float64(i), base.Add(time.Duration(i)*time.Second))
	}
	samples := h.Samples(1, model.MetricHeartRate)
	if len(samples) != 10 {
		t.Fatalf("expected 10 samples, got %d", len(samples))
	}
	if samples[0].Value != 0 || samples[9].Value != 9 {
		t.Fatalf("order mismatch: first=%v last=%v", samples[0].Value, samples[9].Value)
	}
}

func TestHistoryFIFOEviction(t *testing.T) {
	h, err := NewHistory(30)
	if err != nil {
		t.Fatalf("new history: %v", err)
	}
	base := time.Now().UTC()
	for i := 1; i <= 35; i++ {
		h.Record(2, model.MetricTemperature, float64(i), base.Add(time.Duration(i)*time.Second))
	}
	samples := h.Samples(2, model.MetricTemperature)
	if len(samples) != 30 {
		t.Fatalf("expected exactly 30 samples, got %d", len(samples))
	}
	// After 35 appends with window 30, entries are appends 6..35 in order.
	for i, s := range samples {
		if want := float64(i + 6); s.Value != want {
			t.Fatalf("sample %d: expected %v, got %v", i, want, s.Value)
		}
	}
}

func TestHistorySeriesAreIndependent(t *testing.T) {
	h, err := NewHistory(5)
	if err != nil {
		t.Fatalf("new history: %v", err)
	}
	now := time.Now().UTC()
	h.Record(1, model.MetricHeartRate, 70, now)
	h.Record(1, model.MetricOxygenSat, 98, now)
	h.Record(2, model.MetricHeartRate, 90, now)

	if n := len(h.Samples(1, model.MetricHeartRate)); n != 1 {
		t.Fatalf("bed 1 heart rate: expected 1 sample, got %d", n)
	}
	if n := len(h.Samples(2, model.MetricHeartRate)); n != 1 {
		t.Fatalf("bed 2 heart rate: expected 1 sample, got %d", n)
	}
	if h.Samples(2, model.MetricOxygenSat) != nil {
		t.Fatalf("bed 2 oxygen should be empty")
	}
}

func TestHistorySnapshotIsACopy(t *testing.T) {
	h, err := NewHistory(5)
	if err != nil {
		t.Fatalf("new history: %v", err)
	}
	now := time.Now().UTC()
	h.Record(1, model.MetricHeartRate, 70, now)
	snap := h.Snapshot()
	snap[1][model.MetricHeartRate][0].Value = 999

	if h.Samples(1, model.MetricHeartRate)[0].Value != 70 {
		t.Fatalf("snapshot mutation leaked into history")
	}
}

func TestHistoryClear(t *testing.T) {
	h, err := NewHistory(5)
	if err != nil {
		t.Fatalf("new history: %v", err)
	}
	h.Record(1, model.MetricHeartRate, 70, time.Now().UTC())
	h.Clear()
	if h.Samples(1, model.MetricHeartRate) != nil {
		t.Fatalf("expected empty history after clear")
	}
}

package vitals

import (
	"errors"
	"sync"
	"time"

	"wardwatch/internal/model"
)

// ErrInvalidWindow is a misconfiguration, surfaced at startup rather than
// silently clamped.
var ErrInvalidWindow = errors.New("history window must be > 0")

// History keeps a bounded FIFO series per bed and metric for charting.
// Append order equals tick order; once a series reaches the window size the
// oldest sample is evicted first.
type History struct {
	mu     sync.RWMutex
	window int
	series map[int]map[string][]model.Sample
}

func NewHistory(window int) (*History, error) {
	if window <= 0 {
		return nil, ErrInvalidWindow
	}
	return &History{
		window: window,
		series: make(map[int]map[string][]model.Sample),
	}, nil
}

func (h *History) Window() int {
	return h.window
}

func (h *History) Record(bed int, metric string, value float64, ts time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	byMetric, ok := h.series[bed]
	if !ok {
		byMetric = make(map[string][]model.Sample)
		h.series[bed] = byMetric
	}
	buf := byMetric[metric]
	sample := model.Sample{Timestamp: ts, Value: value}
	if len(buf) < h.window {
		byMetric[metric] = append(buf, sample)
		return
	}
	copy(buf, buf[1:])
	buf[len(buf)-1] = sample
}

// Samples returns a copy of one series, oldest first.
func (h *History) Samples(bed int, metric string) []model.Sample {
	h.mu.RLock()
	defer h.mu.RUnlock()
	byMetric, ok := h.series[bed]
	if !ok {
		return nil
	}
	buf := byMetric[metric]
	if len(buf) == 0 {
		return nil
	}
	out := make([]model.Sample, len(buf))
	copy(out, buf)
	return out
}

// Snapshot copies every series, keyed bed then metric.
func (h *History) Snapshot() map[int]map[string][]model.Sample {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make(map[int]map[string][]model.Sample, len(h.series))
	for bed, byMetric := range h.series {
		dst := make(map[string][]model.Sample, len(byMetric))
		for metric, buf := range byMetric {
			series := make([]model.Sample, len(buf))
			copy(series, buf)
			dst[metric] = series
		}
		out[bed] = dst
	}
	return out
}

func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.series = make(map[int]map[string][]model.Sample)
}

package ingest

import (
	"context"
	"log/slog"
	"time"

	"wardwatch/internal/model"
)

// SendNonBlocking drops the reading when the channel is full rather than
// stalling an adapter behind a slow consumer.
func SendNonBlocking(ctx context.Context, out chan<- model.VitalReading, r model.VitalReading, logger *slog.Logger) bool {
	select {
	case out <- r:
		return true
	case <-ctx.Done():
		return false
	default:
		if logger != nil {
			logger.Warn("reading channel full, dropping reading", "bed", r.Bed, "timestamp", r.Timestamp)
		}
		return false
	}
}

func BackoffSleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		d = 200 * time.Millisecond
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

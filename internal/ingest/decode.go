package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"wardwatch/internal/model"
)

var errMissingBed = errors.New("reading has no bed identifier")

// DecodeReading parses one JSON-encoded reading from an external monitor
// feed. Bed is mandatory; a missing timestamp is stamped with the current
// time. Vital ranges are not enforced here, the feed owns its own bounds.
func DecodeReading(data []byte) (model.VitalReading, error) {
	var r model.VitalReading
	if err := json.Unmarshal(data, &r); err != nil {
		return model.VitalReading{}, fmt.Errorf("decode reading: %w", err)
	}
	return sanitizeReading(r)
}

// DecodeReadings accepts either a single JSON object or an array of them.
func DecodeReadings(data []byte) ([]model.VitalReading, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, errors.New("empty body")
	}
	if trimmed[0] == '[' {
		var list []model.VitalReading
		if err := json.Unmarshal([]byte(trimmed), &list); err != nil {
			return nil, fmt.Errorf("decode readings: %w", err)
		}
		out := make([]model.VitalReading, 0, len(list))
		for _, r := range list {
			clean, err := sanitizeReading(r)
			if err != nil {
				continue
			}
			out = append(out, clean)
		}
		return out, nil
	}
	r, err := DecodeReading([]byte(trimmed))
	if err != nil {
		return nil, err
	}
	return []model.VitalReading{r}, nil
}

func sanitizeReading(r model.VitalReading) (model.VitalReading, error) {
	if r.Bed < 1 {
		return model.VitalReading{}, errMissingBed
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}
	r.PatientName = strings.TrimSpace(r.PatientName)
	if r.Status == "" {
		r.Status = model.StatusStable
	}
	return r, nil
}

package vitals

import (
	"testing"
	"time"

	"wardwatch/internal/model"
)

func reading(temp float64, spo2 int) model.VitalReading {
	return model.VitalReading{
		Timestamp:    time.Now().UTC(),
		Bed:          3,
		PatientName:  "Ana Morales",
		HeartRate:    80,
		Systolic:     120,
		Diastolic:    75,
		OxygenSat:    spo2,
		TemperatureC: temp,
		Status:       model.StatusStable,
	}
}

func TestHighFeverOnly(t *testing.T) {
	events := EvaluateAlerts(reading(39.0, 95), DefaultThresholds())
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Kind != model.AlertHighFever {
		t.Fatalf("expected high fever, got %s", events[0].Kind)
	}
	if events[0].Value != 39.0 || events[0].Threshold != 38.5 {
		t.Fatalf("unexpected value/threshold: %v/%v", events[0].Value, events[0].Threshold)
	}
}

func TestLowOxygenOnly(t *testing.T) {
	events := EvaluateAlerts(reading(37.0, 88), DefaultThresholds())
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Kind != model.AlertLowOxygen {
		t.Fatalf("expected low oxygen, got %s", events[0].Kind)
	}
}

func TestBothRulesFireFeverFirst(t *testing.T) {
	events := EvaluateAlerts(reading(39.0, 88), DefaultThresholds())
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Kind != model.AlertHighFever || events[1].Kind != model.AlertLowOxygen {
		t.Fatalf("unexpected order: %s, %s", events[0].Kind, events[1].Kind)
	}
}

func TestNoAlertAtThresholdBoundary(t *testing.T) {
	// Fever is strictly above, low oxygen strictly below.
	if events := EvaluateAlerts(reading(38.5, 92), DefaultThresholds()); len(events) != 0 {
		t.Fatalf("expected no events at the boundaries, got %d", len(events))
	}
}

func TestNoAlertForNormalReading(t *testing.T) {
	if events := EvaluateAlerts(reading(37.0, 97), DefaultThresholds()); len(events) != 0 {
		t.Fatalf("expected no events, got %d", len(events))
	}
}

func TestAlertsCarryReadingIdentity(t *testing.T) {
	r := reading(40.1, 99)
	events := EvaluateAlerts(r, DefaultThresholds())
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev := events[0]
	if ev.Bed != r.Bed || ev.PatientName != r.PatientName || !ev.Timestamp.Equal(r.Timestamp) {
		t.Fatalf("event identity mismatch: %+v", ev)
	}
}

func TestCustomThresholds(t *testing.T) {
	th := Thresholds{Fever: 37.0, LowOxygen: 95}
	events := EvaluateAlerts(reading(37.5, 94), th)
	if len(events) != 2 {
		t.Fatalf("expected 2 events with tightened thresholds, got %d", len(events))
	}
}

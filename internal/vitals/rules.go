package vitals

import "wardwatch/internal/model"

// Thresholds are the alert rule boundaries. HighFever fires strictly above
// Fever; LowOxygen fires strictly below LowOxygen.
type Thresholds struct {
	Fever     float64
	LowOxygen float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{Fever: 38.5, LowOxygen: 92}
}

// EvaluateAlerts is a pure function of one reading. Rules are evaluated
// independently and both may fire for the same reading, fever first. There is
// no hysteresis or suppression: a bed that stays past a threshold alerts on
// every tick.
func EvaluateAlerts(r model.VitalReading, th Thresholds) []model.AlertEvent {
	var events []model.AlertEvent
	if r.TemperatureC > th.Fever {
		events = append(events, model.AlertEvent{
			Timestamp:   r.Timestamp,
			Bed:         r.Bed,
			PatientName: r.PatientName,
			Kind:        model.AlertHighFever,
			Value:       r.TemperatureC,
			Threshold:   th.Fever,
		})
	}
	if float64(r.OxygenSat) < th.LowOxygen {
		events = append(events, model.AlertEvent{
			Timestamp:   r.Timestamp,
			Bed:         r.Bed,
			PatientName: r.PatientName,
			Kind:        model.AlertLowOxygen,
			Value:       float64(r.OxygenSat),
			Threshold:   th.LowOxygen,
		})
	}
	return events
}

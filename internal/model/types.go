package model

import "time"

type VitalStatus string

const (
	StatusStable           VitalStatus = "stable"
	StatusUnderObservation VitalStatus = "under_observation"
	StatusCritical         VitalStatus = "critical"
)

// Label returns the display form used in exports and UIs.
func (s VitalStatus) Label() string {
	switch s {
	case StatusStable:
		return "Stable"
	case StatusUnderObservation:
		return "Under Observation"
	case StatusCritical:
		return "Critical"
	}
	return string(s)
}

type VitalReading struct {
	Timestamp    time.Time   `json:"timestamp"`
	Bed          int         `json:"bed"`
	PatientName  string      `json:"patient_name"`
	HeartRate    int         `json:"heart_rate"`
	Systolic     int         `json:"systolic"`
	Diastolic    int         `json:"diastolic"`
	OxygenSat    int         `json:"oxygen_sat"`
	TemperatureC float64     `json:"temperature_c"`
	Status       VitalStatus `json:"status"`
	Source       string      `json:"source,omitempty"`
}

type AlertKind string

const (
	AlertHighFever AlertKind = "high_fever"
	AlertLowOxygen AlertKind = "low_oxygen"
)

// AlertEvent is derived per reading; it carries the offending value and the
// threshold it crossed.
type AlertEvent struct {
	Timestamp   time.Time `json:"timestamp"`
	Bed         int       `json:"bed"`
	PatientName string    `json:"patient_name"`
	Kind        AlertKind `json:"kind"`
	Value       float64   `json:"value"`
	Threshold   float64   `json:"threshold"`
}

// Session is a plain value; the zero value is the unauthenticated session.
type Session struct {
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email,omitempty"`
}

type Credential struct {
	Email    string
	Password string
}

type BedAssignment struct {
	Bed       int    `json:"bed"`
	StaffName string `json:"staff_name"`
}

// Metric names used for per-bed history series.
const (
	MetricHeartRate   = "heart_rate"
	MetricSystolic    = "systolic"
	MetricDiastolic   = "diastolic"
	MetricOxygenSat   = "oxygen_sat"
	MetricTemperature = "temperature_c"
)

func Metrics() []string {
	return []string{MetricHeartRate, MetricSystolic, MetricDiastolic, MetricOxygenSat, MetricTemperature}
}

type Sample struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

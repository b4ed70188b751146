package vitals

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"wardwatch/internal/alerts"
	"wardwatch/internal/config"
	"wardwatch/internal/model"
	"wardwatch/internal/storage"
)

// Engine owns the vitals feed state: the latest reading per bed, per-metric
// history, bed assignments, and the alert rule evaluation on every reading.
// It never schedules itself; ticks are driven by the host.
type Engine struct {
	logger  *slog.Logger
	alerts  *alerts.Store
	store   storage.Store
	gen     *Generator
	history *History
	cfg     atomic.Value

	mu          sync.Mutex
	latestByBed map[int]model.VitalReading
	lastTick    []model.VitalReading
	lastAlerts  []model.AlertEvent
	assignments map[int]string
	started     time.Time
	lastRefresh time.Time
}

// Snapshot is what one refresh pass hands to the presentation layer.
type Snapshot struct {
	Time        time.Time                         `json:"time"`
	Readings    []model.VitalReading              `json:"readings"`
	Alerts      []model.AlertEvent                `json:"alerts"`
	History     map[int]map[string][]model.Sample `json:"history"`
	Beds        []int                             `json:"beds"`
	Assignments []model.BedAssignment             `json:"assignments"`
}

func NewEngine(cfg *config.Config, logger *slog.Logger, alertsStore *alerts.Store, store storage.Store) (*Engine, error) {
	history, err := NewHistory(cfg.History.Window)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		logger:      logger,
		alerts:      alertsStore,
		store:       store,
		gen:         NewGenerator(cfg.Simulator.Seed),
		history:     history,
		latestByBed: make(map[int]model.VitalReading),
		assignments: make(map[int]string),
		started:     time.Now().UTC(),
	}
	e.cfg.Store(cfg)
	return e, nil
}

func (e *Engine) UpdateConfig(cfg *config.Config) {
	e.cfg.Store(cfg)
}

func (e *Engine) config() *config.Config {
	if v := e.cfg.Load(); v != nil {
		return v.(*config.Config)
	}
	return config.DefaultConfig()
}

func (e *Engine) thresholds() Thresholds {
	cfg := e.config()
	th := Thresholds{
		Fever:     cfg.Alerting.FeverThreshold,
		LowOxygen: cfg.Alerting.LowOxygenThreshold,
	}
	if th.Fever == 0 || th.LowOxygen == 0 {
		return DefaultThresholds()
	}
	return th
}

// Start consumes ingested readings until the context is done. Used when a
// real feed replaces the simulator.
func (e *Engine) Start(ctx context.Context, in <-chan model.VitalReading) {
	go func() {
		for {
			select {
			case r := <-in:
				e.ProcessReading(r)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// ProcessReading evaluates the alert rules against one reading, records its
// metrics in history, and updates the latest-per-bed view. Alert evaluation
// for a bed always sees the reading produced for that bed in the same pass.
func (e *Engine) ProcessReading(r model.VitalReading) []model.AlertEvent {
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}
	events := EvaluateAlerts(r, e.thresholds())
	for _, ev := range events {
		e.alerts.Add(ev)
		if e.logger != nil {
			e.logger.Warn("vitals alert",
				"bed", ev.Bed,
				"patient", ev.PatientName,
				"kind", ev.Kind,
				"value", ev.Value,
				"threshold", ev.Threshold,
			)
		}
		if e.store != nil {
			_ = e.store.SaveAlert(context.Background(), ev)
		}
	}
	e.recordHistory(r)

	e.mu.Lock()
	e.latestByBed[r.Bed] = r
	e.mu.Unlock()
	return events
}

// ProcessTick runs one simulated tick: generate a reading per configured bed,
// then push each through the same path ingested readings take.
func (e *Engine) ProcessTick() ([]model.VitalReading, []model.AlertEvent) {
	cfg := e.config()
	readings := e.gen.Tick(cfg.Simulator.Beds)
	tickAlerts := make([]model.AlertEvent, 0)
	for _, r := range readings {
		tickAlerts = append(tickAlerts, e.ProcessReading(r)...)
	}
	e.mu.Lock()
	e.lastTick = readings
	e.lastAlerts = tickAlerts
	e.mu.Unlock()
	if e.store != nil {
		_ = e.store.SaveReadings(context.Background(), readings)
	}
	return readings, tickAlerts
}

func (e *Engine) recordHistory(r model.VitalReading) {
	e.history.Record(r.Bed, model.MetricHeartRate, float64(r.HeartRate), r.Timestamp)
	e.history.Record(r.Bed, model.MetricSystolic, float64(r.Systolic), r.Timestamp)
	e.history.Record(r.Bed, model.MetricDiastolic, float64(r.Diastolic), r.Timestamp)
	e.history.Record(r.Bed, model.MetricOxygenSat, float64(r.OxygenSat), r.Timestamp)
	e.history.Record(r.Bed, model.MetricTemperature, r.TemperatureC, r.Timestamp)
}

// Latest returns the most recent reading per bed, ordered by bed.
func (e *Engine) Latest() []model.VitalReading {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.latestLocked()
}

func (e *Engine) latestLocked() []model.VitalReading {
	out := make([]model.VitalReading, 0, len(e.latestByBed))
	for _, r := range e.latestByBed {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Bed < out[j].Bed })
	return out
}

// ListBeds exposes the current bed set, ordered, for assignment and selection.
func (e *Engine) ListBeds() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	beds := make([]int, 0, len(e.latestByBed))
	for bed := range e.latestByBed {
		beds = append(beds, bed)
	}
	sort.Ints(beds)
	return beds
}

// Assign records a staff-to-bed assignment, last write wins. No history is
// retained.
func (e *Engine) Assign(bed int, staffName string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.assignments[bed] = staffName
}

func (e *Engine) Assignments() []model.BedAssignment {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.assignmentsLocked()
}

func (e *Engine) assignmentsLocked() []model.BedAssignment {
	out := make([]model.BedAssignment, 0, len(e.assignments))
	for bed, staff := range e.assignments {
		out = append(out, model.BedAssignment{Bed: bed, StaffName: staff})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Bed < out[j].Bed })
	return out
}

// Refresh is one synchronous dashboard pass: with the simulator enabled it
// produces a tick, otherwise it snapshots whatever the feed has ingested.
func (e *Engine) Refresh() Snapshot {
	cfg := e.config()
	var readings []model.VitalReading
	var tickAlerts []model.AlertEvent
	if cfg.Simulator.Enabled {
		readings, tickAlerts = e.ProcessTick()
	} else {
		// Ingest mode: report what arrived since the previous pass.
		e.mu.Lock()
		readings = e.latestLocked()
		since := e.lastRefresh
		if since.IsZero() {
			since = e.started
		}
		e.mu.Unlock()
		tickAlerts = e.alerts.Since(since)
	}
	e.mu.Lock()
	e.lastRefresh = time.Now().UTC()
	beds := make([]int, 0, len(e.latestByBed))
	for bed := range e.latestByBed {
		beds = append(beds, bed)
	}
	sort.Ints(beds)
	assignments := e.assignmentsLocked()
	e.mu.Unlock()

	return Snapshot{
		Time:        time.Now().UTC(),
		Readings:    readings,
		Alerts:      tickAlerts,
		History:     e.history.Snapshot(),
		Beds:        beds,
		Assignments: assignments,
	}
}

// Reset drops all feed state, including the ephemeral assignments.
// Configuration is untouched.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.latestByBed = make(map[int]model.VitalReading)
	e.lastTick = nil
	e.lastAlerts = nil
	e.assignments = make(map[int]string)
	e.mu.Unlock()
	e.history.Clear()
}

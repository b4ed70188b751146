package storage

import (
	"context"
	"database/sql"
	"strings"

	_ "modernc.org/sqlite"

	"wardwatch/internal/model"
)

type sqliteStore struct {
	baseStore
}

func NewSQLite(dsn string) (Store, error) {
	if strings.TrimSpace(dsn) == "" {
		dsn = "file:wardwatch.db?_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	return &sqliteStore{baseStore{db: db}}, nil
}

func (s *sqliteStore) Init(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS readings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ts TEXT NOT NULL,
			bed INTEGER NOT NULL,
			patient_name TEXT NOT NULL,
			heart_rate INTEGER NOT NULL,
			systolic INTEGER NOT NULL,
			diastolic INTEGER NOT NULL,
			oxygen_sat INTEGER NOT NULL,
			temperature_c REAL NOT NULL,
			status TEXT NOT NULL,
			source TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_readings_bed_ts ON readings(bed, ts)`,
		`CREATE TABLE IF NOT EXISTS alert_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ts TEXT NOT NULL,
			bed INTEGER NOT NULL,
			patient_name TEXT NOT NULL,
			kind TEXT NOT NULL,
			value REAL NOT NULL,
			threshold REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alert_events_ts ON alert_events(ts)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *sqliteStore) SaveReadings(ctx context.Context, readings []model.VitalReading) error {
	if s.db == nil || len(readings) == 0 {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO readings (ts, bed, patient_name, heart_rate, systolic, diastolic, oxygen_sat, temperature_c, status, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()
	for _, r := range readings {
		if _, err := stmt.ExecContext(ctx,
			r.Timestamp.UTC(),
			r.Bed,
			r.PatientName,
			r.HeartRate,
			r.Systolic,
			r.Diastolic,
			r.OxygenSat,
			r.TemperatureC,
			string(r.Status),
			r.Source,
		); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *sqliteStore) SaveAlert(ctx context.Context, event model.AlertEvent) error {
	if s.db == nil {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO alert_events (ts, bed, patient_name, kind, value, threshold)
		VALUES (?, ?, ?, ?, ?, ?)`,
		event.Timestamp.UTC(),
		event.Bed,
		event.PatientName,
		string(event.Kind),
		event.Value,
		event.Threshold,
	)
	return err
}

package storage

import (
	"context"
	"database/sql"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"

	"wardwatch/internal/model"
)

type postgresStore struct {
	baseStore
}

func NewPostgres(dsn string) (Store, error) {
	if strings.TrimSpace(dsn) == "" {
		dsn = "postgres://localhost:5432/wardwatch?sslmode=disable"
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	return &postgresStore{baseStore{db: db}}, nil
}

func (s *postgresStore) Init(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS readings (
			id BIGSERIAL PRIMARY KEY,
			ts TIMESTAMPTZ NOT NULL,
			bed INTEGER NOT NULL,
			patient_name TEXT NOT NULL,
			heart_rate INTEGER NOT NULL,
			systolic INTEGER NOT NULL,
			diastolic INTEGER NOT NULL,
			oxygen_sat INTEGER NOT NULL,
			temperature_c DOUBLE PRECISION NOT NULL,
			status TEXT NOT NULL,
			source TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_readings_bed_ts ON readings(bed, ts)`,
		`CREATE TABLE IF NOT EXISTS alert_events (
			id BIGSERIAL PRIMARY KEY,
			ts TIMESTAMPTZ NOT NULL,
			bed INTEGER NOT NULL,
			patient_name TEXT NOT NULL,
			kind TEXT NOT NULL,
			value DOUBLE PRECISION NOT NULL,
			threshold DOUBLE PRECISION NOT NULL
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

func (s *postgresStore) SaveReadings(ctx context.Context, readings []model.VitalReading) error {
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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`)
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

func (s *postgresStore) SaveAlert(ctx context.Context, event model.AlertEvent) error {
	if s.db == nil {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO alert_events (ts, bed, patient_name, kind, value, threshold)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		event.Timestamp.UTC(),
		event.Bed,
		event.PatientName,
		string(event.Kind),
		event.Value,
		event.Threshold,
	)
	return err
}

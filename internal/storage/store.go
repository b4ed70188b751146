package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"wardwatch/internal/config"
	"wardwatch/internal/model"
)

// Store persists readings and alert events for offline review. It is
// optional; a nil Store means persistence is disabled.
type Store interface {
	Init(ctx context.Context) error
	Close() error
	SaveReadings(ctx context.Context, readings []model.VitalReading) error
	SaveAlert(ctx context.Context, event model.AlertEvent) error
}

func NewStore(cfg config.StorageConfig) (Store, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	switch strings.ToLower(cfg.Driver) {
	case "sqlite":
		return NewSQLite(cfg.DSN)
	case "postgres", "postgresql":
		return NewPostgres(cfg.DSN)
	default:
		return nil, errors.New("unsupported storage driver")
	}
}

type baseStore struct {
	db *sql.DB
}

func (b *baseStore) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

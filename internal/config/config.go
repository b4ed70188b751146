package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel  string          `json:"log_level" yaml:"log_level"`
	Auth      AuthConfig      `json:"auth" yaml:"auth"`
	Simulator SimulatorConfig `json:"simulator" yaml:"simulator"`
	Alerting  AlertingConfig  `json:"alerting" yaml:"alerting"`
	History   HistoryConfig   `json:"history" yaml:"history"`
	Alerts    AlertsConfig    `json:"alerts" yaml:"alerts"`
	Ingest    IngestConfig    `json:"ingest" yaml:"ingest"`
	Storage   StorageConfig   `json:"storage" yaml:"storage"`
	API       APIConfig       `json:"api" yaml:"api"`
}

type AuthConfig struct {
	UsersFile      string        `json:"users_file" yaml:"users_file"`
	RequiredDomain string        `json:"required_domain" yaml:"required_domain"`
	SessionTTL     time.Duration `json:"session_ttl" yaml:"session_ttl"`
}

type SimulatorConfig struct {
	Enabled      bool          `json:"enabled" yaml:"enabled"`
	Beds         int           `json:"beds" yaml:"beds"`
	TickInterval time.Duration `json:"tick_interval" yaml:"tick_interval"`
	Seed         int64         `json:"seed" yaml:"seed"`
}

type AlertingConfig struct {
	FeverThreshold     float64 `json:"fever_threshold" yaml:"fever_threshold"`
	LowOxygenThreshold float64 `json:"low_oxygen_threshold" yaml:"low_oxygen_threshold"`
}

type HistoryConfig struct {
	Window int `json:"window" yaml:"window"`
}

type AlertsConfig struct {
	StoreLimit int `json:"store_limit" yaml:"store_limit"`
}

type IngestConfig struct {
	ChannelBuffer int         `json:"channel_buffer" yaml:"channel_buffer"`
	REST          RESTConfig  `json:"rest" yaml:"rest"`
	Kafka         KafkaConfig `json:"kafka" yaml:"kafka"`
}

type RESTConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Addr    string `json:"addr" yaml:"addr"`
}

type KafkaConfig struct {
	Enabled bool     `json:"enabled" yaml:"enabled"`
	Brokers []string `json:"brokers" yaml:"brokers"`
	Topic   string   `json:"topic" yaml:"topic"`
	GroupID string   `json:"group_id" yaml:"group_id"`
}

type StorageConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Driver  string `json:"driver" yaml:"driver"`
	DSN     string `json:"dsn" yaml:"dsn"`
}

type APIConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Addr    string `json:"addr" yaml:"addr"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Auth: AuthConfig{
			UsersFile:      "users.csv",
			RequiredDomain: "@hospital.org",
			SessionTTL:     12 * time.Hour,
		},
		Simulator: SimulatorConfig{
			Enabled:      true,
			Beds:         8,
			TickInterval: 3 * time.Second,
		},
		Alerting: AlertingConfig{
			FeverThreshold:     38.5,
			LowOxygenThreshold: 92,
		},
		History: HistoryConfig{Window: 30},
		Alerts:  AlertsConfig{StoreLimit: 1000},
		Ingest: IngestConfig{
			ChannelBuffer: 1024,
			REST:          RESTConfig{Enabled: false, Addr: ":8082"},
			Kafka:         KafkaConfig{Enabled: false},
		},
		Storage: StorageConfig{Enabled: false, Driver: "sqlite", DSN: "file:wardwatch.db?_pragma=busy_timeout(5000)"},
		API:     APIConfig{Enabled: true, Addr: ":8081"},
	}
}

func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()

	trimmed := strings.TrimSpace(string(content))
	if len(trimmed) == 0 {
		return nil, errors.New("config file is empty")
	}
	var decodeErr error
	if looksLikeJSON(trimmed) {
		decodeErr = json.Unmarshal([]byte(trimmed), cfg)
	} else {
		decodeErr = yaml.Unmarshal([]byte(trimmed), cfg)
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	if path == "" || cfg == nil {
		return errors.New("config path or config is empty")
	}
	var data []byte
	var err error
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" {
		data, err = json.MarshalIndent(cfg, "", "  ")
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func looksLikeJSON(s string) bool {
	for _, ch := range s {
		if ch == '{' || ch == '[' {
			return true
		}
		if ch > ' ' {
			return false
		}
	}
	return false
}

func applyDefaults(cfg *Config) {
	if cfg.Auth.SessionTTL <= 0 {
		cfg.Auth.SessionTTL = 12 * time.Hour
	}
	if cfg.Simulator.Beds <= 0 {
		cfg.Simulator.Beds = 8
	}
	if cfg.Simulator.TickInterval <= 0 {
		cfg.Simulator.TickInterval = 3 * time.Second
	}
	if cfg.Alerting.FeverThreshold == 0 {
		cfg.Alerting.FeverThreshold = 38.5
	}
	if cfg.Alerting.LowOxygenThreshold == 0 {
		cfg.Alerting.LowOxygenThreshold = 92
	}
	if cfg.Alerts.StoreLimit <= 0 {
		cfg.Alerts.StoreLimit = 1000
	}
	if cfg.Ingest.ChannelBuffer <= 0 {
		cfg.Ingest.ChannelBuffer = 1024
	}
}

func Validate(cfg *Config) error {
	if cfg.History.Window <= 0 {
		return fmt.Errorf("history.window must be > 0, got %d", cfg.History.Window)
	}
	if cfg.API.Enabled && cfg.API.Addr == "" {
		return errors.New("api.addr required when api.enabled is true")
	}
	if cfg.Ingest.REST.Enabled && cfg.Ingest.REST.Addr == "" {
		return errors.New("ingest.rest.addr required when ingest.rest.enabled is true")
	}
	if cfg.Ingest.Kafka.Enabled {
		if len(cfg.Ingest.Kafka.Brokers) == 0 || cfg.Ingest.Kafka.Topic == "" || cfg.Ingest.Kafka.GroupID == "" {
			return errors.New("ingest.kafka requires brokers, topic, group_id")
		}
	}
	if !cfg.Simulator.Enabled && !cfg.Ingest.REST.Enabled && !cfg.Ingest.Kafka.Enabled {
		return errors.New("no reading source: enable simulator or an ingest adapter")
	}
	if cfg.Alerting.FeverThreshold <= 0 {
		return errors.New("alerting.fever_threshold must be > 0")
	}
	if cfg.Alerting.LowOxygenThreshold <= 0 {
		return errors.New("alerting.low_oxygen_threshold must be > 0")
	}
	if cfg.Storage.Enabled {
		switch strings.ToLower(cfg.Storage.Driver) {
		case "sqlite", "postgres", "postgresql":
		default:
			return fmt.Errorf("storage.driver %q is not supported", cfg.Storage.Driver)
		}
	}
	return nil
}

// Manager holds the active config behind an atomic value so handlers and the
// engine can read it without locking while reloads swap it underneath.
type Manager struct {
	path    string
	cfg     atomic.Value
	modTime time.Time
}

func NewManager(path string) (*Manager, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	m := &Manager{path: path}
	m.cfg.Store(cfg)
	if info, err := os.Stat(path); err == nil {
		m.modTime = info.ModTime()
	}
	return m, nil
}

// NewStaticManager wraps an in-memory config with no backing file. Reload and
// Watch are no-ops for such a manager.
func NewStaticManager(cfg *Config) *Manager {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	m := &Manager{}
	m.cfg.Store(cfg)
	return m
}

func (m *Manager) Get() *Config {
	if v := m.cfg.Load(); v != nil {
		return v.(*Config)
	}
	return DefaultConfig()
}

func (m *Manager) Path() string {
	return m.path
}

func (m *Manager) Reload() (*Config, error) {
	if m.path == "" {
		return m.Get(), nil
	}
	cfg, err := Load(m.path)
	if err != nil {
		return nil, err
	}
	m.cfg.Store(cfg)
	if info, err := os.Stat(m.path); err == nil {
		m.modTime = info.ModTime()
	}
	return cfg, nil
}

func (m *Manager) Update(cfg *Config) error {
	if cfg == nil {
		return errors.New("nil config")
	}
	if m.path != "" {
		if err := Save(m.path, cfg); err != nil {
			return err
		}
	}
	m.cfg.Store(cfg)
	if m.path != "" {
		if info, err := os.Stat(m.path); err == nil {
			m.modTime = info.ModTime()
		}
	}
	return nil
}

func (m *Manager) NeedsReload() (bool, error) {
	if m.path == "" {
		return false, nil
	}
	info, err := os.Stat(m.path)
	if err != nil {
		return false, err
	}
	return info.ModTime().After(m.modTime), nil
}

func (m *Manager) Watch(interval time.Duration, onReload func(*Config), onError func(error), stop <-chan struct{}) {
	if m.path == "" {
		return
	}
	if interval <= 0 {
		interval = 3 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			needs, err := m.NeedsReload()
			if err != nil {
				if onError != nil {
					onError(err)
				}
				continue
			}
			if !needs {
				continue
			}
			cfg, err := m.Reload()
			if err != nil {
				if onError != nil {
					onError(err)
				}
				continue
			}
			if onReload != nil {
				onReload(cfg)
			}
		case <-stop:
			return
		}
	}
}

func ResolvePath(path string) string {
	if path == "" {
		return path
	}
	if filepath.IsAbs(path) {
		return path
	}
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	return filepath.Join(cwd, path)
}

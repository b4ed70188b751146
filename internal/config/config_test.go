package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := Validate(DefaultConfig()); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidateRejectsNonPositiveWindow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.History.Window = 0
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected validation error for window 0")
	}
	cfg.History.Window = -5
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected validation error for negative window")
	}
}

func TestValidateRejectsKafkaWithoutBrokers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Ingest.Kafka.Enabled = true
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected validation error for kafka without brokers")
	}
}

func TestValidateRequiresAReadingSource(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Simulator.Enabled = false
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected validation error with no reading source")
	}
}

func TestValidateRejectsUnknownStorageDriver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Enabled = true
	cfg.Storage.Driver = "oracle"
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected validation error for unknown driver")
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wardwatch.yaml")
	content := `
log_level: debug
auth:
  users_file: staff.csv
  required_domain: "@hospitalmex.org"
simulator:
  enabled: true
  beds: 16
  tick_interval: 2s
history:
  window: 60
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level: %q", cfg.LogLevel)
	}
	if cfg.Auth.RequiredDomain != "@hospitalmex.org" || cfg.Auth.UsersFile != "staff.csv" {
		t.Fatalf("auth section: %+v", cfg.Auth)
	}
	if cfg.Simulator.Beds != 16 || cfg.Simulator.TickInterval != 2*time.Second {
		t.Fatalf("simulator section: %+v", cfg.Simulator)
	}
	if cfg.History.Window != 60 {
		t.Fatalf("history window: %d", cfg.History.Window)
	}
	// Untouched sections keep their defaults.
	if cfg.Alerting.FeverThreshold != 38.5 {
		t.Fatalf("fever threshold default: %v", cfg.Alerting.FeverThreshold)
	}
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wardwatch.json")
	content := `{"log_level":"warn","history":{"window":15}}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "warn" || cfg.History.Window != 15 {
		t.Fatalf("json config not applied: %+v", cfg)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("history:\n  window: -1\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected load to reject invalid window")
	}
}

func TestStaticManager(t *testing.T) {
	m := NewStaticManager(nil)
	if m.Get() == nil {
		t.Fatalf("static manager should serve defaults")
	}
	if needs, err := m.NeedsReload(); err != nil || needs {
		t.Fatalf("static manager never needs reload: %v %v", needs, err)
	}
}

func TestManagerReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wardwatch.yaml")
	if err := os.WriteFile(path, []byte("log_level: info\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if err := os.WriteFile(path, []byte("log_level: error\n"), 0o600); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}
	cfg, err := m.Reload()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if cfg.LogLevel != "error" {
		t.Fatalf("reload did not apply: %q", cfg.LogLevel)
	}
}

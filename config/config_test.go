package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func newTestManager() *Manager {
	return &Manager{viper: viper.New()}
}

func TestLoadEmbeddedDefaults(t *testing.T) {
	m := newTestManager()
	if err := m.Load(""); err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	cfg := m.Get()
	if cfg.Monitoring.Interval != 15*time.Second {
		t.Errorf("interval = %v, want 15s", cfg.Monitoring.Interval)
	}
	if cfg.Monitoring.HistoryCapacity != 240 {
		t.Errorf("history_capacity = %d, want 240", cfg.Monitoring.HistoryCapacity)
	}
	if cfg.Monitoring.WindowCapacity != 5 {
		t.Errorf("window_capacity = %d, want 5", cfg.Monitoring.WindowCapacity)
	}
	if cfg.Thresholds.CPU.Warning != 80 {
		t.Errorf("cpu warning = %v, want 80", cfg.Thresholds.CPU.Warning)
	}
	if cfg.Thresholds.Battery.Critical != 10 {
		t.Errorf("battery critical = %v, want 10", cfg.Thresholds.Battery.Critical)
	}
	if cfg.Alerts.Cooldown != time.Minute {
		t.Errorf("alert cooldown = %v, want 1m", cfg.Alerts.Cooldown)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		t.Errorf("default config failed validation: %v", errs)
	}
}

func TestLoadCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	m := newTestManager()
	if err := m.Load(path); err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config file not created: %v", err)
	}
	if errs := m.Get().Validate(); len(errs) > 0 {
		t.Errorf("created config failed validation: %v", errs)
	}
}

func TestLoadUserOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("monitoring:\n  interval: 30s\nthresholds:\n  cpu:\n    warning: 75\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	m := newTestManager()
	if err := m.Load(path); err != nil {
		t.Fatalf("Load error: %v", err)
	}

	cfg := m.Get()
	if cfg.Monitoring.Interval != 30*time.Second {
		t.Errorf("interval = %v, want 30s", cfg.Monitoring.Interval)
	}
	if cfg.Thresholds.CPU.Warning != 75 {
		t.Errorf("cpu warning = %v, want 75", cfg.Thresholds.CPU.Warning)
	}
	// Untouched keys keep their defaults.
	if cfg.Thresholds.CPU.Critical != 90 {
		t.Errorf("cpu critical = %v, want default 90", cfg.Thresholds.CPU.Critical)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		m := newTestManager()
		if err := m.Load(""); err != nil {
			t.Fatal(err)
		}
		return m.Get()
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"sub-second interval", func(c *Config) { c.Monitoring.Interval = 500 * time.Millisecond }},
		{"zero history", func(c *Config) { c.Monitoring.HistoryCapacity = 0 }},
		{"window too small", func(c *Config) { c.Monitoring.WindowCapacity = 1 }},
		{"process count out of range", func(c *Config) { c.Monitoring.TopProcessCount = 100 }},
		{"cpu thresholds out of range", func(c *Config) { c.Thresholds.CPU.Critical = 150 }},
		{"cpu thresholds not ascending", func(c *Config) { c.Thresholds.CPU.Caution = 95 }},
		{"battery thresholds not descending", func(c *Config) { c.Thresholds.Battery.Warning = 60 }},
		{"temperature not ascending", func(c *Config) { c.Thresholds.Temperature.Warning = 5 }},
		{"sub-second cooldown", func(c *Config) { c.Alerts.Cooldown = 100 * time.Millisecond }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			if errs := cfg.Validate(); len(errs) == 0 {
				t.Error("Validate() accepted an invalid config")
			}
		})
	}
}

// Package config provides configuration management for syshealth.
package config

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yaml
var defaultConfig embed.FS

// Config holds all application configuration.
type Config struct {
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
	Thresholds ThresholdsConfig `mapstructure:"thresholds"`
	Alerts     AlertsConfig     `mapstructure:"alerts"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Dashboard  DashboardConfig  `mapstructure:"dashboard"`
}

// MonitoringConfig holds sampling-related settings.
type MonitoringConfig struct {
	// Interval is how often a sampling cycle runs.
	Interval time.Duration `mapstructure:"interval"`
	// HistoryCapacity is how many cycle results the ring buffer keeps.
	HistoryCapacity int `mapstructure:"history_capacity"`
	// WindowCapacity is the per-metric trend window size.
	WindowCapacity int `mapstructure:"window_capacity"`
	// EnableProcesses enables the top-process listing.
	EnableProcesses bool `mapstructure:"enable_processes"`
	// TopProcessCount is how many top processes to report per cycle.
	TopProcessCount int `mapstructure:"top_process_count"`
	// EnableBattery enables the battery probe.
	EnableBattery bool `mapstructure:"enable_battery"`
}

// Cutoffs holds the three band boundaries for one metric kind.
type Cutoffs struct {
	Caution  float64 `mapstructure:"caution"`
	Warning  float64 `mapstructure:"warning"`
	Critical float64 `mapstructure:"critical"`
}

// ThresholdsConfig holds the per-kind health band cutoffs. For battery
// the cutoffs descend: lower readings are worse.
type ThresholdsConfig struct {
	CPU         Cutoffs `mapstructure:"cpu"`
	Memory      Cutoffs `mapstructure:"memory"`
	Disk        Cutoffs `mapstructure:"disk"`
	Temperature Cutoffs `mapstructure:"temperature"`
	Battery     Cutoffs `mapstructure:"battery"`
}

// AlertsConfig holds alert settings.
type AlertsConfig struct {
	// Enabled enables or disables alerts.
	Enabled bool `mapstructure:"enabled"`
	// Cooldown is the minimum time between repeated alerts for the
	// same metric kind.
	Cooldown time.Duration `mapstructure:"cooldown"`
}

// LoggingConfig holds logging-related settings.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	Level string `mapstructure:"level"`
	// ToFile enables logging to a file.
	ToFile bool `mapstructure:"to_file"`
	// FilePath is the log file path (relative to config dir if not absolute).
	FilePath string `mapstructure:"file_path"`
	// CSVExport enables CSV export of cycle results.
	CSVExport bool `mapstructure:"csv_export"`
	// CSVPath is the path to the CSV file.
	CSVPath string `mapstructure:"csv_path"`
	// MaxFileSize is the maximum log file size before rotation.
	MaxFileSize string `mapstructure:"max_file_size"`
	// MaxAge is the maximum age of rotated log files in days.
	MaxAge int `mapstructure:"max_age"`
	// MaxBackups is the maximum number of rotated log files retained.
	MaxBackups int `mapstructure:"max_backups"`
}

// DashboardConfig holds terminal dashboard settings.
type DashboardConfig struct {
	// RefreshRate is how often the dashboard redraws between samples.
	RefreshRate time.Duration `mapstructure:"refresh_rate"`
	// Color enables colored output.
	Color bool `mapstructure:"color"`
}

// Manager handles configuration loading and saving.
type Manager struct {
	mu       sync.RWMutex
	config   *Config
	viper    *viper.Viper
	filePath string
}

var (
	instance *Manager
	once     sync.Once
)

// GetManager returns the singleton configuration manager instance.
func GetManager() *Manager {
	once.Do(func() {
		instance = &Manager{
			viper: viper.New(),
		}
	})
	return instance
}

// Load loads the configuration from the specified file path. If the
// file doesn't exist, a default configuration file is created.
func (m *Manager) Load(configPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.filePath = configPath
	m.viper.SetConfigType("yaml")
	m.setDefaults()

	if configPath != "" {
		m.viper.SetConfigFile(configPath)
		if err := m.viper.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				if err := m.createDefaultConfig(configPath); err != nil {
					return fmt.Errorf("failed to create default config: %w", err)
				}
			} else {
				return fmt.Errorf("failed to read config: %w", err)
			}
		}
	} else {
		data, err := defaultConfig.ReadFile("config.yaml")
		if err != nil {
			return fmt.Errorf("failed to read embedded config: %w", err)
		}
		if err := m.viper.ReadConfig(bytes.NewReader(data)); err != nil {
			return fmt.Errorf("failed to parse embedded config: %w", err)
		}
	}

	m.config = &Config{}
	if err := m.viper.Unmarshal(m.config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}

// Save saves the current configuration to the file.
func (m *Manager) Save() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.filePath == "" {
		return fmt.Errorf("no config file path set")
	}
	return m.viper.WriteConfig()
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// GetConfigDir returns the configuration directory path.
func GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "syshealth"), nil
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// setDefaults sets default configuration values.
func (m *Manager) setDefaults() {
	// Monitoring defaults
	m.viper.SetDefault("monitoring.interval", "15s")
	m.viper.SetDefault("monitoring.history_capacity", 240)
	m.viper.SetDefault("monitoring.window_capacity", 5)
	m.viper.SetDefault("monitoring.enable_processes", true)
	m.viper.SetDefault("monitoring.top_process_count", 5)
	m.viper.SetDefault("monitoring.enable_battery", true)

	// Threshold defaults (caution/warning/critical; battery descends)
	m.viper.SetDefault("thresholds.cpu.caution", 60.0)
	m.viper.SetDefault("thresholds.cpu.warning", 80.0)
	m.viper.SetDefault("thresholds.cpu.critical", 90.0)
	m.viper.SetDefault("thresholds.memory.caution", 70.0)
	m.viper.SetDefault("thresholds.memory.warning", 85.0)
	m.viper.SetDefault("thresholds.memory.critical", 95.0)
	m.viper.SetDefault("thresholds.disk.caution", 70.0)
	m.viper.SetDefault("thresholds.disk.warning", 85.0)
	m.viper.SetDefault("thresholds.disk.critical", 95.0)
	m.viper.SetDefault("thresholds.temperature.caution", 70.0)
	m.viper.SetDefault("thresholds.temperature.warning", 85.0)
	m.viper.SetDefault("thresholds.temperature.critical", 100.0)
	m.viper.SetDefault("thresholds.battery.caution", 50.0)
	m.viper.SetDefault("thresholds.battery.warning", 20.0)
	m.viper.SetDefault("thresholds.battery.critical", 10.0)

	// Alerts defaults
	m.viper.SetDefault("alerts.enabled", true)
	m.viper.SetDefault("alerts.cooldown", "60s")

	// Logging defaults
	m.viper.SetDefault("logging.level", "info")
	m.viper.SetDefault("logging.to_file", true)
	m.viper.SetDefault("logging.file_path", "logs/syshealth.log")
	m.viper.SetDefault("logging.csv_export", false)
	m.viper.SetDefault("logging.csv_path", "logs/metrics.csv")
	m.viper.SetDefault("logging.max_file_size", "10MB")
	m.viper.SetDefault("logging.max_age", 7)
	m.viper.SetDefault("logging.max_backups", 5)

	// Dashboard defaults
	m.viper.SetDefault("dashboard.refresh_rate", "1s")
	m.viper.SetDefault("dashboard.color", true)
}

// createDefaultConfig writes the embedded default config file.
func (m *Manager) createDefaultConfig(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := defaultConfig.ReadFile("config.yaml")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// validCutoffs checks a percent-scale cutoff triple.
func validCutoffs(c Cutoffs) bool {
	return c.Caution >= 0 && c.Caution <= 100 &&
		c.Warning >= 0 && c.Warning <= 100 &&
		c.Critical >= 0 && c.Critical <= 100
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() []error {
	var errs []error

	if c.Monitoring.Interval < time.Second {
		errs = append(errs, fmt.Errorf("monitoring interval must be at least 1s"))
	}
	if c.Monitoring.HistoryCapacity < 1 {
		errs = append(errs, fmt.Errorf("history_capacity must be at least 1"))
	}
	if c.Monitoring.WindowCapacity < 2 {
		errs = append(errs, fmt.Errorf("window_capacity must be at least 2"))
	}
	if c.Monitoring.TopProcessCount < 1 || c.Monitoring.TopProcessCount > 50 {
		errs = append(errs, fmt.Errorf("top_process_count must be between 1 and 50"))
	}

	// Ascending tables must ascend, battery must descend.
	for name, cut := range map[string]Cutoffs{
		"cpu": c.Thresholds.CPU, "memory": c.Thresholds.Memory, "disk": c.Thresholds.Disk,
	} {
		if !validCutoffs(cut) {
			errs = append(errs, fmt.Errorf("%s thresholds must be between 0 and 100", name))
		}
		if !(cut.Caution <= cut.Warning && cut.Warning <= cut.Critical) {
			errs = append(errs, fmt.Errorf("%s thresholds must ascend caution <= warning <= critical", name))
		}
	}
	t := c.Thresholds.Temperature
	if !(t.Caution <= t.Warning && t.Warning <= t.Critical) {
		errs = append(errs, fmt.Errorf("temperature thresholds must ascend caution <= warning <= critical"))
	}
	b := c.Thresholds.Battery
	if !validCutoffs(b) {
		errs = append(errs, fmt.Errorf("battery thresholds must be between 0 and 100"))
	}
	if !(b.Caution >= b.Warning && b.Warning >= b.Critical) {
		errs = append(errs, fmt.Errorf("battery thresholds must descend caution >= warning >= critical"))
	}

	if c.Alerts.Cooldown < time.Second {
		errs = append(errs, fmt.Errorf("alert cooldown must be at least 1s"))
	}

	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[c.Logging.Level] {
		errs = append(errs, fmt.Errorf("invalid log level: %s", c.Logging.Level))
	}

	return errs
}

// Package alerter raises local alerts when metrics reach the warning
// or critical health bands.
package alerter

import (
	"fmt"
	"sync"
	"time"

	"github.com/pulseview/syshealth/config"
	"github.com/pulseview/syshealth/logger"
	"github.com/pulseview/syshealth/models"
)

const historyLimit = 100

// Handler receives each raised alert.
type Handler func(alert *models.Alert)

// Alerter inspects cycle results and raises alerts for metrics at or
// above the warning band, with a per-kind cooldown.
type Alerter struct {
	config *config.AlertsConfig
	log    *logger.Logger

	handlers   []Handler
	handlersMu sync.RWMutex

	lastAlerts map[models.MetricKind]time.Time
	alertsMu   sync.Mutex

	history   []*models.Alert
	historyMu sync.RWMutex
}

// New creates an Alerter with the given configuration.
func New(cfg *config.AlertsConfig) *Alerter {
	return &Alerter{
		config:     cfg,
		log:        logger.Get(),
		lastAlerts: make(map[models.MetricKind]time.Time),
		history:    make([]*models.Alert, 0, historyLimit),
	}
}

// AddHandler registers an alert handler.
func (a *Alerter) AddHandler(handler Handler) {
	a.handlersMu.Lock()
	defer a.handlersMu.Unlock()
	a.handlers = append(a.handlers, handler)
}

// Check inspects one cycle result and raises an alert for every kind
// at or above the warning band.
func (a *Alerter) Check(r *models.Result) {
	if !a.config.Enabled {
		return
	}

	for _, kind := range models.Kinds() {
		band := r.Band(kind)
		if !band.AtLeast(models.BandWarning) {
			continue
		}

		value := 0.0
		if v := metricValue(r, kind); v != nil {
			value = *v
		}
		a.trigger(kind, band, value, r.Snapshot.Timestamp)
	}
}

func metricValue(r *models.Result, kind models.MetricKind) *float64 {
	s := &r.Snapshot
	switch kind {
	case models.KindCPU:
		if s.CPU != nil {
			return &s.CPU.AveragePercent
		}
	case models.KindMemory:
		if s.Memory != nil {
			return &s.Memory.UsedPercent
		}
	case models.KindDisk:
		if s.Disk != nil {
			return &s.Disk.UsedPercent
		}
	case models.KindTemperature:
		if s.CPU != nil {
			return s.CPU.TemperatureC
		}
	case models.KindBattery:
		if s.Battery != nil {
			return &s.Battery.Percent
		}
	}
	return nil
}

func alertMessage(kind models.MetricKind, band models.HealthBand, value float64) string {
	switch kind {
	case models.KindTemperature:
		return fmt.Sprintf("CPU temperature is %.1f°C (%s)", value, band)
	case models.KindBattery:
		return fmt.Sprintf("Battery level is %.0f%% (%s)", value, band)
	}
	return fmt.Sprintf("%s usage is %.1f%% (%s)", kind, value, band)
}

// trigger raises an alert unless the kind is still in cooldown.
func (a *Alerter) trigger(kind models.MetricKind, band models.HealthBand, value float64, at time.Time) {
	a.alertsMu.Lock()
	if last, ok := a.lastAlerts[kind]; ok {
		if at.Sub(last) < a.config.Cooldown {
			a.alertsMu.Unlock()
			return
		}
	}
	a.lastAlerts[kind] = at
	a.alertsMu.Unlock()

	alert := &models.Alert{
		Kind:      kind,
		Band:      band,
		Timestamp: at,
		Message:   alertMessage(kind, band, value),
		Value:     value,
	}

	a.historyMu.Lock()
	a.history = append(a.history, alert)
	if len(a.history) > historyLimit {
		a.history = a.history[len(a.history)-historyLimit:]
	}
	a.historyMu.Unlock()

	a.log.Alert(kind.String(), alert.Message)

	a.handlersMu.RLock()
	handlers := make([]Handler, len(a.handlers))
	copy(handlers, a.handlers)
	a.handlersMu.RUnlock()

	for _, handler := range handlers {
		go handler(alert)
	}
}

// History returns the raised alerts, oldest first.
func (a *Alerter) History() []*models.Alert {
	a.historyMu.RLock()
	defer a.historyMu.RUnlock()

	out := make([]*models.Alert, len(a.history))
	copy(out, a.history)
	return out
}

// Recent returns alerts raised within the given duration before now.
func (a *Alerter) Recent(window time.Duration, now time.Time) []*models.Alert {
	a.historyMu.RLock()
	defer a.historyMu.RUnlock()

	cutoff := now.Add(-window)
	var out []*models.Alert
	for _, alert := range a.history {
		if alert.Timestamp.After(cutoff) {
			out = append(out, alert)
		}
	}
	return out
}

// ResetCooldowns clears all cooldown timers.
func (a *Alerter) ResetCooldowns() {
	a.alertsMu.Lock()
	defer a.alertsMu.Unlock()
	a.lastAlerts = make(map[models.MetricKind]time.Time)
}

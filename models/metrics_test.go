package models

import (
	"testing"
	"time"
)

func TestHealthBandAtLeast(t *testing.T) {
	tests := []struct {
		band  HealthBand
		other HealthBand
		want  bool
	}{
		{BandCritical, BandWarning, true},
		{BandWarning, BandWarning, true},
		{BandCaution, BandWarning, false},
		{BandHealthy, BandWarning, false},
		{BandUnknown, BandWarning, false},
		{BandUnknown, BandUnknown, false},
		{BandHealthy, BandHealthy, true},
	}
	for _, tt := range tests {
		if got := tt.band.AtLeast(tt.other); got != tt.want {
			t.Errorf("%v.AtLeast(%v) = %v, want %v", tt.band, tt.other, got, tt.want)
		}
	}
}

func TestMetricKindDescending(t *testing.T) {
	for _, kind := range Kinds() {
		want := kind == KindBattery
		if got := kind.Descending(); got != want {
			t.Errorf("%v.Descending() = %v, want %v", kind, got, want)
		}
	}
}

func TestTrendKindsExcludeBattery(t *testing.T) {
	for _, kind := range TrendKinds() {
		if kind == KindBattery {
			t.Error("battery should not be trend-tracked")
		}
	}
}

func TestResultIssues(t *testing.T) {
	r := &Result{
		Health: map[MetricKind]HealthBand{
			KindCPU:     BandCritical,
			KindMemory:  BandCaution,
			KindDisk:    BandWarning,
			KindBattery: BandUnknown,
		},
	}
	issues := r.Issues()
	if len(issues) != 2 {
		t.Fatalf("Issues() = %v, want cpu and disk", issues)
	}
	if issues[0] != KindCPU || issues[1] != KindDisk {
		t.Errorf("Issues() = %v, want [cpu disk] in kind order", issues)
	}
}

func TestHostUptime(t *testing.T) {
	boot := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	h := &HostInfo{BootTime: boot}
	now := boot.Add(90 * time.Minute)
	if got := h.Uptime(now); got != 90*time.Minute {
		t.Errorf("Uptime = %v, want 90m", got)
	}

	var nilHost *HostInfo
	if got := nilHost.Uptime(now); got != 0 {
		t.Errorf("nil host uptime = %v, want 0", got)
	}
}

func TestResultClone(t *testing.T) {
	temp := 65.0
	r := &Result{
		Snapshot: Snapshot{
			Timestamp: time.Now(),
			CPU: &CPUStats{
				AveragePercent: 50,
				PerCorePercent: []float64{40, 60},
				TemperatureC:   &temp,
			},
			Memory:       &MemoryStats{UsedPercent: 30},
			TopProcesses: []ProcessInfo{{Name: "proc", PID: 1}},
		},
		Rates:  Rates{DiskReadBps: 100},
		Health: map[MetricKind]HealthBand{KindCPU: BandHealthy},
		Trends: map[MetricKind]TrendVerdict{KindCPU: TrendStable},
	}

	clone := r.Clone()

	clone.Snapshot.CPU.AveragePercent = 99
	clone.Snapshot.CPU.PerCorePercent[0] = 99
	*clone.Snapshot.CPU.TemperatureC = 99
	clone.Health[KindCPU] = BandCritical
	clone.Snapshot.TopProcesses[0].Name = "other"

	if r.Snapshot.CPU.AveragePercent != 50 {
		t.Error("clone shares CPUStats")
	}
	if r.Snapshot.CPU.PerCorePercent[0] != 40 {
		t.Error("clone shares per-core slice")
	}
	if *r.Snapshot.CPU.TemperatureC != 65 {
		t.Error("clone shares temperature pointer")
	}
	if r.Health[KindCPU] != BandHealthy {
		t.Error("clone shares health map")
	}
	if r.Snapshot.TopProcesses[0].Name != "proc" {
		t.Error("clone shares process slice")
	}
}

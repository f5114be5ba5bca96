package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/pulseview/syshealth/models"
)

func reportResult() *models.Result {
	return &models.Result{
		Snapshot: models.Snapshot{
			Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			CPU:       &models.CPUStats{AveragePercent: 35.5, Cores: 4, Threads: 8},
			Memory:    &models.MemoryStats{UsedPercent: 55, UsedBytes: 8 << 30, TotalBytes: 16 << 30},
			Disk:      &models.DiskStats{Path: "/", UsedPercent: 62, UsedBytes: 100 << 30, TotalBytes: 500 << 30},
			Network:   &models.NetworkStats{BytesSent: 1 << 20, BytesRecv: 10 << 20, ActiveInterfaces: 2, TotalInterfaces: 3},
			Host:      &models.HostInfo{Hostname: "box", Platform: "ubuntu", Arch: "amd64", BootTime: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)},
			TopProcesses: []models.ProcessInfo{
				{Name: "chrome", PID: 1234, CPUPercent: 45.2, MemoryPercent: 12.1, Heavy: true},
			},
		},
		Health: map[models.MetricKind]models.HealthBand{
			models.KindCPU:    models.BandHealthy,
			models.KindMemory: models.BandHealthy,
			models.KindDisk:   models.BandHealthy,
		},
		Trends: map[models.MetricKind]models.TrendVerdict{
			models.KindCPU: models.TrendStable,
		},
	}
}

func TestReportSections(t *testing.T) {
	out := Report(reportResult())

	for _, want := range []string{
		"SYSTEM HEALTH REPORT",
		"[SYSTEM]", "[CPU]", "[MEMORY]", "[DISK]", "[NETWORK]", "[BATTERY]", "[TOP PROCESSES]",
		"box", "35.5%", "chrome",
		"ALL SYSTEMS HEALTHY",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}

	if !strings.Contains(out, "N/A (no battery detected)") {
		t.Error("absent battery should render as N/A")
	}
}

func TestReportIssues(t *testing.T) {
	r := reportResult()
	r.Health[models.KindDisk] = models.BandCritical

	out := Report(r)
	if strings.Contains(out, "ALL SYSTEMS HEALTHY") {
		t.Error("report with a critical band should not claim healthy")
	}
	if !strings.Contains(out, "ISSUES DETECTED") || !strings.Contains(out, "[CRITICAL] DISK") {
		t.Errorf("report missing the issue section:\n%s", out)
	}
	// Critical disk advice comes from the recommendation table.
	if !strings.Contains(out, "disk almost full") {
		t.Error("report missing recommendations")
	}
}

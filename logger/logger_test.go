package logger

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pulseview/syshealth/models"
)

func sampleResult() *models.Result {
	temp := 58.5
	return &models.Result{
		Snapshot: models.Snapshot{
			Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			CPU:       &models.CPUStats{AveragePercent: 42.5, TemperatureC: &temp},
			Memory:    &models.MemoryStats{UsedPercent: 61.2, SwapPercent: 3.4},
			Disk:      &models.DiskStats{UsedPercent: 70.1},
			Battery:   &models.BatteryStats{Percent: 88},
		},
		Rates: models.Rates{
			DiskReadBps:    1000,
			DiskWriteBps:   2000,
			NetUploadBps:   300,
			NetDownloadBps: 400,
		},
		Health: map[models.MetricKind]models.HealthBand{
			models.KindCPU: models.BandHealthy,
		},
	}
}

func TestCSVRecord(t *testing.T) {
	rec := csvRecord(sampleResult())
	if len(rec) != len(csvHeader) {
		t.Fatalf("record has %d fields, header has %d", len(rec), len(csvHeader))
	}

	want := []string{
		"2026-03-01 12:00:00", "42.5", "HEALTHY", "58.5", "61.2", "3.4",
		"70.1", "1000", "2000", "300", "400", "88",
	}
	for i := range want {
		if rec[i] != want[i] {
			t.Errorf("field %s = %q, want %q", csvHeader[i], rec[i], want[i])
		}
	}
}

// Absent readings render as empty fields so a spreadsheet can tell "no
// sensor" from an idle zero.
func TestCSVRecordAbsentFields(t *testing.T) {
	r := &models.Result{
		Snapshot: models.Snapshot{Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
		Health:   map[models.MetricKind]models.HealthBand{},
	}
	rec := csvRecord(r)
	if len(rec) != len(csvHeader) {
		t.Fatalf("record has %d fields, header has %d", len(rec), len(csvHeader))
	}

	for i, name := range csvHeader {
		switch name {
		case "Timestamp":
			if rec[i] == "" {
				t.Error("timestamp should never be empty")
			}
		case "CPU_Band":
			if rec[i] != "UNKNOWN" {
				t.Errorf("CPU_Band = %q, want UNKNOWN", rec[i])
			}
		case "Disk_Read_Bps", "Disk_Write_Bps", "Net_Up_Bps", "Net_Down_Bps":
			if rec[i] != "0" {
				t.Errorf("%s = %q, want 0", name, rec[i])
			}
		default:
			if rec[i] != "" {
				t.Errorf("%s = %q, want empty for absent reading", name, rec[i])
			}
		}
	}
}

func TestExportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	l := Get()

	if err := l.ExportCSV(path, []*models.Result{sampleResult(), sampleResult()}); err != nil {
		t.Fatalf("ExportCSV error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header plus 2 records", len(rows))
	}
	if rows[0][0] != "Timestamp" {
		t.Errorf("first row = %v, want header", rows[0])
	}
}

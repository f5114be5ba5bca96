package engine

import (
	"testing"

	"github.com/pulseview/syshealth/models"
)

func TestHistoryWindowEviction(t *testing.T) {
	w := NewHistoryWindow(3)
	for _, v := range []float64{1, 2, 3, 4, 5} {
		w.Append(v)
		if w.Len() > w.Capacity() {
			t.Fatalf("length %d exceeded capacity %d", w.Len(), w.Capacity())
		}
	}

	got := w.Values()
	want := []float64{3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("Values() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Values() = %v, want %v", got, want)
		}
	}
}

func TestHistoryWindowDefaultCapacity(t *testing.T) {
	w := NewHistoryWindow(0)
	if w.Capacity() != 5 {
		t.Errorf("default capacity = %d, want 5", w.Capacity())
	}
}

func TestTrackerInsufficientData(t *testing.T) {
	tr := NewTracker(5)
	if got := tr.Observe(models.KindCPU, 50); got != models.TrendInsufficientData {
		t.Errorf("first observation = %v, want insufficient data", got)
	}
}

// A rise from a stable baseline crosses the deadband and reads as
// increasing: after 50, 55, 58 the lookback mean is 54.33, so 70 is
// well past the 10% margin.
func TestTrackerRisingSequence(t *testing.T) {
	tr := NewTracker(5)

	verdicts := []models.TrendVerdict{
		models.TrendInsufficientData, // 50
		models.TrendStable,           // 55 vs mean(50), exactly on the bound
		models.TrendIncreasing,       // 58 vs mean(50, 55) = 52.5
		models.TrendIncreasing,       // 70 vs mean(50, 55, 58) = 54.33
	}
	for i, v := range []float64{50, 55, 58, 70} {
		got := tr.Observe(models.KindCPU, v)
		if got != verdicts[i] {
			t.Errorf("Observe(%v) = %v, want %v", v, got, verdicts[i])
		}
	}
}

func TestTrackerDeadband(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   models.TrendVerdict
	}{
		{"just inside upper bound", []float64{100, 109.9}, models.TrendStable},
		{"just past upper bound", []float64{100, 110.1}, models.TrendIncreasing},
		{"just inside lower bound", []float64{100, 90.1}, models.TrendStable},
		{"just past lower bound", []float64{100, 89.9}, models.TrendDecreasing},
		{"exactly on upper bound", []float64{100, 110}, models.TrendStable},
		{"exactly on lower bound", []float64{100, 90}, models.TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker(5)
			var got models.TrendVerdict
			for _, v := range tt.values {
				got = tr.Observe(models.KindMemory, v)
			}
			if got != tt.want {
				t.Errorf("final verdict = %v, want %v", got, tt.want)
			}
		})
	}
}

// Only the three entries preceding the newest feed the mean, so older
// values stop influencing the verdict.
func TestTrackerLookbackLimit(t *testing.T) {
	tr := NewTracker(5)
	// Window fills to [0, 80, 80, 80]; mean of the last three priors is
	// 80 regardless of the old zero.
	for _, v := range []float64{0, 80, 80, 80} {
		tr.Observe(models.KindDisk, v)
	}
	if got := tr.Observe(models.KindDisk, 80); got != models.TrendStable {
		t.Errorf("verdict = %v, want stable", got)
	}
}

func TestTrackerWindowsIndependent(t *testing.T) {
	tr := NewTracker(5)
	tr.Observe(models.KindCPU, 10)
	tr.Observe(models.KindCPU, 50)

	if got := tr.Observe(models.KindMemory, 42); got != models.TrendInsufficientData {
		t.Errorf("first memory observation = %v, want insufficient data", got)
	}
	if w := tr.Window(models.KindCPU); w == nil || w.Len() != 2 {
		t.Errorf("cpu window length wrong: %+v", w)
	}
	if w := tr.Window(models.KindTemperature); w != nil {
		t.Errorf("unobserved kind has a window: %+v", w)
	}
}

package engine

import "github.com/pulseview/syshealth/models"

// trendLookback is how many entries preceding the current value feed
// the moving average.
const trendLookback = 3

// trendDeadband is the relative movement the current value must exceed
// before a trend counts as increasing or decreasing.
const trendDeadband = 0.10

// HistoryWindow is a bounded FIFO of recent values for one metric
// kind. Appending beyond capacity evicts the oldest entry, so the
// length never exceeds the capacity.
type HistoryWindow struct {
	values   []float64
	capacity int
}

// NewHistoryWindow creates a window with the given capacity.
func NewHistoryWindow(capacity int) *HistoryWindow {
	if capacity <= 0 {
		capacity = 5
	}
	return &HistoryWindow{
		values:   make([]float64, 0, capacity),
		capacity: capacity,
	}
}

// Append records a value, evicting the oldest if at capacity.
func (w *HistoryWindow) Append(v float64) {
	if len(w.values) == w.capacity {
		copy(w.values, w.values[1:])
		w.values = w.values[:len(w.values)-1]
	}
	w.values = append(w.values, v)
}

// Len returns the number of recorded values.
func (w *HistoryWindow) Len() int {
	return len(w.values)
}

// Capacity returns the maximum number of retained values.
func (w *HistoryWindow) Capacity() int {
	return w.capacity
}

// Values returns the recorded values, oldest first.
func (w *HistoryWindow) Values() []float64 {
	out := make([]float64, len(w.values))
	copy(out, w.values)
	return out
}

// Tracker keeps one HistoryWindow per tracked metric kind. Windows
// evolve independently and are never reset during the process
// lifetime. Tracker is not goroutine-safe on its own; the driver's
// cycle lock serializes access.
type Tracker struct {
	windows  map[models.MetricKind]*HistoryWindow
	capacity int
}

// NewTracker creates a Tracker whose windows hold capacity entries.
func NewTracker(capacity int) *Tracker {
	return &Tracker{
		windows:  make(map[models.MetricKind]*HistoryWindow),
		capacity: capacity,
	}
}

// Observe appends the latest value to the kind's window and returns
// the trend verdict: the current value against the mean of up to the
// three entries preceding it, with a ±10% deadband. Fewer than two
// recorded entries (including the one just appended) is insufficient
// data.
func (t *Tracker) Observe(kind models.MetricKind, value float64) models.TrendVerdict {
	w, ok := t.windows[kind]
	if !ok {
		w = NewHistoryWindow(t.capacity)
		t.windows[kind] = w
	}
	w.Append(value)

	if w.Len() < 2 {
		return models.TrendInsufficientData
	}

	prior := w.values[:w.Len()-1]
	if len(prior) > trendLookback {
		prior = prior[len(prior)-trendLookback:]
	}
	var sum float64
	for _, v := range prior {
		sum += v
	}
	mean := sum / float64(len(prior))

	switch {
	case value > mean*(1+trendDeadband):
		return models.TrendIncreasing
	case value < mean*(1-trendDeadband):
		return models.TrendDecreasing
	}
	return models.TrendStable
}

// Window returns the history window for a kind, nil if nothing has
// been observed for it yet.
func (t *Tracker) Window(kind models.MetricKind) *HistoryWindow {
	return t.windows[kind]
}

// Package storage provides thread-safe storage for cycle history.
package storage

import (
	"sync"

	"github.com/pulseview/syshealth/models"
)

// RingBuffer is a thread-safe circular buffer holding recent cycle
// results. When full, the oldest entry is overwritten.
type RingBuffer struct {
	mu       sync.RWMutex
	data     []*models.Result
	head     int // Index where the next element will be written
	count    int
	capacity int
}

// NewRingBuffer creates a RingBuffer with the specified capacity.
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity <= 0 {
		capacity = 240 // one hour at the default 15s interval
	}
	return &RingBuffer{
		data:     make([]*models.Result, capacity),
		capacity: capacity,
	}
}

// Add stores a new result. The result is cloned so later reads are
// unaffected by caller mutation.
func (rb *RingBuffer) Add(r *models.Result) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.data[rb.head] = r.Clone()
	rb.head = (rb.head + 1) % rb.capacity
	if rb.count < rb.capacity {
		rb.count++
	}
}

// GetLast returns the last n results in chronological order. If n
// exceeds the number stored, everything is returned.
func (rb *RingBuffer) GetLast(n int) []*models.Result {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	if n <= 0 || rb.count == 0 {
		return nil
	}
	if n > rb.count {
		n = rb.count
	}

	result := make([]*models.Result, n)
	start := (rb.head - n + rb.capacity) % rb.capacity
	for i := 0; i < n; i++ {
		idx := (start + i) % rb.capacity
		result[i] = rb.data[idx].Clone()
	}
	return result
}

// GetLatest returns the most recent result, nil if empty.
func (rb *RingBuffer) GetLatest() *models.Result {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	if rb.count == 0 {
		return nil
	}
	idx := (rb.head - 1 + rb.capacity) % rb.capacity
	return rb.data[idx].Clone()
}

// GetAll returns all stored results in chronological order.
func (rb *RingBuffer) GetAll() []*models.Result {
	rb.mu.RLock()
	n := rb.count
	rb.mu.RUnlock()
	return rb.GetLast(n)
}

// Series extracts the primary value of a metric kind over the last n
// results, oldest first, for sparkline-style rendering. Results in
// which the kind was absent are skipped.
func (rb *RingBuffer) Series(kind models.MetricKind, n int) []float64 {
	results := rb.GetLast(n)
	out := make([]float64, 0, len(results))
	for _, r := range results {
		if v := primaryValue(&r.Snapshot, kind); v != nil {
			out = append(out, *v)
		}
	}
	return out
}

// primaryValue picks the snapshot field a kind is classified on.
func primaryValue(s *models.Snapshot, kind models.MetricKind) *float64 {
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

// Clear removes all entries.
func (rb *RingBuffer) Clear() {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	for i := range rb.data {
		rb.data[i] = nil
	}
	rb.head = 0
	rb.count = 0
}

// Size returns the number of stored results.
func (rb *RingBuffer) Size() int {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.count
}

// Capacity returns the maximum number of stored results.
func (rb *RingBuffer) Capacity() int {
	return rb.capacity
}

// IsFull reports whether the buffer has reached capacity.
func (rb *RingBuffer) IsFull() bool {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.count == rb.capacity
}

// IsEmpty reports whether the buffer holds no results.
func (rb *RingBuffer) IsEmpty() bool {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.count == 0
}

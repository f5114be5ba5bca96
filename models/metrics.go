// Package models defines data structures for system health metrics.
package models

import "time"

// MetricKind identifies a classifiable metric. The set is closed: each
// kind carries its own comparison direction and threshold semantics.
type MetricKind int

const (
	KindCPU MetricKind = iota
	KindMemory
	KindDisk
	KindTemperature
	KindBattery
)

// Descending reports whether lower values are worse for this kind.
// Battery percent is the only descending metric: 8% battery is a
// problem, 8% CPU is not.
func (k MetricKind) Descending() bool {
	return k == KindBattery
}

func (k MetricKind) String() string {
	switch k {
	case KindCPU:
		return "cpu"
	case KindMemory:
		return "memory"
	case KindDisk:
		return "disk"
	case KindTemperature:
		return "temperature"
	case KindBattery:
		return "battery"
	}
	return "unknown"
}

// MarshalText renders the kind name for JSON map keys and CSV output.
func (k MetricKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Kinds lists every classifiable metric kind.
func Kinds() []MetricKind {
	return []MetricKind{KindCPU, KindMemory, KindDisk, KindTemperature, KindBattery}
}

// TrendKinds lists the kinds for which a rolling trend is tracked.
func TrendKinds() []MetricKind {
	return []MetricKind{KindCPU, KindMemory, KindDisk, KindTemperature}
}

// HealthBand is the severity classification of a metric reading.
// Bands are ordered by severity; BandUnknown is the zero value and
// means "insufficient data", not a severity level.
type HealthBand int

const (
	BandUnknown HealthBand = iota
	BandHealthy
	BandCaution
	BandWarning
	BandCritical
)

func (b HealthBand) String() string {
	switch b {
	case BandHealthy:
		return "HEALTHY"
	case BandCaution:
		return "CAUTION"
	case BandWarning:
		return "WARNING"
	case BandCritical:
		return "CRITICAL"
	}
	return "UNKNOWN"
}

// MarshalText renders the band name for JSON and CSV output.
func (b HealthBand) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// AtLeast reports whether b is at least as severe as other.
// BandUnknown is never considered severe.
func (b HealthBand) AtLeast(other HealthBand) bool {
	return b != BandUnknown && b >= other
}

// TrendVerdict is the directional movement of a tracked metric
// relative to its recent moving average.
type TrendVerdict int

const (
	TrendInsufficientData TrendVerdict = iota
	TrendIncreasing
	TrendDecreasing
	TrendStable
)

func (t TrendVerdict) String() string {
	switch t {
	case TrendIncreasing:
		return "increasing"
	case TrendDecreasing:
		return "decreasing"
	case TrendStable:
		return "stable"
	}
	return "insufficient data"
}

// MarshalText renders the verdict name for JSON output.
func (t TrendVerdict) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Snapshot is an immutable record of one sampling pass. A nil
// sub-struct means the probe for that subsystem failed or the hardware
// is absent; that is distinct from a zero reading.
type Snapshot struct {
	Timestamp    time.Time     `json:"timestamp"`
	CPU          *CPUStats     `json:"cpu,omitempty"`
	Memory       *MemoryStats  `json:"memory,omitempty"`
	Disk         *DiskStats    `json:"disk,omitempty"`
	Network      *NetworkStats `json:"network,omitempty"`
	Battery      *BatteryStats `json:"battery,omitempty"`
	TopProcesses []ProcessInfo `json:"top_processes,omitempty"`
	Host         *HostInfo     `json:"host,omitempty"`
}

// CPUStats contains CPU readings for one pass.
type CPUStats struct {
	// AveragePercent is the overall CPU usage percentage (0-100).
	AveragePercent float64 `json:"average_percent"`
	// PerCorePercent is the usage percentage for each logical core.
	PerCorePercent []float64 `json:"per_core_percent"`
	// FrequencyMHz is the current CPU frequency in MHz.
	FrequencyMHz float64 `json:"frequency_mhz"`
	// Load1, Load5 and Load15 are the system load averages.
	Load1  float64 `json:"load1"`
	Load5  float64 `json:"load5"`
	Load15 float64 `json:"load15"`
	// TemperatureC is the package temperature in Celsius, nil when no
	// sensor is readable.
	TemperatureC *float64 `json:"temperature_c,omitempty"`
	// Cores and Threads are the physical and logical core counts.
	Cores   int `json:"cores"`
	Threads int `json:"threads"`
}

// MemoryStats contains RAM and swap readings for one pass.
type MemoryStats struct {
	UsedBytes      uint64  `json:"used_bytes"`
	TotalBytes     uint64  `json:"total_bytes"`
	AvailableBytes uint64  `json:"available_bytes"`
	UsedPercent    float64 `json:"used_percent"`
	SwapUsedBytes  uint64  `json:"swap_used_bytes"`
	SwapTotalBytes uint64  `json:"swap_total_bytes"`
	SwapPercent    float64 `json:"swap_percent"`
}

// DiskStats contains root-filesystem usage plus cumulative I/O
// counters summed over physical devices. The byte and op counters are
// cumulative since boot; rates are derived from consecutive snapshots.
type DiskStats struct {
	Path        string  `json:"path"`
	UsedBytes   uint64  `json:"used_bytes"`
	TotalBytes  uint64  `json:"total_bytes"`
	FreeBytes   uint64  `json:"free_bytes"`
	UsedPercent float64 `json:"used_percent"`
	ReadBytes   uint64  `json:"read_bytes"`
	WriteBytes  uint64  `json:"write_bytes"`
	ReadCount   uint64  `json:"read_count"`
	WriteCount  uint64  `json:"write_count"`
}

// NetworkStats contains cumulative network counters aggregated over
// all interfaces.
type NetworkStats struct {
	BytesSent        uint64 `json:"bytes_sent"`
	BytesRecv        uint64 `json:"bytes_recv"`
	PacketsSent      uint64 `json:"packets_sent"`
	PacketsRecv      uint64 `json:"packets_recv"`
	ActiveInterfaces int    `json:"active_interfaces"`
	TotalInterfaces  int    `json:"total_interfaces"`
}

// SecondsLeftUnknown marks an indeterminate battery time estimate
// (charging, or the driver does not report a discharge rate).
const SecondsLeftUnknown int64 = -1

// BatteryStats contains battery readings. The whole struct is nil on
// systems without a battery.
type BatteryStats struct {
	Percent     float64 `json:"percent"`
	Charging    bool    `json:"charging"`
	SecondsLeft int64   `json:"seconds_left"`
}

// ProcessInfo describes one process in the top-N listing.
type ProcessInfo struct {
	Name          string  `json:"name"`
	PID           int32   `json:"pid"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryBytes   uint64  `json:"memory_bytes"`
	// Heavy is set when the process exceeds the per-process CPU or
	// memory warning thresholds.
	Heavy bool `json:"heavy"`
}

// HostInfo contains static system information, collected once.
type HostInfo struct {
	Hostname string    `json:"hostname"`
	OS       string    `json:"os"`
	Platform string    `json:"platform"`
	Arch     string    `json:"arch"`
	BootTime time.Time `json:"boot_time"`
}

// Uptime returns the host uptime at the given instant.
func (h *HostInfo) Uptime(now time.Time) time.Duration {
	if h == nil || h.BootTime.IsZero() {
		return 0
	}
	return now.Sub(h.BootTime)
}

// Rates are point-in-time throughput values derived from consecutive
// cumulative counters, in bytes per second. Zero on the first sample
// and whenever the elapsed time between samples is not positive.
type Rates struct {
	DiskReadBps    float64 `json:"disk_read_bps"`
	DiskWriteBps   float64 `json:"disk_write_bps"`
	NetUploadBps   float64 `json:"net_upload_bps"`
	NetDownloadBps float64 `json:"net_download_bps"`
}

// Result is the full outcome of one sampling cycle: the raw snapshot,
// derived rates, and per-kind classifications and trends. It is
// immutable once published.
type Result struct {
	Snapshot Snapshot                    `json:"snapshot"`
	Rates    Rates                       `json:"rates"`
	Health   map[MetricKind]HealthBand   `json:"health"`
	Trends   map[MetricKind]TrendVerdict `json:"trends"`
}

// Band returns the health band for a kind, BandUnknown if untracked.
func (r *Result) Band(kind MetricKind) HealthBand {
	return r.Health[kind]
}

// Trend returns the trend verdict for a kind.
func (r *Result) Trend(kind MetricKind) TrendVerdict {
	return r.Trends[kind]
}

// Issues returns the kinds currently at or above BandWarning, in the
// canonical kind order.
func (r *Result) Issues() []MetricKind {
	var out []MetricKind
	for _, k := range Kinds() {
		if r.Health[k].AtLeast(BandWarning) {
			out = append(out, k)
		}
	}
	return out
}

// Clone creates a deep copy of the Result.
func (r *Result) Clone() *Result {
	clone := &Result{
		Snapshot: r.Snapshot,
		Rates:    r.Rates,
		Health:   make(map[MetricKind]HealthBand, len(r.Health)),
		Trends:   make(map[MetricKind]TrendVerdict, len(r.Trends)),
	}
	for k, v := range r.Health {
		clone.Health[k] = v
	}
	for k, v := range r.Trends {
		clone.Trends[k] = v
	}

	s := &clone.Snapshot
	if r.Snapshot.CPU != nil {
		cpu := *r.Snapshot.CPU
		if r.Snapshot.CPU.PerCorePercent != nil {
			cpu.PerCorePercent = make([]float64, len(r.Snapshot.CPU.PerCorePercent))
			copy(cpu.PerCorePercent, r.Snapshot.CPU.PerCorePercent)
		}
		if r.Snapshot.CPU.TemperatureC != nil {
			t := *r.Snapshot.CPU.TemperatureC
			cpu.TemperatureC = &t
		}
		s.CPU = &cpu
	}
	if r.Snapshot.Memory != nil {
		mem := *r.Snapshot.Memory
		s.Memory = &mem
	}
	if r.Snapshot.Disk != nil {
		d := *r.Snapshot.Disk
		s.Disk = &d
	}
	if r.Snapshot.Network != nil {
		n := *r.Snapshot.Network
		s.Network = &n
	}
	if r.Snapshot.Battery != nil {
		b := *r.Snapshot.Battery
		s.Battery = &b
	}
	if r.Snapshot.TopProcesses != nil {
		s.TopProcesses = make([]ProcessInfo, len(r.Snapshot.TopProcesses))
		copy(s.TopProcesses, r.Snapshot.TopProcesses)
	}
	if r.Snapshot.Host != nil {
		h := *r.Snapshot.Host
		s.Host = &h
	}
	return clone
}

// Alert is raised when a metric reaches the warning or critical band.
type Alert struct {
	// Kind is the metric that crossed a threshold.
	Kind MetricKind `json:"kind"`
	// Band is the severity at the time of the alert.
	Band HealthBand `json:"band"`
	// Timestamp is when the alert was raised.
	Timestamp time.Time `json:"timestamp"`
	// Message is the human-readable alert text.
	Message string `json:"message"`
	// Value is the reading that triggered the alert.
	Value float64 `json:"value"`
}

// Package probe reads raw metrics from the operating system. It is
// the engine's metric source; all measurement lives here, behind the
// Source interface, so the engine itself never touches the OS.
package probe

import "github.com/pulseview/syshealth/models"

// Source supplies point-in-time raw readings for one sampling pass.
// Every method reports the current instant; counters are cumulative
// since boot. A method returning an error means that subsystem could
// not be read this pass; the caller degrades the field to absent and
// carries on. Battery returns (nil, nil) on systems without one.
type Source interface {
	CPU() (*models.CPUStats, error)
	Memory() (*models.MemoryStats, error)
	Disk() (*models.DiskStats, error)
	Network() (*models.NetworkStats, error)
	Battery() (*models.BatteryStats, error)
	Processes(topN int) ([]models.ProcessInfo, error)
	Host() (*models.HostInfo, error)
}

// System is the gopsutil-backed Source used in production.
type System struct {
	cpu  cpuProbe
	disk diskProbe
}

// NewSystem creates a Source reading from the local machine.
func NewSystem() *System {
	return &System{}
}

var _ Source = (*System)(nil)

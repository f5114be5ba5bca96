package probe

import (
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/pulseview/syshealth/models"
)

// Memory reads RAM and swap usage. Swap is best-effort; a machine
// without swap simply reports zero totals.
func (s *System) Memory() (*models.MemoryStats, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil, err
	}

	stats := &models.MemoryStats{
		UsedBytes:      vm.Used,
		TotalBytes:     vm.Total,
		AvailableBytes: vm.Available,
		UsedPercent:    vm.UsedPercent,
	}

	if swap, err := mem.SwapMemory(); err == nil {
		stats.SwapUsedBytes = swap.Used
		stats.SwapTotalBytes = swap.Total
		stats.SwapPercent = swap.UsedPercent
	}

	return stats, nil
}

package probe

import (
	"runtime"
	"strings"
	"sync"

	"github.com/shirou/gopsutil/v3/disk"

	"github.com/pulseview/syshealth/models"
)

type diskProbe struct {
	rootOnce sync.Once
	rootPath string
}

// Disk reads root-filesystem usage plus cumulative I/O counters summed
// over physical devices. Loop and ram devices are skipped so virtual
// mounts do not inflate the totals.
func (s *System) Disk() (*models.DiskStats, error) {
	s.disk.rootOnce.Do(func() {
		s.disk.rootPath = "/"
		if runtime.GOOS == "windows" {
			s.disk.rootPath = "C:\\"
		}
	})

	usage, err := disk.Usage(s.disk.rootPath)
	if err != nil {
		return nil, err
	}

	stats := &models.DiskStats{
		Path:        s.disk.rootPath,
		UsedBytes:   usage.Used,
		TotalBytes:  usage.Total,
		FreeBytes:   usage.Free,
		UsedPercent: usage.UsedPercent,
	}

	// I/O counters are best-effort: unreadable counters (containers,
	// restricted permissions) leave the cumulative fields at zero and
	// the engine reports zero rates.
	if counters, err := disk.IOCounters(); err == nil {
		for name, c := range counters {
			if isVirtualDevice(name) {
				continue
			}
			stats.ReadBytes += c.ReadBytes
			stats.WriteBytes += c.WriteBytes
			stats.ReadCount += c.ReadCount
			stats.WriteCount += c.WriteCount
		}
	}

	return stats, nil
}

func isVirtualDevice(name string) bool {
	return strings.HasPrefix(name, "loop") ||
		strings.HasPrefix(name, "ram") ||
		strings.HasPrefix(name, "zram")
}

package probe

import (
	"sort"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/pulseview/syshealth/models"
)

// Per-process thresholds for the heavy flag.
const (
	heavyCPUPercent    = 40.0
	heavyMemoryPercent = 30.0
)

// Processes returns the topN processes by CPU usage. Processes that
// disappear mid-scan or deny access are skipped; the listing is
// whatever remains readable.
func (s *System) Processes(topN int) ([]models.ProcessInfo, error) {
	if topN <= 0 {
		topN = 5
	}

	procs, err := process.Processes()
	if err != nil {
		return nil, err
	}

	infos := make([]models.ProcessInfo, 0, len(procs))
	for _, p := range procs {
		name, err := p.Name()
		if err != nil || name == "" {
			continue
		}

		info := models.ProcessInfo{Name: name, PID: p.Pid}
		if cpuPct, err := p.CPUPercent(); err == nil {
			info.CPUPercent = cpuPct
		}
		if memPct, err := p.MemoryPercent(); err == nil {
			info.MemoryPercent = float64(memPct)
		}
		if memInfo, err := p.MemoryInfo(); err == nil && memInfo != nil {
			info.MemoryBytes = memInfo.RSS
		}
		info.Heavy = info.CPUPercent > heavyCPUPercent || info.MemoryPercent > heavyMemoryPercent

		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CPUPercent > infos[j].CPUPercent
	})
	if len(infos) > topN {
		infos = infos[:topN]
	}

	return infos, nil
}

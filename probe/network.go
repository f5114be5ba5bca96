package probe

import (
	"github.com/shirou/gopsutil/v3/net"

	"github.com/pulseview/syshealth/models"
)

// Network reads cumulative traffic counters aggregated over all
// interfaces, plus a count of interfaces currently up.
func (s *System) Network() (*models.NetworkStats, error) {
	counters, err := net.IOCounters(false)
	if err != nil {
		return nil, err
	}
	if len(counters) == 0 {
		return &models.NetworkStats{}, nil
	}

	all := counters[0]
	stats := &models.NetworkStats{
		BytesSent:   all.BytesSent,
		BytesRecv:   all.BytesRecv,
		PacketsSent: all.PacketsSent,
		PacketsRecv: all.PacketsRecv,
	}

	if ifaces, err := net.Interfaces(); err == nil {
		stats.TotalInterfaces = len(ifaces)
		for _, iface := range ifaces {
			for _, flag := range iface.Flags {
				if flag == "up" {
					stats.ActiveInterfaces++
					break
				}
			}
		}
	}

	return stats, nil
}

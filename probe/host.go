package probe

import (
	"time"

	"github.com/shirou/gopsutil/v3/host"

	"github.com/pulseview/syshealth/models"
)

// Host reads static system identification. Collected once at startup;
// nothing here changes between cycles.
func (s *System) Host() (*models.HostInfo, error) {
	info, err := host.Info()
	if err != nil {
		return nil, err
	}

	h := &models.HostInfo{
		Hostname: info.Hostname,
		OS:       info.OS,
		Platform: info.Platform,
		Arch:     info.KernelArch,
	}
	if info.BootTime > 0 {
		h.BootTime = time.Unix(int64(info.BootTime), 0)
	}
	return h, nil
}

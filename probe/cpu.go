package probe

import (
	"strings"
	"sync"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"

	"github.com/pulseview/syshealth/models"
)

// Sensor keys tried in preference order before falling back to the
// first zone reported. Mirrors what psutil exposes as coretemp/acpitz.
var preferredSensors = []string{"coretemp", "k10temp", "acpitz", "cpu_thermal"}

type cpuProbe struct {
	infoOnce sync.Once
	freqMHz  float64
	cores    int
	threads  int
}

// CPU reads usage, frequency, load averages and the package
// temperature. Usage is the one reading that must succeed; frequency,
// load and temperature degrade silently.
func (s *System) CPU() (*models.CPUStats, error) {
	avg, err := cpu.Percent(0, false)
	if err != nil {
		return nil, err
	}

	stats := &models.CPUStats{}
	if len(avg) > 0 {
		stats.AveragePercent = avg[0]
	}

	if perCore, err := cpu.Percent(0, true); err == nil {
		stats.PerCorePercent = perCore
	}

	s.cpu.infoOnce.Do(func() {
		if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
			s.cpu.freqMHz = infos[0].Mhz
		}
		s.cpu.cores, _ = cpu.Counts(false)
		s.cpu.threads, _ = cpu.Counts(true)
	})
	stats.FrequencyMHz = s.cpu.freqMHz
	stats.Cores = s.cpu.cores
	stats.Threads = s.cpu.threads

	if loadAvg, err := load.Avg(); err == nil {
		stats.Load1 = loadAvg.Load1
		stats.Load5 = loadAvg.Load5
		stats.Load15 = loadAvg.Load15
	}

	stats.TemperatureC = cpuTemperature()

	return stats, nil
}

// cpuTemperature returns the CPU package temperature, nil when no
// usable sensor is exposed (common in VMs and containers).
func cpuTemperature() *float64 {
	sensors, err := host.SensorsTemperatures()
	if err != nil {
		return nil
	}
	return pickSensor(sensors)
}

// pickSensor chooses the most CPU-like positive reading, preferring the
// known package sensors over whatever zone happens to be listed first.
func pickSensor(sensors []host.TemperatureStat) *float64 {
	for _, want := range preferredSensors {
		for _, s := range sensors {
			if strings.Contains(strings.ToLower(s.SensorKey), want) && s.Temperature > 0 {
				t := s.Temperature
				return &t
			}
		}
	}
	for _, s := range sensors {
		if s.Temperature > 0 {
			t := s.Temperature
			return &t
		}
	}
	return nil
}

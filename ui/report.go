package ui

import (
	"fmt"
	"strings"

	"github.com/pulseview/syshealth/alerter"
	"github.com/pulseview/syshealth/models"
	"github.com/pulseview/syshealth/utils"
)

// Report renders one cycle result as a plain-text sectioned report,
// for one-shot runs and log capture. No colors, no cursor control.
func Report(r *models.Result) string {
	s := &r.Snapshot
	var b strings.Builder
	rule := strings.Repeat("=", 72)

	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "SYSTEM HEALTH REPORT  %s\n", s.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(&b, rule)

	if s.Host != nil {
		fmt.Fprintf(&b, "\n[SYSTEM]\n")
		fmt.Fprintf(&b, "  Host: %s | OS: %s/%s | Uptime: %s\n",
			s.Host.Hostname, s.Host.Platform, s.Host.Arch,
			utils.FormatUptime(s.Host.Uptime(s.Timestamp)))
	}

	fmt.Fprintf(&b, "\n[CPU] %s | trend %s\n", r.Band(models.KindCPU), r.Trend(models.KindCPU))
	if s.CPU != nil {
		fmt.Fprintf(&b, "  Average: %s | Freq: %s | Cores: %d/%d\n",
			utils.FormatPercent(s.CPU.AveragePercent),
			utils.FormatFrequency(s.CPU.FrequencyMHz), s.CPU.Cores, s.CPU.Threads)
		fmt.Fprintf(&b, "  Load: %.2f %.2f %.2f\n", s.CPU.Load1, s.CPU.Load5, s.CPU.Load15)
		if s.CPU.TemperatureC != nil {
			fmt.Fprintf(&b, "  Temperature: %s (%s) | trend %s\n",
				utils.FormatTemperature(*s.CPU.TemperatureC),
				r.Band(models.KindTemperature), r.Trend(models.KindTemperature))
		} else {
			fmt.Fprintf(&b, "  Temperature: N/A\n")
		}
		if len(s.CPU.PerCorePercent) > 0 {
			cores := make([]string, len(s.CPU.PerCorePercent))
			for i, c := range s.CPU.PerCorePercent {
				cores[i] = fmt.Sprintf("%.0f%%", c)
			}
			fmt.Fprintf(&b, "  Per-core: %s\n", strings.Join(cores, " "))
		}
	}

	fmt.Fprintf(&b, "\n[MEMORY] %s | trend %s\n", r.Band(models.KindMemory), r.Trend(models.KindMemory))
	if s.Memory != nil {
		fmt.Fprintf(&b, "  RAM: %s / %s (%s) | Available: %s\n",
			utils.FormatBytes(s.Memory.UsedBytes), utils.FormatBytes(s.Memory.TotalBytes),
			utils.FormatPercent(s.Memory.UsedPercent), utils.FormatBytes(s.Memory.AvailableBytes))
		fmt.Fprintf(&b, "  Swap: %s / %s (%s)\n",
			utils.FormatBytes(s.Memory.SwapUsedBytes), utils.FormatBytes(s.Memory.SwapTotalBytes),
			utils.FormatPercent(s.Memory.SwapPercent))
	}

	fmt.Fprintf(&b, "\n[DISK] %s | trend %s\n", r.Band(models.KindDisk), r.Trend(models.KindDisk))
	if s.Disk != nil {
		fmt.Fprintf(&b, "  Usage: %s / %s (%s) on %s\n",
			utils.FormatBytes(s.Disk.UsedBytes), utils.FormatBytes(s.Disk.TotalBytes),
			utils.FormatPercent(s.Disk.UsedPercent), s.Disk.Path)
		fmt.Fprintf(&b, "  I/O: read %s | write %s\n",
			utils.FormatBytesPerSecond(r.Rates.DiskReadBps),
			utils.FormatBytesPerSecond(r.Rates.DiskWriteBps))
	}

	fmt.Fprintf(&b, "\n[NETWORK]\n")
	if s.Network != nil {
		fmt.Fprintf(&b, "  Speeds: down %s | up %s\n",
			utils.FormatBytesPerSecond(r.Rates.NetDownloadBps),
			utils.FormatBytesPerSecond(r.Rates.NetUploadBps))
		fmt.Fprintf(&b, "  Totals: recv %s | sent %s\n",
			utils.FormatBytes(s.Network.BytesRecv), utils.FormatBytes(s.Network.BytesSent))
		fmt.Fprintf(&b, "  Interfaces up: %d/%d\n", s.Network.ActiveInterfaces, s.Network.TotalInterfaces)
	} else {
		fmt.Fprintf(&b, "  N/A\n")
	}

	fmt.Fprintf(&b, "\n[BATTERY] %s\n", r.Band(models.KindBattery))
	if s.Battery != nil {
		state := "discharging"
		if s.Battery.Charging {
			state = "charging"
		}
		fmt.Fprintf(&b, "  Level: %s (%s)\n", utils.FormatPercent(s.Battery.Percent), state)
		if s.Battery.SecondsLeft != models.SecondsLeftUnknown {
			fmt.Fprintf(&b, "  Remaining: %s\n", utils.FormatSeconds(s.Battery.SecondsLeft))
		}
	} else {
		fmt.Fprintf(&b, "  N/A (no battery detected)\n")
	}

	if len(s.TopProcesses) > 0 {
		fmt.Fprintf(&b, "\n[TOP PROCESSES]\n")
		for _, p := range s.TopProcesses {
			marker := " "
			if p.Heavy {
				marker = "!"
			}
			fmt.Fprintf(&b, "  %s %-24s pid %-7d cpu %5.1f%%  mem %5.1f%%\n",
				marker, utils.TruncateString(p.Name, 24), p.PID, p.CPUPercent, p.MemoryPercent)
		}
	}

	fmt.Fprintf(&b, "\n%s\n", rule)
	issues := r.Issues()
	if len(issues) == 0 {
		fmt.Fprintln(&b, "ALL SYSTEMS HEALTHY")
	} else {
		fmt.Fprintln(&b, "ISSUES DETECTED")
		for _, kind := range issues {
			band := r.Band(kind)
			fmt.Fprintf(&b, "\n[%s] %s\n", band, strings.ToUpper(kind.String()))
			for _, rec := range alerter.Recommendations(kind, band) {
				fmt.Fprintf(&b, "  • %s\n", rec)
			}
		}
	}
	fmt.Fprintln(&b, rule)

	return b.String()
}

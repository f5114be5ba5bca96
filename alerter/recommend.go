package alerter

import "github.com/pulseview/syshealth/models"

// Recommendations returns actionable advice for a metric kind at the
// given band. Empty below the warning band.
func Recommendations(kind models.MetricKind, band models.HealthBand) []string {
	if !band.AtLeast(models.BandWarning) {
		return nil
	}

	var recs []string
	switch kind {
	case models.KindCPU:
		recs = []string{
			"Close unnecessary applications",
			"Check for runaway processes",
			"Disable background services",
		}
		if band == models.BandCritical {
			recs = append(recs, "System heavily strained, consider restarting")
		}
	case models.KindMemory:
		recs = []string{
			"Close unused browser tabs and applications",
			"Clear temporary files",
			"Check for memory leaks in processes",
		}
		if band == models.BandCritical {
			recs = append(recs, "Insufficient RAM, consider upgrading or restarting")
		}
	case models.KindDisk:
		recs = []string{
			"Delete unnecessary files and folders",
			"Run a disk cleanup utility",
			"Move large files to external storage",
		}
		if band == models.BandCritical {
			recs = append(recs, "URGENT: disk almost full, immediate action required")
		}
	case models.KindTemperature:
		recs = []string{
			"Ensure proper ventilation",
			"Clean dust from vents and fans",
			"Reduce background processes",
		}
		if band == models.BandCritical {
			recs = append(recs, "CRITICAL: overheat risk, shut down immediately")
		}
	case models.KindBattery:
		recs = []string{
			"Connect to a power adapter",
			"Reduce screen brightness",
			"Close power-hungry applications",
		}
		if band == models.BandCritical {
			recs = append(recs, "CRITICAL: save work and plug in now")
		}
	}
	return recs
}

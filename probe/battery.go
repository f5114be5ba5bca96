package probe

import (
	"github.com/distatus/battery"

	"github.com/pulseview/syshealth/models"
)

// Battery reads the first battery's charge level and state. Desktops
// and servers report (nil, nil): no battery is not an error, it is an
// absent metric.
func (s *System) Battery() (*models.BatteryStats, error) {
	batteries, err := battery.GetAll()
	if err != nil {
		// Partial platform errors still carry whatever was readable.
		if _, ok := err.(battery.Errors); !ok {
			return nil, err
		}
	}
	if len(batteries) == 0 {
		return nil, nil
	}
	return batteryStats(batteries[0]), nil
}

func batteryStats(b *battery.Battery) *models.BatteryStats {
	stats := &models.BatteryStats{
		Charging:    b.State == battery.Charging || b.State == battery.Full,
		SecondsLeft: models.SecondsLeftUnknown,
	}
	if b.Full > 0 {
		stats.Percent = b.Current / b.Full * 100
	}
	// Time remaining only makes sense while discharging, and only when
	// the driver reports a discharge rate.
	if b.State == battery.Discharging && b.ChargeRate > 0 {
		stats.SecondsLeft = int64(b.Current / b.ChargeRate * 3600)
	}
	return stats
}

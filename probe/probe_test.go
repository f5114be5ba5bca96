package probe

import (
	"testing"

	"github.com/distatus/battery"
	"github.com/shirou/gopsutil/v3/host"

	"github.com/pulseview/syshealth/models"
)

func TestIsVirtualDevice(t *testing.T) {
	virtual := []string{"loop0", "loop12", "ram1", "zram0"}
	for _, name := range virtual {
		if !isVirtualDevice(name) {
			t.Errorf("isVirtualDevice(%q) = false, want true", name)
		}
	}
	physical := []string{"sda", "nvme0n1", "vda", "mmcblk0"}
	for _, name := range physical {
		if isVirtualDevice(name) {
			t.Errorf("isVirtualDevice(%q) = true, want false", name)
		}
	}
}

func TestPickSensorPrefersKnownKeys(t *testing.T) {
	sensors := []host.TemperatureStat{
		{SensorKey: "nvme_composite", Temperature: 40},
		{SensorKey: "coretemp_package_id_0", Temperature: 62},
		{SensorKey: "acpitz", Temperature: 55},
	}
	got := pickSensor(sensors)
	if got == nil || *got != 62 {
		t.Errorf("pickSensor = %v, want coretemp 62", got)
	}
}

func TestPickSensorFallsBackToFirstPositive(t *testing.T) {
	sensors := []host.TemperatureStat{
		{SensorKey: "unknown_zone", Temperature: 0},
		{SensorKey: "other_zone", Temperature: 48},
	}
	got := pickSensor(sensors)
	if got == nil || *got != 48 {
		t.Errorf("pickSensor = %v, want fallback 48", got)
	}
}

func TestPickSensorNoUsableReading(t *testing.T) {
	if got := pickSensor(nil); got != nil {
		t.Errorf("pickSensor(nil) = %v, want nil", got)
	}
	sensors := []host.TemperatureStat{{SensorKey: "zone", Temperature: 0}}
	if got := pickSensor(sensors); got != nil {
		t.Errorf("pickSensor all-zero = %v, want nil", got)
	}
}

func TestBatteryStats(t *testing.T) {
	tests := []struct {
		name string
		in   battery.Battery
		want models.BatteryStats
	}{
		{
			name: "discharging with rate",
			in:   battery.Battery{State: battery.Discharging, Current: 40, Full: 50, ChargeRate: 10},
			want: models.BatteryStats{Percent: 80, Charging: false, SecondsLeft: 14400},
		},
		{
			name: "charging",
			in:   battery.Battery{State: battery.Charging, Current: 25, Full: 50, ChargeRate: 10},
			want: models.BatteryStats{Percent: 50, Charging: true, SecondsLeft: models.SecondsLeftUnknown},
		},
		{
			name: "full counts as charging",
			in:   battery.Battery{State: battery.Full, Current: 50, Full: 50},
			want: models.BatteryStats{Percent: 100, Charging: true, SecondsLeft: models.SecondsLeftUnknown},
		},
		{
			name: "discharging without rate",
			in:   battery.Battery{State: battery.Discharging, Current: 10, Full: 50},
			want: models.BatteryStats{Percent: 20, Charging: false, SecondsLeft: models.SecondsLeftUnknown},
		},
		{
			name: "zero design capacity",
			in:   battery.Battery{State: battery.Discharging, Current: 10},
			want: models.BatteryStats{Percent: 0, Charging: false, SecondsLeft: models.SecondsLeftUnknown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := batteryStats(&tt.in)
			if *got != tt.want {
				t.Errorf("batteryStats = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

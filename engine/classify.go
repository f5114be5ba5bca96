package engine

import "github.com/pulseview/syshealth/models"

// Thresholds are the three cutoffs separating the health bands for one
// metric kind. For ascending kinds (cpu, memory, disk, temperature)
// the values are ascending and a reading at or above a cutoff falls
// into that band. For descending kinds (battery) the values descend
// and a reading at or below a cutoff falls into that band.
type Thresholds struct {
	Caution  float64
	Warning  float64
	Critical float64
}

// Table maps every metric kind to its thresholds. It is immutable
// configuration, built once at engine construction. A Table must be
// total over models.Kinds(): Classify reports a kind missing from the
// table as BandUnknown, so the engine fills gaps from DefaultTable
// when it accepts a partial one.
type Table map[models.MetricKind]Thresholds

// DefaultTable returns the stock threshold table.
func DefaultTable() Table {
	return Table{
		models.KindCPU:         {Caution: 60, Warning: 80, Critical: 90},
		models.KindMemory:      {Caution: 70, Warning: 85, Critical: 95},
		models.KindDisk:        {Caution: 70, Warning: 85, Critical: 95},
		models.KindTemperature: {Caution: 70, Warning: 85, Critical: 100},
		models.KindBattery:     {Caution: 50, Warning: 20, Critical: 10},
	}
}

// Classify maps a metric reading to its health band. A nil value means
// the sensor was unavailable and short-circuits to BandUnknown before
// any threshold comparison. The function is pure.
func (t Table) Classify(kind models.MetricKind, value *float64) models.HealthBand {
	if value == nil {
		return models.BandUnknown
	}
	th, ok := t[kind]
	if !ok {
		return models.BandUnknown
	}

	v := *value
	if kind.Descending() {
		switch {
		case v <= th.Critical:
			return models.BandCritical
		case v <= th.Warning:
			return models.BandWarning
		case v <= th.Caution:
			return models.BandCaution
		}
		return models.BandHealthy
	}

	switch {
	case v >= th.Critical:
		return models.BandCritical
	case v >= th.Warning:
		return models.BandWarning
	case v >= th.Caution:
		return models.BandCaution
	}
	return models.BandHealthy
}

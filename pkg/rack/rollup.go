package rack

import (
	"sort"
	"strings"

	"rackmond/pkg/models"
)

var powerKeywords = []string{"power", "watt", "current", "amp"}

// SensorStatus resolves a reading's effective status. Recognized status
// text wins; unrecognized text falls back to the temperature heuristic.
// "non-critical" is checked before "critical" so IPMI-style Non-Critical
// events classify as warnings.
func (e *Engine) SensorStatus(name string, reading models.SensorReading) string {
	status := strings.ToLower(reading.Status)

	switch {
	case strings.Contains(status, "non-critical"):
		return models.StatusWarning
	case strings.Contains(status, "critical"), strings.Contains(status, "non-recoverable"):
		return models.StatusCritical
	case strings.Contains(status, "warning"):
		return models.StatusWarning
	case strings.Contains(status, "ok"), strings.Contains(status, "normal"):
		return models.StatusNormal
	}

	if strings.Contains(strings.ToLower(name), "temp") {
		switch {
		case reading.Value > e.thresholds.TempCritical:
			return models.StatusCritical
		case reading.Value > e.thresholds.TempWarning:
			return models.StatusWarning
		}
	}
	return models.StatusNormal
}

// RackStatus rolls sensor statuses up into a rack status. A handful of
// critical sensors in a large rack does not flip the rack: the critical and
// warning ratios must be strictly exceeded.
func (e *Engine) RackStatus(sensors map[string]models.SensorReading) string {
	var criticalCount, warningCount int
	for name, reading := range sensors {
		switch e.SensorStatus(name, reading) {
		case models.StatusCritical:
			criticalCount++
		case models.StatusWarning:
			warningCount++
		}
	}

	total := len(sensors)
	if total == 0 {
		return models.StatusUnknown
	}

	switch {
	case criticalCount > 0 && float64(criticalCount)/float64(total) > e.thresholds.RackCriticalRatio:
		return models.StatusCritical
	case warningCount > 0 && float64(warningCount)/float64(total) > e.thresholds.RackWarningRatio:
		return models.StatusWarning
	default:
		return models.StatusNormal
	}
}

// RackTemperature averages the rack's temperature sensors. Values outside
// the plausible window are excluded, and with more than 4 samples the
// lowest and highest quartiles are trimmed to suppress outliers.
func (e *Engine) RackTemperature(sensors map[string]models.SensorReading) float64 {
	var temps []float64
	for name, reading := range sensors {
		lower := strings.ToLower(name)
		if !strings.Contains(lower, "temp") || strings.Contains(lower, "volt") {
			continue
		}
		if reading.Value > e.thresholds.TempPlausibleMin && reading.Value < e.thresholds.TempPlausibleMax {
			temps = append(temps, reading.Value)
		}
	}

	if len(temps) == 0 {
		return e.thresholds.DefaultTemperature
	}

	sort.Float64s(temps)
	samples := temps
	if n := len(temps); n > 4 {
		samples = temps[n/4 : 3*n/4]
	}

	var sum float64
	for _, t := range samples {
		sum += t
	}
	return round1(sum / float64(len(samples)))
}

// RackPower sums the rack's power-related sensors in kW. Sums above the
// watts cutover are taken to be watts and converted. Racks without power
// sensors get a density proxy from their temperature sensor count.
func (e *Engine) RackPower(sensors map[string]models.SensorReading) float64 {
	var total float64
	var found bool
	for name, reading := range sensors {
		if containsAny(strings.ToLower(name), powerKeywords) {
			total += reading.Value
			found = true
		}
	}

	if found {
		if total > e.thresholds.PowerWattsCutover {
			return round2(total / 1000)
		}
		return round2(total)
	}

	tempSensors := 0
	for name := range sensors {
		if strings.Contains(strings.ToLower(name), "temp") {
			tempSensors++
		}
	}
	return round2(1.0 + float64(tempSensors)*0.05)
}

// NetworkSummary aggregates the rack's network-kind readings.
func (e *Engine) NetworkSummary(sensors map[string]models.SensorReading) models.NetworkSummary {
	var values []float64
	for _, reading := range sensors {
		if reading.Type == models.KindNetwork {
			values = append(values, reading.Value)
		}
	}

	if len(values) == 0 {
		return models.NetworkSummary{Status: models.StatusNormal}
	}

	var total, max float64
	for _, v := range values {
		total += v
		if v > max {
			max = v
		}
	}

	status := models.StatusNormal
	switch {
	case max > e.thresholds.NetCritical:
		status = models.StatusCritical
	case max > e.thresholds.NetWarning:
		status = models.StatusWarning
	}

	return models.NetworkSummary{
		TotalThroughput: round2(total),
		AvgThroughput:   round2(total / float64(len(values))),
		MaxThroughput:   round2(max),
		InterfaceCount:  len(values),
		Status:          status,
	}
}

// DatacenterStatus rolls rack statuses up into an overall status using the
// datacenter escalation ratios (strict greater-than).
func (e *Engine) DatacenterStatus(criticalRacks, warningRacks, totalRacks int) string {
	if totalRacks == 0 {
		return models.StatusNormal
	}
	switch {
	case criticalRacks > 0 && float64(criticalRacks)/float64(totalRacks) > e.thresholds.DatacenterCriticalRatio:
		return models.StatusCritical
	case warningRacks > 0 && float64(warningRacks)/float64(totalRacks) > e.thresholds.DatacenterWarningRatio:
		return models.StatusWarning
	default:
		return models.StatusNormal
	}
}

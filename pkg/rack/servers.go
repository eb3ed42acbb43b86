package rack

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"rackmond/pkg/models"
)

var cpuNumberPattern = regexp.MustCompile(`cpu\d+`)

// ServerCount determines how many synthetic servers a rack decomposes
// into: the CPU temperature sensor count, the cpuN-named sensor count when
// no CPU temperatures exist, or 2 when neither does.
func (e *Engine) ServerCount(sensors map[string]models.SensorReading) int {
	count := len(cpuTempNames(sensors))
	if count == 0 {
		for name := range sensors {
			if cpuNumberPattern.MatchString(strings.ToLower(name)) {
				count++
			}
		}
	}
	if count == 0 {
		count = 2
	}
	if count < 1 {
		count = 1
	}
	return count
}

// BuildServer synthesizes the serverID-th (1-indexed) server of a rack
// from its sensor readings. serverCount must be the rack's ServerCount.
func (e *Engine) BuildServer(rackID, serverID, serverCount int, sensors map[string]models.SensorReading) models.Server {
	cpuTemp := e.serverCPUTemp(serverID, sensors)

	thermalStatus := models.StatusNormal
	switch {
	case cpuTemp > e.thresholds.TempCritical:
		thermalStatus = models.StatusCritical
	case cpuTemp > e.thresholds.TempWarning:
		thermalStatus = models.StatusWarning
	case cpuTemp < e.thresholds.TempCold:
		thermalStatus = models.StatusCold
	}

	powerStatus := models.StatusNormal
	var powerValues []float64
	for name, reading := range sensors {
		lower := strings.ToLower(name)
		if strings.Contains(lower, "power") || strings.Contains(lower, "watt") {
			powerValues = append(powerValues, reading.Value)
		}
	}
	if len(powerValues) > 0 {
		var sum float64
		for _, v := range powerValues {
			sum += v
		}
		avg := sum / float64(len(powerValues))
		switch {
		case avg > e.thresholds.ServerPowerCritical:
			powerStatus = models.StatusCritical
		case avg > e.thresholds.ServerPowerWarning:
			powerStatus = models.StatusWarning
		}
	}

	networkUsage := 50.0
	networkStatus := models.StatusNormal
	var networkTotal float64
	var networkFound bool
	for _, reading := range sensors {
		if reading.Type == models.KindNetwork {
			networkTotal += reading.Value
			networkFound = true
		}
	}
	if networkFound {
		networkUsage = math.Min(100, (networkTotal/float64(serverCount))*(float64(serverID)/float64(serverCount)))
		switch {
		case networkUsage > e.thresholds.NetCritical:
			networkStatus = models.StatusCritical
		case networkUsage > e.thresholds.NetWarning:
			networkStatus = models.StatusWarning
		}
	}

	coolingStatus := models.CoolingNormal
	switch {
	case cpuTemp > e.thresholds.TempWarning:
		coolingStatus = models.CoolingInsufficient
	case cpuTemp < 25:
		coolingStatus = models.CoolingExcessive
	}

	// Overall mirrors thermal; the other dimensions never escalate it.
	overallStatus := models.StatusNormal
	switch thermalStatus {
	case models.StatusCritical:
		overallStatus = models.StatusCritical
	case models.StatusWarning:
		overallStatus = models.StatusWarning
	}

	cpuUsage := math.Min(100, math.Max(0, (cpuTemp-30)*1.5))
	memoryUsage := 40 + (e.rng.Float64()*30 - 10)
	powerUsage := math.Round(300 + (e.rng.Float64()*150 - 50))

	return models.Server{
		RackID:       rackID,
		ServerID:     serverID,
		ServerName:   fmt.Sprintf("Rack%d_Server%d", rackID, serverID),
		Temperature:  round1(cpuTemp),
		PowerUsage:   powerUsage,
		CPUUsage:     round1(cpuUsage),
		MemoryUsage:  round1(memoryUsage),
		NetworkUsage: round1(networkUsage),
		Status: models.ServerStatus{
			Thermal: thermalStatus,
			Power:   powerStatus,
			Network: networkStatus,
			Cooling: coolingStatus,
			Overall: overallStatus,
		},
		Position: models.ServerPosition{
			UPosition: serverID,
			Slot:      fmt.Sprintf("U%d", serverID),
		},
	}
}

// serverCPUTemp locates the CPU temperature for one server: a sensor
// matching CPU{i}/CPU {i}/P{i} plus temp, then the i-th CPU temperature in
// name order, then an interpolation from rack temperature with a linear
// position offset.
func (e *Engine) serverCPUTemp(serverID int, sensors map[string]models.SensorReading) float64 {
	patterns := []string{
		fmt.Sprintf("cpu%d", serverID),
		fmt.Sprintf("cpu %d", serverID),
		fmt.Sprintf("p%d", serverID),
	}

	names := cpuTempNames(sensors)
	for _, name := range sortedNames(sensors) {
		lower := strings.ToLower(name)
		if !strings.Contains(lower, "temp") {
			continue
		}
		for _, pattern := range patterns {
			if strings.Contains(lower, pattern) {
				return sensors[name].Value
			}
		}
	}

	if serverID <= len(names) {
		return sensors[names[serverID-1]].Value
	}

	positionOffset := float64(serverID-1)/10*5 - 2.5
	return e.RackTemperature(sensors) + positionOffset
}

// cpuTempNames returns the rack's CPU temperature sensor names in sorted
// order so position-indexed lookups are deterministic.
func cpuTempNames(sensors map[string]models.SensorReading) []string {
	var names []string
	for name := range sensors {
		lower := strings.ToLower(name)
		if strings.Contains(lower, "cpu") && strings.Contains(lower, "temp") {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func sortedNames(sensors map[string]models.SensorReading) []string {
	names := make([]string, 0, len(sensors))
	for name := range sensors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package rack

import (
	"fmt"
	"strconv"
	"strings"

	"rackmond/pkg/models"
	"rackmond/pkg/table"
)

var (
	interfaceKeywords  = []string{"interface", "port", "nic", "network", "name"}
	throughputKeywords = []string{"throughput", "bandwidth", "speed", "rate", "utilization", "value", "mbps", "gbps"}
)

// synthesizedInterfaceCount is how many placeholder interfaces a rack gets
// when its network table parses to nothing, so downstream consumers never
// see a rack with literally no network data.
const synthesizedInterfaceCount = 4

// LoadNetwork normalizes one rack's network-interface table into an
// interface-keyed reading map. Rows with a non-positive throughput are
// dropped; an empty result is replaced by synthesized placeholder
// interfaces.
func (e *Engine) LoadNetwork(tbl *table.Table) map[string]models.SensorReading {
	interfaces := make(map[string]models.SensorReading)

	for _, row := range tbl.Rows {
		name := ""
		for _, label := range tbl.Columns {
			if !containsAny(strings.ToLower(label), interfaceKeywords) {
				continue
			}
			if row[label].IsMissing() {
				continue
			}
			name = strings.TrimSpace(row[label].Text())
			break
		}
		if name == "" {
			continue
		}

		throughput := 0.0
		for _, label := range tbl.Columns {
			if !containsAny(strings.ToLower(label), throughputKeywords) {
				continue
			}
			if row[label].IsMissing() {
				continue
			}
			throughput = ParseValue(row[label])
			break
		}

		// No throughput column matched: take the first positive-valued
		// column that is not an interface label.
		if throughput == 0 {
			for _, label := range tbl.Columns {
				if label == "Interface" || label == "Port" || label == "Name" {
					continue
				}
				if v := ParseValue(row[label]); v > 0 {
					throughput = v
					break
				}
			}
		}

		if throughput <= 0 {
			continue
		}

		interfaces[name] = models.SensorReading{
			Value:     throughput,
			Status:    e.throughputStatus(throughput),
			Units:     "Mbps",
			RawValue:  strconv.FormatFloat(throughput, 'g', -1, 64),
			Type:      models.KindNetwork,
			Interface: name,
		}
	}

	if len(interfaces) == 0 {
		return e.SynthesizeInterfaces()
	}

	return interfaces
}

// SynthesizeInterfaces builds the placeholder eth1..eth4 interfaces with
// throughput drawn uniformly from [10, 80).
func (e *Engine) SynthesizeInterfaces() map[string]models.SensorReading {
	interfaces := make(map[string]models.SensorReading, synthesizedInterfaceCount)
	for i := 1; i <= synthesizedInterfaceCount; i++ {
		name := fmt.Sprintf("eth%d", i)
		throughput := round2(10 + e.rng.Float64()*70)
		interfaces[name] = models.SensorReading{
			Value:     throughput,
			Status:    e.throughputStatus(throughput),
			Units:     "Mbps",
			RawValue:  strconv.FormatFloat(throughput, 'g', -1, 64),
			Type:      models.KindNetwork,
			Interface: name,
		}
	}
	return interfaces
}

func (e *Engine) throughputStatus(throughput float64) string {
	switch {
	case throughput > e.thresholds.NetCritical:
		return models.StatusCritical
	case throughput > e.thresholds.NetWarning:
		return models.StatusWarning
	default:
		return models.StatusOK
	}
}

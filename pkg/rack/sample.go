package rack

import (
	"strconv"
	"strings"

	"rackmond/pkg/models"
)

// SampleRackCount is how many placeholder racks are synthesized when no
// input files are discoverable at all.
const SampleRackCount = 5

// sampleSensorNames is the fixed sensor set of a placeholder rack.
var sampleSensorNames = []string{
	"CPU1 Temp", "CPU2 Temp", "System Temp",
	"FAN1", "FAN2", "12V", "5VCC", "3.3VCC",
	"P1-DIMMA1 Temp", "Vcpu1",
}

// SampleSensors synthesizes one placeholder rack's sensors with plausible
// randomized values so the rest of the system always has data to serve.
func (e *Engine) SampleSensors() map[string]models.SensorReading {
	sensors := make(map[string]models.SensorReading, len(sampleSensorNames))

	for _, name := range sampleSensorNames {
		var value float64
		status := models.StatusOK
		units := "degrees C"

		switch {
		case strings.Contains(name, "Temp"):
			base := 40 + (e.rng.Float64()*15 - 5)
			if strings.Contains(name, "CPU") {
				value = base + (5 + e.rng.Float64()*15)
				switch {
				case value >= 80:
					status = models.StatusCritical
				case value >= 70:
					status = models.StatusWarning
				}
			} else {
				value = base + (e.rng.Float64()*10 - 5)
			}
		case strings.Contains(name, "FAN"):
			value = 1000 + e.rng.Float64()*2000
			units = "RPM"
		case strings.Contains(name, "V"):
			switch {
			case strings.Contains(name, "12V"):
				value = 11.9 + e.rng.Float64()*0.2
			case strings.Contains(name, "5V"):
				value = 4.95 + e.rng.Float64()*0.1
			case strings.Contains(name, "3.3V"):
				value = 3.28 + e.rng.Float64()*0.04
			default:
				value = 1.0 + e.rng.Float64()*0.5
			}
			units = "Volts"
		default:
			value = 20 + e.rng.Float64()*20
		}

		value = round3(value)
		sensors[name] = models.SensorReading{
			Value:    value,
			Status:   status,
			Units:    units,
			RawValue: strconv.FormatFloat(value, 'g', -1, 64),
			Type:     models.KindSensor,
		}
	}

	return sensors
}

package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"rackmond/pkg/models"
)

// getDatacenterStatus handles GET /api/datacenter/status.
func (m *MonitorServer) getDatacenterStatus(ctx echo.Context) error {
	state := m.registry.Snapshot()

	var critical, warning int
	var tempSum, powerSum float64
	racks := make([]map[string]interface{}, 0, len(state.RackIDs))

	for _, id := range state.RackIDs {
		r, _ := state.Rack(id)
		switch r.Status {
		case models.StatusCritical:
			critical++
		case models.StatusWarning:
			warning++
		}
		tempSum += r.Temperature
		powerSum += r.Power

		racks = append(racks, map[string]interface{}{
			"rack_id":     r.ID,
			"name":        rackName(r.ID),
			"status":      r.Status,
			"temperature": r.Temperature,
			"power_kw":    r.Power,
		})
	}

	avgTemperature := 0.0
	if len(state.RackIDs) > 0 {
		avgTemperature = tempSum / float64(len(state.RackIDs))
	}

	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"status":          m.engine.DatacenterStatus(critical, warning, len(state.RackIDs)),
		"total_racks":     len(state.RackIDs),
		"critical_racks":  critical,
		"warning_racks":   warning,
		"avg_temperature": avgTemperature,
		"total_power_kw":  powerSum,
		"total_sensors":   state.SensorCount(),
		"racks":           racks,
		"sample_data":     state.Sample,
		"last_updated":    state.LoadedAt.Format(timeFormat),
	})
}

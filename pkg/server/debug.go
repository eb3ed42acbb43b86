package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"rackmond/pkg/models"
)

// getDebug handles GET /api/debug with registry introspection.
func (m *MonitorServer) getDebug(ctx echo.Context) error {
	state := m.registry.Snapshot()

	files := make(map[string][]string, len(state.RackIDs))
	for _, id := range state.RackIDs {
		r, _ := state.Rack(id)
		files[rackName(id)] = r.Metadata.AllFiles
	}

	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"version":      m.version,
		"rack_ids":     state.RackIDs,
		"rack_count":   len(state.RackIDs),
		"sensor_count": state.SensorCount(),
		"sample_data":  state.Sample,
		"reload_id":    state.ReloadID,
		"loaded_at":    state.LoadedAt.Format(timeFormat),
		"files":        files,
		"sensor_dir":   m.cfg.Data.SensorDir,
		"network_dir":  m.cfg.Data.NetworkDir,
	})
}

// getDebugRackStatus handles GET /api/debug/rack/:id/status, explaining
// how the rack's rollup status was derived.
func (m *MonitorServer) getDebugRackStatus(ctx echo.Context) error {
	state := m.registry.Snapshot()
	r, ok := m.rackFromRequest(ctx, state)
	if !ok {
		return nil
	}

	counts := map[string]int{}
	perSensor := make(map[string]string, len(r.Sensors))
	for name, reading := range r.Sensors {
		status := m.engine.SensorStatus(name, reading)
		counts[status]++
		perSensor[name] = status
	}

	total := len(r.Sensors)
	criticalRatio, warningRatio := 0.0, 0.0
	if total > 0 {
		criticalRatio = float64(counts[models.StatusCritical]) / float64(total)
		warningRatio = float64(counts[models.StatusWarning]) / float64(total)
	}

	thresholds := m.engine.Thresholds()
	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"rack_id":        r.ID,
		"status":         r.Status,
		"sensor_count":   total,
		"status_counts":  counts,
		"critical_ratio": criticalRatio,
		"warning_ratio":  warningRatio,
		"thresholds": map[string]float64{
			"critical_ratio": thresholds.RackCriticalRatio,
			"warning_ratio":  thresholds.RackWarningRatio,
		},
		"sensor_statuses": perSensor,
	})
}

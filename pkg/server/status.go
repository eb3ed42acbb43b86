package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// getMetricsStatus handles GET /api/metrics/status, exposing the
// flattened sensor value snapshot polled by dashboards.
func (m *MonitorServer) getMetricsStatus(ctx echo.Context) error {
	state := m.registry.Snapshot()

	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"metrics":      state.CurrentValues,
		"count":        len(state.CurrentValues),
		"reload_id":    state.ReloadID,
		"sample_data":  state.Sample,
		"last_updated": state.LoadedAt.Format(timeFormat),
	})
}

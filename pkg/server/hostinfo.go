package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"rackmond/pkg/log"
)

// getMetricsDetail handles GET /api/metrics/detail with a full host OS
// snapshot. The Prometheus host gauges are refreshed from the same
// collection.
func (m *MonitorServer) getMetricsDetail(ctx echo.Context) error {
	snap, err := m.collector.Snapshot()
	if err != nil {
		log.Error().Err(err).Msg("Failed to collect host metrics")
		return ctx.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to collect host metrics",
		})
	}

	m.metrics.SetHost(snap)

	return ctx.JSON(http.StatusOK, snap)
}

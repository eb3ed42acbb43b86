package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rackmond/pkg/log"
)

// serveExposition returns the GET /metrics handler. Sensor gauges and
// host gauges are refreshed on every scrape so the exposition always
// reflects the published state.
func (m *MonitorServer) serveExposition() echo.HandlerFunc {
	exposition := echo.WrapHandler(promhttp.HandlerFor(m.promRegistry, promhttp.HandlerOpts{}))

	return func(ctx echo.Context) error {
		state := m.registry.Snapshot()
		m.metrics.SetSensors(state.CurrentValues)

		if snap, err := m.collector.Snapshot(); err == nil {
			m.metrics.SetHost(snap)
		} else {
			log.Warn().Err(err).Msg("Host metrics unavailable for exposition")
		}

		return exposition(ctx)
	}
}

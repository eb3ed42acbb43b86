package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"rackmond/pkg/models"
)

// getRackNetwork handles GET /api/rack/:id/network.
func (m *MonitorServer) getRackNetwork(ctx echo.Context) error {
	state := m.registry.Snapshot()
	r, ok := m.rackFromRequest(ctx, state)
	if !ok {
		return nil
	}

	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"rack_id":      r.ID,
		"interfaces":   r.Interfaces(),
		"summary":      r.Network,
		"last_updated": state.LoadedAt.Format(timeFormat),
	})
}

// getNetworkSummary handles GET /api/network/summary, aggregating the
// per-rack summaries into a datacenter view.
func (m *MonitorServer) getNetworkSummary(ctx echo.Context) error {
	state := m.registry.Snapshot()

	perRack := make(map[string]models.NetworkSummary, len(state.RackIDs))
	total := models.NetworkSummary{Status: models.StatusNormal}
	for _, id := range state.RackIDs {
		r, _ := state.Rack(id)
		perRack[rackName(id)] = r.Network

		total.TotalThroughput += r.Network.TotalThroughput
		total.InterfaceCount += r.Network.InterfaceCount
		if r.Network.MaxThroughput > total.MaxThroughput {
			total.MaxThroughput = r.Network.MaxThroughput
		}
	}
	if total.InterfaceCount > 0 {
		total.AvgThroughput = total.TotalThroughput / float64(total.InterfaceCount)
	}
	switch {
	case total.MaxThroughput > m.engine.Thresholds().NetCritical:
		total.Status = models.StatusCritical
	case total.MaxThroughput > m.engine.Thresholds().NetWarning:
		total.Status = models.StatusWarning
	}

	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"racks":        perRack,
		"datacenter":   total,
		"last_updated": state.LoadedAt.Format(timeFormat),
	})
}

package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// getSensorCategories handles GET /api/sensors/categories, aggregating
// category counts across all racks.
func (m *MonitorServer) getSensorCategories(ctx echo.Context) error {
	state := m.registry.Snapshot()

	totals := make(map[string]int)
	perRack := make(map[string]map[string]int, len(state.RackIDs))
	sensorTotal := 0

	for _, id := range state.RackIDs {
		r, _ := state.Rack(id)
		counts := r.Metadata.CategoryCounts
		perRack[rackName(id)] = counts
		for category, count := range counts {
			if category == "total" {
				continue
			}
			totals[category] += count
			sensorTotal += count
		}
	}

	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"categories":    totals,
		"total_sensors": sensorTotal,
		"racks":         perRack,
		"last_updated":  state.LoadedAt.Format(timeFormat),
	})
}

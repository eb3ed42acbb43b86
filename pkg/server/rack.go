package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"rackmond/pkg/models"
)

// getRack handles GET /api/rack/:id.
func (m *MonitorServer) getRack(ctx echo.Context) error {
	state := m.registry.Snapshot()
	r, ok := m.rackFromRequest(ctx, state)
	if !ok {
		return nil
	}

	byCategory := make(map[string]map[string]models.SensorReading, len(r.Categories))
	for _, category := range sortedCategories(r) {
		group := make(map[string]models.SensorReading, len(r.Categories[category]))
		for _, name := range r.Categories[category] {
			group[name] = r.Sensors[name]
		}
		byCategory[string(category)] = group
	}

	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"rack_id":             r.ID,
		"name":                rackName(r.ID),
		"status":              r.Status,
		"temperature":         r.Temperature,
		"power_kw":            r.Power,
		"sensor_count":        len(r.Sensors),
		"server_count":        r.ServerCount,
		"sensors":             r.Sensors,
		"sensors_by_category": byCategory,
		"sensor_categories":   r.Metadata.CategoryCounts,
		"network_summary":     r.Network,
		"filename":            r.Metadata.Filename,
		"all_files":           r.Metadata.AllFiles,
		"last_updated":        state.LoadedAt.Format(timeFormat),
	})
}

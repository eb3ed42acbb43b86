package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"rackmond/pkg/models"
)

// rackListEntry is one rack in the GET /api/racks response.
type rackListEntry struct {
	RackID      int                   `json:"rack_id"`
	Name        string                `json:"name"`
	Status      string                `json:"status"`
	Temperature float64               `json:"temperature"`
	PowerKW     float64               `json:"power_kw"`
	SensorCount int                   `json:"sensor_count"`
	ServerCount int                   `json:"server_count"`
	Network     models.NetworkSummary `json:"network"`
	Categories  map[string]int        `json:"sensor_categories"`
	Filename    string                `json:"filename"`
}

// listRacks handles GET /api/racks.
func (m *MonitorServer) listRacks(ctx echo.Context) error {
	state := m.registry.Snapshot()

	racks := make([]rackListEntry, 0, len(state.RackIDs))
	for _, id := range state.RackIDs {
		r, _ := state.Rack(id)
		racks = append(racks, rackListEntry{
			RackID:      r.ID,
			Name:        rackName(r.ID),
			Status:      r.Status,
			Temperature: r.Temperature,
			PowerKW:     r.Power,
			SensorCount: len(r.Sensors),
			ServerCount: r.ServerCount,
			Network:     r.Network,
			Categories:  r.Metadata.CategoryCounts,
			Filename:    r.Metadata.Filename,
		})
	}

	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"racks":        racks,
		"total_racks":  len(racks),
		"sample_data":  state.Sample,
		"last_updated": state.LoadedAt.Format(timeFormat),
	})
}

func rackName(id int) string {
	return fmt.Sprintf("Rack %d", id)
}

package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"rackmond/pkg/models"
)

// listRackServers handles GET /api/rack/:id/servers.
func (m *MonitorServer) listRackServers(ctx echo.Context) error {
	state := m.registry.Snapshot()
	r, ok := m.rackFromRequest(ctx, state)
	if !ok {
		return nil
	}

	servers := make([]models.Server, 0, r.ServerCount)
	for serverID := 1; serverID <= r.ServerCount; serverID++ {
		servers = append(servers, m.engine.BuildServer(r.ID, serverID, r.ServerCount, r.Sensors))
	}

	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"rack_id":      r.ID,
		"server_count": r.ServerCount,
		"servers":      servers,
		"last_updated": state.LoadedAt.Format(timeFormat),
	})
}

// getRackServer handles GET /api/rack/:id/server/:sid.
func (m *MonitorServer) getRackServer(ctx echo.Context) error {
	state := m.registry.Snapshot()
	r, ok := m.rackFromRequest(ctx, state)
	if !ok {
		return nil
	}

	serverID, err := strconv.Atoi(ctx.Param("sid"))
	if err != nil || serverID < 1 || serverID > r.ServerCount {
		available := make([]int, 0, r.ServerCount)
		for i := 1; i <= r.ServerCount; i++ {
			available = append(available, i)
		}
		return ctx.JSON(http.StatusNotFound, map[string]interface{}{
			"error":             "server not found",
			"rack_id":           r.ID,
			"available_servers": available,
		})
	}

	return ctx.JSON(http.StatusOK, m.engine.BuildServer(r.ID, serverID, r.ServerCount, r.Sensors))
}

package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// dashboard is one dashboard reference served to frontends.
type dashboard struct {
	UID   string `json:"uid"`
	Title string `json:"title"`
}

// dashboards is the fixed set of dashboards the frontend links to.
var dashboards = []dashboard{
	{UID: "datacenter-overview", Title: "Datacenter Overview"},
	{UID: "rack-detail", Title: "Rack Detail"},
	{UID: "network-traffic", Title: "Network Traffic"},
	{UID: "host-metrics", Title: "Host Metrics"},
}

// getDashboards handles GET /api/dashboards.
func (m *MonitorServer) getDashboards(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"dashboards": dashboards,
		"count":      len(dashboards),
	})
}

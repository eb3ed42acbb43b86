package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"rackmond/pkg/log"
)

// reloadData handles POST /api/reload, running one on-demand cycle.
func (m *MonitorServer) reloadData(ctx echo.Context) error {
	report, err := m.loader.Reload(ctx.Request().Context())
	if err != nil {
		log.Error().Err(err).Msg("On-demand reload failed")
		return ctx.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
	}

	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"report":  report,
	})
}

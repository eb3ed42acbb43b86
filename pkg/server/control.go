package server

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"

	"rackmond/pkg/log"
)

// requireAPIKey guards the control routes behind the X-API-Key header.
// Control routes are disabled entirely when no key is configured.
func (m *MonitorServer) requireAPIKey(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if m.cfg.Server.APIKey == "" {
			return ctx.JSON(http.StatusServiceUnavailable, map[string]string{
				"error": "control API disabled, no API key configured",
			})
		}

		key := ctx.Request().Header.Get("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(m.cfg.Server.APIKey)) != 1 {
			log.Warn().Str("remote", ctx.RealIP()).Msg("Control request with invalid API key")
			return ctx.JSON(http.StatusUnauthorized, map[string]string{
				"error": "invalid API key",
			})
		}

		return next(ctx)
	}
}

// controlPing handles GET /api/control/ping.
func (m *MonitorServer) controlPing(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"version": m.version,
	})
}

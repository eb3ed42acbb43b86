package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"rackmond/pkg/config"
	"rackmond/pkg/hostmetrics"
	"rackmond/pkg/log"
	"rackmond/pkg/metrics"
	"rackmond/pkg/rack"
	"rackmond/pkg/registry"
)

// timeFormat is the timestamp layout used in API responses.
const timeFormat = "2006-01-02 15:04:05"

// MonitorServer serves the rack monitoring API in front of the
// registry's published state.
type MonitorServer struct {
	cfg          *config.Config
	echo         *echo.Echo
	registry     *registry.Registry
	loader       *registry.Loader
	engine       *rack.Engine
	collector    *hostmetrics.Collector
	metrics      *metrics.Metrics
	promRegistry *prometheus.Registry
	version      string
}

// NewMonitorServer wires the API server onto an already constructed
// registry and loader.
func NewMonitorServer(cfg *config.Config, reg *registry.Registry, loader *registry.Loader, engine *rack.Engine, collector *hostmetrics.Collector, version string) *MonitorServer {
	promRegistry := prometheus.NewRegistry()

	m := &MonitorServer{
		cfg:          cfg,
		echo:         echo.New(),
		registry:     reg,
		loader:       loader,
		engine:       engine,
		collector:    collector,
		metrics:      metrics.New(promRegistry),
		promRegistry: promRegistry,
		version:      version,
	}

	// Scheduled and on-demand cycles both report through the loader.
	loader.OnReload = func(report *registry.Report) {
		m.metrics.RecordReload(report.DurationMS/1000, report.RackCount, report.SensorCount)
	}

	return m
}

// Start serves until SIGINT/SIGTERM, then shuts down gracefully.
func (m *MonitorServer) Start(addr string) error {
	m.setupRoutes()

	go func() {
		log.Info().
			Str("addr", addr).
			Str("sensor_dir", m.cfg.Data.SensorDir).
			Str("network_dir", m.cfg.Data.NetworkDir).
			Str("version", m.version).
			Msg("Starting rack monitor server")

		if err := m.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server startup failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	return m.Shutdown()
}

// Shutdown stops the HTTP listener within the configured timeout.
func (m *MonitorServer) Shutdown() error {
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), m.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := m.echo.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
		return err
	}

	log.Info().Msg("Server gracefully stopped")
	return nil
}

func (m *MonitorServer) setupRoutes() {
	m.echo.HideBanner = true
	m.echo.HidePort = true
	m.echo.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} ${status} ${method} ${uri} (${latency_human})\n",
	}))
	m.echo.Use(middleware.Recover())

	m.echo.GET("/api/racks", m.listRacks)
	m.echo.GET("/api/rack/:id", m.getRack)
	m.echo.GET("/api/rack/:id/network", m.getRackNetwork)
	m.echo.GET("/api/rack/:id/servers", m.listRackServers)
	m.echo.GET("/api/rack/:id/server/:sid", m.getRackServer)
	m.echo.GET("/api/network/summary", m.getNetworkSummary)
	m.echo.GET("/api/datacenter/status", m.getDatacenterStatus)
	m.echo.GET("/api/sensors/categories", m.getSensorCategories)
	m.echo.POST("/api/reload", m.reloadData)
	m.echo.GET("/api/metrics/status", m.getMetricsStatus)
	m.echo.GET("/api/metrics/detail", m.getMetricsDetail)
	m.echo.GET("/api/debug", m.getDebug)
	m.echo.GET("/api/debug/rack/:id/status", m.getDebugRackStatus)
	m.echo.GET("/api/dashboards", m.getDashboards)
	m.echo.GET("/metrics", m.serveExposition())

	control := m.echo.Group("/api/control", m.requireAPIKey)
	control.GET("/ping", m.controlPing)
}

// rackFromRequest resolves the :id path parameter against the current
// state. On failure it writes the error response itself and returns false.
func (m *MonitorServer) rackFromRequest(ctx echo.Context, state *registry.State) (*registry.RackState, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		_ = ctx.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid rack id",
		})
		return nil, false
	}

	r, ok := state.Rack(id)
	if !ok {
		_ = ctx.JSON(http.StatusNotFound, map[string]interface{}{
			"error":           "rack not found",
			"rack_id":         id,
			"available_racks": state.RackIDs,
		})
		return nil, false
	}
	return r, true
}

// sortedCategories returns a rack's category names in a stable order.
func sortedCategories(r *registry.RackState) []rack.Category {
	categories := make([]rack.Category, 0, len(r.Categories))
	for category := range r.Categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
	return categories
}

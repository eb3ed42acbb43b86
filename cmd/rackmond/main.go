package main

import (
	"context"
	_ "embed"
	"flag"
	"strings"

	"rackmond/pkg/config"
	"rackmond/pkg/hostmetrics"
	"rackmond/pkg/log"
	"rackmond/pkg/rack"
	"rackmond/pkg/registry"
	"rackmond/pkg/server"
)

//go:embed VERSION
var Version string

func main() {
	// Initialize logger first
	_ = log.Logger

	configPath := flag.String("config", "", "Path to YAML config file (optional)")
	sensorDir := flag.String("sensors", "", "Sensor CSV directory (overrides config)")
	networkDir := flag.String("network", "", "Network CSV directory (overrides config)")
	addr := flag.String("addr", "", "Listen address host:port (overrides config)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *sensorDir != "" {
		cfg.Data.SensorDir = *sensorDir
	}
	if *networkDir != "" {
		cfg.Data.NetworkDir = *networkDir
	}
	if *debug || cfg.Debug {
		log.SetDebugMode()
	}

	listenAddr := cfg.Address()
	if *addr != "" {
		listenAddr = *addr
	}

	engine := rack.New(cfg.RackThresholds(), nil)
	reg := registry.NewRegistry()
	loader := &registry.Loader{
		SensorDir:  cfg.Data.SensorDir,
		NetworkDir: cfg.Data.NetworkDir,
		Engine:     engine,
		Registry:   reg,
	}

	collector := hostmetrics.NewCollector(cfg.Data.SensorDir)
	monitor := server.NewMonitorServer(cfg, reg, loader, engine, collector, strings.TrimSpace(Version))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := loader.Reload(ctx); err != nil {
		log.Fatal().Err(err).Msg("Initial data load failed")
	}
	go loader.Run(ctx, cfg.Data.ReloadInterval)

	if err := monitor.Start(listenAddr); err != nil {
		log.Fatal().Err(err).Msg("Server failed to start")
	}
}

package server

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"rackmond/pkg/config"
	"rackmond/pkg/hostmetrics"
	"rackmond/pkg/rack"
	"rackmond/pkg/registry"
)

// newTestServer builds a server over temp data directories with two
// racks loaded: rack 1 is healthy with a real network file, rack 2 has
// one critical sensor and no network data.
func newTestServer(t *testing.T) *MonitorServer {
	t.Helper()

	cfg := config.Default()
	cfg.Data.SensorDir = t.TempDir()
	cfg.Data.NetworkDir = t.TempDir()

	writeTestFile(t, cfg.Data.SensorDir, "rack_1.csv",
		"Sensor,Value,Status,Units\n"+
			"CPU1 Temp,55,ok,degrees C\n"+
			"CPU2 Temp,58,ok,degrees C\n"+
			"FAN1,2000,ok,RPM\n"+
			"PSU1 Power,1.2,ok,kW\n")
	writeTestFile(t, cfg.Data.SensorDir, "rack_2.csv",
		"Sensor,Value,Status,Units\n"+
			"CPU1 Temp,90,critical,degrees C\n")
	writeTestFile(t, cfg.Data.NetworkDir, "rack_1_network.csv",
		"Interface,Throughput\n"+
			"eth0,45.5\n"+
			"eth1,12\n")

	engine := rack.New(cfg.RackThresholds(), rand.New(rand.NewSource(1)))
	reg := registry.NewRegistry()
	loader := &registry.Loader{
		SensorDir:  cfg.Data.SensorDir,
		NetworkDir: cfg.Data.NetworkDir,
		Engine:     engine,
		Registry:   reg,
	}
	collector := hostmetrics.NewCollector(cfg.Data.SensorDir)

	srv := NewMonitorServer(cfg, reg, loader, engine, collector, "test-v1.0.0")
	srv.setupRoutes()

	_, err := loader.Reload(context.Background())
	require.NoError(t, err)

	return srv
}

func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

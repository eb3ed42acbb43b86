package config

import (
	"errors"
	"fmt"
	"time"

	"rackmond/pkg/rack"
)

// Config is the full daemon configuration.
type Config struct {
	Server     ServerConfig    `mapstructure:"server"`
	Data       DataConfig      `mapstructure:"data"`
	Thresholds ThresholdConfig `mapstructure:"thresholds"`
	Debug      bool            `mapstructure:"debug"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	APIKey          string        `mapstructure:"api_key"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DataConfig configures the input directories and the reload cadence.
type DataConfig struct {
	SensorDir      string        `mapstructure:"sensor_dir"`
	NetworkDir     string        `mapstructure:"network_dir"`
	ReloadInterval time.Duration `mapstructure:"reload_interval"`
}

// ThresholdConfig carries every tuned rollup constant; the defaults are
// the reference values.
type ThresholdConfig struct {
	RackCriticalRatio       float64 `mapstructure:"rack_critical_ratio"`
	RackWarningRatio        float64 `mapstructure:"rack_warning_ratio"`
	DatacenterCriticalRatio float64 `mapstructure:"datacenter_critical_ratio"`
	DatacenterWarningRatio  float64 `mapstructure:"datacenter_warning_ratio"`
	TempWarning             float64 `mapstructure:"temp_warning"`
	TempCritical            float64 `mapstructure:"temp_critical"`
	TempCold                float64 `mapstructure:"temp_cold"`
	NetWarning              float64 `mapstructure:"net_warning"`
	NetCritical             float64 `mapstructure:"net_critical"`
	ServerPowerWarning      float64 `mapstructure:"server_power_warning"`
	ServerPowerCritical     float64 `mapstructure:"server_power_critical"`
}

// Default returns the configuration used when no file or environment
// overrides exist.
func Default() *Config {
	defaults := rack.DefaultThresholds()
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5001,
			ShutdownTimeout: 10 * time.Second,
		},
		Data: DataConfig{
			SensorDir:      "data/sensors",
			NetworkDir:     "data/network",
			ReloadInterval: 30 * time.Second,
		},
		Thresholds: ThresholdConfig{
			RackCriticalRatio:       defaults.RackCriticalRatio,
			RackWarningRatio:        defaults.RackWarningRatio,
			DatacenterCriticalRatio: defaults.DatacenterCriticalRatio,
			DatacenterWarningRatio:  defaults.DatacenterWarningRatio,
			TempWarning:             defaults.TempWarning,
			TempCritical:            defaults.TempCritical,
			TempCold:                defaults.TempCold,
			NetWarning:              defaults.NetWarning,
			NetCritical:             defaults.NetCritical,
			ServerPowerWarning:      defaults.ServerPowerWarning,
			ServerPowerCritical:     defaults.ServerPowerCritical,
		},
	}
}

// Address returns the listen address for the HTTP server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Validate checks the configuration for values the daemon cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Data.ReloadInterval < time.Second {
		return errors.New("reload interval must be at least 1s")
	}
	if c.Data.SensorDir == "" {
		return errors.New("sensor directory must be set")
	}
	if c.Thresholds.RackCriticalRatio <= 0 || c.Thresholds.RackWarningRatio <= 0 {
		return errors.New("rack status ratios must be positive")
	}
	if c.Thresholds.TempCritical <= c.Thresholds.TempWarning {
		return errors.New("critical temperature threshold must exceed the warning threshold")
	}
	if c.Thresholds.NetCritical <= c.Thresholds.NetWarning {
		return errors.New("critical network threshold must exceed the warning threshold")
	}
	return nil
}

// RackThresholds maps the configured values onto the rollup engine's
// threshold set, keeping the non-configurable plumbing constants at
// their defaults.
func (c *Config) RackThresholds() rack.Thresholds {
	t := rack.DefaultThresholds()
	t.RackCriticalRatio = c.Thresholds.RackCriticalRatio
	t.RackWarningRatio = c.Thresholds.RackWarningRatio
	t.DatacenterCriticalRatio = c.Thresholds.DatacenterCriticalRatio
	t.DatacenterWarningRatio = c.Thresholds.DatacenterWarningRatio
	t.TempWarning = c.Thresholds.TempWarning
	t.TempCritical = c.Thresholds.TempCritical
	t.TempCold = c.Thresholds.TempCold
	t.NetWarning = c.Thresholds.NetWarning
	t.NetCritical = c.Thresholds.NetCritical
	t.ServerPowerWarning = c.Thresholds.ServerPowerWarning
	t.ServerPowerCritical = c.Thresholds.ServerPowerCritical
	return t
}

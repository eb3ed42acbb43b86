package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"

	"rackmond/pkg/log"
)

// Load reads configuration from an optional YAML file and environment
// variables. Environment overrides take precedence over the file.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		v := viper.New()
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
			}
			log.Warn().Str("path", configPath).Msg("Config file not found, using defaults and environment")
		} else if err := v.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	applyEnvironmentOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// applyEnvironmentOverrides applies RACKMOND_* environment variables.
func applyEnvironmentOverrides(cfg *Config) {
	if host := os.Getenv("RACKMOND_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if port := os.Getenv("RACKMOND_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if key := os.Getenv("RACKMOND_API_KEY"); key != "" {
		cfg.Server.APIKey = key
	}
	if dir := os.Getenv("RACKMOND_SENSOR_DIR"); dir != "" {
		cfg.Data.SensorDir = dir
	}
	if dir := os.Getenv("RACKMOND_NETWORK_DIR"); dir != "" {
		cfg.Data.NetworkDir = dir
	}
	if interval := os.Getenv("RACKMOND_RELOAD_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			cfg.Data.ReloadInterval = d
		}
	}
	if debug := os.Getenv("RACKMOND_DEBUG"); debug != "" {
		if b, err := strconv.ParseBool(debug); err == nil {
			cfg.Debug = b
		}
	}
}

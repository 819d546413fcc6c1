package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load builds the configuration from defaults, the optional file at path
// and the environment, then validates it. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to unmarshal yaml: %w", err)
	}
	return nil
}

// applyEnv overrides fields from NODEREFRESH_* variables.
//
// Environment Variables:
//   - NODEREFRESH_POLL_INTERVAL
//   - NODEREFRESH_ERROR_BACKOFF
//   - NODEREFRESH_EVICTION_INTERVAL
//   - NODEREFRESH_STABILIZATION_DELAY
//   - NODEREFRESH_SYSTEM_NAMESPACES (comma separated)
//   - NODEREFRESH_DEFAULT_MAX_PODS_PER_BATCH
//   - NODEREFRESH_DEFAULT_MIN_HEALTH_THRESHOLD
//   - NODEREFRESH_PROVISIONER
//   - NODEREFRESH_SIMULATED_DELAY
//   - HCLOUD_TOKEN
func (c *Config) applyEnv() {
	c.PollInterval = Duration(parseDuration("NODEREFRESH_POLL_INTERVAL", c.PollInterval.Std()))
	c.ErrorBackoff = Duration(parseDuration("NODEREFRESH_ERROR_BACKOFF", c.ErrorBackoff.Std()))
	c.EvictionInterval = Duration(parseDuration("NODEREFRESH_EVICTION_INTERVAL", c.EvictionInterval.Std()))
	c.StabilizationDelay = Duration(parseDuration("NODEREFRESH_STABILIZATION_DELAY", c.StabilizationDelay.Std()))
	c.Defaults.MaxPodsPerBatch = parseInt32("NODEREFRESH_DEFAULT_MAX_PODS_PER_BATCH", c.Defaults.MaxPodsPerBatch)
	c.Defaults.MinHealthThreshold = parseInt32("NODEREFRESH_DEFAULT_MIN_HEALTH_THRESHOLD", c.Defaults.MinHealthThreshold)
	c.Provisioner.SimulatedDelay = Duration(parseDuration("NODEREFRESH_SIMULATED_DELAY", c.Provisioner.SimulatedDelay.Std()))

	if ns := splitList(os.Getenv("NODEREFRESH_SYSTEM_NAMESPACES")); len(ns) > 0 {
		c.SystemNamespaces = ns
	}
	if v := os.Getenv("NODEREFRESH_PROVISIONER"); v != "" {
		c.Provisioner.Kind = v
	}
	if v := os.Getenv("HCLOUD_TOKEN"); v != "" {
		c.Provisioner.HCloud.Token = v
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt32 parses an int32 from an environment variable.
// If the variable is not set, parsing fails, or the value is out of range,
// the default value is returned.
func parseInt32(envVar string, defaultVal int32) int32 {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.ParseInt(val, 10, 32)
	if err != nil {
		return defaultVal
	}

	return int32(i)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()
	cfg := Default()

	assert.Equal(t, 60*time.Second, cfg.PollInterval.Std())
	assert.Equal(t, 30*time.Second, cfg.ErrorBackoff.Std())
	assert.Equal(t, time.Second, cfg.EvictionInterval.Std())
	assert.Equal(t, 30*time.Second, cfg.StabilizationDelay.Std())
	assert.Equal(t, []string{"kube-system", "gke-managed-system", "gmp-system"}, cfg.SystemNamespaces)
	assert.Equal(t, int32(5), cfg.Defaults.MaxPodsPerBatch)
	assert.Equal(t, int32(80), cfg.Defaults.MinHealthThreshold)
	assert.Equal(t, ProvisionerSimulated, cfg.Provisioner.Kind)
	assert.Equal(t, 2*time.Second, cfg.Provisioner.SimulatedDelay.Std())
	require.NoError(t, cfg.Validate())
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().PollInterval, cfg.PollInterval)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
pollInterval: 15s
stabilizationDelay: 0s
systemNamespaces: [kube-system, monitoring]
defaults:
  maxPodsPerBatch: 10
provisioner:
  kind: simulated
  simulatedDelay: 100ms
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 15*time.Second, cfg.PollInterval.Std())
	assert.Equal(t, time.Duration(0), cfg.StabilizationDelay.Std())
	assert.Equal(t, 30*time.Second, cfg.ErrorBackoff.Std(), "unset keys keep defaults")
	assert.Equal(t, []string{"kube-system", "monitoring"}, cfg.SystemNamespaces)
	assert.Equal(t, int32(10), cfg.Defaults.MaxPodsPerBatch)
	assert.Equal(t, int32(80), cfg.Defaults.MinHealthThreshold)
	assert.Equal(t, 100*time.Millisecond, cfg.Provisioner.SimulatedDelay.Std())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "pollInterval: 15s\n")
	t.Setenv("NODEREFRESH_POLL_INTERVAL", "5s")
	t.Setenv("NODEREFRESH_SYSTEM_NAMESPACES", "kube-system, b ,,c")
	t.Setenv("NODEREFRESH_DEFAULT_MIN_HEALTH_THRESHOLD", "50")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.PollInterval.Std())
	assert.Equal(t, []string{"kube-system", "b", "c"}, cfg.SystemNamespaces)
	assert.Equal(t, int32(50), cfg.Defaults.MinHealthThreshold)
}

func TestLoad_InvalidEnvKeepsValue(t *testing.T) {
	t.Setenv("NODEREFRESH_ERROR_BACKOFF", "soon")
	t.Setenv("NODEREFRESH_DEFAULT_MAX_PODS_PER_BATCH", "many")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.ErrorBackoff.Std())
	assert.Equal(t, int32(5), cfg.Defaults.MaxPodsPerBatch)
}

func TestLoad_OutOfRangeEnvKeepsValue(t *testing.T) {
	t.Setenv("NODEREFRESH_DEFAULT_MAX_PODS_PER_BATCH", "4294967297")
	t.Setenv("NODEREFRESH_DEFAULT_MIN_HEALTH_THRESHOLD", "-2147483649")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, int32(5), cfg.Defaults.MaxPodsPerBatch)
	assert.Equal(t, int32(80), cfg.Defaults.MinHealthThreshold)
}

func TestLoad_SystemNamespaces(t *testing.T) {
	t.Run("empty env list keeps file value", func(t *testing.T) {
		t.Setenv("NODEREFRESH_SYSTEM_NAMESPACES", " , ,")

		cfg, err := Load(writeConfig(t, "systemNamespaces: [kube-system, monitoring]\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"kube-system", "monitoring"}, cfg.SystemNamespaces)
	})

	t.Run("empty yaml list is rejected", func(t *testing.T) {
		_, err := Load(writeConfig(t, "systemNamespaces: []\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "systemNamespaces must not be empty")
	})

	t.Run("list without kube-system is rejected", func(t *testing.T) {
		_, err := Load(writeConfig(t, "systemNamespaces: [foo]\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must include kube-system")
	})

	t.Run("env list without kube-system is rejected", func(t *testing.T) {
		t.Setenv("NODEREFRESH_SYSTEM_NAMESPACES", "monitoring")

		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must include kube-system")
	})
}

func TestLoad_HCloudRequiresToken(t *testing.T) {
	t.Setenv("HCLOUD_TOKEN", "")
	path := writeConfig(t, "provisioner:\n  kind: hcloud\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HCLOUD_TOKEN")
}

func TestLoad_HCloudWithToken(t *testing.T) {
	t.Setenv("HCLOUD_TOKEN", "secret")
	path := writeConfig(t, `
provisioner:
  kind: hcloud
  hcloud:
    serverType: cx32
    sshKeys: [ops]
    labels:
      pool: workers
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Provisioner.HCloud.Token)
	assert.Equal(t, "cx32", cfg.Provisioner.HCloud.ServerType)
	assert.Equal(t, "nbg1", cfg.Provisioner.HCloud.Location)
	assert.Equal(t, []string{"ops"}, cfg.Provisioner.HCloud.SSHKeys)
	assert.Equal(t, map[string]string{"pool": "workers"}, cfg.Provisioner.HCloud.Labels)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")

	_, err = Load(writeConfig(t, "pollInterval: [1]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal yaml")

	_, err = Load(writeConfig(t, "pollInterval: forever\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero poll interval", func(c *Config) { c.PollInterval = 0 }, "pollInterval"},
		{"zero error backoff", func(c *Config) { c.ErrorBackoff = 0 }, "errorBackoff"},
		{"negative eviction interval", func(c *Config) { c.EvictionInterval = -1 }, "evictionInterval"},
		{"negative stabilization", func(c *Config) { c.StabilizationDelay = -1 }, "stabilizationDelay"},
		{"nil system namespaces", func(c *Config) { c.SystemNamespaces = nil }, "systemNamespaces"},
		{"missing kube-system", func(c *Config) { c.SystemNamespaces = []string{"gmp-system"} }, "kube-system"},
		{"zero batch", func(c *Config) { c.Defaults.MaxPodsPerBatch = 0 }, "maxPodsPerBatch"},
		{"health over 100", func(c *Config) { c.Defaults.MinHealthThreshold = 101 }, "minHealthThreshold"},
		{"unknown provisioner", func(c *Config) { c.Provisioner.Kind = "aws" }, "unknown provisioner kind"},
		{"hcloud without server type", func(c *Config) {
			c.Provisioner.Kind = ProvisionerHCloud
			c.Provisioner.HCloud.Token = "t"
			c.Provisioner.HCloud.ServerType = ""
		}, "serverType"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestIsSystemNamespace(t *testing.T) {
	t.Parallel()
	cfg := Default()

	assert.True(t, cfg.IsSystemNamespace("kube-system"))
	assert.True(t, cfg.IsSystemNamespace("gmp-system"))
	assert.False(t, cfg.IsSystemNamespace("default"))
}

func TestDuration_MarshalRoundTrip(t *testing.T) {
	t.Parallel()

	out, err := yaml.Marshal(struct {
		D Duration `yaml:"d"`
	}{D: Duration(90 * time.Second)})
	require.NoError(t, err)
	assert.Equal(t, "d: 1m30s\n", string(out))
}

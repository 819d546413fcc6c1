package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Provisioner kinds.
const (
	ProvisionerSimulated = "simulated"
	ProvisionerHCloud    = "hcloud"
)

// KubeSystemNamespace must always be part of SystemNamespaces.
const KubeSystemNamespace = "kube-system"

// Config is the operator configuration.
type Config struct {
	// PollInterval is the sleep between scheduler ticks.
	PollInterval Duration `yaml:"pollInterval"`
	// ErrorBackoff is the sleep after a tick that could not list requests.
	ErrorBackoff Duration `yaml:"errorBackoff"`
	// EvictionInterval spaces consecutive evictions on one node.
	EvictionInterval Duration `yaml:"evictionInterval"`
	// StabilizationDelay is the wait between migration and drain.
	StabilizationDelay Duration `yaml:"stabilizationDelay"`
	// SystemNamespaces are never evicted from or drained.
	SystemNamespaces []string `yaml:"systemNamespaces"`

	Defaults    Defaults          `yaml:"defaults"`
	Provisioner ProvisionerConfig `yaml:"provisioner"`
}

// Defaults fill unset optional fields of a NodeRefresh spec.
type Defaults struct {
	MaxPodsPerBatch    int32 `yaml:"maxPodsPerBatch"`
	MinHealthThreshold int32 `yaml:"minHealthThreshold"`
}

// ProvisionerConfig selects and configures the replacement-node provisioner.
type ProvisionerConfig struct {
	Kind           string       `yaml:"kind"`
	SimulatedDelay Duration     `yaml:"simulatedDelay"`
	HCloud         HCloudConfig `yaml:"hcloud"`
}

// HCloudConfig configures the Hetzner Cloud provisioner.
// The API token is read from HCLOUD_TOKEN and never from the file.
type HCloudConfig struct {
	Token      string            `yaml:"-"`
	ServerType string            `yaml:"serverType"`
	Location   string            `yaml:"location"`
	Image      string            `yaml:"image"`
	SSHKeys    []string          `yaml:"sshKeys"`
	Labels     map[string]string `yaml:"labels"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		PollInterval:       Duration(60 * time.Second),
		ErrorBackoff:       Duration(30 * time.Second),
		EvictionInterval:   Duration(time.Second),
		StabilizationDelay: Duration(30 * time.Second),
		SystemNamespaces:   []string{KubeSystemNamespace, "gke-managed-system", "gmp-system"},
		Defaults: Defaults{
			MaxPodsPerBatch:    5,
			MinHealthThreshold: 80,
		},
		Provisioner: ProvisionerConfig{
			Kind:           ProvisionerSimulated,
			SimulatedDelay: Duration(2 * time.Second),
			HCloud: HCloudConfig{
				ServerType: "cx22",
				Location:   "nbg1",
				Image:      "ubuntu-24.04",
			},
		},
	}
}

// Duration is a time.Duration that reads and writes as a Go duration string.
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// UnmarshalYAML accepts strings like "30s" or "2m".
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML writes the duration string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

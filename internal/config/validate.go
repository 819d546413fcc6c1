package config

import (
	"errors"
	"fmt"
	"slices"
)

// Validate checks the configuration for values the operator cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("pollInterval must be positive, got %s", c.PollInterval))
	}
	if c.ErrorBackoff <= 0 {
		errs = append(errs, fmt.Errorf("errorBackoff must be positive, got %s", c.ErrorBackoff))
	}
	if c.EvictionInterval < 0 {
		errs = append(errs, fmt.Errorf("evictionInterval must not be negative, got %s", c.EvictionInterval))
	}
	if c.StabilizationDelay < 0 {
		errs = append(errs, fmt.Errorf("stabilizationDelay must not be negative, got %s", c.StabilizationDelay))
	}
	if len(c.SystemNamespaces) == 0 {
		errs = append(errs, errors.New("systemNamespaces must not be empty"))
	} else if !c.IsSystemNamespace(KubeSystemNamespace) {
		errs = append(errs, fmt.Errorf("systemNamespaces must include %s, got %v", KubeSystemNamespace, c.SystemNamespaces))
	}
	if c.Defaults.MaxPodsPerBatch < 1 {
		errs = append(errs, fmt.Errorf("defaults.maxPodsPerBatch must be at least 1, got %d", c.Defaults.MaxPodsPerBatch))
	}
	if c.Defaults.MinHealthThreshold < 0 || c.Defaults.MinHealthThreshold > 100 {
		errs = append(errs, fmt.Errorf("defaults.minHealthThreshold must be within [0,100], got %d", c.Defaults.MinHealthThreshold))
	}

	switch c.Provisioner.Kind {
	case ProvisionerSimulated:
		if c.Provisioner.SimulatedDelay < 0 {
			errs = append(errs, fmt.Errorf("provisioner.simulatedDelay must not be negative"))
		}
	case ProvisionerHCloud:
		h := c.Provisioner.HCloud
		if h.Token == "" {
			errs = append(errs, errors.New("HCLOUD_TOKEN is required for the hcloud provisioner"))
		}
		if h.ServerType == "" {
			errs = append(errs, errors.New("provisioner.hcloud.serverType is required"))
		}
		if h.Location == "" {
			errs = append(errs, errors.New("provisioner.hcloud.location is required"))
		}
		if h.Image == "" {
			errs = append(errs, errors.New("provisioner.hcloud.image is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown provisioner kind %q (want %s or %s)",
			c.Provisioner.Kind, ProvisionerSimulated, ProvisionerHCloud))
	}

	return errors.Join(errs...)
}

// IsSystemNamespace reports whether ns is one of the protected namespaces.
func (c *Config) IsSystemNamespace(ns string) bool {
	return slices.Contains(c.SystemNamespaces, ns)
}

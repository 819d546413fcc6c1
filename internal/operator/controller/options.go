package controller

import (
	"time"

	"k8s.io/utils/clock"

	"github.com/imamik/noderefresh/internal/config"
	"github.com/imamik/noderefresh/internal/operator/drain"
	"github.com/imamik/noderefresh/internal/operator/provisioning"
)

// Option configures a RefreshReconciler.
type Option func(*RefreshReconciler)

// WithProvisioner sets the action that brings up replacement capacity.
func WithProvisioner(p provisioning.Provisioner) Option {
	return func(r *RefreshReconciler) {
		r.provisioner = p
	}
}

// WithMigrator replaces the pod migration executor (for testing).
func WithMigrator(m podMigrator) Option {
	return func(r *RefreshReconciler) {
		r.migrator = m
	}
}

// WithDecommissioner replaces the drain executor (for testing).
func WithDecommissioner(d nodeDecommissioner) Option {
	return func(r *RefreshReconciler) {
		r.decommissioner = d
	}
}

// WithDrainOptions configures the default migration and drain executors.
func WithDrainOptions(opts ...drain.Option) Option {
	return func(r *RefreshReconciler) {
		r.drainOpts = append(r.drainOpts, opts...)
	}
}

// WithClock sets the clock used for node ages and lastMigration.
func WithClock(c clock.PassiveClock) Option {
	return func(r *RefreshReconciler) {
		r.clock = c
	}
}

// WithSleeper replaces the stabilization wait.
func WithSleeper(s Sleeper) Option {
	return func(r *RefreshReconciler) {
		r.sleep = s
	}
}

// WithStabilizationDelay sets how long to wait between migration and drain.
func WithStabilizationDelay(d time.Duration) Option {
	return func(r *RefreshReconciler) {
		r.stabilizationDelay = d
	}
}

// WithDefaults sets the values used when a request leaves maxPodsPerBatch or
// minHealthThreshold unset.
func WithDefaults(maxPodsPerBatch, minHealthThreshold int32) Option {
	return func(r *RefreshReconciler) {
		r.defaultBatchSize = maxPodsPerBatch
		r.defaultMinHealth = minHealthThreshold
	}
}

// WithMetrics enables or disables Prometheus metrics recording.
func WithMetrics(enabled bool) Option {
	return func(r *RefreshReconciler) {
		r.enableMetrics = enabled
	}
}

// WithConfig applies the operator configuration: delays, defaults and the
// protected namespaces.
func WithConfig(cfg *config.Config) Option {
	return func(r *RefreshReconciler) {
		r.stabilizationDelay = cfg.StabilizationDelay.Std()
		r.defaultBatchSize = cfg.Defaults.MaxPodsPerBatch
		r.defaultMinHealth = cfg.Defaults.MinHealthThreshold
		r.drainOpts = append(r.drainOpts,
			drain.WithSystemNamespaces(cfg.SystemNamespaces),
			drain.WithEvictionInterval(cfg.EvictionInterval.Std()),
		)
	}
}

package controller

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"

	migrationv1 "github.com/imamik/noderefresh/api/v1"
	"github.com/imamik/noderefresh/internal/operator/drain"
)

var (
	// Pass metrics
	passesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "noderefresh",
			Subsystem: "controller",
			Name:      "passes_total",
			Help:      "Total number of reconciliation passes by final phase",
		},
		[]string{"phase"},
	)

	passDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "noderefresh",
			Subsystem: "controller",
			Name:      "pass_duration_seconds",
			Help:      "Duration of reconciliation passes in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10), // 10ms to ~45min
		},
	)

	clusterHealthPercent = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "noderefresh",
			Name:      "cluster_health_percent",
			Help:      "Percentage of Ready nodes seen by the last pass",
		},
	)

	// Node and pod metrics
	nodesRefreshedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "noderefresh",
			Name:      "nodes_refreshed_total",
			Help:      "Total number of nodes provisioned, migrated and drained",
		},
	)

	podsEvictedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "noderefresh",
			Name:      "pods_evicted_total",
			Help:      "Total number of pod evictions by result",
		},
		[]string{"result"},
	)

	podsDeletedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "noderefresh",
			Name:      "pods_deleted_total",
			Help:      "Total number of forced pod deletions by result",
		},
		[]string{"result"},
	)

	provisionTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "noderefresh",
			Name:      "provision_total",
			Help:      "Total number of provisioning attempts by provisioner and result",
		},
		[]string{"provisioner", "result"},
	)

	// Hetzner Cloud API metrics
	hcloudAPICallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "noderefresh",
			Subsystem: "hcloud",
			Name:      "api_calls_total",
			Help:      "Total number of Hetzner Cloud API calls by operation and result",
		},
		[]string{"operation", "result"},
	)
)

func init() {
	// Register metrics with controller-runtime's registry
	metrics.Registry.MustRegister(
		passesTotal,
		passDuration,
		clusterHealthPercent,
		nodesRefreshedTotal,
		podsEvictedTotal,
		podsDeletedTotal,
		provisionTotal,
		hcloudAPICallsTotal,
	)
}

// RecordHCloudAPICall counts a Hetzner Cloud API call. Its signature matches
// hcloud.CallObserver.
func RecordHCloudAPICall(operation, result string) {
	hcloudAPICallsTotal.WithLabelValues(operation, result).Inc()
}

func recordPassMetric(phase migrationv1.RefreshPhase, seconds float64) {
	passesTotal.WithLabelValues(string(phase)).Inc()
	passDuration.Observe(seconds)
}

func recordPodResults(counter *prometheus.CounterVec, succeeded int, failures []drain.PodFailure) {
	if succeeded > 0 {
		counter.WithLabelValues("success").Add(float64(succeeded))
	}
	for _, f := range failures {
		counter.WithLabelValues(f.Kind.String()).Inc()
	}
}

// Metrics helper methods that check enableMetrics before recording.

func (r *RefreshReconciler) recordPass(phase migrationv1.RefreshPhase, seconds float64) {
	if r.enableMetrics {
		recordPassMetric(phase, seconds)
	}
}

func (r *RefreshReconciler) recordHealth(percent float64) {
	if r.enableMetrics {
		clusterHealthPercent.Set(percent)
	}
}

func (r *RefreshReconciler) recordProvision(provisioner, result string) {
	if r.enableMetrics {
		provisionTotal.WithLabelValues(provisioner, result).Inc()
	}
}

func (r *RefreshReconciler) recordEvictions(result drain.MigrationResult) {
	if r.enableMetrics {
		recordPodResults(podsEvictedTotal, result.Evicted, result.Failed)
	}
}

func (r *RefreshReconciler) recordDeletions(result drain.DecommissionResult) {
	if r.enableMetrics {
		recordPodResults(podsDeletedTotal, result.Deleted, result.Failed)
	}
}

func (r *RefreshReconciler) recordNodeRefreshed() {
	if r.enableMetrics {
		nodesRefreshedTotal.Inc()
	}
}

package drain

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/imamik/noderefresh/internal/operator/gateway"
)

// MigrationResult summarizes one Migrate call.
type MigrationResult struct {
	// Evicted counts successful evictions only.
	Evicted int
	// Failed holds the pods whose eviction was rejected or errored.
	Failed []PodFailure
}

// Attempted is the number of eviction calls issued.
func (r MigrationResult) Attempted() int {
	return r.Evicted + len(r.Failed)
}

// BudgetBlocked is the number of evictions a disruption budget refused.
func (r MigrationResult) BudgetBlocked() int {
	n := 0
	for _, f := range r.Failed {
		if gateway.IsBudgetExceeded(f.Err) {
			n++
		}
	}
	return n
}

// Migrator evicts bounded batches of pods off a node.
type Migrator struct {
	gw      gateway.Gateway
	system  SystemPods
	limiter *rate.Limiter
}

// NewMigrator creates a Migrator.
func NewMigrator(gw gateway.Gateway, opts ...Option) *Migrator {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	limit := rate.Inf
	if o.evictionInterval > 0 {
		limit = rate.Every(o.evictionInterval)
	}
	return &Migrator{
		gw:      gw,
		system:  NewSystemPods(o.systemNamespaces),
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Migrate evicts up to maxPods non-system pods from nodeName, one at a time.
// A failure to list the node's pods is returned as an error with an empty
// result. Failures of individual evictions are recorded in the result.
func (m *Migrator) Migrate(ctx context.Context, nodeName string, maxPods int) (MigrationResult, error) {
	logger := log.FromContext(ctx).WithValues("node", nodeName)

	pods, err := m.gw.ListPodsOnNode(ctx, nodeName)
	if err != nil {
		return MigrationResult{}, fmt.Errorf("failed to list pods for migration: %w", err)
	}

	batch := m.system.Batch(pods, maxPods)
	logger.V(1).Info("selected migration batch", "pods", len(pods), "batch", len(batch), "maxPods", maxPods)

	var result MigrationResult
	for i := range batch {
		if err := m.limiter.Wait(ctx); err != nil {
			return result, fmt.Errorf("migration of node %s interrupted: %w", nodeName, err)
		}

		pod := &batch[i]
		key := types.NamespacedName{Namespace: pod.Namespace, Name: pod.Name}
		if err := m.gw.EvictPod(ctx, pod); err != nil {
			failure := newPodFailure(pod, err)
			result.Failed = append(result.Failed, failure)
			failure.log(logger, "eviction failed, skipping pod")
			continue
		}

		result.Evicted++
		logger.Info("evicted pod", "pod", key)
	}

	return result, nil
}

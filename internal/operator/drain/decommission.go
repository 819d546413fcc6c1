package drain

import (
	"context"
	"errors"
	"fmt"

	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/imamik/noderefresh/internal/operator/gateway"
)

// DecommissionResult summarizes one Decommission call.
type DecommissionResult struct {
	Cordoned bool
	Deleted  int
	Failed   []PodFailure
}

// Decommissioner cordons a node and force-deletes its remaining pods.
type Decommissioner struct {
	gw     gateway.Gateway
	system SystemPods
}

// NewDecommissioner creates a Decommissioner.
func NewDecommissioner(gw gateway.Gateway, opts ...Option) *Decommissioner {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Decommissioner{gw: gw, system: NewSystemPods(o.systemNamespaces)}
}

// Decommission cordons nodeName and deletes each non-system pod on it once
// with a zero grace period. A failed cordon does not stop the deletions but
// is returned as an error, as is a failure to list the pods.
func (d *Decommissioner) Decommission(ctx context.Context, nodeName string) (DecommissionResult, error) {
	logger := log.FromContext(ctx).WithValues("node", nodeName)
	var result DecommissionResult

	var cordonErr error
	if err := d.gw.SetNodeSchedulable(ctx, nodeName, false); err != nil {
		cordonErr = fmt.Errorf("failed to cordon node %s: %w", nodeName, err)
		logger.Error(err, "cordon failed, removing pods anyway")
	} else {
		result.Cordoned = true
		logger.Info("cordoned node")
	}

	pods, err := d.gw.ListPodsOnNode(ctx, nodeName)
	if err != nil {
		return result, errors.Join(cordonErr, fmt.Errorf("failed to list pods for drain: %w", err))
	}

	for i := range pods {
		pod := &pods[i]
		if d.system.Contains(pod) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, errors.Join(cordonErr, fmt.Errorf("drain of node %s interrupted: %w", nodeName, err))
		}

		if err := d.gw.DeletePod(ctx, pod, 0); err != nil {
			failure := newPodFailure(pod, err)
			result.Failed = append(result.Failed, failure)
			failure.log(logger, "force delete failed, continuing")
			continue
		}
		result.Deleted++
		logger.V(1).Info("deleted pod", "pod", types.NamespacedName{Namespace: pod.Namespace, Name: pod.Name})
	}

	logger.Info("node drained", "deleted", result.Deleted, "failed", len(result.Failed))
	return result, cordonErr
}

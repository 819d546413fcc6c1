package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/utils/clock"
	"k8s.io/utils/ptr"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"

	migrationv1 "github.com/imamik/noderefresh/api/v1"
	"github.com/imamik/noderefresh/internal/operator/drain"
	"github.com/imamik/noderefresh/internal/operator/evaluator"
	"github.com/imamik/noderefresh/internal/operator/gateway"
	"github.com/imamik/noderefresh/internal/operator/provisioning"
)

const (
	defaultStabilizationDelay = 30 * time.Second
	defaultSimulatedDelay     = 2 * time.Second
)

// Sleeper blocks for d or until ctx is done, returning ctx.Err() in the
// latter case.
type Sleeper func(ctx context.Context, d time.Duration) error

type podMigrator interface {
	Migrate(ctx context.Context, nodeName string, maxPods int) (drain.MigrationResult, error)
}

type nodeDecommissioner interface {
	Decommission(ctx context.Context, nodeName string) (drain.DecommissionResult, error)
}

// RefreshReconciler runs reconciliation passes for NodeRefresh requests.
type RefreshReconciler struct {
	gw             gateway.Gateway
	provisioner    provisioning.Provisioner
	migrator       podMigrator
	decommissioner nodeDecommissioner
	drainOpts      []drain.Option

	clock              clock.PassiveClock
	sleep              Sleeper
	stabilizationDelay time.Duration
	defaultBatchSize   int32
	defaultMinHealth   int32
	enableMetrics      bool
}

// NewRefreshReconciler creates a RefreshReconciler operating through gw.
func NewRefreshReconciler(gw gateway.Gateway, opts ...Option) *RefreshReconciler {
	r := &RefreshReconciler{
		gw:                 gw,
		clock:              clock.RealClock{},
		sleep:              sleepContext,
		stabilizationDelay: defaultStabilizationDelay,
		defaultBatchSize:   migrationv1.DefaultMaxPodsPerBatch,
		defaultMinHealth:   migrationv1.DefaultMinHealthThreshold,
		enableMetrics:      true,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.provisioner == nil {
		r.provisioner = provisioning.NewSimulated(defaultSimulatedDelay)
	}
	if r.migrator == nil {
		r.migrator = drain.NewMigrator(gw, r.drainOpts...)
	}
	if r.decommissioner == nil {
		r.decommissioner = drain.NewDecommissioner(gw, r.drainOpts...)
	}
	return r
}

// PassResult is the outcome of one reconciliation pass.
type PassResult struct {
	// Phase is the last phase written. It is empty when the pass was
	// interrupted.
	Phase   migrationv1.RefreshPhase
	Message string
	// NodesProcessed counts nodes that were provisioned, migrated and drained.
	NodesProcessed int32
	// ProvisionFailures counts nodes skipped because provisioning failed.
	ProvisionFailures int
	// Err is the cause of a Failed pass or the context error of an
	// interrupted one.
	Err error
}

// Interrupted reports whether the pass stopped because its context ended.
func (p PassResult) Interrupted() bool {
	return p.Phase == "" && p.Err != nil
}

// passParams holds a request's spec after validation and defaulting.
type passParams struct {
	threshold     time.Duration
	thresholdName string
	batchSize     int32
	minHealth     int32
}

// +kubebuilder:rbac:groups=migration.io,resources=noderefreshes,verbs=get;list;watch
// +kubebuilder:rbac:groups=migration.io,resources=noderefreshes/status,verbs=get;update;patch
// +kubebuilder:rbac:groups="",resources=nodes,verbs=get;list;watch;patch
// +kubebuilder:rbac:groups="",resources=pods,verbs=get;list;watch;delete
// +kubebuilder:rbac:groups="",resources=pods/eviction,verbs=create
// +kubebuilder:rbac:groups=coordination.k8s.io,resources=leases,verbs=get;create;update

// Reconcile runs one pass for the named request. Missing and paused requests
// are skipped. The pass outcome is reported through status only; the
// returned error is non-nil when the request could not be read.
func (r *RefreshReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	logger := log.FromContext(ctx).WithValues("request", req.NamespacedName)

	nr, err := r.gw.GetRefresh(ctx, req.NamespacedName)
	if err != nil {
		if gateway.IsNotFound(err) {
			logger.V(1).Info("request not found, nothing to do")
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, err
	}

	if nr.Spec.Paused {
		logger.Info("request is paused, skipping reconciliation")
		return ctrl.Result{}, nil
	}

	result := r.ReconcileRefresh(ctx, nr)
	if result.Interrupted() {
		return ctrl.Result{}, result.Err
	}
	return ctrl.Result{}, nil
}

// ReconcileRefresh runs one reconciliation pass for nr and writes its status
// after every phase transition.
func (r *RefreshReconciler) ReconcileRefresh(ctx context.Context, nr *migrationv1.NodeRefresh) PassResult {
	key := types.NamespacedName{Namespace: nr.Namespace, Name: nr.Name}
	logger := log.FromContext(ctx).WithValues("request", key)
	ctx = log.IntoContext(ctx, logger)

	start := time.Now()
	result := r.pass(ctx, nr)
	if result.Interrupted() {
		logger.Info("pass interrupted", "reason", result.Err.Error())
		return result
	}

	r.recordPass(result.Phase, time.Since(start).Seconds())
	logger.Info("pass finished", "phase", result.Phase, "message", result.Message)
	return result
}

func (r *RefreshReconciler) pass(ctx context.Context, nr *migrationv1.NodeRefresh) PassResult {
	logger := log.FromContext(ctx)

	// Step 1: spec
	params, err := r.resolve(&nr.Spec)
	if err != nil {
		return r.fail(ctx, nr, err)
	}

	// Step 2: health gate
	nodes, err := r.gw.ListNodes(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return interrupted(ctx)
		}
		logger.Error(err, "failed to list nodes, treating cluster health as 0%")
		nodes = nil
	}
	health, healthy := evaluator.HealthGate(nodes, params.minHealth)
	r.recordHealth(health)
	logger.V(1).Info("evaluated cluster health", "percent", health, "threshold", params.minHealth, "nodes", len(nodes))
	if !healthy {
		return r.finish(ctx, nr, migrationv1.RefreshPhaseWaiting,
			fmt.Sprintf("Cluster health below %d%%", params.minHealth))
	}

	// Step 3: target nodes
	targets, err := r.gw.ListSchedulableNodes(ctx, nr.Spec.TargetNodeLabels)
	if err != nil {
		if ctx.Err() != nil {
			return interrupted(ctx)
		}
		return r.fail(ctx, nr, fmt.Errorf("failed to list target nodes: %w", err))
	}
	if len(targets) == 0 {
		return r.finish(ctx, nr, migrationv1.RefreshPhaseComplete, "No target nodes found")
	}

	// Step 4: age filter
	aged, invalid := evaluator.SelectAged(targets, params.threshold, r.clock.Now())
	if len(invalid) > 0 {
		logger.Info("skipping nodes without a creation timestamp", "nodes", invalid)
	}
	if len(aged) == 0 {
		return r.finish(ctx, nr, migrationv1.RefreshPhaseMonitoring,
			fmt.Sprintf("No nodes exceed %s threshold", params.thresholdName))
	}
	logger.Info("found nodes to refresh", "targets", len(targets), "aged", len(aged))

	// Step 5: one node at a time
	result := PassResult{}
	for i := range aged {
		node := &aged[i]
		r.writeStatus(ctx, nr, migrationv1.NodeRefreshStatus{
			Phase:   migrationv1.RefreshPhaseMigrating,
			Message: fmt.Sprintf("Processing node %s", node.Name),
		})

		done, err := r.refreshNode(ctx, nr, node, params)
		if err != nil {
			if ctx.Err() != nil {
				return interrupted(ctx)
			}
			if errors.Is(err, errProvisionFailed) {
				result.ProvisionFailures++
				continue
			}
			return r.fail(ctx, nr, err)
		}
		if done {
			result.NodesProcessed++
		}
	}

	// Step 6: summary
	message := fmt.Sprintf("Processed %d nodes", result.NodesProcessed)
	if result.ProvisionFailures > 0 {
		message = fmt.Sprintf("%s (provisioning failed for %d)", message, result.ProvisionFailures)
	}
	status := migrationv1.NodeRefreshStatus{
		Phase:              migrationv1.RefreshPhaseComplete,
		Message:            message,
		NodesProcessed:     ptr.To(result.NodesProcessed),
		LastMigration:      ptr.To(metav1.NewTime(r.clock.Now())),
		ObservedGeneration: nr.Generation,
	}
	r.writeStatus(ctx, nr, status)

	result.Phase = status.Phase
	result.Message = status.Message
	return result
}

var errProvisionFailed = errors.New("provisioning failed")

// refreshNode provisions a replacement, migrates a batch of pods and drains
// the node. It reports whether the node counts as processed. Provisioning
// failures are returned wrapping errProvisionFailed; per-pod and drain
// failures are logged and never returned.
func (r *RefreshReconciler) refreshNode(ctx context.Context, nr *migrationv1.NodeRefresh, node *corev1.Node, params passParams) (bool, error) {
	logger := log.FromContext(ctx).WithValues("node", node.Name)
	ctx = log.IntoContext(ctx, logger)

	hint := provisioning.Hint{
		Request:     types.NamespacedName{Namespace: nr.Namespace, Name: nr.Name},
		Node:        node.Name,
		NodeLabels:  node.Labels,
		Replacement: nr.Spec.Replacement,
	}
	if err := r.provisioner.Provision(ctx, hint); err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		r.recordProvision(r.provisioner.Name(), "error")
		logger.Error(err, "provisioning failed, skipping node", "provisioner", r.provisioner.Name())
		return false, fmt.Errorf("%w for node %s: %w", errProvisionFailed, node.Name, err)
	}
	r.recordProvision(r.provisioner.Name(), "success")

	migrated, err := r.migrator.Migrate(ctx, node.Name, int(params.batchSize))
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		logger.Error(err, "migration failed, continuing with drain")
	}
	r.recordEvictions(migrated)
	logger.Info("migrated pods", "evicted", migrated.Evicted, "failed", len(migrated.Failed),
		"budgetBlocked", migrated.BudgetBlocked())

	logger.V(1).Info("waiting for workload to settle", "delay", r.stabilizationDelay)
	if err := r.sleep(ctx, r.stabilizationDelay); err != nil {
		return false, err
	}

	drained, err := r.decommissioner.Decommission(ctx, node.Name)
	r.recordDeletions(drained)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		logger.Error(err, "drain failed, node not counted")
		return false, nil
	}

	r.recordNodeRefreshed()
	logger.Info("node refreshed", "deleted", drained.Deleted)
	return true, nil
}

// resolve validates the spec and fills in defaults.
func (r *RefreshReconciler) resolve(spec *migrationv1.NodeRefreshSpec) (passParams, error) {
	if len(spec.TargetNodeLabels) == 0 {
		return passParams{}, &evaluator.ConfigurationError{Field: "targetNodeLabels", Reason: "must select at least one label"}
	}
	for k := range spec.TargetNodeLabels {
		if k == "" {
			return passParams{}, &evaluator.ConfigurationError{Field: "targetNodeLabels", Reason: "label keys must not be empty"}
		}
	}

	threshold, err := evaluator.ResolveThreshold(spec.NewDepthThreshold)
	if err != nil {
		return passParams{}, err
	}

	params := passParams{
		threshold:     threshold,
		thresholdName: spec.NewDepthThreshold,
		batchSize:     r.defaultBatchSize,
		minHealth:     r.defaultMinHealth,
	}
	if spec.MaxPodsPerBatch != nil {
		if *spec.MaxPodsPerBatch < 1 {
			return passParams{}, &evaluator.ConfigurationError{
				Field:  "maxPodsPerBatch",
				Reason: fmt.Sprintf("must be at least 1, got %d", *spec.MaxPodsPerBatch),
			}
		}
		params.batchSize = *spec.MaxPodsPerBatch
	}
	if spec.MinHealthThreshold != nil {
		if v := *spec.MinHealthThreshold; v < 0 || v > 100 {
			return passParams{}, &evaluator.ConfigurationError{
				Field:  "minHealthThreshold",
				Reason: fmt.Sprintf("must be within [0,100], got %d", v),
			}
		}
		params.minHealth = *spec.MinHealthThreshold
	}
	return params, nil
}

func (r *RefreshReconciler) finish(ctx context.Context, nr *migrationv1.NodeRefresh, phase migrationv1.RefreshPhase, message string) PassResult {
	r.writeStatus(ctx, nr, migrationv1.NodeRefreshStatus{
		Phase:              phase,
		Message:            message,
		ObservedGeneration: nr.Generation,
	})
	return PassResult{Phase: phase, Message: message}
}

func (r *RefreshReconciler) fail(ctx context.Context, nr *migrationv1.NodeRefresh, err error) PassResult {
	log.FromContext(ctx).Error(err, "pass failed")
	result := r.finish(ctx, nr, migrationv1.RefreshPhaseFailed, err.Error())
	result.Err = err
	return result
}

// writeStatus logs write failures; they never change the pass outcome.
func (r *RefreshReconciler) writeStatus(ctx context.Context, nr *migrationv1.NodeRefresh, status migrationv1.NodeRefreshStatus) {
	key := types.NamespacedName{Namespace: nr.Namespace, Name: nr.Name}
	if err := r.gw.WriteStatus(ctx, key, status); err != nil {
		log.FromContext(ctx).Error(err, "failed to write status", "phase", status.Phase)
	}
}

func interrupted(ctx context.Context) PassResult {
	return PassResult{Err: ctx.Err()}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

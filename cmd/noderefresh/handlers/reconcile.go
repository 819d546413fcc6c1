package handlers

import (
	"context"
	"fmt"
	"io"
	"os"

	"k8s.io/apimachinery/pkg/types"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	migrationv1 "github.com/imamik/noderefresh/api/v1"
	"github.com/imamik/noderefresh/internal/config"
	"github.com/imamik/noderefresh/internal/operator/controller"
	"github.com/imamik/noderefresh/internal/operator/gateway"
	"github.com/imamik/noderefresh/internal/operator/provisioning"
)

// ReconcileOptions holds the arguments and flags of the reconcile command.
type ReconcileOptions struct {
	Kubeconfig string
	Namespace  string
	Name       string
	ConfigPath string
	Verbose    bool
}

// extraReconcilerOptions is appended to the reconciler options. Tests use
// it to skip real sleeps.
var extraReconcilerOptions []controller.Option

// Reconcile handles the reconcile command. It runs one pass through the
// controller's Reconcile and prints the resulting status. It returns an error
// when the pass ends in the Failed phase or is interrupted.
func Reconcile(ctx context.Context, out io.Writer, opts ReconcileOptions) error {
	logger := zap.New(zap.UseDevMode(opts.Verbose), zap.WriteTo(os.Stderr))
	ctx = log.IntoContext(ctx, logger)

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	k8sClient, contextNamespace, err := newClient(opts.Kubeconfig)
	if err != nil {
		return err
	}
	namespace := opts.Namespace
	if namespace == "" {
		namespace = contextNamespace
	}

	prov, err := provisioning.FromConfig(cfg.Provisioner, nil)
	if err != nil {
		return fmt.Errorf("failed to create provisioner: %w", err)
	}

	gw := gateway.New(k8sClient)
	key := types.NamespacedName{Namespace: namespace, Name: opts.Name}
	nr, err := gw.GetRefresh(ctx, key)
	if err != nil {
		return err
	}
	if nr.Spec.Paused {
		_, err := fmt.Fprintf(out, "%s is paused, nothing to do\n", key)
		return err
	}

	reconcilerOpts := []controller.Option{
		controller.WithConfig(cfg),
		controller.WithProvisioner(prov),
		controller.WithMetrics(false),
	}
	reconciler := controller.NewRefreshReconciler(gw, append(reconcilerOpts, extraReconcilerOptions...)...)

	if _, err := reconciler.Reconcile(ctx, ctrl.Request{NamespacedName: key}); err != nil {
		return err
	}

	nr, err = gw.GetRefresh(ctx, key)
	if err != nil {
		return err
	}
	if err := printPass(out, key, nr.Status); err != nil {
		return err
	}
	if nr.Status.Phase == migrationv1.RefreshPhaseFailed {
		return fmt.Errorf("pass failed: %s", nr.Status.Message)
	}
	return nil
}

// printPass writes the status left behind by a pass.
func printPass(out io.Writer, key types.NamespacedName, status migrationv1.NodeRefreshStatus) error {
	if _, err := fmt.Fprintf(out, "%s: %s\n", key, status.Phase); err != nil {
		return err
	}
	if status.Message != "" {
		if _, err := fmt.Fprintf(out, "  message:   %s\n", status.Message); err != nil {
			return err
		}
	}
	if status.Phase == migrationv1.RefreshPhaseComplete && status.NodesProcessed != nil {
		if _, err := fmt.Fprintf(out, "  processed: %d\n", *status.NodesProcessed); err != nil {
			return err
		}
	}
	return nil
}

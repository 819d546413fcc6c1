package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/noderefresh/cmd/noderefresh/handlers"
)

// Reconcile returns the command that runs one pass for a single request
// from the local machine.
//
// Optional flags:
//
//	--namespace, -n: Namespace of the request (default: the kubeconfig context's namespace)
//	--config, -c: Path to an operator configuration file
//	--verbose, -v: Log every step of the pass
func Reconcile() *cobra.Command {
	opts := handlers.ReconcileOptions{}

	cmd := &cobra.Command{
		Use:   "reconcile NAME",
		Short: "Run one reconciliation pass for a NodeRefresh",
		Long: `Run a single reconciliation pass for the named NodeRefresh, exactly as
the operator would, and print the resulting phase.

The pass cordons, drains and deletes pods on live nodes. Pause the request
in the cluster first if the operator is also running.

Examples:
  # Run a pass with the default simulated provisioner
  noderefresh reconcile workers -n ops

  # Provision real replacements on Hetzner Cloud
  HCLOUD_TOKEN=... noderefresh reconcile workers -c noderefresh.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Name = args[0]
			opts.Kubeconfig = kubeconfigFlag(cmd)
			return handlers.Reconcile(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Namespace, "namespace", "n", "", "Namespace of the request")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Log every step of the pass")

	return cmd
}

// Package commands defines the CLI command structure and flag bindings.
//
// Commands parse arguments and flags, then delegate to the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the noderefresh CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "noderefresh",
		Short:         "Inspect and drive NodeRefresh node rotation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("kubeconfig", "", "Path to the kubeconfig file (default: $KUBECONFIG or ~/.kube/config)")

	cmd.AddCommand(Status())
	cmd.AddCommand(Reconcile())
	cmd.AddCommand(Version())

	return cmd
}

func kubeconfigFlag(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("kubeconfig")
	return path
}

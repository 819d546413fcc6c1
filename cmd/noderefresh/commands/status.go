package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imamik/noderefresh/cmd/noderefresh/handlers"
)

// Status returns the command for listing NodeRefresh requests.
//
// Optional flags:
//
//	--namespace, -n: Namespace to list (default: the kubeconfig context's namespace)
//	--all-namespaces, -A: List requests in every namespace
//	--output, -o: table, json or yaml
//	--watch, -w: Continuously watch status updates
func Status() *cobra.Command {
	opts := handlers.StatusOptions{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show NodeRefresh status",
		Long: `Display the phase, progress and last message of NodeRefresh requests.

Examples:
  # Show requests in the current namespace
  noderefresh status

  # Show requests in every namespace, refreshing continuously
  noderefresh status -A --watch

  # Get status as JSON
  noderefresh status -n ops -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch opts.Output {
			case handlers.OutputTable, handlers.OutputJSON, handlers.OutputYAML:
			default:
				return fmt.Errorf("unknown output format %q (want table, json or yaml)", opts.Output)
			}
			opts.Kubeconfig = kubeconfigFlag(cmd)
			return handlers.Status(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Namespace, "namespace", "n", "", "Namespace to list")
	cmd.Flags().BoolVarP(&opts.AllNamespaces, "all-namespaces", "A", false, "List requests in every namespace")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", handlers.OutputTable, "Output format: table, json or yaml")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Continuously watch status updates")
	cmd.Flags().DurationVar(&opts.Interval, "interval", handlers.DefaultWatchInterval, "Refresh interval for --watch")

	return cmd
}

package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/mattn/go-isatty"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/yaml"

	migrationv1 "github.com/imamik/noderefresh/api/v1"
	"github.com/imamik/noderefresh/internal/ui/tui"
)

// Output formats accepted by Status.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// DefaultWatchInterval is how often --watch refreshes.
const DefaultWatchInterval = 5 * time.Second

// StatusOptions holds the flags of the status command.
type StatusOptions struct {
	Kubeconfig    string
	Namespace     string
	AllNamespaces bool
	Output        string
	Watch         bool
	Interval      time.Duration
}

// isTerminal reports whether styled output should be used. Tests replace it.
var isTerminal = func() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// Status handles the status command.
func Status(ctx context.Context, out io.Writer, opts StatusOptions) error {
	k8sClient, contextNamespace, err := newClient(opts.Kubeconfig)
	if err != nil {
		return err
	}

	namespace := opts.Namespace
	if namespace == "" {
		namespace = contextNamespace
	}
	scope := "ns/" + namespace
	if opts.AllNamespaces {
		namespace = ""
		scope = "all namespaces"
	}
	fetch := func(ctx context.Context) ([]migrationv1.NodeRefresh, error) {
		return listRefreshes(ctx, k8sClient, namespace)
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultWatchInterval
	}

	if !opts.Watch {
		items, err := fetch(ctx)
		if err != nil {
			return err
		}
		return printStatus(out, items, opts.Output, time.Now())
	}

	if opts.Output == OutputTable && isTerminal() {
		return tui.RunWatchTUI(ctx, scope, interval, fetch)
	}
	return watchStatus(ctx, out, fetch, opts.Output, interval)
}

func listRefreshes(ctx context.Context, c client.Reader, namespace string) ([]migrationv1.NodeRefresh, error) {
	var list migrationv1.NodeRefreshList
	var opts []client.ListOption
	if namespace != "" {
		opts = append(opts, client.InNamespace(namespace))
	}
	if err := c.List(ctx, &list, opts...); err != nil {
		return nil, fmt.Errorf("failed to list NodeRefresh resources: %w", err)
	}

	sort.Slice(list.Items, func(i, j int) bool {
		a, b := list.Items[i], list.Items[j]
		if a.Namespace != b.Namespace {
			return a.Namespace < b.Namespace
		}
		return a.Name < b.Name
	})
	return list.Items, nil
}

func printStatus(out io.Writer, items []migrationv1.NodeRefresh, format string, now time.Time) error {
	switch format {
	case OutputJSON:
		data, err := json.MarshalIndent(asList(items), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err

	case OutputYAML:
		data, err := yaml.Marshal(asList(items))
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		_, err = out.Write(data)
		return err

	default:
		if len(items) == 0 {
			_, err := fmt.Fprintln(out, "No NodeRefresh resources found")
			return err
		}
		_, err := io.WriteString(out, tui.RenderTable(items, now, isTerminal()))
		return err
	}
}

func asList(items []migrationv1.NodeRefresh) *migrationv1.NodeRefreshList {
	list := &migrationv1.NodeRefreshList{Items: items}
	list.APIVersion = migrationv1.GroupVersion.String()
	list.Kind = "NodeRefreshList"
	if list.Items == nil {
		list.Items = []migrationv1.NodeRefresh{}
	}
	return list
}

// watchStatus prints the status every interval until ctx is done. Fetch
// errors are printed and the loop keeps going.
func watchStatus(ctx context.Context, out io.Writer, fetch tui.FetchFunc, format string, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		items, err := fetch(ctx)
		if err != nil {
			if _, err := fmt.Fprintf(out, "Error: %v\n", err); err != nil {
				return err
			}
		} else {
			if _, err := fmt.Fprintf(out, "--- %s ---\n", time.Now().Format("15:04:05")); err != nil {
				return err
			}
			if err := printStatus(out, items, format, time.Now()); err != nil {
				return err
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

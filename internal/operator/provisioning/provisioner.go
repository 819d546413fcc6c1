package provisioning

import (
	"context"

	"k8s.io/apimachinery/pkg/types"

	migrationv1 "github.com/imamik/noderefresh/api/v1"
)

// Hint describes the node being replaced.
type Hint struct {
	// Request is the NodeRefresh that triggered provisioning.
	Request types.NamespacedName
	// Node is the name of the node being replaced.
	Node string
	// NodeLabels are the labels of the node being replaced.
	NodeLabels map[string]string
	// Replacement carries per-request overrides, may be nil.
	Replacement *migrationv1.ReplacementSpec
}

// Provisioner brings up capacity to take over from a node.
type Provisioner interface {
	// Name identifies the implementation in logs and metrics.
	Name() string
	// Provision returns nil once replacement capacity has been requested.
	Provision(ctx context.Context, hint Hint) error
}

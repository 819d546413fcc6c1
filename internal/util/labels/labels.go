package labels

import (
	"maps"
	"slices"
	"strings"
)

// Standard label keys for machines created by the refresh operator.
const (
	// KeyRequest identifies the NodeRefresh that asked for the machine
	KeyRequest = "noderefresh.io/request"

	// KeyNamespace is the namespace of that NodeRefresh
	KeyNamespace = "noderefresh.io/namespace"

	// KeyReplaces names the node the machine is replacing
	KeyReplaces = "noderefresh.io/replaces"

	// KeyManagedBy identifies the management system
	KeyManagedBy = "noderefresh.io/managed-by"
)

// ManagedByOperator is the KeyManagedBy value for operator-created resources.
const ManagedByOperator = "noderefresh-operator"

// LabelBuilder provides a fluent interface for building machine labels.
type LabelBuilder struct {
	labels map[string]string
}

// NewLabelBuilder creates a builder pre-set with the owning request.
func NewLabelBuilder(namespace, request string) *LabelBuilder {
	return &LabelBuilder{
		labels: map[string]string{
			KeyRequest:   request,
			KeyNamespace: namespace,
			KeyManagedBy: ManagedByOperator,
		},
	}
}

// WithReplaces records which node the machine replaces.
func (lb *LabelBuilder) WithReplaces(nodeName string) *LabelBuilder {
	if nodeName != "" {
		lb.labels[KeyReplaces] = nodeName
	}
	return lb
}

// Merge adds all labels from the provided map. Builder keys win over extra keys.
func (lb *LabelBuilder) Merge(extra map[string]string) *LabelBuilder {
	for k, v := range extra {
		if _, reserved := lb.labels[k]; reserved && isOwnKey(k) {
			continue
		}
		lb.labels[k] = v
	}
	return lb
}

// Build returns a copy of the labels map.
func (lb *LabelBuilder) Build() map[string]string {
	return maps.Clone(lb.labels)
}

// Selector renders a label map as "k1=v1,k2=v2" with keys sorted, so the same
// map always produces the same selector.
func Selector(set map[string]string) string {
	keys := slices.Sorted(maps.Keys(set))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+set[k])
	}
	return strings.Join(parts, ",")
}

func isOwnKey(k string) bool {
	return strings.HasPrefix(k, "noderefresh.io/")
}

// Package evaluator decides whether the cluster is healthy enough to touch
// and which nodes are old enough to refresh. Everything here is a pure
// function of its inputs.
package evaluator

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	corev1 "k8s.io/api/core/v1"
)

// ErrInvalidTimestamp is returned for a node without a creation timestamp.
var ErrInvalidTimestamp = errors.New("node has no creation timestamp")

// thresholds maps the accepted newDepthThreshold names to durations.
var thresholds = map[string]time.Duration{
	"5min": 5 * time.Minute,
	"1hr":  time.Hour,
	"1day": 24 * time.Hour,
	"2day": 48 * time.Hour,
	"3day": 72 * time.Hour,
}

// ConfigurationError reports an invalid NodeRefresh spec. A pass that hits
// one ends in the Failed phase.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ThresholdNames returns the accepted threshold names, shortest first.
func ThresholdNames() []string {
	names := make([]string, 0, len(thresholds))
	for name := range thresholds {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return thresholds[names[i]] < thresholds[names[j]]
	})
	return names
}

// ResolveThreshold converts a threshold name to a duration.
func ResolveThreshold(name string) (time.Duration, error) {
	d, ok := thresholds[name]
	if !ok {
		return 0, &ConfigurationError{
			Field:  "newDepthThreshold",
			Reason: fmt.Sprintf("unknown threshold %q, must be one of %s", name, strings.Join(ThresholdNames(), ", ")),
		}
	}
	return d, nil
}

// NodeAge returns how long ago the node was created.
func NodeAge(node *corev1.Node, now time.Time) (time.Duration, error) {
	if node.CreationTimestamp.IsZero() {
		return 0, fmt.Errorf("node %s: %w", node.Name, ErrInvalidTimestamp)
	}
	return now.Sub(node.CreationTimestamp.Time), nil
}

// ShouldMigrate reports whether the node's age has reached threshold.
func ShouldMigrate(node *corev1.Node, threshold time.Duration, now time.Time) (bool, error) {
	age, err := NodeAge(node, now)
	if err != nil {
		return false, err
	}
	return age >= threshold, nil
}

// IsNodeReady reports whether the node's Ready condition is True.
func IsNodeReady(node *corev1.Node) bool {
	for _, cond := range node.Status.Conditions {
		if cond.Type == corev1.NodeReady {
			return cond.Status == corev1.ConditionTrue
		}
	}
	return false
}

// ClusterHealthPercent returns the share of Ready nodes as a percentage.
// An empty cluster is 0% healthy.
func ClusterHealthPercent(nodes []corev1.Node) float64 {
	if len(nodes) == 0 {
		return 0
	}
	ready := 0
	for i := range nodes {
		if IsNodeReady(&nodes[i]) {
			ready++
		}
	}
	return 100 * float64(ready) / float64(len(nodes))
}

// HealthGate returns the cluster health and whether it meets minPercent.
func HealthGate(nodes []corev1.Node, minPercent int32) (float64, bool) {
	pct := ClusterHealthPercent(nodes)
	return pct, pct >= float64(minPercent)
}

// SelectAged returns the nodes whose age has reached threshold, keeping
// their order. Nodes without a creation timestamp are returned separately.
func SelectAged(nodes []corev1.Node, threshold time.Duration, now time.Time) (aged []corev1.Node, invalid []string) {
	for i := range nodes {
		ok, err := ShouldMigrate(&nodes[i], threshold, now)
		if err != nil {
			invalid = append(invalid, nodes[i].Name)
			continue
		}
		if ok {
			aged = append(aged, nodes[i])
		}
	}
	return aged, invalid
}

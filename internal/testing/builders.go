package testing

import (
	"maps"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	migrationv1 "github.com/imamik/noderefresh/api/v1"
)

// NodeBuilder provides a fluent interface for constructing test nodes.
// Nodes are Ready and a day old unless configured otherwise.
type NodeBuilder struct {
	node corev1.Node
}

// NewNode starts a node fixture.
func NewNode(name string) *NodeBuilder {
	return &NodeBuilder{node: corev1.Node{
		ObjectMeta: metav1.ObjectMeta{
			Name:              name,
			CreationTimestamp: metav1.NewTime(time.Now().Add(-24 * time.Hour)),
		},
		Status: corev1.NodeStatus{Conditions: []corev1.NodeCondition{
			{Type: corev1.NodeReady, Status: corev1.ConditionTrue},
		}},
	}}
}

// WithLabels adds labels.
func (b *NodeBuilder) WithLabels(labels map[string]string) *NodeBuilder {
	if b.node.Labels == nil {
		b.node.Labels = map[string]string{}
	}
	maps.Copy(b.node.Labels, labels)
	return b
}

// Aged sets the creation timestamp to now minus age.
func (b *NodeBuilder) Aged(age time.Duration, now time.Time) *NodeBuilder {
	b.node.CreationTimestamp = metav1.NewTime(now.Add(-age))
	return b
}

// NoTimestamp clears the creation timestamp.
func (b *NodeBuilder) NoTimestamp() *NodeBuilder {
	b.node.CreationTimestamp = metav1.Time{}
	return b
}

// NotReady marks the Ready condition False.
func (b *NodeBuilder) NotReady() *NodeBuilder {
	b.node.Status.Conditions = []corev1.NodeCondition{
		{Type: corev1.NodeReady, Status: corev1.ConditionFalse},
	}
	return b
}

// Cordoned marks the node unschedulable.
func (b *NodeBuilder) Cordoned() *NodeBuilder {
	b.node.Spec.Unschedulable = true
	return b
}

// Build returns the node.
func (b *NodeBuilder) Build() corev1.Node {
	return *b.node.DeepCopy()
}

// PodBuilder provides a fluent interface for constructing test pods.
type PodBuilder struct {
	pod corev1.Pod
}

// NewPod starts a pod fixture.
func NewPod(namespace, name string) *PodBuilder {
	return &PodBuilder{pod: corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Namespace: namespace, Name: name},
		Status:     corev1.PodStatus{Phase: corev1.PodRunning},
	}}
}

// OnNode binds the pod to a node.
func (b *PodBuilder) OnNode(node string) *PodBuilder {
	b.pod.Spec.NodeName = node
	return b
}

// Build returns the pod.
func (b *PodBuilder) Build() corev1.Pod {
	return *b.pod.DeepCopy()
}

// RefreshBuilder provides a fluent interface for constructing NodeRefresh objects.
type RefreshBuilder struct {
	nr migrationv1.NodeRefresh
}

// NewRefresh starts a NodeRefresh fixture targeting pool=old with a 3day threshold.
func NewRefresh(namespace, name string) *RefreshBuilder {
	return &RefreshBuilder{nr: migrationv1.NodeRefresh{
		TypeMeta: metav1.TypeMeta{
			APIVersion: migrationv1.GroupVersion.String(),
			Kind:       "NodeRefresh",
		},
		ObjectMeta: metav1.ObjectMeta{Namespace: namespace, Name: name, Generation: 1},
		Spec: migrationv1.NodeRefreshSpec{
			TargetNodeLabels:  map[string]string{"pool": "old"},
			NewDepthThreshold: "3day",
		},
	}}
}

// WithTargetLabels replaces the node selector.
func (b *RefreshBuilder) WithTargetLabels(labels map[string]string) *RefreshBuilder {
	b.nr.Spec.TargetNodeLabels = labels
	return b
}

// WithThreshold sets newDepthThreshold.
func (b *RefreshBuilder) WithThreshold(name string) *RefreshBuilder {
	b.nr.Spec.NewDepthThreshold = name
	return b
}

// WithBatchSize sets maxPodsPerBatch.
func (b *RefreshBuilder) WithBatchSize(n int32) *RefreshBuilder {
	b.nr.Spec.MaxPodsPerBatch = ptr.To(n)
	return b
}

// WithMinHealth sets minHealthThreshold.
func (b *RefreshBuilder) WithMinHealth(pct int32) *RefreshBuilder {
	b.nr.Spec.MinHealthThreshold = ptr.To(pct)
	return b
}

// WithReplacement sets the replacement hint.
func (b *RefreshBuilder) WithReplacement(r *migrationv1.ReplacementSpec) *RefreshBuilder {
	b.nr.Spec.Replacement = r
	return b
}

// Paused marks the request paused.
func (b *RefreshBuilder) Paused() *RefreshBuilder {
	b.nr.Spec.Paused = true
	return b
}

// Build returns the NodeRefresh.
func (b *RefreshBuilder) Build() *migrationv1.NodeRefresh {
	return b.nr.DeepCopy()
}

package testing

import (
	"context"
	"errors"
	"sync"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/types"

	migrationv1 "github.com/imamik/noderefresh/api/v1"
	"github.com/imamik/noderefresh/internal/operator/gateway"
)

// MockGateway is an in-memory cluster implementing gateway.Gateway.
//
// Without overrides it behaves like a small API server: evicting or deleting
// a pod removes it, cordoning a node hides it from ListSchedulableNodes.
// Each XxxFunc field replaces the default behavior of one method.
type MockGateway struct {
	mu sync.Mutex

	Nodes     []corev1.Node
	Pods      []corev1.Pod
	Refreshes []migrationv1.NodeRefresh
	Log       *EventLog

	ListNodesFunc            func(ctx context.Context) ([]corev1.Node, error)
	ListSchedulableNodesFunc func(ctx context.Context, selector map[string]string) ([]corev1.Node, error)
	ListPodsOnNodeFunc       func(ctx context.Context, nodeName string) ([]corev1.Pod, error)
	SetNodeSchedulableFunc   func(ctx context.Context, nodeName string, schedulable bool) error
	EvictPodFunc             func(ctx context.Context, pod *corev1.Pod) error
	DeletePodFunc            func(ctx context.Context, pod *corev1.Pod, grace int64) error
	ListRefreshesFunc        func(ctx context.Context) ([]migrationv1.NodeRefresh, error)
	GetRefreshFunc           func(ctx context.Context, key types.NamespacedName) (*migrationv1.NodeRefresh, error)
	WriteStatusFunc          func(ctx context.Context, key types.NamespacedName, status migrationv1.NodeRefreshStatus) error

	// Call tracking
	ListPodsOnNodeCalls     []string
	SetNodeSchedulableCalls []SchedulableCall
	EvictPodCalls           []types.NamespacedName
	DeletePodCalls          []DeletePodCall
	WriteStatusCalls        []WriteStatusCall
}

// SchedulableCall tracks arguments to SetNodeSchedulable.
type SchedulableCall struct {
	Node        string
	Schedulable bool
}

// DeletePodCall tracks arguments to DeletePod.
type DeletePodCall struct {
	Pod         types.NamespacedName
	GracePeriod int64
}

// WriteStatusCall tracks arguments to WriteStatus.
type WriteStatusCall struct {
	Key    types.NamespacedName
	Status migrationv1.NodeRefreshStatus
}

var _ gateway.Gateway = (*MockGateway)(nil)

// NewMockGateway creates a MockGateway holding the given objects.
func NewMockGateway(log *EventLog, nodes []corev1.Node, pods []corev1.Pod) *MockGateway {
	return &MockGateway{Nodes: nodes, Pods: pods, Log: log}
}

func notFound(resource, name string) error {
	return &gateway.Error{
		Op:   "mock " + resource,
		Kind: gateway.KindNotFound,
		Err:  apierrors.NewNotFound(schema.GroupResource{Resource: resource}, name),
	}
}

// Transient returns a gateway error of kind Transient.
func Transient(op string) error {
	return &gateway.Error{Op: op, Kind: gateway.KindTransient, Err: errors.New("connection refused")}
}

// BudgetExceeded returns a gateway error of kind BudgetExceeded.
func BudgetExceeded(op string) error {
	return &gateway.Error{
		Op:   op,
		Kind: gateway.KindBudgetExceeded,
		Err:  apierrors.NewTooManyRequests("Cannot evict pod as it would violate the pod's disruption budget.", 10),
	}
}

func (m *MockGateway) ListNodes(ctx context.Context) ([]corev1.Node, error) {
	if m.ListNodesFunc != nil {
		return m.ListNodesFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return deepCopyNodes(m.Nodes), nil
}

func (m *MockGateway) ListSchedulableNodes(ctx context.Context, selector map[string]string) ([]corev1.Node, error) {
	if m.ListSchedulableNodesFunc != nil {
		return m.ListSchedulableNodesFunc(ctx, selector)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []corev1.Node
	for _, n := range m.Nodes {
		if n.Spec.Unschedulable || !matches(n.Labels, selector) {
			continue
		}
		out = append(out, *n.DeepCopy())
	}
	return out, nil
}

func (m *MockGateway) ListPodsOnNode(ctx context.Context, nodeName string) ([]corev1.Pod, error) {
	m.mu.Lock()
	m.ListPodsOnNodeCalls = append(m.ListPodsOnNodeCalls, nodeName)
	m.mu.Unlock()

	if m.ListPodsOnNodeFunc != nil {
		return m.ListPodsOnNodeFunc(ctx, nodeName)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []corev1.Pod
	for _, p := range m.Pods {
		if p.Spec.NodeName == nodeName {
			out = append(out, *p.DeepCopy())
		}
	}
	return out, nil
}

func (m *MockGateway) SetNodeSchedulable(ctx context.Context, nodeName string, schedulable bool) error {
	m.mu.Lock()
	m.SetNodeSchedulableCalls = append(m.SetNodeSchedulableCalls, SchedulableCall{Node: nodeName, Schedulable: schedulable})
	m.mu.Unlock()
	m.Log.Add("cordon:%s", nodeName)

	if m.SetNodeSchedulableFunc != nil {
		return m.SetNodeSchedulableFunc(ctx, nodeName, schedulable)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Nodes {
		if m.Nodes[i].Name == nodeName {
			m.Nodes[i].Spec.Unschedulable = !schedulable
			return nil
		}
	}
	return notFound("nodes", nodeName)
}

func (m *MockGateway) EvictPod(ctx context.Context, pod *corev1.Pod) error {
	key := types.NamespacedName{Namespace: pod.Namespace, Name: pod.Name}
	m.mu.Lock()
	m.EvictPodCalls = append(m.EvictPodCalls, key)
	m.mu.Unlock()
	m.Log.Add("evict:%s", key)

	if m.EvictPodFunc != nil {
		return m.EvictPodFunc(ctx, pod)
	}
	return m.removePod(key)
}

func (m *MockGateway) DeletePod(ctx context.Context, pod *corev1.Pod, grace int64) error {
	key := types.NamespacedName{Namespace: pod.Namespace, Name: pod.Name}
	m.mu.Lock()
	m.DeletePodCalls = append(m.DeletePodCalls, DeletePodCall{Pod: key, GracePeriod: grace})
	m.mu.Unlock()
	m.Log.Add("delete:%s", key)

	if m.DeletePodFunc != nil {
		return m.DeletePodFunc(ctx, pod, grace)
	}
	return m.removePod(key)
}

func (m *MockGateway) ListRefreshes(ctx context.Context) ([]migrationv1.NodeRefresh, error) {
	if m.ListRefreshesFunc != nil {
		return m.ListRefreshesFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]migrationv1.NodeRefresh, 0, len(m.Refreshes))
	for i := range m.Refreshes {
		out = append(out, *m.Refreshes[i].DeepCopy())
	}
	return out, nil
}

func (m *MockGateway) GetRefresh(ctx context.Context, key types.NamespacedName) (*migrationv1.NodeRefresh, error) {
	if m.GetRefreshFunc != nil {
		return m.GetRefreshFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Refreshes {
		if m.Refreshes[i].Namespace == key.Namespace && m.Refreshes[i].Name == key.Name {
			return m.Refreshes[i].DeepCopy(), nil
		}
	}
	return nil, notFound("noderefreshes", key.Name)
}

func (m *MockGateway) WriteStatus(ctx context.Context, key types.NamespacedName, status migrationv1.NodeRefreshStatus) error {
	m.mu.Lock()
	m.WriteStatusCalls = append(m.WriteStatusCalls, WriteStatusCall{Key: key, Status: *status.DeepCopy()})
	m.mu.Unlock()
	m.Log.Add("status:%s:%s", status.Phase, status.Message)

	if m.WriteStatusFunc != nil {
		return m.WriteStatusFunc(ctx, key, status)
	}
	return nil
}

// LastStatus returns the most recent status written for any request.
func (m *MockGateway) LastStatus() (migrationv1.NodeRefreshStatus, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.WriteStatusCalls) == 0 {
		return migrationv1.NodeRefreshStatus{}, false
	}
	return m.WriteStatusCalls[len(m.WriteStatusCalls)-1].Status, true
}

// Phases returns the phases of all status writes in order.
func (m *MockGateway) Phases() []migrationv1.RefreshPhase {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]migrationv1.RefreshPhase, 0, len(m.WriteStatusCalls))
	for _, c := range m.WriteStatusCalls {
		out = append(out, c.Status.Phase)
	}
	return out
}

// MutationCount returns the number of cordon, evict and delete calls.
func (m *MockGateway) MutationCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SetNodeSchedulableCalls) + len(m.EvictPodCalls) + len(m.DeletePodCalls)
}

// ResetCalls clears call tracking while keeping cluster state.
func (m *MockGateway) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListPodsOnNodeCalls = nil
	m.SetNodeSchedulableCalls = nil
	m.EvictPodCalls = nil
	m.DeletePodCalls = nil
	m.WriteStatusCalls = nil
}

func (m *MockGateway) removePod(key types.NamespacedName) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.Pods {
		if p.Namespace == key.Namespace && p.Name == key.Name {
			m.Pods = append(m.Pods[:i], m.Pods[i+1:]...)
			return nil
		}
	}
	return notFound("pods", key.Name)
}

func matches(labels, selector map[string]string) bool {
	for k, v := range selector {
		if labels[k] != v {
			return false
		}
	}
	return true
}

func deepCopyNodes(nodes []corev1.Node) []corev1.Node {
	out := make([]corev1.Node, 0, len(nodes))
	for i := range nodes {
		out = append(out, *nodes[i].DeepCopy())
	}
	return out
}

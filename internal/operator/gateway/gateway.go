package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	policyv1 "k8s.io/api/policy/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	migrationv1 "github.com/imamik/noderefresh/api/v1"
)

// PodNodeNameField is the field used to list the pods bound to a node.
const PodNodeNameField = "spec.nodeName"

// Gateway is the set of cluster operations the operator performs.
type Gateway interface {
	// ListNodes returns every node in the cluster.
	ListNodes(ctx context.Context) ([]corev1.Node, error)
	// ListSchedulableNodes returns the nodes matching selector that are not cordoned.
	ListSchedulableNodes(ctx context.Context, selector map[string]string) ([]corev1.Node, error)
	// ListPodsOnNode returns the pods bound to the named node.
	ListPodsOnNode(ctx context.Context, nodeName string) ([]corev1.Pod, error)
	// SetNodeSchedulable cordons (false) or uncordons (true) a node.
	SetNodeSchedulable(ctx context.Context, nodeName string, schedulable bool) error
	// EvictPod requests a graceful, budget-respecting eviction.
	EvictPod(ctx context.Context, pod *corev1.Pod) error
	// DeletePod removes a pod regardless of disruption budgets.
	DeletePod(ctx context.Context, pod *corev1.Pod, gracePeriodSeconds int64) error
	// ListRefreshes returns NodeRefresh requests in all namespaces.
	ListRefreshes(ctx context.Context) ([]migrationv1.NodeRefresh, error)
	// GetRefresh returns a single NodeRefresh.
	GetRefresh(ctx context.Context, key types.NamespacedName) (*migrationv1.NodeRefresh, error)
	// WriteStatus merge-patches the status of a NodeRefresh.
	WriteStatus(ctx context.Context, key types.NamespacedName, status migrationv1.NodeRefreshStatus) error
}

// KubeGateway implements Gateway on a controller-runtime client.
type KubeGateway struct {
	reader client.Reader
	writer client.Client
}

var _ Gateway = (*KubeGateway)(nil)

// Option configures a KubeGateway.
type Option func(*KubeGateway)

// WithReader reads through r instead of the writer client. The operator
// passes the manager's API reader so every pass sees live state.
func WithReader(r client.Reader) Option {
	return func(g *KubeGateway) {
		g.reader = r
	}
}

// New creates a KubeGateway.
func New(c client.Client, opts ...Option) *KubeGateway {
	g := &KubeGateway{reader: c, writer: c}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// IndexPodNodeName extracts spec.nodeName for a field index.
func IndexPodNodeName(obj client.Object) []string {
	pod, ok := obj.(*corev1.Pod)
	if !ok || pod.Spec.NodeName == "" {
		return nil
	}
	return []string{pod.Spec.NodeName}
}

func (g *KubeGateway) ListNodes(ctx context.Context) ([]corev1.Node, error) {
	var nodes corev1.NodeList
	if err := g.reader.List(ctx, &nodes); err != nil {
		return nil, wrap("list nodes", err)
	}
	return nodes.Items, nil
}

func (g *KubeGateway) ListSchedulableNodes(ctx context.Context, selector map[string]string) ([]corev1.Node, error) {
	var nodes corev1.NodeList
	if err := g.reader.List(ctx, &nodes, client.MatchingLabels(selector)); err != nil {
		return nil, wrap("list target nodes", err)
	}

	out := make([]corev1.Node, 0, len(nodes.Items))
	for _, n := range nodes.Items {
		if !n.Spec.Unschedulable {
			out = append(out, n)
		}
	}
	return out, nil
}

func (g *KubeGateway) ListPodsOnNode(ctx context.Context, nodeName string) ([]corev1.Pod, error) {
	var pods corev1.PodList
	if err := g.reader.List(ctx, &pods, client.MatchingFields{PodNodeNameField: nodeName}); err != nil {
		return nil, wrap(fmt.Sprintf("list pods on node %s", nodeName), err)
	}
	return pods.Items, nil
}

func (g *KubeGateway) SetNodeSchedulable(ctx context.Context, nodeName string, schedulable bool) error {
	body, err := json.Marshal(map[string]any{
		"spec": map[string]any{"unschedulable": !schedulable},
	})
	if err != nil {
		return wrap("encode node patch", err)
	}

	node := &corev1.Node{ObjectMeta: metav1.ObjectMeta{Name: nodeName}}
	if err := g.writer.Patch(ctx, node, client.RawPatch(types.MergePatchType, body)); err != nil {
		return wrap(fmt.Sprintf("patch node %s", nodeName), err)
	}
	return nil
}

func (g *KubeGateway) EvictPod(ctx context.Context, pod *corev1.Pod) error {
	eviction := &policyv1.Eviction{
		ObjectMeta: metav1.ObjectMeta{
			Name:      pod.Name,
			Namespace: pod.Namespace,
		},
	}
	if err := g.writer.SubResource("eviction").Create(ctx, pod, eviction); err != nil {
		return wrap(fmt.Sprintf("evict pod %s/%s", pod.Namespace, pod.Name), err)
	}
	return nil
}

func (g *KubeGateway) DeletePod(ctx context.Context, pod *corev1.Pod, gracePeriodSeconds int64) error {
	if err := g.writer.Delete(ctx, pod, client.GracePeriodSeconds(gracePeriodSeconds)); err != nil {
		return wrap(fmt.Sprintf("delete pod %s/%s", pod.Namespace, pod.Name), err)
	}
	return nil
}

func (g *KubeGateway) ListRefreshes(ctx context.Context) ([]migrationv1.NodeRefresh, error) {
	var list migrationv1.NodeRefreshList
	if err := g.reader.List(ctx, &list); err != nil {
		return nil, wrap("list noderefreshes", err)
	}
	return list.Items, nil
}

func (g *KubeGateway) GetRefresh(ctx context.Context, key types.NamespacedName) (*migrationv1.NodeRefresh, error) {
	nr := &migrationv1.NodeRefresh{}
	if err := g.reader.Get(ctx, key, nr); err != nil {
		return nil, wrap(fmt.Sprintf("get noderefresh %s", key), err)
	}
	return nr, nil
}

// WriteStatus sends a JSON merge patch, so empty fields in status leave the
// stored values untouched.
func (g *KubeGateway) WriteStatus(ctx context.Context, key types.NamespacedName, status migrationv1.NodeRefreshStatus) error {
	body, err := json.Marshal(map[string]any{"status": status})
	if err != nil {
		return wrap("encode status patch", err)
	}

	obj := &migrationv1.NodeRefresh{ObjectMeta: metav1.ObjectMeta{Name: key.Name, Namespace: key.Namespace}}
	if err := g.writer.Status().Patch(ctx, obj, client.RawPatch(types.MergePatchType, body)); err != nil {
		return wrap(fmt.Sprintf("write status of %s", key), err)
	}
	return nil
}

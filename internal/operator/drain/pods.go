package drain

import (
	"slices"

	"github.com/go-logr/logr"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/types"

	"github.com/imamik/noderefresh/internal/operator/gateway"
)

// KubeSystemNamespace is protected regardless of configuration.
const KubeSystemNamespace = "kube-system"

// DefaultSystemNamespaces are the namespaces left alone when none are configured.
var DefaultSystemNamespaces = []string{KubeSystemNamespace, "gke-managed-system", "gmp-system"}

// SystemPods identifies pods that must never be evicted or deleted.
type SystemPods struct {
	namespaces []string
}

// NewSystemPods creates a SystemPods for the given namespaces. An empty list
// falls back to DefaultSystemNamespaces and kube-system is always included.
func NewSystemPods(namespaces []string) SystemPods {
	if len(namespaces) == 0 {
		namespaces = DefaultSystemNamespaces
	}
	ns := slices.Clone(namespaces)
	if !slices.Contains(ns, KubeSystemNamespace) {
		ns = append(ns, KubeSystemNamespace)
	}
	return SystemPods{namespaces: ns}
}

// Contains reports whether pod lives in a system namespace.
func (s SystemPods) Contains(pod *corev1.Pod) bool {
	return slices.Contains(s.namespaces, pod.Namespace)
}

// Batch returns the first limit non-system pods in listing order.
func (s SystemPods) Batch(pods []corev1.Pod, limit int) []corev1.Pod {
	if limit <= 0 {
		return nil
	}
	batch := make([]corev1.Pod, 0, min(limit, len(pods)))
	for i := range pods {
		if len(batch) == limit {
			break
		}
		if s.Contains(&pods[i]) {
			continue
		}
		batch = append(batch, pods[i])
	}
	return batch
}

// PodFailure records a pod that could not be evicted or deleted.
type PodFailure struct {
	Pod  types.NamespacedName
	Kind gateway.Kind
	Err  error
}

func newPodFailure(pod *corev1.Pod, err error) PodFailure {
	return PodFailure{
		Pod:  types.NamespacedName{Namespace: pod.Namespace, Name: pod.Name},
		Kind: gateway.KindOf(err),
		Err:  err,
	}
}

func (f PodFailure) log(logger logr.Logger, msg string) {
	logger.Info(msg, "pod", f.Pod, "reason", f.Kind.String(), "error", f.Err.Error())
}

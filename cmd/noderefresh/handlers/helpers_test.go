package handlers

import (
	"testing"

	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	migrationv1 "github.com/imamik/noderefresh/api/v1"
	"github.com/imamik/noderefresh/internal/operator/gateway"
)

// useFakeClient points newClient at a fake cluster holding objs. Tests that
// call it must not run in parallel.
func useFakeClient(t *testing.T, namespace string, objs ...client.Object) client.Client {
	t.Helper()

	c := fake.NewClientBuilder().
		WithScheme(migrationv1.Scheme).
		WithObjects(objs...).
		WithIndex(&corev1.Pod{}, gateway.PodNodeNameField, gateway.IndexPodNodeName).
		WithStatusSubresource(&migrationv1.NodeRefresh{}).
		Build()

	orig := newClient
	newClient = func(string) (client.Client, string, error) {
		return c, namespace, nil
	}
	t.Cleanup(func() { newClient = orig })
	return c
}

func usePlainOutput(t *testing.T) {
	t.Helper()
	orig := isTerminal
	isTerminal = func() bool { return false }
	t.Cleanup(func() { isTerminal = orig })
}

// Package handlers implements the business logic behind CLI commands.
package handlers

import (
	"fmt"

	"k8s.io/client-go/tools/clientcmd"
	"sigs.k8s.io/controller-runtime/pkg/client"

	migrationv1 "github.com/imamik/noderefresh/api/v1"
)

// newClient builds a client from kubeconfig and returns it together with
// the namespace of the selected context. Tests replace it.
var newClient = func(kubeconfig string) (client.Client, string, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	rules.ExplicitPath = kubeconfig
	loader := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, &clientcmd.ConfigOverrides{})

	restCfg, err := loader.ClientConfig()
	if err != nil {
		return nil, "", fmt.Errorf("failed to load kubeconfig: %w", err)
	}
	namespace, _, err := loader.Namespace()
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve namespace: %w", err)
	}

	k8sClient, err := client.New(restCfg, client.Options{Scheme: migrationv1.Scheme})
	if err != nil {
		return nil, "", fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	return k8sClient, namespace, nil
}

// Package k8s implements the narrow cluster control API surface addon
// reconciliation consumes: namespace phase probes, pod readiness checks, CRD
// presence, deployment argument reads, and the two patch writes the
// reconciler may issue (finalizer clear, argument append).
package k8s

import (
	"fmt"

	apiextensionsclient "k8s.io/apiextensions-apiserver/pkg/client/clientset/clientset"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// Client wraps the typed clientsets behind the operations addons need.
type Client struct {
	clientset  kubernetes.Interface
	extensions apiextensionsclient.Interface
}

// New creates a Client from a kubeconfig path. An empty path falls back to
// the standard kubeconfig resolution (KUBECONFIG, then ~/.kube/config).
func New(kubeconfigPath string) (*Client, error) {
	restConfig, err := buildRESTConfig(kubeconfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to build kubeconfig: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create clientset: %w", err)
	}

	extensions, err := apiextensionsclient.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create apiextensions clientset: %w", err)
	}

	return &Client{clientset: clientset, extensions: extensions}, nil
}

// NewFromClients creates a Client from pre-configured clientsets.
// This is useful for testing with fake clients.
func NewFromClients(clientset kubernetes.Interface, extensions apiextensionsclient.Interface) *Client {
	return &Client{clientset: clientset, extensions: extensions}
}

func buildRESTConfig(kubeconfigPath string) (*rest.Config, error) {
	if kubeconfigPath != "" {
		return clientcmd.BuildConfigFromFlags("", kubeconfigPath)
	}

	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	return clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, &clientcmd.ConfigOverrides{}).ClientConfig()
}

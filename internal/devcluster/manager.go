// Package devcluster provisions the local kind cluster and image registry
// that the controller's development workflow runs against.
package devcluster

import (
	"context"
	"fmt"
	"os"
	"strings"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"

	"github.com/microscaler/secret-manager-controller/internal/config"
	"github.com/microscaler/secret-manager-controller/internal/execx"
	"github.com/microscaler/secret-manager-controller/internal/ui"
)

// Manager drives the kind and docker CLIs to provision the development
// cluster described by cfg.
type Manager struct {
	runner execx.Runner
	log    *ui.Logger
	cfg    *config.Config
}

// NewManager returns a Manager operating on the cluster described by cfg.
func NewManager(runner execx.Runner, log *ui.Logger, cfg *config.Config) *Manager {
	return &Manager{runner: runner, log: log, cfg: cfg}
}

// Exists reports whether the configured kind cluster is present.
func (m *Manager) Exists(ctx context.Context) (bool, error) {
	res := m.runner.Run(ctx, "kind", "get", "clusters")
	if !res.Success() {
		return false, fmt.Errorf("kind get clusters: %s: %w", res.Output, res.Err)
	}
	return containsLine(res.Output, m.cfg.ClusterName), nil
}

// Up provisions the registry container, creates the kind cluster, and wires
// the two together. The caller resolves what to do when the cluster already
// exists; Up assumes it does not.
func (m *Manager) Up(ctx context.Context) error {
	if _, err := os.Stat(m.cfg.KindConfig); err != nil {
		return fmt.Errorf("kind config %s not found, create it in the project root: %w", m.cfg.KindConfig, err)
	}

	if err := m.ensureRegistry(ctx); err != nil {
		return err
	}

	m.log.Infof("Creating kind cluster %s...", m.cfg.ClusterName)
	if res := m.runner.Run(ctx, "kind", "create", "cluster", "--config", m.cfg.KindConfig); !res.Success() {
		return fmt.Errorf("kind create cluster: %s: %w", res.Output, res.Err)
	}

	m.connectRegistryNetwork(ctx)

	if err := m.documentRegistry(ctx); err != nil {
		return err
	}

	m.log.Infof("Kind cluster %s created", m.cfg.ClusterName)
	m.log.Infof("Local registry: %s (localhost:%d)", m.cfg.RegistryName, m.cfg.RegistryPort)
	return nil
}

// Delete removes the kind cluster. The registry container is left running
// for the next Up to reuse.
func (m *Manager) Delete(ctx context.Context) error {
	m.log.Infof("Deleting kind cluster %s...", m.cfg.ClusterName)
	if res := m.runner.Run(ctx, "kind", "delete", "cluster", "--name", m.cfg.ClusterName); !res.Success() {
		return fmt.Errorf("kind delete cluster: %s: %w", res.Output, res.Err)
	}
	m.log.Infof("Cluster deleted")
	return nil
}

// ensureRegistry starts the local image registry container unless one with
// the configured name is already running.
func (m *Manager) ensureRegistry(ctx context.Context) error {
	res := m.runner.Run(ctx, "docker", "ps", "--format", "{{.Names}}")
	if !res.Success() {
		return fmt.Errorf("docker ps: %s: %w", res.Output, res.Err)
	}
	if containsLine(res.Output, m.cfg.RegistryName) {
		m.log.Infof("Local registry already running")
		return nil
	}

	m.log.Infof("Creating local Docker registry...")
	res = m.runner.Run(ctx, "docker", "run", "-d", "--restart=always",
		"-p", fmt.Sprintf("%d:5000", m.cfg.RegistryPort),
		"--name", m.cfg.RegistryName, "registry:2")
	if res.Success() {
		return nil
	}

	// A stopped container holding the name blocks docker run.
	if strings.Contains(res.Output, "is already in use") {
		if start := m.runner.Run(ctx, "docker", "start", m.cfg.RegistryName); start.Success() {
			m.log.Infof("Restarted existing registry container")
			return nil
		}
	}
	return fmt.Errorf("docker run registry: %s: %w", res.Output, res.Err)
}

// connectRegistryNetwork attaches the registry container to the docker
// network kind creates. Best effort: without it in-cluster pulls go through
// the localhost port mapping instead of the registry hostname.
func (m *Manager) connectRegistryNetwork(ctx context.Context) {
	res := m.runner.Run(ctx, "docker", "network", "ls", "--format", "{{.Name}}")
	if !res.Success() || !containsLine(res.Output, "kind") {
		return
	}

	res = m.runner.Run(ctx, "docker", "network", "connect", "kind", m.cfg.RegistryName)
	if !res.Success() && !strings.Contains(res.Output, "already exists") {
		m.log.Warnf("Could not connect registry to kind network: %s", res.Output)
	}
}

// documentRegistry publishes the local-registry-hosting ConfigMap so tooling
// inside the cluster can discover the registry endpoint.
func (m *Manager) documentRegistry(ctx context.Context) error {
	manifest, err := registryHostingManifest(m.cfg.RegistryPort)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp("", "smcdev-registry-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp manifest: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(manifest); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp manifest: %w", err)
	}

	if res := m.runner.Run(ctx, "kubectl", "apply", "-f", tmp.Name()); !res.Success() {
		return fmt.Errorf("apply registry configmap: %s: %w", res.Output, res.Err)
	}
	return nil
}

// registryHostingManifest renders the kube-public ConfigMap from the kind
// local-registry contract.
func registryHostingManifest(port int) ([]byte, error) {
	cm := corev1.ConfigMap{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "ConfigMap",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      "local-registry-hosting",
			Namespace: "kube-public",
		},
		Data: map[string]string{
			"localRegistryHosting.v1": fmt.Sprintf("host: %q\nhelp: %q\n",
				fmt.Sprintf("localhost:%d", port),
				"https://kind.sigs.k8s.io/docs/user/local-registry/"),
		},
	}

	data, err := yaml.Marshal(cm)
	if err != nil {
		return nil, fmt.Errorf("marshal registry configmap: %w", err)
	}
	return data, nil
}

// containsLine reports whether any full line of output equals want.
func containsLine(output, want string) bool {
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == want {
			return true
		}
	}
	return false
}

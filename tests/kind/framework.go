//go:build kind

// Package kind provides integration tests against a local Kubernetes
// cluster. They exercise the real add-on reconciler end to end: install
// commands through the local CLI tools, readiness waits against the live API
// server, and the idempotent re-run guarantees.
package kind

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"
)

const clusterName = "smcdev-test"

// Framework manages the kind cluster lifecycle for tests.
type Framework struct {
	mu             sync.RWMutex
	kubeconfigPath string
	clusterReady   bool
}

// NewFramework creates a test framework instance.
func NewFramework() *Framework {
	return &Framework{}
}

// Setup creates the kind cluster or reuses an existing one.
func (f *Framework) Setup() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkPrerequisites(); err != nil {
		return err
	}

	if f.clusterExists() {
		fmt.Printf("Using existing kind cluster: %s\n", clusterName)
		f.clusterReady = true
		return f.loadKubeconfig()
	}

	fmt.Printf("Creating kind cluster: %s\n", clusterName)
	if err := f.createCluster(); err != nil {
		return fmt.Errorf("create cluster: %w", err)
	}

	f.clusterReady = true
	return f.loadKubeconfig()
}

// Teardown deletes the kind cluster unless KEEP_KIND_CLUSTER is set.
func (f *Framework) Teardown() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if os.Getenv("KEEP_KIND_CLUSTER") != "" {
		fmt.Printf("\nCluster preserved: %s\n", clusterName)
		fmt.Printf("  Kubeconfig: %s\n", f.kubeconfigPath)
		fmt.Printf("  Delete: kind delete cluster --name %s\n", clusterName)
		return
	}

	if f.kubeconfigPath != "" {
		_ = os.Remove(f.kubeconfigPath)
	}

	if f.clusterReady {
		fmt.Printf("Deleting kind cluster: %s\n", clusterName)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		_ = exec.CommandContext(ctx, "kind", "delete", "cluster", "--name", clusterName).Run()
	}
}

func (f *Framework) checkPrerequisites() error {
	if _, err := exec.LookPath("kind"); err != nil {
		return fmt.Errorf("kind not found: install with 'go install sigs.k8s.io/kind@latest'")
	}
	if _, err := exec.LookPath("kubectl"); err != nil {
		return fmt.Errorf("kubectl not found")
	}
	if err := exec.Command("docker", "info").Run(); err != nil {
		return fmt.Errorf("docker not running")
	}
	return nil
}

func (f *Framework) clusterExists() bool {
	output, err := exec.Command("kind", "get", "clusters").Output()
	return err == nil && strings.Contains(string(output), clusterName)
}

func (f *Framework) createCluster() error {
	// A single node is enough; the add-ons have no node requirements.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// #nosec G204 -- test code with controlled command arguments
	cmd := exec.CommandContext(ctx, "kind", "create", "cluster",
		"--name", clusterName,
		"--wait", "120s",
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (f *Framework) loadKubeconfig() error {
	output, err := exec.Command("kind", "get", "kubeconfig", "--name", clusterName).Output()
	if err != nil {
		return fmt.Errorf("get kubeconfig: %w", err)
	}

	kubeconfigFile, err := os.CreateTemp("", "smcdev-kubeconfig-*.yaml")
	if err != nil {
		return err
	}
	if _, err := kubeconfigFile.Write(output); err != nil {
		return err
	}
	if err := kubeconfigFile.Close(); err != nil {
		return err
	}
	f.kubeconfigPath = kubeconfigFile.Name()
	return nil
}

// KubeconfigPath returns the path to the kubeconfig file.
func (f *Framework) KubeconfigPath() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.kubeconfigPath
}

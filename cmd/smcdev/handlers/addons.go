package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/microscaler/secret-manager-controller/internal/addons"
	"github.com/microscaler/secret-manager-controller/internal/config"
	"github.com/microscaler/secret-manager-controller/internal/k8s"
	"github.com/microscaler/secret-manager-controller/internal/ui"
	"github.com/microscaler/secret-manager-controller/internal/util/prerequisites"
)

// Factory function variables for addon commands - can be replaced in tests.
var (
	// newCluster connects to the cluster the kubeconfig points at.
	newCluster = func(kubeconfigPath string) (addons.Cluster, error) {
		return k8s.New(kubeconfigPath)
	}

	// checkAddonPrereqs verifies kubectl plus the add-on's extra tools.
	checkAddonPrereqs = func(extra ...string) error {
		return prerequisites.Check(prerequisites.ForAddon(extra...)).Error()
	}

	// loadTimings reads the wait cadence overrides.
	loadTimings = config.LoadTimings
)

// AddonInstall drives the named add-on to Ready. A Ready outcome with
// warnings still succeeds; only fatal failures make the command exit
// non-zero.
func AddonInstall(ctx context.Context, name, configPath, kubeconfigPath string) error {
	log := ui.NewLogger()

	spec, err := addons.Lookup(name)
	if err != nil {
		return err
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}
	if kubeconfigPath == "" {
		kubeconfigPath = cfg.Kubeconfig
	}

	if err := checkAddonPrereqs(spec.RequiredTools...); err != nil {
		return err
	}

	cluster, err := newCluster(kubeconfigPath)
	if err != nil {
		return fmt.Errorf("connect to cluster: %w", err)
	}

	log.Infof("%s installation", spec.DisplayName)
	log.Infof("%s", strings.Repeat("=", 50))

	outcome := addons.NewReconciler(cluster, newRunner(), log, loadTimings()).Reconcile(ctx, spec)
	if outcome.State == addons.StateFailed {
		return outcome.Err
	}
	return nil
}

// AddonList prints the add-ons the install command accepts.
func AddonList() error {
	for _, spec := range addons.All() {
		fmt.Printf("%-8s  namespace=%-12s  primary=%-30s  crd=%s\n",
			spec.Name, spec.Namespace, spec.Primary.DisplayName, spec.RequiredCRD)
	}
	return nil
}

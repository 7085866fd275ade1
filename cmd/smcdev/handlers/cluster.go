package handlers

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/microscaler/secret-manager-controller/internal/config"
	"github.com/microscaler/secret-manager-controller/internal/devcluster"
	"github.com/microscaler/secret-manager-controller/internal/execx"
	"github.com/microscaler/secret-manager-controller/internal/ui"
	"github.com/microscaler/secret-manager-controller/internal/util/prerequisites"
)

// Factory function variables for cluster commands - can be replaced in tests.
var (
	// newRunner creates the command runner used for docker/kind/kubectl.
	newRunner = func() execx.Runner {
		return execx.Local{}
	}

	// checkClusterPrereqs verifies the cluster lifecycle tools.
	checkClusterPrereqs = func() error {
		return prerequisites.Check(prerequisites.ClusterTools()).Error()
	}

	// confirmRecreate asks whether to replace an existing cluster.
	confirmRecreate = func(ctx context.Context, name string) (bool, error) {
		recreate := false
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Cluster %s already exists. Delete and recreate it?", name)).
					Value(&recreate),
			),
		)
		if err := form.RunWithContext(ctx); err != nil {
			return false, err
		}
		return recreate, nil
	}
)

// ClusterUp provisions the development cluster and its image registry. An
// existing cluster is reused unless the user opts into recreating it.
func ClusterUp(ctx context.Context, configPath string, recreate bool) error {
	log := ui.NewLogger()

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	if err := checkClusterPrereqs(); err != nil {
		return err
	}

	mgr := devcluster.NewManager(newRunner(), log, cfg)

	exists, err := mgr.Exists(ctx)
	if err != nil {
		return err
	}

	if exists {
		if !recreate && interactive() {
			recreate, err = confirmRecreate(ctx, cfg.ClusterName)
			if err != nil {
				return err
			}
		}
		if !recreate {
			log.Infof("Using existing cluster %s", cfg.ClusterName)
			return nil
		}
		if err := mgr.Delete(ctx); err != nil {
			return err
		}
	}

	if err := mgr.Up(ctx); err != nil {
		return err
	}

	log.Infof("Next: smcdev addons install argocd")
	return nil
}

// ClusterDelete removes the development cluster.
func ClusterDelete(ctx context.Context, configPath string) error {
	log := ui.NewLogger()

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	if err := checkClusterPrereqs(); err != nil {
		return err
	}

	return devcluster.NewManager(newRunner(), log, cfg).Delete(ctx)
}

// ClusterPrune reclaims containerd storage on the cluster nodes.
func ClusterPrune(ctx context.Context, configPath string) error {
	log := ui.NewLogger()

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	if err := checkClusterPrereqs(); err != nil {
		return err
	}

	return devcluster.NewManager(newRunner(), log, cfg).Prune(ctx)
}

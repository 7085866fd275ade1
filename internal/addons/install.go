package addons

import (
	"context"
	"fmt"

	"github.com/microscaler/secret-manager-controller/internal/execx"
	"github.com/microscaler/secret-manager-controller/internal/ui"
)

// Installer applies an add-on's install commands. Installs are assumed to be
// re-runnable from scratch; no rollback is attempted on failure.
type Installer struct {
	runner execx.Runner
	log    *ui.Logger
}

// NewInstaller returns an Installer running commands through runner.
func NewInstaller(runner execx.Runner, log *ui.Logger) *Installer {
	return &Installer{runner: runner, log: log}
}

// Install runs the add-on's install commands in order. A failed command
// whose output marks a pre-existing installation counts as success when the
// add-on's install is idempotent; any other failure is fatal and skips the
// remaining commands.
func (i *Installer) Install(ctx context.Context, spec AddonSpec) error {
	i.log.Infof("Installing %s...", spec.DisplayName)

	for _, argv := range spec.InstallCommands {
		i.log.Infof("Running: %s", execx.CommandLine(argv[0], argv[1:]...))

		res := i.runner.Run(ctx, argv[0], argv[1:]...)
		if res.Success() {
			continue
		}

		if spec.InstallIdempotent && installTolerated(res.Output) {
			i.log.Infof("%s resources already exist, continuing", spec.DisplayName)
			continue
		}

		i.log.Errorf("Failed to install %s: %s", spec.DisplayName, res.Output)
		return Fatal(ReasonInstallCommandFailed, fmt.Errorf("install %s: %s: %w", spec.DisplayName, res.Output, res.Err))
	}

	i.log.Infof("%s manifests applied", spec.DisplayName)
	return nil
}

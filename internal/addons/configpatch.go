package addons

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/microscaler/secret-manager-controller/internal/config"
	"github.com/microscaler/secret-manager-controller/internal/poll"
	"github.com/microscaler/secret-manager-controller/internal/ui"
)

// Patcher applies an add-on's post-install argument toggle. Every failure on
// this path is a warning: the toggle improves the add-on's configuration but
// is not required for it to function.
type Patcher struct {
	cluster Cluster
	log     *ui.Logger
	timings config.Timings
}

// NewPatcher returns a Patcher mutating deployments through cluster.
func NewPatcher(cluster Cluster, log *ui.Logger, timings config.Timings) *Patcher {
	return &Patcher{cluster: cluster, log: log, timings: timings}
}

// Apply ensures the add-on's configured flag is present on its target
// deployment. When the flag is already set no patch is issued, so repeated
// runs converge to a single write. A successful patch is followed by a settle
// delay and a bounded readiness re-check while the deployment rolls out. The
// returned error is non-nil only when ctx ends the wait early.
func (p *Patcher) Apply(ctx context.Context, spec AddonSpec) ([]string, error) {
	patch := spec.ConfigPatch
	if patch == nil {
		return nil, nil
	}
	target := patch.AppliesTo

	p.log.Infof("Configuring %s with %s...", target.DisplayName, patch.ArgFlag)

	args, err := p.cluster.DeploymentArgs(ctx, target.Namespace, target.DisplayName)
	if err != nil {
		warning := fmt.Sprintf("Could not verify %s configuration: %v", target.DisplayName, err)
		p.log.Warnf("%s", warning)
		return []string{warning}, nil
	}

	for _, arg := range args {
		if arg == patch.ArgFlag {
			p.log.Infof("%s already configured with %s", target.DisplayName, patch.ArgFlag)
			return nil, nil
		}
	}

	if err := p.cluster.AppendDeploymentArg(ctx, target.Namespace, target.DisplayName, patch.ArgFlag); err != nil {
		warning := fmt.Sprintf("Failed to configure %s: %v", target.DisplayName, err)
		p.log.Warnf("%s", warning)
		return []string{warning}, nil
	}

	p.log.Infof("Added %s to %s", patch.ArgFlag, target.DisplayName)
	p.log.Infof("Waiting for %s to restart...", target.DisplayName)

	if err := sleep(ctx, p.timings.PatchSettleDelay); err != nil {
		return nil, err
	}

	attempts := p.timings.PatchRewaitAttempts
	interval := p.timings.ReadinessInterval
	waitErr := poll.Wait(ctx, poll.Config{
		Interval: interval,
		Bound:    time.Duration(attempts) * interval,
	}, func(ctx context.Context) bool {
		ready, probeErr := p.cluster.AnyPodReady(ctx, target.Namespace, target.LabelSelector)
		return probeErr == nil && ready
	})

	switch {
	case waitErr == nil:
		p.log.Infof("%s restarted with the new configuration", target.DisplayName)
		return nil, nil
	case errors.Is(waitErr, poll.ErrBoundExceeded):
		warning := fmt.Sprintf("%s not ready after configuration change", target.DisplayName)
		p.log.Warnf("%s", warning)
		return []string{warning}, nil
	default:
		return nil, waitErr
	}
}

// sleep waits for d unless ctx ends first.
func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

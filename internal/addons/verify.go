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

// Verifier checks add-on components against the cluster: a bounded wait for
// the required primary, single probes for everything else.
type Verifier struct {
	cluster Cluster
	log     *ui.Logger
	timings config.Timings
}

// NewVerifier returns a Verifier probing cluster.
func NewVerifier(cluster Cluster, log *ui.Logger, timings config.Timings) *Verifier {
	return &Verifier{cluster: cluster, log: log, timings: timings}
}

// WaitPrimary blocks until the add-on's primary component reports ready or
// the attempt budget runs out. Exhaustion yields a warning, never a failure:
// the install may still have succeeded and only readiness is lagging. The
// returned error is non-nil only when ctx ends the wait early.
func (v *Verifier) WaitPrimary(ctx context.Context, spec AddonSpec) (string, error) {
	sel := spec.Primary
	attempts := spec.ReadyAttempts
	interval := v.timings.ReadinessInterval

	calls := 0
	err := poll.Wait(ctx, poll.Config{
		Interval: interval,
		Bound:    time.Duration(attempts) * interval,
	}, func(ctx context.Context) bool {
		calls++
		ready, probeErr := v.cluster.AnyPodReady(ctx, sel.Namespace, sel.LabelSelector)
		if probeErr != nil || !ready {
			if calls < attempts {
				v.log.Infof("Waiting for %s... (%d/%d)", sel.DisplayName, calls, attempts)
			}
			return false
		}
		return true
	})

	switch {
	case err == nil:
		v.log.Infof("%s is ready", sel.DisplayName)
		return "", nil
	case errors.Is(err, poll.ErrBoundExceeded):
		warning := fmt.Sprintf("%s not ready after %d attempts, but installation may have succeeded", sel.DisplayName, attempts)
		v.log.Warnf("%s", warning)
		return warning, nil
	default:
		return "", err
	}
}

// CheckSecondaries probes each optional component exactly once. Absence is
// reported as a warning; secondaries are never waited on.
func (v *Verifier) CheckSecondaries(ctx context.Context, spec AddonSpec) []string {
	var warnings []string
	for _, sel := range spec.Secondaries {
		running, err := v.cluster.AnyPodRunning(ctx, sel.Namespace, sel.LabelSelector)
		if err == nil && running {
			v.log.Infof("%s is running", sel.DisplayName)
			continue
		}
		warning := fmt.Sprintf("%s not ready yet (may still be starting)", sel.DisplayName)
		v.log.Warnf("%s", warning)
		warnings = append(warnings, warning)
	}
	return warnings
}

// CheckCapability probes for the add-on's characteristic CRD. A missing CRD
// is a warning: the add-on may still be registering its API types.
func (v *Verifier) CheckCapability(ctx context.Context, spec AddonSpec) string {
	if spec.RequiredCRD == "" {
		return ""
	}

	found, err := v.cluster.HasCRD(ctx, spec.RequiredCRD)
	if err == nil && found {
		v.log.Infof("%s CRD is installed", spec.RequiredCRD)
		return ""
	}

	warning := fmt.Sprintf("%s CRD not found - %s may not be fully functional", spec.RequiredCRD, spec.DisplayName)
	v.log.Warnf("%s", warning)
	return warning
}

package addons

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/microscaler/secret-manager-controller/internal/config"
	"github.com/microscaler/secret-manager-controller/internal/execx"
	"github.com/microscaler/secret-manager-controller/internal/k8s"
	"github.com/microscaler/secret-manager-controller/internal/poll"
	"github.com/microscaler/secret-manager-controller/internal/ui"
)

// State is the terminal state of a reconciliation run.
type State string

const (
	// StateReady means the add-on is installed and usable, possibly with
	// warnings attached.
	StateReady State = "Ready"

	// StateFailed means the run hit a non-recoverable error.
	StateFailed State = "Failed"
)

// terminationHeartbeatPolls spaces the progress lines emitted while waiting
// for a namespace deletion (30s apart at the default 1s cadence).
const terminationHeartbeatPolls = 30

// Outcome is the result of one reconciliation run.
type Outcome struct {
	// State is Ready or Failed.
	State State

	// Warnings accumulated along the way. Ready with warnings is still
	// success; the warnings name components to check manually.
	Warnings []string

	// Err carries the fatal error when State is Failed.
	Err error
}

// Reconciler drives one add-on to Ready or Failed. Runs are sequential and
// re-derive all cluster state from scratch, so a run can be repeated, resumed
// after a crash, or raced against itself and still converge: every mutating
// step is a no-op when its effect is already in place.
type Reconciler struct {
	cluster   Cluster
	log       *ui.Logger
	timings   config.Timings
	installer *Installer
	verifier  *Verifier
	patcher   *Patcher
}

// NewReconciler wires a Reconciler from its collaborators.
func NewReconciler(cluster Cluster, runner execx.Runner, log *ui.Logger, timings config.Timings) *Reconciler {
	return &Reconciler{
		cluster:   cluster,
		log:       log,
		timings:   timings,
		installer: NewInstaller(runner, log),
		verifier:  NewVerifier(cluster, log, timings),
		patcher:   NewPatcher(cluster, log, timings),
	}
}

// Reconcile drives spec to a terminal state.
//
// The sequence: detect an existing installation, wait out a terminating
// namespace, install, wait for the primary component, probe the secondaries,
// apply the config patch, and check the capability CRD. An existing
// installation skips straight to the config patch. Only an unreachable
// cluster, a non-tolerated install failure, or a namespace stuck terminating
// can fail the run; everything else degrades to warnings.
func (r *Reconciler) Reconcile(ctx context.Context, spec AddonSpec) Outcome {
	var warnings []string

	phase, err := r.cluster.NamespacePhase(ctx, spec.Namespace)
	if err != nil {
		return Outcome{State: StateFailed, Warnings: warnings, Err: Fatal(ReasonClusterUnavailable, err)}
	}

	installed := false
	switch phase {
	case k8s.PhaseActive:
		installed = r.checkInstalled(ctx, spec)
	case k8s.PhaseTerminating:
		if err := r.waitForTermination(ctx, spec.Namespace); err != nil {
			return Outcome{State: StateFailed, Warnings: warnings, Err: err}
		}
		// The namespace is gone, so the add-on definitively is not
		// installed.
	}

	if installed {
		r.log.Infof("%s is already installed", spec.DisplayName)
	} else {
		if err := r.installer.Install(ctx, spec); err != nil {
			return Outcome{State: StateFailed, Warnings: warnings, Err: err}
		}

		r.log.Infof("Waiting for %s components to be ready...", spec.DisplayName)
		warning, err := r.verifier.WaitPrimary(ctx, spec)
		if err != nil {
			return Outcome{State: StateFailed, Warnings: warnings, Err: err}
		}
		if warning != "" {
			warnings = append(warnings, warning)
		}

		warnings = append(warnings, r.verifier.CheckSecondaries(ctx, spec)...)
	}

	patchWarnings, err := r.patcher.Apply(ctx, spec)
	if err != nil {
		return Outcome{State: StateFailed, Warnings: warnings, Err: err}
	}
	warnings = append(warnings, patchWarnings...)

	if warning := r.verifier.CheckCapability(ctx, spec); warning != "" {
		warnings = append(warnings, warning)
	}

	r.summarize(spec, warnings, installed)
	return Outcome{State: StateReady, Warnings: warnings}
}

// checkInstalled probes for an existing installation: a running primary
// component, or the capability CRD as a fallback for clusters where the
// primary is restarting.
func (r *Reconciler) checkInstalled(ctx context.Context, spec AddonSpec) bool {
	running, err := r.cluster.AnyPodRunning(ctx, spec.Primary.Namespace, spec.Primary.LabelSelector)
	if err == nil && running {
		return true
	}

	if spec.RequiredCRD != "" {
		found, err := r.cluster.HasCRD(ctx, spec.RequiredCRD)
		if err == nil && found {
			return true
		}
	}

	return false
}

// waitForTermination blocks until a namespace deletion started by another
// actor completes. At the checkpoint the namespace's finalizers are cleared
// once to unstick deletions blocked by finalizer-owning controllers that are
// already gone. A deletion still pending at the bound is fatal; the manual
// remedy is printed because no further automated step is safe.
func (r *Reconciler) waitForTermination(ctx context.Context, namespace string) error {
	r.log.Warnf("Namespace %s is terminating, likely from a previous deletion", namespace)
	r.log.Infof("Waiting for the namespace to fully terminate before reinstalling...")

	interval := r.timings.TerminationInterval
	bound := r.timings.TerminationBound

	polls := 0
	probe := func(ctx context.Context) bool {
		if polls > 0 && polls%terminationHeartbeatPolls == 0 {
			r.log.Infof("Still waiting... (%s/%s)", time.Duration(polls)*interval, bound)
		}
		polls++

		phase, err := r.cluster.NamespacePhase(ctx, namespace)
		return err == nil && phase == k8s.PhaseAbsent
	}

	escalate := func(ctx context.Context) {
		r.log.Warnf("Namespace still terminating after %s, attempting to clear finalizers...", r.timings.FinalizerCheckpoint)
		if err := r.cluster.ClearNamespaceFinalizers(ctx, namespace); err != nil {
			r.log.Warnf("Could not clear finalizers: %v", err)
			return
		}
		r.log.Infof("Cleared finalizers, continuing to wait...")
	}

	err := poll.Wait(ctx, poll.Config{
		Interval:   interval,
		Bound:      bound,
		Checkpoint: &poll.Checkpoint{After: r.timings.FinalizerCheckpoint, Escalate: escalate},
	}, probe)

	switch {
	case err == nil:
		r.log.Infof("Namespace %s terminated", namespace)
		return nil
	case errors.Is(err, poll.ErrBoundExceeded):
		r.log.Errorf("Namespace %s did not terminate after %s", namespace, bound)
		r.log.Errorf("You may need to clean up manually:")
		r.log.Errorf("  kubectl delete namespace %s --force --grace-period=0", namespace)
		r.log.Errorf("Then re-run this command.")
		return Fatal(ReasonNamespaceStuck, fmt.Errorf("namespace %s stuck terminating after %s", namespace, bound))
	default:
		return err
	}
}

// summarize prints the completion banner. Warnings never demote a Ready
// outcome; they are listed so the operator knows what to check.
func (r *Reconciler) summarize(spec AddonSpec, warnings []string, alreadyInstalled bool) {
	if len(warnings) > 0 {
		r.log.Warnf("%s installation completed with %d warning(s):", spec.DisplayName, len(warnings))
		for _, warning := range warnings {
			r.log.Warnf("  - %s", warning)
		}
	} else {
		r.log.Infof("%s installation complete", spec.DisplayName)
	}

	if !alreadyInstalled && len(spec.NextSteps) > 0 {
		r.log.Infof("Next steps:")
		for i, step := range spec.NextSteps {
			r.log.Infof("  %d. %s", i+1, step)
		}
	}
}

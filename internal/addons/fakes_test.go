package addons

import (
	"bytes"
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/microscaler/secret-manager-controller/internal/config"
	"github.com/microscaler/secret-manager-controller/internal/execx"
	"github.com/microscaler/secret-manager-controller/internal/k8s"
	"github.com/microscaler/secret-manager-controller/internal/ui"
)

// testTimings compresses the production cadence to milliseconds so the
// bounded waits run in-process without slowing the suite.
func testTimings() config.Timings {
	return config.Timings{
		TerminationInterval: time.Millisecond,
		TerminationBound:    300 * time.Millisecond,
		FinalizerCheckpoint: 60 * time.Millisecond,
		ReadinessInterval:   time.Millisecond,
		PatchSettleDelay:    time.Millisecond,
		PatchRewaitAttempts: 3,
	}
}

// fakeCluster scripts Cluster responses and records writes. The zero value
// reports an absent namespace, nothing running, and no CRDs.
type fakeCluster struct {
	// phases is consumed one entry per NamespacePhase call; the last entry
	// repeats once the slice is exhausted. Empty means PhaseAbsent.
	phases     []k8s.Phase
	phaseErr   error
	phaseCalls int

	// readyFromCall makes AnyPodReady report true from the nth call on,
	// counting from 1. Zero means never ready.
	readyFromCall int
	readyErr      error
	readyCalls    int

	// running maps label selectors to AnyPodRunning results.
	running    map[string]bool
	runningErr error

	deployArgs []string
	argsErr    error
	argsCalls  int

	crds   map[string]bool
	crdErr error

	clearCalls int
	clearErr   error

	appended  []string
	appendErr error
}

func (f *fakeCluster) NamespacePhase(_ context.Context, _ string) (k8s.Phase, error) {
	if f.phaseErr != nil {
		return k8s.PhaseAbsent, f.phaseErr
	}
	idx := f.phaseCalls
	f.phaseCalls++
	if len(f.phases) == 0 {
		return k8s.PhaseAbsent, nil
	}
	if idx >= len(f.phases) {
		idx = len(f.phases) - 1
	}
	return f.phases[idx], nil
}

func (f *fakeCluster) AnyPodReady(_ context.Context, _, _ string) (bool, error) {
	f.readyCalls++
	if f.readyErr != nil {
		return false, f.readyErr
	}
	return f.readyFromCall > 0 && f.readyCalls >= f.readyFromCall, nil
}

func (f *fakeCluster) AnyPodRunning(_ context.Context, _, labelSelector string) (bool, error) {
	if f.runningErr != nil {
		return false, f.runningErr
	}
	return f.running[labelSelector], nil
}

func (f *fakeCluster) DeploymentArgs(_ context.Context, _, _ string) ([]string, error) {
	f.argsCalls++
	if f.argsErr != nil {
		return nil, f.argsErr
	}
	return f.deployArgs, nil
}

func (f *fakeCluster) HasCRD(_ context.Context, name string) (bool, error) {
	if f.crdErr != nil {
		return false, f.crdErr
	}
	return f.crds[name], nil
}

func (f *fakeCluster) ClearNamespaceFinalizers(_ context.Context, _ string) error {
	f.clearCalls++
	return f.clearErr
}

func (f *fakeCluster) AppendDeploymentArg(_ context.Context, _, _, arg string) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, arg)
	return nil
}

// mockRunner is a testify mock for execx.Runner.
type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Run(ctx context.Context, name string, args ...string) execx.Result {
	called := m.Called(ctx, name, args)
	return called.Get(0).(execx.Result)
}

func (m *mockRunner) LookPath(name string) (string, error) {
	called := m.Called(name)
	return called.String(0), called.Error(1)
}

// testLogger returns an uncolored logger capturing both streams.
func testLogger() (*ui.Logger, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return ui.NewLoggerWithWriters(&out, &errOut), &out, &errOut
}

func execxResult(output string, err error) execx.Result {
	return execx.Result{Output: output, Err: err}
}

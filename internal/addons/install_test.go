package addons

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestInstaller_RunsCommandsInOrder(t *testing.T) {
	t.Parallel()

	runner := new(mockRunner)
	runner.On("Run", mock.Anything, "kubectl", []string{"create", "namespace", "argocd"}).
		Return(execxResult("namespace/argocd created", nil)).Once()
	runner.On("Run", mock.Anything, "kubectl", []string{"apply", "-n", "argocd", "-f", "https://raw.githubusercontent.com/argoproj/argo-cd/stable/manifests/install.yaml"}).
		Return(execxResult("configured", nil)).Once()

	log, out, _ := testLogger()
	err := NewInstaller(runner, log).Install(context.Background(), ArgoCD())

	require.NoError(t, err)
	runner.AssertExpectations(t)
	assert.Contains(t, out.String(), "Running: kubectl create namespace argocd")
}

func TestInstaller_ToleratesAlreadyExists(t *testing.T) {
	t.Parallel()

	runner := new(mockRunner)
	runner.On("Run", mock.Anything, "kubectl", mock.Anything).
		Return(execxResult(`Error from server (AlreadyExists): namespaces "argocd" already exists`, errors.New("exit status 1"))).Once()
	runner.On("Run", mock.Anything, "kubectl", mock.Anything).
		Return(execxResult("unchanged", nil)).Once()

	log, out, _ := testLogger()
	err := NewInstaller(runner, log).Install(context.Background(), ArgoCD())

	require.NoError(t, err)
	runner.AssertExpectations(t)
	assert.Contains(t, out.String(), "ArgoCD resources already exist")
}

func TestInstaller_FatalOnUnrecognizedFailure(t *testing.T) {
	t.Parallel()

	runner := new(mockRunner)
	runner.On("Run", mock.Anything, "kubectl", []string{"create", "namespace", "argocd"}).
		Return(execxResult("The connection to the server localhost:8080 was refused", errors.New("exit status 1"))).Once()

	log, _, errOut := testLogger()
	err := NewInstaller(runner, log).Install(context.Background(), ArgoCD())

	require.Error(t, err)
	assert.True(t, IsFatal(err))
	assert.Equal(t, ReasonInstallCommandFailed, FatalReason(err))
	assert.Contains(t, errOut.String(), "Failed to install ArgoCD")
	// The second install command must not run after a fatal failure.
	runner.AssertNumberOfCalls(t, "Run", 1)
}

func TestInstaller_AlreadyExistsIsFatalWithoutIdempotence(t *testing.T) {
	t.Parallel()

	spec := ArgoCD()
	spec.InstallIdempotent = false

	runner := new(mockRunner)
	runner.On("Run", mock.Anything, "kubectl", mock.Anything).
		Return(execxResult(`namespaces "argocd" already exists`, errors.New("exit status 1"))).Once()

	log, _, _ := testLogger()
	err := NewInstaller(runner, log).Install(context.Background(), spec)

	require.Error(t, err)
	assert.True(t, IsFatal(err))
}

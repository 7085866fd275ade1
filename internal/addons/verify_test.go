package addons

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitPrimary_ReadyImmediately(t *testing.T) {
	t.Parallel()

	cluster := &fakeCluster{readyFromCall: 1}
	log, out, _ := testLogger()
	v := NewVerifier(cluster, log, testTimings())

	warning, err := v.WaitPrimary(context.Background(), ArgoCD())

	require.NoError(t, err)
	assert.Empty(t, warning)
	assert.Equal(t, 1, cluster.readyCalls)
	assert.Contains(t, out.String(), "argocd-application-controller is ready")
}

func TestWaitPrimary_ReadyAfterRetries(t *testing.T) {
	t.Parallel()

	cluster := &fakeCluster{readyFromCall: 4}
	log, out, _ := testLogger()
	v := NewVerifier(cluster, log, testTimings())

	warning, err := v.WaitPrimary(context.Background(), FluxCD())

	require.NoError(t, err)
	assert.Empty(t, warning)
	assert.Equal(t, 4, cluster.readyCalls)
	assert.Contains(t, out.String(), "Waiting for source-controller... (3/30)")
}

func TestWaitPrimary_ExhaustionWarns(t *testing.T) {
	t.Parallel()

	cluster := &fakeCluster{}
	log, _, errOut := testLogger()
	v := NewVerifier(cluster, log, testTimings())

	warning, err := v.WaitPrimary(context.Background(), ArgoCD())

	require.NoError(t, err)
	assert.Contains(t, warning, "not ready after 60 attempts")
	assert.Contains(t, warning, "installation may have succeeded")
	assert.Equal(t, 60, cluster.readyCalls)
	assert.Contains(t, errOut.String(), warning)
}

func TestWaitPrimary_ContextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cluster := &fakeCluster{}
	log, _, _ := testLogger()
	v := NewVerifier(cluster, log, testTimings())

	warning, err := v.WaitPrimary(ctx, ArgoCD())

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, warning)
}

func TestCheckSecondaries_AllRunning(t *testing.T) {
	t.Parallel()

	cluster := &fakeCluster{running: map[string]bool{
		"app.kubernetes.io/name=argocd-server":      true,
		"app.kubernetes.io/name=argocd-repo-server": true,
		"app.kubernetes.io/name=argocd-redis":       true,
	}}
	log, out, _ := testLogger()
	v := NewVerifier(cluster, log, testTimings())

	warnings := v.CheckSecondaries(context.Background(), ArgoCD())

	assert.Empty(t, warnings)
	assert.Contains(t, out.String(), "argocd-server is running")
	assert.Contains(t, out.String(), "argocd-redis is running")
}

func TestCheckSecondaries_MissingComponentWarns(t *testing.T) {
	t.Parallel()

	cluster := &fakeCluster{running: map[string]bool{
		"app.kubernetes.io/name=argocd-server":      true,
		"app.kubernetes.io/name=argocd-repo-server": true,
	}}
	log, _, _ := testLogger()
	v := NewVerifier(cluster, log, testTimings())

	warnings := v.CheckSecondaries(context.Background(), ArgoCD())

	require.Len(t, warnings, 1)
	assert.Equal(t, "argocd-redis not ready yet (may still be starting)", warnings[0])
}

func TestCheckCapability(t *testing.T) {
	t.Parallel()

	cluster := &fakeCluster{crds: map[string]bool{"applications.argoproj.io": true}}
	log, _, _ := testLogger()
	v := NewVerifier(cluster, log, testTimings())

	assert.Empty(t, v.CheckCapability(context.Background(), ArgoCD()))

	warning := v.CheckCapability(context.Background(), FluxCD())
	assert.Contains(t, warning, "gitrepositories.source.toolkit.fluxcd.io CRD not found")
}

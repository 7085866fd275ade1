package addons

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	spec, err := Lookup("argocd")
	require.NoError(t, err)
	assert.Equal(t, "ArgoCD", spec.DisplayName)

	spec, err = Lookup("fluxcd")
	require.NoError(t, err)
	assert.Equal(t, "FluxCD", spec.DisplayName)

	_, err = Lookup("istio")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown addon")
}

func TestArgoCDSpec(t *testing.T) {
	t.Parallel()

	spec := ArgoCD()
	assert.Equal(t, "argocd", spec.Namespace)
	assert.True(t, spec.InstallIdempotent)
	assert.Len(t, spec.InstallCommands, 2)
	assert.Equal(t, "argocd-application-controller", spec.Primary.DisplayName)
	assert.Equal(t, 60, spec.ReadyAttempts)
	assert.Len(t, spec.Secondaries, 3)
	assert.Equal(t, "applications.argoproj.io", spec.RequiredCRD)
	assert.Nil(t, spec.ConfigPatch)
	assert.Empty(t, spec.RequiredTools)
}

func TestFluxCDSpec(t *testing.T) {
	t.Parallel()

	spec := FluxCD()
	assert.Equal(t, "flux-system", spec.Namespace)
	assert.True(t, spec.InstallIdempotent)
	assert.Equal(t, [][]string{{"flux", "install", "--namespace=flux-system"}}, spec.InstallCommands)
	assert.Equal(t, "source-controller", spec.Primary.DisplayName)
	assert.Equal(t, 30, spec.ReadyAttempts)
	assert.Equal(t, "gitrepositories.source.toolkit.fluxcd.io", spec.RequiredCRD)
	assert.Equal(t, []string{"flux"}, spec.RequiredTools)

	require.NotNil(t, spec.ConfigPatch)
	assert.Equal(t, "--watch-all-namespaces=true", spec.ConfigPatch.ArgFlag)
	assert.Equal(t, "source-controller", spec.ConfigPatch.AppliesTo.DisplayName)
}

func TestAll_NamesAreUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for _, spec := range All() {
		assert.False(t, seen[spec.Name], "duplicate addon name %s", spec.Name)
		seen[spec.Name] = true
		assert.NotEmpty(t, spec.Namespace)
		assert.NotEmpty(t, spec.InstallCommands)
		assert.NotEmpty(t, spec.Primary.LabelSelector)
		assert.Positive(t, spec.ReadyAttempts)
	}
}

package k8s

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func TestClearNamespaceFinalizers(t *testing.T) {
	t.Parallel()

	ns := &corev1.Namespace{
		ObjectMeta: metav1.ObjectMeta{
			Name:       "flux-system",
			Finalizers: []string{"example.com/hold", "kubernetes"},
		},
		Status: corev1.NamespaceStatus{Phase: corev1.NamespaceTerminating},
	}

	client := newTestClient(ns)

	err := client.ClearNamespaceFinalizers(context.Background(), "flux-system")
	require.NoError(t, err)

	updated, err := client.clientset.CoreV1().Namespaces().Get(context.Background(), "flux-system", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Empty(t, updated.Finalizers)
}

func TestClearNamespaceFinalizers_NotFound(t *testing.T) {
	t.Parallel()

	client := newTestClient()

	err := client.ClearNamespaceFinalizers(context.Background(), "flux-system")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to clear finalizers")
}

func TestAppendDeploymentArg(t *testing.T) {
	t.Parallel()

	deployment := &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Namespace: "flux-system", Name: "source-controller"},
		Spec: appsv1.DeploymentSpec{
			Template: corev1.PodTemplateSpec{
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{
						{Name: "manager", Args: []string{"--log-level=info"}},
					},
				},
			},
		},
	}

	client := newTestClient(deployment)

	err := client.AppendDeploymentArg(context.Background(), "flux-system", "source-controller", "--watch-all-namespaces=true")
	require.NoError(t, err)

	updated, err := client.clientset.AppsV1().Deployments("flux-system").Get(context.Background(), "source-controller", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"--log-level=info", "--watch-all-namespaces=true"}, updated.Spec.Template.Spec.Containers[0].Args)
}

func TestAppendDeploymentArg_NotFound(t *testing.T) {
	t.Parallel()

	client := newTestClient()

	err := client.AppendDeploymentArg(context.Background(), "flux-system", "source-controller", "--watch-all-namespaces=true")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to patch deployment")
}

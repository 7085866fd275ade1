package k8s

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Phase classifies a namespace at probe time. It is derived on every call and
// never cached: the cluster owns the namespace lifecycle, so the phase can
// change between any two probes.
type Phase string

const (
	// PhaseAbsent means the namespace does not exist.
	PhaseAbsent Phase = "Absent"

	// PhaseActive means the namespace exists and is not being deleted.
	PhaseActive Phase = "Active"

	// PhaseTerminating means a deletion is in progress.
	PhaseTerminating Phase = "Terminating"
)

// NamespacePhase returns the current phase of a namespace.
func (c *Client) NamespacePhase(ctx context.Context, name string) (Phase, error) {
	ns, err := c.clientset.CoreV1().Namespaces().Get(ctx, name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		return PhaseAbsent, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get namespace %s: %w", name, err)
	}

	if ns.Status.Phase == corev1.NamespaceTerminating {
		return PhaseTerminating, nil
	}
	return PhaseActive, nil
}

// AnyPodReady reports whether at least one pod matching the label selector is
// running with its Ready condition true.
func (c *Client) AnyPodReady(ctx context.Context, namespace, labelSelector string) (bool, error) {
	pods, err := c.listPods(ctx, namespace, labelSelector)
	if err != nil {
		return false, err
	}

	for i := range pods {
		if isPodReady(&pods[i]) {
			return true, nil
		}
	}
	return false, nil
}

// AnyPodRunning reports whether at least one pod matching the label selector
// has phase Running. Containers may still be starting.
func (c *Client) AnyPodRunning(ctx context.Context, namespace, labelSelector string) (bool, error) {
	pods, err := c.listPods(ctx, namespace, labelSelector)
	if err != nil {
		return false, err
	}

	for i := range pods {
		if pods[i].Status.Phase == corev1.PodRunning {
			return true, nil
		}
	}
	return false, nil
}

// listPods lists by label selector only. Phase filtering happens client-side
// because fake clientsets ignore field selectors.
func (c *Client) listPods(ctx context.Context, namespace, labelSelector string) ([]corev1.Pod, error) {
	list, err := c.clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{LabelSelector: labelSelector})
	if err != nil {
		return nil, fmt.Errorf("failed to list pods in %s: %w", namespace, err)
	}
	return list.Items, nil
}

// DeploymentArgs returns the argument list of a deployment's first container.
func (c *Client) DeploymentArgs(ctx context.Context, namespace, name string) ([]string, error) {
	dep, err := c.clientset.AppsV1().Deployments(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get deployment %s/%s: %w", namespace, name, err)
	}

	containers := dep.Spec.Template.Spec.Containers
	if len(containers) == 0 {
		return nil, fmt.Errorf("deployment %s/%s has no containers", namespace, name)
	}
	return containers[0].Args, nil
}

// HasCRD reports whether a CustomResourceDefinition with the given name exists.
func (c *Client) HasCRD(ctx context.Context, name string) (bool, error) {
	_, err := c.extensions.ApiextensionsV1().CustomResourceDefinitions().Get(ctx, name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get crd %s: %w", name, err)
	}
	return true, nil
}

// isPodReady checks if a pod is running with its Ready condition true.
func isPodReady(pod *corev1.Pod) bool {
	if pod.Status.Phase != corev1.PodRunning {
		return false
	}

	for _, condition := range pod.Status.Conditions {
		if condition.Type == corev1.PodReady &&
			condition.Status == corev1.ConditionTrue {
			return true
		}
	}

	return false
}

package k8s

import (
	"context"
	"encoding/json"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
)

// namespaceFinalizerClear empties metadata.finalizers so a deletion already
// in progress can complete.
var namespaceFinalizerClear = []byte(`{"metadata":{"finalizers":[]}}`)

// ClearNamespaceFinalizers removes all metadata finalizers from a namespace
// via a merge patch. It unblocks a deletion initiated by another actor; it
// never deletes the namespace itself.
func (c *Client) ClearNamespaceFinalizers(ctx context.Context, name string) error {
	_, err := c.clientset.CoreV1().Namespaces().Patch(ctx, name, types.MergePatchType, namespaceFinalizerClear, metav1.PatchOptions{})
	if err != nil {
		return fmt.Errorf("failed to clear finalizers on namespace %s: %w", name, err)
	}
	return nil
}

// AppendDeploymentArg appends one argument to a deployment's first container
// via a JSON patch. Callers check for the argument's presence first; the
// patch itself is append-only.
func (c *Client) AppendDeploymentArg(ctx context.Context, namespace, name, arg string) error {
	patch, err := json.Marshal([]map[string]interface{}{{
		"op":    "add",
		"path":  "/spec/template/spec/containers/0/args/-",
		"value": arg,
	}})
	if err != nil {
		return fmt.Errorf("failed to marshal args patch: %w", err)
	}

	_, err = c.clientset.AppsV1().Deployments(namespace).Patch(ctx, name, types.JSONPatchType, patch, metav1.PatchOptions{})
	if err != nil {
		return fmt.Errorf("failed to patch deployment %s/%s: %w", namespace, name, err)
	}
	return nil
}

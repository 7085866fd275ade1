// Package addons installs and verifies the GitOps add-ons the controller
// depends on. Each add-on is described by a data-only AddonSpec; a single
// Reconciler drives any spec to Ready or Failed. New add-ons are added by
// registering a spec, not by writing new control flow.
package addons

import (
	"context"

	"github.com/microscaler/secret-manager-controller/internal/k8s"
)

// ComponentSelector identifies one add-on workload for probing.
type ComponentSelector struct {
	// DisplayName is the human-readable component name. For components
	// backed by a deployment it is also the deployment name.
	DisplayName string

	// LabelSelector matches the component's pods.
	LabelSelector string

	// Namespace the component runs in.
	Namespace string
}

// ConfigPatch describes an idempotent argument toggle applied after install.
type ConfigPatch struct {
	// ArgFlag is appended to the target's container args when missing.
	ArgFlag string

	// AppliesTo is the deployment-backed component receiving the flag.
	AppliesTo ComponentSelector
}

// AddonSpec describes one installable add-on. All behavioral differences
// between add-ons live in this value; specs are never mutated.
type AddonSpec struct {
	// Name is the CLI-facing identifier, lowercase.
	Name string

	// DisplayName is used in log output.
	DisplayName string

	// Namespace the add-on installs into.
	Namespace string

	// InstallIdempotent tolerates install failures whose output indicates
	// the add-on's resources already exist.
	InstallIdempotent bool

	// InstallCommands run in order to install the add-on.
	InstallCommands [][]string

	// RequiredTools are binaries the install needs beyond kubectl.
	RequiredTools []string

	// Primary is the workload whose readiness gates the install.
	Primary ComponentSelector

	// ReadyAttempts bounds the primary readiness wait.
	ReadyAttempts int

	// Secondaries are probed once each and never waited on.
	Secondaries []ComponentSelector

	// RequiredCRD names the CRD that marks the add-on's API as usable.
	RequiredCRD string

	// ConfigPatch is the optional post-install argument toggle.
	ConfigPatch *ConfigPatch

	// NextSteps are printed after a fresh install completes.
	NextSteps []string
}

// Cluster is the control-plane surface the reconciler consumes. *k8s.Client
// implements it; tests substitute fakes.
type Cluster interface {
	NamespacePhase(ctx context.Context, name string) (k8s.Phase, error)
	AnyPodReady(ctx context.Context, namespace, labelSelector string) (bool, error)
	AnyPodRunning(ctx context.Context, namespace, labelSelector string) (bool, error)
	DeploymentArgs(ctx context.Context, namespace, name string) ([]string, error)
	HasCRD(ctx context.Context, name string) (bool, error)
	ClearNamespaceFinalizers(ctx context.Context, name string) error
	AppendDeploymentArg(ctx context.Context, namespace, name, arg string) error
}

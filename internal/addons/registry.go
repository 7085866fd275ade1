package addons

import "fmt"

// ArgoCD returns the AddonSpec for the ArgoCD GitOps engine. The controller reads
// manifests through ArgoCD Applications, so the application-controller and
// the Application CRD must exist before the controller starts.
func ArgoCD() AddonSpec {
	return AddonSpec{
		Name:              "argocd",
		DisplayName:       "ArgoCD",
		Namespace:         "argocd",
		InstallIdempotent: true,
		InstallCommands: [][]string{
			{"kubectl", "create", "namespace", "argocd"},
			{"kubectl", "apply", "-n", "argocd", "-f", "https://raw.githubusercontent.com/argoproj/argo-cd/stable/manifests/install.yaml"},
		},
		Primary: ComponentSelector{
			DisplayName:   "argocd-application-controller",
			LabelSelector: "app.kubernetes.io/name=argocd-application-controller",
			Namespace:     "argocd",
		},
		ReadyAttempts: 60,
		Secondaries: []ComponentSelector{
			{DisplayName: "argocd-server", LabelSelector: "app.kubernetes.io/name=argocd-server", Namespace: "argocd"},
			{DisplayName: "argocd-repo-server", LabelSelector: "app.kubernetes.io/name=argocd-repo-server", Namespace: "argocd"},
			{DisplayName: "argocd-redis", LabelSelector: "app.kubernetes.io/name=argocd-redis", Namespace: "argocd"},
		},
		RequiredCRD: "applications.argoproj.io",
		NextSteps: []string{
			"Create ArgoCD Application resources in your environment namespaces",
			"Create SecretManagerConfig resources referencing those Applications",
			"Verify with: kubectl get applications -A",
		},
	}
}

// FluxCD returns the AddonSpec for the FluxCD source toolkit. The controller
// watches GitRepository sources, so source-controller must run with
// cross-namespace watches enabled; the config patch takes care of that on
// installs that default to single-namespace mode.
func FluxCD() AddonSpec {
	return AddonSpec{
		Name:              "fluxcd",
		DisplayName:       "FluxCD",
		Namespace:         "flux-system",
		InstallIdempotent: true,
		InstallCommands: [][]string{
			{"flux", "install", "--namespace=flux-system"},
		},
		RequiredTools: []string{"flux"},
		Primary: ComponentSelector{
			DisplayName:   "source-controller",
			LabelSelector: "app=source-controller",
			Namespace:     "flux-system",
		},
		ReadyAttempts: 30,
		Secondaries: []ComponentSelector{
			{DisplayName: "kustomize-controller", LabelSelector: "app=kustomize-controller", Namespace: "flux-system"},
			{DisplayName: "helm-controller", LabelSelector: "app=helm-controller", Namespace: "flux-system"},
			{DisplayName: "notification-controller", LabelSelector: "app=notification-controller", Namespace: "flux-system"},
		},
		RequiredCRD: "gitrepositories.source.toolkit.fluxcd.io",
		ConfigPatch: &ConfigPatch{
			ArgFlag: "--watch-all-namespaces=true",
			AppliesTo: ComponentSelector{
				DisplayName:   "source-controller",
				LabelSelector: "app=source-controller",
				Namespace:     "flux-system",
			},
		},
		NextSteps: []string{
			"Create GitRepository resources in your environment namespaces",
			"Create SecretManagerConfig resources referencing those GitRepositories",
			"Verify with: kubectl get gitrepositories -A",
		},
	}
}

// All returns every known add-on.
func All() []AddonSpec {
	return []AddonSpec{ArgoCD(), FluxCD()}
}

// Lookup returns the add-on registered under name.
func Lookup(name string) (AddonSpec, error) {
	for _, spec := range All() {
		if spec.Name == name {
			return spec, nil
		}
	}
	return AddonSpec{}, fmt.Errorf("unknown addon %q (available: argocd, fluxcd)", name)
}

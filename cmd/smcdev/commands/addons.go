package commands

import (
	"github.com/spf13/cobra"

	"github.com/microscaler/secret-manager-controller/cmd/smcdev/handlers"
)

// Addons returns the parent command for add-on operations.
func Addons() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addons",
		Short: "Install and inspect the controller's GitOps add-ons",
	}

	cmd.AddCommand(addonsInstall())
	cmd.AddCommand(addonsList())

	return cmd
}

// addonsInstall returns the command that installs a single add-on.
//
// Flags:
//
//	--config, -c: Path to the smcdev configuration file (default "smcdev.yaml")
//	--kubeconfig: Path to the kubeconfig file (default: standard loading rules)
func addonsInstall() *cobra.Command {
	var (
		configPath     string
		kubeconfigPath string
	)

	cmd := &cobra.Command{
		Use:   "install <name>",
		Short: "Install a GitOps add-on and wait for it to become ready",
		Long: `Install a GitOps add-on and wait for it to become ready.

The installation is idempotent: an add-on that is already installed is
detected and left untouched, and a namespace still terminating from an
earlier deletion is waited out before reinstalling. Optional components
that are slow to start are reported as warnings without failing the
command.

Available add-ons: argocd, fluxcd.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.AddonInstall(cmd.Context(), args[0], configPath, kubeconfigPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "smcdev.yaml", "Path to the smcdev configuration file")
	cmd.Flags().StringVar(&kubeconfigPath, "kubeconfig", "", "Path to the kubeconfig file")

	return cmd
}

// addonsList returns the command that prints the known add-ons.
func addonsList() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available add-ons",
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.AddonList()
		},
	}
}

// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated to
// handler functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the smcdev CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "smcdev",
		Short: "Prepare local development clusters for the secret-manager-controller",
	}

	cmd.AddCommand(Init())
	cmd.AddCommand(Cluster())
	cmd.AddCommand(Addons())
	cmd.AddCommand(Version())

	return cmd
}

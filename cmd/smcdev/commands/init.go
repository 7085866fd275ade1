package commands

import (
	"github.com/spf13/cobra"

	"github.com/microscaler/secret-manager-controller/cmd/smcdev/handlers"
)

// Init returns the command for creating an smcdev configuration file.
//
// Flags:
//
//	--output, -o: Path to output file (default "smcdev.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an smcdev configuration file",
		Long: `Create an smcdev configuration file.

On a terminal this prompts for the cluster name and local registry
port; otherwise the defaults are written as-is. The resulting file
configures every other smcdev command and is safe to edit by hand.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "smcdev.yaml", "Output file path")

	return cmd
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/microscaler/secret-manager-controller/cmd/smcdev/handlers"
)

// Cluster returns the parent command for cluster lifecycle operations.
func Cluster() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Manage the local kind development cluster",
	}

	cmd.AddCommand(clusterUp())
	cmd.AddCommand(clusterDelete())
	cmd.AddCommand(clusterPrune())

	return cmd
}

// clusterUp returns the command that provisions the development cluster.
//
// Flags:
//
//	--config, -c: Path to the smcdev configuration file (default "smcdev.yaml")
//	--recreate: Delete and recreate the cluster if it already exists
func clusterUp() *cobra.Command {
	var (
		configPath string
		recreate   bool
	)

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Create the kind cluster and local image registry",
		Long: `Create the kind cluster and local image registry.

Starts (or reuses) a registry:2 container, creates a kind cluster from
the configured kind config file, connects the registry to the kind
docker network, and publishes the local-registry-hosting ConfigMap so
in-cluster tooling can discover the registry.

If the cluster already exists you are asked whether to delete and
recreate it; --recreate skips the question, and in non-interactive
runs the existing cluster is reused.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ClusterUp(cmd.Context(), configPath, recreate)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "smcdev.yaml", "Path to the smcdev configuration file")
	cmd.Flags().BoolVar(&recreate, "recreate", false, "Delete and recreate the cluster if it already exists")

	return cmd
}

// clusterDelete returns the command that removes the development cluster.
func clusterDelete() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the kind cluster",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ClusterDelete(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "smcdev.yaml", "Path to the smcdev configuration file")

	return cmd
}

// clusterPrune returns the command that reclaims node storage.
func clusterPrune() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Reclaim containerd storage on the cluster nodes",
		Long: `Reclaim containerd storage on the cluster nodes.

Long-lived development clusters accumulate unused images, snapshots,
and blobs under /var/lib/containerd. This runs the containerd prune
commands inside every node container and reports disk usage afterward.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ClusterPrune(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "smcdev.yaml", "Path to the smcdev configuration file")

	return cmd
}

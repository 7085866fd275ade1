// Package main is the entry point for the smcdev CLI.
//
// smcdev prepares local development clusters for the secret-manager-controller:
// it provisions a kind cluster with a local image registry and installs the
// GitOps add-ons (ArgoCD, FluxCD) the controller depends on, rerunnable at
// any time without damaging an existing setup.
//
// Commands: init, cluster, addons, version.
//
// For detailed usage information, run:
//
//	smcdev --help
package main

import (
	"fmt"
	"os"

	"github.com/microscaler/secret-manager-controller/cmd/smcdev/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

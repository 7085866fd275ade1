// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic and
// can be tested independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/microscaler/secret-manager-controller/internal/config"
	"github.com/microscaler/secret-manager-controller/internal/ui"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runInitForm prompts for the configurable fields, editing cfg in place.
	runInitForm = func(ctx context.Context, cfg *config.Config) error {
		port := strconv.Itoa(cfg.RegistryPort)

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Cluster name").
					Description("Name of the kind cluster").
					Value(&cfg.ClusterName).
					Validate(func(s string) error {
						if s == "" {
							return fmt.Errorf("cluster name cannot be empty")
						}
						return nil
					}),
				huh.NewInput().
					Title("Registry port").
					Description("Host port for the local image registry").
					Value(&port).
					Validate(func(s string) error {
						n, err := strconv.Atoi(s)
						if err != nil || n < 1 || n > 65535 {
							return fmt.Errorf("port must be a number between 1 and 65535")
						}
						return nil
					}),
			),
		)

		if err := form.RunWithContext(ctx); err != nil {
			return err
		}

		cfg.RegistryPort, _ = strconv.Atoi(port)
		return nil
	}

	// interactive reports whether prompts can be shown.
	interactive = ui.IsInteractiveTTY
)

// Init writes an smcdev configuration file, prompting for the common fields
// when running on a terminal and writing the defaults otherwise.
func Init(ctx context.Context, outputPath string) error {
	log := ui.NewLogger()

	if fileExists(outputPath) {
		log.Warnf("%s already exists and will be overwritten", outputPath)
	}

	cfg := config.Default()
	if interactive() {
		if err := runInitForm(ctx, cfg); err != nil {
			return fmt.Errorf("init canceled: %w", err)
		}
	}

	if err := cfg.Write(outputPath); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	log.Infof("Configuration saved to %s", outputPath)
	log.Infof("Next: smcdev cluster up")
	return nil
}

// Package config loads the smcdev.yaml project configuration and the
// environment-driven timing profile for reconciliation waits.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where smcdev looks for its configuration file.
const DefaultPath = "smcdev.yaml"

// Config holds the development-cluster configuration.
type Config struct {
	// ClusterName is the kind cluster name.
	ClusterName string `yaml:"cluster_name"`

	// Kubeconfig is the path to the kubeconfig file. Empty means the
	// standard resolution (KUBECONFIG, then ~/.kube/config).
	Kubeconfig string `yaml:"kubeconfig,omitempty"`

	// RegistryName is the local Docker registry container name.
	RegistryName string `yaml:"registry_name"`

	// RegistryPort is the host port the local registry listens on.
	RegistryPort int `yaml:"registry_port"`

	// KindConfig is the path to the kind cluster configuration file.
	KindConfig string `yaml:"kind_config"`
}

// Default returns the configuration used when no smcdev.yaml exists.
func Default() *Config {
	return &Config{
		ClusterName:  "secret-manager-controller",
		RegistryName: "secret-manager-controller-registry",
		RegistryPort: 5002,
		KindConfig:   "kind-config.yaml",
	}
}

// LoadFile reads and parses the configuration from a YAML file.
// Missing fields keep their defaults.
func LoadFile(path string) (*Config, error) {
	// #nosec G304 - path comes from a flag or the fixed default, not remote input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path when the file exists and falls back to the
// defaults when it does not.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return LoadFile(path)
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	if c.ClusterName == "" {
		return errors.New("cluster_name must not be empty")
	}
	if c.RegistryName == "" {
		return errors.New("registry_name must not be empty")
	}
	if c.RegistryPort < 1 || c.RegistryPort > 65535 {
		return fmt.Errorf("registry_port %d is out of range", c.RegistryPort)
	}
	if c.KindConfig == "" {
		return errors.New("kind_config must not be empty")
	}
	return nil
}

// Write marshals the configuration to a YAML file.
func (c *Config) Write(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

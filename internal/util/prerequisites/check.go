// Package prerequisites provides utilities for checking required client tools.
package prerequisites

import (
	"fmt"
	"os/exec"
	"strings"
)

// Tool represents a client tool the CLI shells out to. Every listed tool is
// mandatory for the command that requests the check.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Description explains what the tool is used for.
	Description string

	// InstallURL provides a URL for installation instructions.
	InstallURL string
}

var (
	kubectlTool = Tool{
		Name:        "kubectl",
		Description: "Required for applying Kubernetes manifests and managing addons",
		InstallURL:  "https://kubernetes.io/docs/tasks/tools/",
	}

	dockerTool = Tool{
		Name:        "docker",
		Description: "Required for running kind nodes and the local image registry",
		InstallURL:  "https://docs.docker.com/get-docker/",
	}

	kindTool = Tool{
		Name:        "kind",
		Description: "Required for creating and deleting the local development cluster",
		InstallURL:  "https://kind.sigs.k8s.io/docs/user/quick-start/#installation",
	}
)

// knownInstallURLs maps addon-specific tool names to install instructions.
var knownInstallURLs = map[string]string{
	"flux": "https://fluxcd.io/flux/installation/",
	"helm": "https://helm.sh/docs/intro/install/",
}

// ClusterTools returns the tools needed for cluster lifecycle commands.
func ClusterTools() []Tool {
	return []Tool{dockerTool, kindTool, kubectlTool}
}

// ForAddon returns kubectl plus the addon's extra tool requirements.
func ForAddon(extra ...string) []Tool {
	tools := []Tool{kubectlTool}
	for _, name := range extra {
		tools = append(tools, Tool{
			Name:        name,
			Description: fmt.Sprintf("Required by the %s addon installer", name),
			InstallURL:  knownInstallURLs[name],
		})
	}
	return tools
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool    Tool
	Found   bool
	Path    string
	Version string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// Error returns an actionable error when tools are missing, nil otherwise.
func (r *CheckResults) Error() error {
	if len(r.Missing) == 0 {
		return nil
	}
	parts := make([]string, 0, len(r.Missing))
	for _, tool := range r.Missing {
		parts = append(parts, fmt.Sprintf("%s (%s)", tool.Name, tool.InstallURL))
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(parts, ", "))
}

// Check verifies that the specified tools are available in PATH.
func Check(tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := exec.LookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
			// Version lookup is best effort.
			result.Version = toolVersion(tool.Name)
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// toolVersion asks the tool for its version, trying the flag spellings the
// supported tools use. Returns "" when none of them work.
func toolVersion(name string) string {
	for _, flag := range []string{"--version", "version", "-v"} {
		// #nosec G204 - name comes from trusted Tool definitions, not user input
		output, err := exec.Command(name, flag).Output()
		if err != nil {
			continue
		}
		line, _, _ := strings.Cut(string(output), "\n")
		return strings.TrimSpace(line)
	}
	return ""
}

package devcluster

import (
	"context"
	"fmt"
	"strings"
)

// pruneCommands run inside each node container, most aggressive first. Each
// failure is a warning; the remaining commands still run.
var pruneCommands = [][]string{
	{"ctr", "images", "prune", "--all"},
	{"ctr", "snapshots", "prune"},
	{"ctr", "content", "prune"},
}

// Prune reclaims containerd storage on every node of the running cluster.
// Long-lived kind clusters accumulate image layers under
// /var/lib/containerd that nothing garbage-collects otherwise.
func (m *Manager) Prune(ctx context.Context) error {
	nodes, err := m.nodes(ctx)
	if err != nil {
		return err
	}

	m.log.Infof("Found %d node(s)", len(nodes))
	for _, node := range nodes {
		m.pruneNode(ctx, node)
	}

	m.log.Infof("Cleanup complete")
	return nil
}

// nodes lists the docker containers backing the cluster's kind nodes.
func (m *Manager) nodes(ctx context.Context) ([]string, error) {
	res := m.runner.Run(ctx, "kind", "get", "nodes", "--name", m.cfg.ClusterName)
	if !res.Success() {
		return nil, fmt.Errorf("kind get nodes: %s: %w", res.Output, res.Err)
	}

	// kind reports "No kind nodes found ..." with a zero exit status, and
	// the combined output mixes it with real node names, so only lines
	// without spaces count as names.
	var nodes []string
	for _, line := range strings.Split(res.Output, "\n") {
		node := strings.TrimSpace(line)
		if node == "" || strings.ContainsRune(node, ' ') {
			continue
		}
		nodes = append(nodes, node)
	}

	if len(nodes) == 0 {
		return nil, fmt.Errorf("no kind nodes found for cluster %s, make sure it is running: kind get clusters", m.cfg.ClusterName)
	}
	return nodes, nil
}

func (m *Manager) pruneNode(ctx context.Context, node string) {
	m.log.Infof("Cleaning up containerd storage on %s...", node)

	for _, argv := range pruneCommands {
		args := append([]string{"exec", node}, argv...)
		if res := m.runner.Run(ctx, "docker", args...); !res.Success() {
			m.log.Warnf("%s failed on %s: %s", strings.Join(argv, " "), node, res.Output)
		}
	}

	res := m.runner.Run(ctx, "docker", "exec", node, "df", "-h", "/var/lib/containerd")
	if !res.Success() {
		return
	}

	m.log.Infof("Disk usage on %s:", node)
	for _, line := range strings.Split(res.Output, "\n") {
		if strings.Contains(line, "/var/lib/containerd") || strings.Contains(line, "Filesystem") {
			m.log.Infof("  %s", line)
		}
	}
}

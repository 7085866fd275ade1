// Package execx runs external commands and reports their combined output.
//
// The install and cluster-provisioning paths shell out to kubectl, flux, kind
// and docker. Those tools expose no structured status channel, so callers
// receive the raw combined output alongside the exit error and classify it
// themselves.
package execx

import (
	"context"
	"os/exec"
	"strings"
)

// Result is the outcome of one command invocation.
type Result struct {
	// Output is combined stdout and stderr, trimmed of trailing whitespace.
	Output string

	// Err is nil when the command exited zero.
	Err error
}

// Success reports whether the command exited zero.
func (r Result) Success() bool {
	return r.Err == nil
}

// Runner executes external commands.
type Runner interface {
	// Run executes name with args and returns its combined output.
	Run(ctx context.Context, name string, args ...string) Result

	// LookPath returns the path of a binary on PATH, or an error if absent.
	LookPath(name string) (string, error)
}

// Local runs commands on the local host.
type Local struct{}

// Run executes the command via exec.CommandContext and captures combined output.
func (Local) Run(ctx context.Context, name string, args ...string) Result {
	// #nosec G204 - command names and arguments come from internal definitions, not user input
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	return Result{Output: strings.TrimSpace(string(out)), Err: err}
}

// LookPath reports whether a binary is available on PATH.
func (Local) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// CommandLine renders a command for log output.
func CommandLine(name string, args ...string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

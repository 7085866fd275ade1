package handlers

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/microscaler/secret-manager-controller/internal/execx"
)

// captureOutput redirects stdout during fn and returns what was written.
func captureOutput(fn func()) string {
	orig := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = orig
	data, _ := io.ReadAll(r)
	return string(data)
}

// scriptRunner returns canned results keyed by the full command line and
// records every invocation. Commands without an entry succeed with empty
// output.
type scriptRunner struct {
	outputs map[string]execx.Result
	calls   []string
}

func (s *scriptRunner) Run(_ context.Context, name string, args ...string) execx.Result {
	key := execx.CommandLine(name, args...)
	s.calls = append(s.calls, key)
	if res, ok := s.outputs[key]; ok {
		return res
	}
	return execx.Result{}
}

func (s *scriptRunner) LookPath(name string) (string, error) {
	return "/usr/bin/" + name, nil
}

// hasCallPrefix reports whether any recorded call starts with prefix.
func hasCallPrefix(calls []string, prefix string) bool {
	for _, call := range calls {
		if strings.HasPrefix(call, prefix) {
			return true
		}
	}
	return false
}

// Package ui provides the severity-tagged log stream the dev tool emits.
//
// Info lines go to stdout, warnings and errors to stderr. The tags are
// colorized only when stdout is an interactive terminal, so piped output and
// CI logs stay plain.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#3b82f6"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#eab308"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))
)

// Logger writes severity-tagged diagnostic lines.
type Logger struct {
	out    io.Writer
	errOut io.Writer
	color  bool
}

// NewLogger returns a Logger attached to the process streams.
func NewLogger() *Logger {
	return &Logger{out: os.Stdout, errOut: os.Stderr, color: IsInteractiveTTY()}
}

// NewLoggerWithWriters returns an uncolored Logger writing to the given
// streams. This is useful for tests.
func NewLoggerWithWriters(out, errOut io.Writer) *Logger {
	return &Logger{out: out, errOut: errOut}
}

// Infof logs an informational line to stdout.
func (l *Logger) Infof(format string, args ...interface{}) {
	fmt.Fprintf(l.out, "%s %s\n", l.tag(infoStyle, "[INFO]"), fmt.Sprintf(format, args...))
}

// Warnf logs a warning line to stderr.
func (l *Logger) Warnf(format string, args ...interface{}) {
	fmt.Fprintf(l.errOut, "%s %s\n", l.tag(warnStyle, "[WARN]"), fmt.Sprintf(format, args...))
}

// Errorf logs an error line to stderr.
func (l *Logger) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(l.errOut, "%s %s\n", l.tag(errorStyle, "[ERROR]"), fmt.Sprintf(format, args...))
}

func (l *Logger) tag(style lipgloss.Style, text string) string {
	if !l.color {
		return text
	}
	return style.Render(text)
}

// IsInteractiveTTY reports whether stdout is attached to a terminal.
func IsInteractiveTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

package addons

import (
	"errors"
	"fmt"
)

// Fatal failure reasons. Only these conditions abort a reconciliation run;
// every other anomaly is downgraded to a warning so a mostly-healthy install
// still reaches Ready.
const (
	ReasonClusterUnavailable   = "ClusterUnavailable"
	ReasonInstallCommandFailed = "InstallCommandFailed"
	ReasonNamespaceStuck       = "NamespaceStuckTerminating"
)

// FatalError marks an error as non-recoverable for the current run.
type FatalError struct {
	Reason string
	Err    error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// Fatal wraps err with a failure reason, marking it non-recoverable.
func Fatal(reason string, err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Reason: reason, Err: err}
}

// IsFatal checks if an error is fatal.
func IsFatal(err error) bool {
	var fatalErr *FatalError
	return errors.As(err, &fatalErr)
}

// FatalReason returns the failure reason carried by err, or "" when err is
// not fatal.
func FatalReason(err error) string {
	var fatalErr *FatalError
	if errors.As(err, &fatalErr) {
		return fatalErr.Reason
	}
	return ""
}

// Package poll implements fixed-interval bounded waiting for cluster state
// transitions. Every wait in the reconciler goes through Wait, so the
// attempt accounting and the one-shot escalation live in exactly one place.
package poll

import (
	"context"
	"errors"
	"time"
)

// ErrBoundExceeded is returned when every probe within the bound failed.
var ErrBoundExceeded = errors.New("wait bound exceeded")

// Checkpoint fires a one-time escalation action partway through a wait.
type Checkpoint struct {
	// After is the logical elapsed time at which Escalate fires. The
	// escalation runs after the first failed probe at or past this point.
	After time.Duration

	// Escalate runs exactly once per Wait call, then polling continues
	// unchanged.
	Escalate func(ctx context.Context)
}

// Config describes one bounded wait.
type Config struct {
	// Interval is the fixed delay between probes. No backoff: these are
	// short-lived development-cluster operations where responsiveness to a
	// state flip matters more than back-pressure.
	Interval time.Duration

	// Bound is the total time budget. Wait makes ceil(Bound/Interval)
	// probe calls before giving up.
	Bound time.Duration

	// Checkpoint is optional.
	Checkpoint *Checkpoint
}

// Attempts returns the number of probe calls Wait makes before returning
// ErrBoundExceeded.
func (c Config) Attempts() int {
	if c.Interval <= 0 || c.Bound <= 0 {
		return 1
	}
	n := int((c.Bound + c.Interval - 1) / c.Interval)
	if n < 1 {
		return 1
	}
	return n
}

// Wait calls probe at fixed intervals until it returns true, the bound is
// exhausted, or ctx is canceled. The first probe runs immediately.
//
// Elapsed time for the checkpoint is logical (probes completed times
// Interval), not wall clock, so a wait behaves the same under load and in
// tests with shrunken intervals.
func Wait(ctx context.Context, cfg Config, probe func(ctx context.Context) bool) error {
	attempts := cfg.Attempts()
	escalated := false

	for i := 0; i < attempts; i++ {
		if probe(ctx) {
			return nil
		}

		if cfg.Checkpoint != nil && !escalated {
			if time.Duration(i)*cfg.Interval >= cfg.Checkpoint.After {
				cfg.Checkpoint.Escalate(ctx)
				escalated = true
			}
		}

		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(cfg.Interval):
		}
	}

	return ErrBoundExceeded
}

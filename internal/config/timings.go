package config

import (
	"os"
	"strconv"
	"time"
)

// Timings holds the wait cadences of the addon reconciler.
// These values can be customized via environment variables.
type Timings struct {
	TerminationInterval time.Duration // Poll interval while a namespace is terminating
	TerminationBound    time.Duration // Total budget for a namespace deletion to complete
	FinalizerCheckpoint time.Duration // Elapsed wait time after which finalizers are cleared once
	ReadinessInterval   time.Duration // Poll interval for component readiness
	PatchSettleDelay    time.Duration // Delay after a config patch before re-checking readiness
	PatchRewaitAttempts int           // Readiness polls after a config patch
}

// LoadTimings loads the timing profile from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - SMCDEV_TERMINATION_INTERVAL (default: 1s)
//   - SMCDEV_TERMINATION_BOUND (default: 5m)
//   - SMCDEV_FINALIZER_CHECKPOINT (default: 1m)
//   - SMCDEV_READINESS_INTERVAL (default: 2s)
//   - SMCDEV_PATCH_SETTLE_DELAY (default: 5s)
//   - SMCDEV_PATCH_REWAIT_ATTEMPTS (default: 30)
func LoadTimings() Timings {
	return Timings{
		TerminationInterval: parseDuration("SMCDEV_TERMINATION_INTERVAL", 1*time.Second),
		TerminationBound:    parseDuration("SMCDEV_TERMINATION_BOUND", 5*time.Minute),
		FinalizerCheckpoint: parseDuration("SMCDEV_FINALIZER_CHECKPOINT", 1*time.Minute),
		ReadinessInterval:   parseDuration("SMCDEV_READINESS_INTERVAL", 2*time.Second),
		PatchSettleDelay:    parseDuration("SMCDEV_PATCH_SETTLE_DELAY", 5*time.Second),
		PatchRewaitAttempts: parseInt("SMCDEV_PATCH_REWAIT_ATTEMPTS", 30),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}

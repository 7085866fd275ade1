package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadTimings_Defaults(t *testing.T) {
	timings := LoadTimings()

	assert.Equal(t, 1*time.Second, timings.TerminationInterval)
	assert.Equal(t, 5*time.Minute, timings.TerminationBound)
	assert.Equal(t, 1*time.Minute, timings.FinalizerCheckpoint)
	assert.Equal(t, 2*time.Second, timings.ReadinessInterval)
	assert.Equal(t, 5*time.Second, timings.PatchSettleDelay)
	assert.Equal(t, 30, timings.PatchRewaitAttempts)
}

func TestLoadTimings_EnvOverrides(t *testing.T) {
	t.Setenv("SMCDEV_TERMINATION_INTERVAL", "50ms")
	t.Setenv("SMCDEV_TERMINATION_BOUND", "2s")
	t.Setenv("SMCDEV_PATCH_REWAIT_ATTEMPTS", "3")

	timings := LoadTimings()

	assert.Equal(t, 50*time.Millisecond, timings.TerminationInterval)
	assert.Equal(t, 2*time.Second, timings.TerminationBound)
	assert.Equal(t, 3, timings.PatchRewaitAttempts)
}

func TestLoadTimings_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SMCDEV_TERMINATION_INTERVAL", "not-a-duration")
	t.Setenv("SMCDEV_PATCH_REWAIT_ATTEMPTS", "many")

	timings := LoadTimings()

	assert.Equal(t, 1*time.Second, timings.TerminationInterval)
	assert.Equal(t, 30, timings.PatchRewaitAttempts)
}

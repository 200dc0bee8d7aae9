package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunState_IdleOmitsTimestamps(t *testing.T) {
	data, err := json.Marshal(RunState{Phase: PhaseIdle})
	require.NoError(t, err)

	assert.NotContains(t, string(data), "startedAt")
	assert.NotContains(t, string(data), "completedAt")
	assert.NotContains(t, string(data), "0001-01-01")
}

func TestRunState_ActiveCarriesStartedAt(t *testing.T) {
	now := time.Now()
	data, err := json.Marshal(RunState{
		Phase:     PhasePreparing,
		Progress:  10,
		StartedAt: &now,
	})
	require.NoError(t, err)

	assert.Contains(t, string(data), "startedAt")
}

func TestRunPhase_Terminal(t *testing.T) {
	assert.True(t, PhaseDone.Terminal())
	assert.True(t, PhaseFailed.Terminal())
	assert.False(t, PhaseIdle.Terminal())
	assert.False(t, PhaseSubmitting.Terminal())
}

package models

import "time"

// RunPhase represents the state of a batch processing run.
type RunPhase string

const (
	PhaseIdle       RunPhase = "idle"
	PhasePreparing  RunPhase = "preparing"
	PhaseSubmitting RunPhase = "submitting"
	PhaseRendering  RunPhase = "rendering"
	PhaseDone       RunPhase = "done"
	PhaseFailed     RunPhase = "failed"
)

// Terminal reports whether the phase ends a run.
func (p RunPhase) Terminal() bool {
	return p == PhaseDone || p == PhaseFailed
}

// RunState is the observable state of the single in-flight (or last
// finished) run. It is overwritten by each new run, never queued.
type RunState struct {
	RunID       string     `json:"runId,omitempty"`
	Phase       RunPhase   `json:"phase"`
	Progress    int        `json:"progress"` // 0-100
	Message     string     `json:"message,omitempty"`
	Error       string     `json:"error,omitempty"`
	FileCount   int        `json:"fileCount,omitempty"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

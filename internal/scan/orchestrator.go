// Package scan coordinates one batch processing run: staged files are
// encoded concurrently, submitted in a single exchange, and the parsed
// results are written into the result store.
package scan

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/doc-scanner/client/internal/encode"
	"github.com/doc-scanner/client/internal/models"
	"github.com/doc-scanner/client/internal/results"
	"github.com/doc-scanner/client/internal/staging"
)

// ErrRunInFlight is returned when a run is started while another is
// still preparing or submitting. Runs are never queued.
var ErrRunInFlight = errors.New("scan: a run is already in flight")

// Submitter performs the single batch exchange with the scan service.
type Submitter interface {
	Submit(ctx context.Context, payloads []models.EncodedFilePayload) ([]models.ProcessingResult, error)
}

// Orchestrator owns the run state machine. Exactly one run may be in
// flight at a time; the state is overwritten by each new run.
type Orchestrator struct {
	staging   *staging.Store
	results   *results.Store
	submitter Submitter

	mu       sync.Mutex
	state    models.RunState
	inFlight bool

	subMu  sync.Mutex
	subs   map[int]chan models.RunState
	nextID int
}

// New creates an orchestrator over the given collaborators.
func New(stagingStore *staging.Store, resultStore *results.Store, submitter Submitter) *Orchestrator {
	return &Orchestrator{
		staging:   stagingStore,
		results:   resultStore,
		submitter: submitter,
		state:     models.RunState{Phase: models.PhaseIdle},
		subs:      make(map[int]chan models.RunState),
	}
}

// State returns a snapshot of the current run state.
func (o *Orchestrator) State() models.RunState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// InFlight reports whether a run is currently preparing or submitting.
func (o *Orchestrator) InFlight() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.inFlight
}

// Subscribe registers a listener for run state transitions. The
// returned cancel function must be called to release the channel.
// Slow listeners miss intermediate updates rather than block the run.
func (o *Orchestrator) Subscribe() (<-chan models.RunState, func()) {
	o.subMu.Lock()
	defer o.subMu.Unlock()

	id := o.nextID
	o.nextID++
	ch := make(chan models.RunState, 16)
	o.subs[id] = ch

	cancel := func() {
		o.subMu.Lock()
		defer o.subMu.Unlock()
		if _, ok := o.subs[id]; ok {
			delete(o.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// Start launches a run in the background, rejecting concurrent runs
// immediately so the caller can surface the conflict. The guard is
// taken before Start returns: of two simultaneous callers, exactly
// one gets the run and the other gets ErrRunInFlight. Used by the web
// surface; the CLI calls Run directly.
func (o *Orchestrator) Start(ctx context.Context) (models.RunState, error) {
	staged := o.staging.List()
	if len(staged) == 0 {
		return o.State(), nil
	}

	runID, err := o.begin(staged)
	if err != nil {
		return o.State(), err
	}

	go func() {
		if err := o.execute(ctx, runID, staged); err != nil {
			fmt.Printf("[Scan] Run failed: %v\n", err)
		}
	}()

	return o.State(), nil
}

// Run executes one full batch cycle and blocks until it finishes.
// It is a no-op when nothing is staged. The staged order observed at
// entry fixes the positional correspondence for the whole run.
func (o *Orchestrator) Run(ctx context.Context) error {
	staged := o.staging.List()
	if len(staged) == 0 {
		return nil
	}

	runID, err := o.begin(staged)
	if err != nil {
		return err
	}
	return o.execute(ctx, runID, staged)
}

// begin takes the in-flight guard and transitions to Preparing.
func (o *Orchestrator) begin(staged []models.StagedFile) (string, error) {
	o.mu.Lock()
	if o.inFlight {
		o.mu.Unlock()
		return "", ErrRunInFlight
	}
	o.inFlight = true
	runID := uuid.New().String()
	now := time.Now()
	o.state = models.RunState{
		RunID:     runID,
		Phase:     models.PhasePreparing,
		Progress:  10,
		Message:   fmt.Sprintf("encoding %d file(s)", len(staged)),
		FileCount: len(staged),
		StartedAt: &now,
	}
	state := o.state
	o.mu.Unlock()
	o.notify(state)
	return runID, nil
}

func (o *Orchestrator) execute(ctx context.Context, runID string, staged []models.StagedFile) error {
	// A failed run must always release the guard so the submit
	// trigger re-arms without a reload.
	defer func() {
		o.mu.Lock()
		o.inFlight = false
		o.mu.Unlock()
	}()

	fmt.Printf("[Scan %s] Starting run: %d file(s)\n", runID[:8], len(staged))

	payloads, err := encode.EncodeAll(ctx, staged)
	if err != nil {
		fmt.Printf("[Scan %s] Encoding failed: %v\n", runID[:8], err)
		o.fail(err.Error())
		return err
	}

	o.transition(models.PhaseSubmitting, 30, fmt.Sprintf("submitting batch of %d file(s)", len(payloads)))

	resultSeq, err := o.submitter.Submit(ctx, payloads)
	if err != nil {
		fmt.Printf("[Scan %s] Submission failed: %v\n", runID[:8], err)
		o.fail("processing failed")
		return err
	}

	o.transition(models.PhaseRendering, 90, "rendering results")

	// Verbatim, replacing any prior run's results. Index k matches
	// the k-th staged file at the time this run began.
	o.results.ReplaceAll(resultSeq)

	o.complete(fmt.Sprintf("processed %d file(s)", len(resultSeq)))
	fmt.Printf("[Scan %s] Run complete: %d result(s)\n", runID[:8], len(resultSeq))
	return nil
}

func (o *Orchestrator) transition(phase models.RunPhase, progress int, message string) {
	o.mu.Lock()
	o.state.Phase = phase
	o.state.Progress = progress
	o.state.Message = message
	state := o.state
	o.mu.Unlock()
	o.notify(state)
}

func (o *Orchestrator) complete(message string) {
	o.mu.Lock()
	now := time.Now()
	o.state.Phase = models.PhaseDone
	o.state.Progress = 100
	o.state.Message = message
	o.state.CompletedAt = &now
	state := o.state
	o.mu.Unlock()
	o.notify(state)
}

func (o *Orchestrator) fail(reason string) {
	o.mu.Lock()
	now := time.Now()
	o.state.Phase = models.PhaseFailed
	o.state.Error = reason
	o.state.Message = "scan failed"
	o.state.CompletedAt = &now
	state := o.state
	o.mu.Unlock()
	o.notify(state)
}

func (o *Orchestrator) notify(state models.RunState) {
	o.subMu.Lock()
	defer o.subMu.Unlock()

	for _, ch := range o.subs {
		select {
		case ch <- state:
		default:
		}
	}
}

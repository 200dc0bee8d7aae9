// Package results holds the ordered results of the last completed run
// and the read-only views derived from them.
package results

import (
	"errors"
	"sync"

	"github.com/doc-scanner/client/internal/models"
)

// ErrOutOfRange is returned for an index outside the result sequence.
var ErrOutOfRange = errors.New("results: index out of range")

// Store holds the last run's ordered result sequence. Index k
// corresponds to the k-th file staged when that run began.
type Store struct {
	mu      sync.RWMutex
	results []models.ProcessingResult
}

// NewStore creates an empty result store.
func NewStore() *Store {
	return &Store{}
}

// ReplaceAll swaps in a new result sequence, discarding the previous
// run's results. This is the only mutator; the orchestrator calls it
// once per successful run.
func (s *Store) ReplaceAll(results []models.ProcessingResult) {
	cp := make([]models.ProcessingResult, len(results))
	copy(cp, results)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = cp
}

// Get returns the result at index.
func (s *Store) Get(index int) (models.ProcessingResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index < 0 || index >= len(s.results) {
		return models.ProcessingResult{}, ErrOutOfRange
	}
	return s.results[index], nil
}

// List returns an ordered snapshot of the results.
func (s *Store) List() []models.ProcessingResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ProcessingResult, len(s.results))
	copy(out, s.results)
	return out
}

// Len returns the number of stored results.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}

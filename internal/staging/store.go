// Package staging holds the set of files selected for the next batch.
// No file bytes are read here; entries only carry lazy sources.
package staging

import (
	"errors"
	"sync"

	"github.com/doc-scanner/client/internal/models"
)

// ErrOutOfRange is returned for an index outside the staged sequence.
var ErrOutOfRange = errors.New("staging: index out of range")

// Store is the deduplicated, ordered set of staged files.
// Names are unique: a later Add with a colliding name is silently
// dropped, preserving the first-seen entry.
type Store struct {
	mu    sync.RWMutex
	files []models.StagedFile
	names map[string]struct{}
}

// NewStore creates an empty staging store.
func NewStore() *Store {
	return &Store{
		names: make(map[string]struct{}),
	}
}

// Add appends candidates in order, skipping any whose name is already
// staged. Returns the number actually staged.
func (s *Store) Add(files ...models.StagedFile) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, f := range files {
		if _, exists := s.names[f.Name]; exists {
			continue
		}
		s.files = append(s.files, f)
		s.names[f.Name] = struct{}{}
		added++
	}
	return added
}

// Remove deletes the entry at index, shifting later entries down.
func (s *Store) Remove(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.files) {
		return ErrOutOfRange
	}
	delete(s.names, s.files[index].Name)
	s.files = append(s.files[:index], s.files[index+1:]...)
	return nil
}

// Clear empties the store unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.files = nil
	s.names = make(map[string]struct{})
}

// List returns an ordered snapshot of the staged files.
func (s *Store) List() []models.StagedFile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.StagedFile, len(s.files))
	copy(out, s.files)
	return out
}

// Len returns the number of staged files.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

// IsEmpty reports whether nothing is staged. Callers use this to
// enable or disable the submit trigger after every mutation.
func (s *Store) IsEmpty() bool {
	return s.Len() == 0
}

package search

import (
	"sync"

	"github.com/digimosa/kwsearch/internal/models"
)

// LocalFindings is one worker's keyword -> files mapping, in chunk order.
type LocalFindings map[string][]string

// Store is the shared result of a run. Workers only touch it through Merge.
type Store struct {
	mu      sync.Mutex
	matches models.Matches
	stats   models.Stats
}

func NewStore() *Store {
	return &Store{
		matches: make(models.Matches),
	}
}

// Merge appends a worker's findings under one lock. Files from different merges are
// appended, not deduplicated; disjoint chunks cannot produce the same pair twice.
func (s *Store) Merge(local LocalFindings, stats models.Stats) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for keyword, files := range local {
		s.matches[keyword] = append(s.matches[keyword], files...)
	}
	s.stats.Add(stats)
}

// Snapshot copies the merged state. Call it once all workers have returned.
func (s *Store) Snapshot() (models.Matches, models.Stats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matches.Clone(), s.stats
}

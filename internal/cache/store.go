package cache

import (
	"sync"

	"StrataScan/internal/model"
)

// defaultCapacity bounds how many completed runs stay resident.
const defaultCapacity = 20

// RunStore keeps completed analysis runs in memory, keyed by run ID, with the
// most recent run directly addressable. It is injected into every consumer
// that needs run history. Safe for concurrent use.
type RunStore struct {
	mu       sync.RWMutex
	runs     map[string]*model.AnalysisResult
	order    []string // insertion order, oldest first
	latest   string
	capacity int
}

func NewRunStore() *RunStore {
	return NewRunStoreWithCapacity(defaultCapacity)
}

func NewRunStoreWithCapacity(capacity int) *RunStore {
	if capacity < 1 {
		capacity = 1
	}
	return &RunStore{
		runs:     make(map[string]*model.AnalysisResult),
		capacity: capacity,
	}
}

// Put stores a completed run and makes it the latest. The oldest run is
// evicted once the store is at capacity.
func (s *RunStore) Put(result *model.AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[result.RunID]; !exists {
		s.order = append(s.order, result.RunID)
	}
	s.runs[result.RunID] = result
	s.latest = result.RunID

	for len(s.order) > s.capacity {
		evict := s.order[0]
		s.order = s.order[1:]
		delete(s.runs, evict)
	}
}

// Get returns the run with the given ID, or false when it was never stored
// or has been evicted.
func (s *RunStore) Get(runID string) (*model.AnalysisResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.runs[runID]
	return result, ok
}

// Latest returns the most recently stored run, or false when the store is
// empty.
func (s *RunStore) Latest() (*model.AnalysisResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == "" {
		return nil, false
	}
	result, ok := s.runs[s.latest]
	return result, ok
}

// Len returns the number of resident runs.
func (s *RunStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}

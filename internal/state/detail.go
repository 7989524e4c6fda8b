package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/storefront/internal/catalog"
)

// DetailSnapshot is what the single-item view renders.
type DetailSnapshot struct {
	Item                *catalog.Item
	RelatedItems        []catalog.Item
	UnfinishedTasks     int
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// Loading reports whether the item fetch sequence is still outstanding.
func (s DetailSnapshot) Loading() bool {
	return s.UnfinishedTasks > 0
}

// DetailStore coordinates concurrent access to a DetailSnapshot.
type DetailStore struct {
	mu       sync.RWMutex
	snapshot DetailSnapshot
}

// BeginTask counts one more outstanding fetch sequence.
func (s *DetailStore) BeginTask() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.UnfinishedTasks++
}

// EndTask settles one fetch sequence. The counter always drops; item and
// related items change only when apply is true, and only on success.
func (s *DetailStore) EndTask(item catalog.Item, related []catalog.Item, err error, apply bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot.UnfinishedTasks > 0 {
		s.snapshot.UnfinishedTasks--
	}
	if !apply {
		return
	}
	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}
	it := item
	s.snapshot.Item = &it
	s.snapshot.RelatedItems = cloneItems(related)
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *DetailStore) Snapshot() DetailSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.Item != nil {
		it := *s.snapshot.Item
		snap.Item = &it
	}
	snap.RelatedItems = cloneItems(s.snapshot.RelatedItems)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

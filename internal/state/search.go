package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/storefront/internal/catalog"
	"github.com/five82/storefront/internal/params"
)

// SearchSnapshot is what the listing view renders.
type SearchSnapshot struct {
	Items               []catalog.Item
	TotalItemsCount     int
	HasResult           bool
	UnfinishedTasks     int
	Title               string
	Params              params.Mapping
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // failed fetches since the last success
}

// Loading reports whether any fetch is still outstanding.
func (s SearchSnapshot) Loading() bool {
	return s.UnfinishedTasks > 0
}

// IsOffline returns true when the backend has failed several fetches in a row.
func (s SearchSnapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// SearchStore coordinates concurrent access to a SearchSnapshot.
type SearchStore struct {
	mu       sync.RWMutex
	snapshot SearchSnapshot
}

// SetView records the parameters currently on screen and their title.
func (s *SearchStore) SetView(m params.Mapping, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Params = m.Clone()
	s.snapshot.Title = title
}

// BeginTask counts one more outstanding fetch.
func (s *SearchStore) BeginTask() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.UnfinishedTasks++
}

// EndTask settles one outstanding fetch. The counter always drops. When apply
// is false nothing else changes; otherwise an error is recorded while the
// previous items are kept, and a success replaces them.
func (s *SearchStore) EndTask(res catalog.SearchResult, err error, apply bool) {
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
	s.snapshot.ConsecutiveFailures = 0
	s.snapshot.Items = cloneItems(res.Data)
	s.snapshot.TotalItemsCount = res.TotalLength
	s.snapshot.HasResult = true
	s.snapshot.LastError = nil
}

// Fail records an error that did not come from a fetch, such as parameters
// that could not be parsed.
func (s *SearchStore) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
}

// Snapshot returns a copy of the current snapshot.
func (s *SearchStore) Snapshot() SearchSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Items = cloneItems(s.snapshot.Items)
	snap.Params = s.snapshot.Params.Clone()
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneItems(items []catalog.Item) []catalog.Item {
	if len(items) == 0 {
		return nil
	}
	dup := make([]catalog.Item, len(items))
	copy(dup, items)
	return dup
}

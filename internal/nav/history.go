// Package nav is an in-process navigation history: a stack of locations with
// back/forward movement and change notification, standing in for a browser
// address bar.
package nav

import (
	"strings"
	"sync"
)

// Known view paths.
const (
	PathSearch  = "/search"
	PathDetails = "/details"
)

// Location is a view path plus its shareable parameter token.
type Location struct {
	Path  string
	Token string
}

// String renders the location as path?token.
func (l Location) String() string {
	if l.Token == "" {
		return l.Path
	}
	return l.Path + "?" + l.Token
}

// Parse splits "path?token". An empty path means the search view.
func Parse(raw string) Location {
	path, token, _ := strings.Cut(strings.TrimSpace(raw), "?")
	path = strings.TrimRight(path, "/")
	if path == "" {
		path = PathSearch
	}
	return Location{Path: path, Token: token}
}

// History records visited locations. Subscribers receive a coalesced signal
// after every move and read Location to learn where they are.
type History struct {
	mu      sync.Mutex
	entries []Location
	index   int
	subs    map[int]chan struct{}
	nextSub int
}

// NewHistory starts a history at initial.
func NewHistory(initial Location) *History {
	if initial.Path == "" {
		initial.Path = PathSearch
	}
	return &History{
		entries: []Location{initial},
		subs:    make(map[int]chan struct{}),
	}
}

// Location returns the current entry.
func (h *History) Location() Location {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

// Navigate pushes loc, dropping any forward entries. When loc equals the
// current entry nothing is pushed, but subscribers are still notified.
func (h *History) Navigate(loc Location) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if loc.Path == "" {
		loc.Path = h.entries[h.index].Path
	}
	if loc != h.entries[h.index] {
		h.entries = append(h.entries[:h.index+1], loc)
		h.index++
	}
	h.notifyLocked()
}

// Back moves one entry back. It reports false at the oldest entry.
func (h *History) Back() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index == 0 {
		return false
	}
	h.index--
	h.notifyLocked()
	return true
}

// Forward moves one entry forward. It reports false at the newest entry.
func (h *History) Forward() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index >= len(h.entries)-1 {
		return false
	}
	h.index++
	h.notifyLocked()
	return true
}

// Len returns the number of recorded entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Subscribe returns a channel that receives a value after each move, plus a
// function that unsubscribes and closes it. Signals coalesce: a subscriber
// that falls behind sees one pending signal, never a blocked navigator.
func (h *History) Subscribe() (<-chan struct{}, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextSub
	h.nextSub++
	ch := make(chan struct{}, 1)
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, id)
			close(ch)
		})
	}
}

func (h *History) notifyLocked() {
	for _, ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

package params

import (
	"github.com/five82/storefront/internal/nav"
)

// Navigator is the navigation collaborator: it exposes the current location
// and accepts a request to move to a new one, notifying its own subscribers.
type Navigator interface {
	Location() nav.Location
	Navigate(loc nav.Location)
}

// Store reads the current parameter mapping from a Navigator and writes
// merged mappings back through it. It keeps no copy of the mapping.
type Store struct {
	nav Navigator
}

// NewStore binds a Store to the given navigator.
func NewStore(n Navigator) *Store {
	return &Store{nav: n}
}

// Read decodes the navigator's current token.
func (s *Store) Read() Mapping {
	return Decode(s.nav.Location().Token)
}

// Update merges partial over the current mapping and asks the navigator to
// move there. Keys absent from partial are kept. The merged mapping is not
// returned; it becomes visible through Read once the navigator has moved.
func (s *Store) Update(partial Mapping) {
	loc := s.nav.Location()
	merged := Decode(loc.Token).Merge(partial)
	s.nav.Navigate(nav.Location{Path: loc.Path, Token: Encode(merged)})
}

// filterKeys change which items match, so the current page stops meaning anything.
var filterKeys = []string{KeyCategory, KeyUsePriceFilter, KeyMinPrice, KeyMaxPrice, KeyItemsPerPage}

// WithFirstPage returns partial with page reset to "1" when it touches a
// filter-affecting key and does not set page itself.
func WithFirstPage(partial Mapping) Mapping {
	if _, ok := partial[KeyPage]; ok {
		return partial
	}
	for _, k := range filterKeys {
		if _, ok := partial[k]; ok {
			out := partial.Clone()
			out[KeyPage] = "1"
			return out
		}
	}
	return partial
}

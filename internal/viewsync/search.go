package viewsync

import (
	"context"
	"log"
	"sync"

	"github.com/five82/storefront/internal/catalog"
	"github.com/five82/storefront/internal/params"
	"github.com/five82/storefront/internal/state"
)

// ResolutionOrder decides which of several overlapping listing fetches wins.
type ResolutionOrder int

const (
	// LatestIssued applies a response only if no newer request has already
	// been applied. Late arrivals from superseded requests are dropped.
	LatestIssued ResolutionOrder = iota
	// LatestResolved applies every response in arrival order, so the last
	// one to resolve wins even if it answers an older parameter set.
	LatestResolved
)

// SearchRequest is one listing fetch issued by a SearchController.
type SearchRequest struct {
	Version uint64
	Query   params.Query
}

// SearchResponse carries a resolved listing fetch back to its controller.
type SearchResponse struct {
	Version uint64
	Result  catalog.SearchResult
	Err     error
}

// SearchController keeps a listing view in step with its parameter mapping.
// It issues a fetch on activation and on every change to the mapping, and
// settles results into a state.SearchStore.
type SearchController struct {
	fetcher catalog.Fetcher
	store   *state.SearchStore
	order   ResolutionOrder

	mu      sync.Mutex
	current params.Mapping
	issued  uint64
	applied uint64
}

// NewSearchController builds a controller backed by fetcher.
func NewSearchController(fetcher catalog.Fetcher, order ResolutionOrder) *SearchController {
	return &SearchController{
		fetcher: fetcher,
		store:   &state.SearchStore{},
		order:   order,
	}
}

// Activate starts the view on m and always issues a fetch when m is valid.
func (c *SearchController) Activate(m params.Mapping) (SearchRequest, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = m.Clone()
	return c.beginLocked()
}

// Observe issues a fetch only when m differs from the mapping last seen.
func (c *SearchController) Observe(m params.Mapping) (SearchRequest, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !params.Changed(c.current, m) {
		return SearchRequest{}, false
	}
	log.Printf("search params changed: %v", params.ChangedKeys(c.current, m))
	c.current = m.Clone()
	return c.beginLocked()
}

func (c *SearchController) beginLocked() (SearchRequest, bool) {
	c.store.SetView(c.current, params.Title(c.current))
	q, err := params.ParseQuery(c.current)
	if err != nil {
		log.Printf("search params rejected: %v", err)
		c.store.Fail(err)
		return SearchRequest{}, false
	}
	c.issued++
	c.store.BeginTask()
	return SearchRequest{Version: c.issued, Query: q}, true
}

// Fetch performs the listing call. It touches no controller state and may
// run on any goroutine.
func (c *SearchController) Fetch(ctx context.Context, req SearchRequest) SearchResponse {
	res, err := c.fetcher.SearchItems(ctx, req.Query)
	if err != nil {
		log.Printf("search fetch %d failed: %v", req.Version, err)
	}
	return SearchResponse{Version: req.Version, Result: res, Err: err}
}

// Apply settles a response. The in-flight count drops for every response;
// whether the data is shown depends on the resolution order.
func (c *SearchController) Apply(resp SearchResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	apply := true
	if c.order == LatestIssued {
		if resp.Version < c.applied {
			log.Printf("search fetch %d discarded; %d already shown", resp.Version, c.applied)
			apply = false
		} else {
			c.applied = resp.Version
		}
	}
	c.store.EndTask(resp.Result, resp.Err, apply)
}

// Current returns the mapping the controller last accepted.
func (c *SearchController) Current() params.Mapping {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current.Clone()
}

// Snapshot returns the displayed state.
func (c *SearchController) Snapshot() state.SearchSnapshot {
	return c.store.Snapshot()
}

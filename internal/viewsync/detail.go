package viewsync

import (
	"context"
	"log"
	"sync"

	"github.com/five82/storefront/internal/catalog"
	"github.com/five82/storefront/internal/params"
	"github.com/five82/storefront/internal/state"
)

// RelatedLimit caps the related items shown under a product.
const RelatedLimit = 3

// DetailRequest is one item-plus-related fetch sequence.
type DetailRequest struct {
	Version uint64
	ID      string
	scope   context.Context
}

// DetailResponse carries a finished sequence back to its controller.
type DetailResponse struct {
	Version uint64
	Item    catalog.Item
	Related []catalog.Item
	Err     error
	scope   context.Context
}

// DetailController keeps a single-item view in step with its id parameter.
// Each activation opens a scope that Deactivate closes; responses that
// resolve after their scope closed still settle the in-flight count but
// leave the displayed item untouched.
type DetailController struct {
	fetcher catalog.Fetcher
	store   *state.DetailStore

	mu      sync.Mutex
	current params.Mapping
	scope   context.Context
	cancel  context.CancelFunc
	issued  uint64
	applied uint64
}

// NewDetailController builds a controller backed by fetcher.
func NewDetailController(fetcher catalog.Fetcher) *DetailController {
	return &DetailController{
		fetcher: fetcher,
		store:   &state.DetailStore{},
	}
}

// Activate opens a new scope derived from ctx and fetches the item named by m.
func (c *DetailController) Activate(ctx context.Context, m params.Mapping) (DetailRequest, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
	c.scope, c.cancel = context.WithCancel(ctx)
	c.current = m.Clone()
	return c.beginLocked(), true
}

// Observe refetches when the id parameter changed. Other keys are ignored,
// as is everything once the view has been deactivated.
func (c *DetailController) Observe(m params.Mapping) (DetailRequest, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.scope == nil || c.scope.Err() != nil {
		return DetailRequest{}, false
	}
	oldID, hadID := c.current.Lookup(params.KeyID)
	newID, hasID := m.Lookup(params.KeyID)
	c.current = m.Clone()
	if hadID == hasID && oldID == newID {
		return DetailRequest{}, false
	}
	return c.beginLocked(), true
}

func (c *DetailController) beginLocked() DetailRequest {
	c.issued++
	c.store.BeginTask()
	id, _ := c.current.Lookup(params.KeyID)
	return DetailRequest{Version: c.issued, ID: id, scope: c.scope}
}

// Deactivate closes the current scope. Pending sequences finish but their
// results are not shown.
func (c *DetailController) Deactivate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
}

// Active reports whether the view is between Activate and Deactivate.
func (c *DetailController) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scope != nil && c.scope.Err() == nil
}

// Fetch loads the item and then the listing for its category. ctx bounds the
// network calls; closing the request's scope does not abort them, it only
// skips the dependent listing call once the item is in hand.
func (c *DetailController) Fetch(ctx context.Context, req DetailRequest) DetailResponse {
	resp := DetailResponse{Version: req.Version, scope: req.scope}

	item, err := c.fetcher.GetItem(ctx, req.ID)
	if err != nil {
		log.Printf("item %q fetch failed: %v", req.ID, err)
		resp.Err = err
		return resp
	}
	resp.Item = item
	if req.scope.Err() != nil {
		return resp
	}

	q, err := params.ParseQuery(params.Mapping{params.KeyCategory: item.Category})
	if err != nil {
		resp.Err = err
		return resp
	}
	list, err := c.fetcher.SearchItems(ctx, q)
	if err != nil {
		log.Printf("related items for %q failed: %v", req.ID, err)
		resp.Err = err
		return resp
	}
	resp.Related = relatedTo(item, list.Data)
	return resp
}

// Apply settles a sequence. The in-flight count always drops; the item and
// related items change only while the originating scope is open and no newer
// sequence has been shown.
func (c *DetailController) Apply(resp DetailResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	apply := resp.scope != nil && resp.scope.Err() == nil && resp.Version >= c.applied
	if apply {
		c.applied = resp.Version
	}
	c.store.EndTask(resp.Item, resp.Related, resp.Err, apply)
}

// Snapshot returns the displayed state.
func (c *DetailController) Snapshot() state.DetailSnapshot {
	return c.store.Snapshot()
}

func relatedTo(item catalog.Item, candidates []catalog.Item) []catalog.Item {
	out := make([]catalog.Item, 0, RelatedLimit)
	for _, it := range candidates {
		if it.ID == item.ID {
			continue
		}
		out = append(out, it)
		if len(out) == RelatedLimit {
			break
		}
	}
	return out
}

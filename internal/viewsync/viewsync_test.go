package viewsync

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/five82/storefront/internal/catalog"
	"github.com/five82/storefront/internal/nav"
	"github.com/five82/storefront/internal/paging"
	"github.com/five82/storefront/internal/params"
)

// fakeFetcher records calls and answers from the in-memory sample catalog
// unless a hook overrides the answer.
type fakeFetcher struct {
	mu          sync.Mutex
	searches    []params.Query
	gets        []string
	backend     *catalog.Memory
	searchHook  func(q params.Query) (catalog.SearchResult, error)
	getHook     func(id string)
	failSearch  error
	failGetItem error
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{backend: catalog.NewMemory(catalog.SampleItems(), 0)}
}

func (f *fakeFetcher) GetItem(ctx context.Context, id string) (catalog.Item, error) {
	f.mu.Lock()
	f.gets = append(f.gets, id)
	hook, fail := f.getHook, f.failGetItem
	f.mu.Unlock()
	if hook != nil {
		hook(id)
	}
	if fail != nil {
		return catalog.Item{}, fail
	}
	return f.backend.GetItem(ctx, id)
}

func (f *fakeFetcher) SearchItems(ctx context.Context, q params.Query) (catalog.SearchResult, error) {
	f.mu.Lock()
	f.searches = append(f.searches, q)
	hook, fail := f.searchHook, f.failSearch
	f.mu.Unlock()
	if fail != nil {
		return catalog.SearchResult{}, fail
	}
	if hook != nil {
		return hook(q)
	}
	return f.backend.SearchItems(ctx, q)
}

func (f *fakeFetcher) searchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.searches)
}

func TestSearchController_ActivateFetchApply(t *testing.T) {
	f := newFakeFetcher()
	c := NewSearchController(f, LatestIssued)

	req, ok := c.Activate(params.Mapping{params.KeyCategory: "Books", params.KeyDirectClick: "true"})
	if !ok {
		t.Fatal("Activate issued no request")
	}
	snap := c.Snapshot()
	if !snap.Loading() || snap.UnfinishedTasks != 1 {
		t.Fatalf("UnfinishedTasks = %d, want 1 before resolution", snap.UnfinishedTasks)
	}
	if snap.Title != "Books" {
		t.Fatalf("Title = %q, want Books", snap.Title)
	}

	c.Apply(c.Fetch(context.Background(), req))

	snap = c.Snapshot()
	if snap.Loading() {
		t.Fatal("still loading after Apply")
	}
	if snap.TotalItemsCount != 3 || len(snap.Items) != 3 {
		t.Fatalf("snapshot = %d items of %d, want 3 of 3", len(snap.Items), snap.TotalItemsCount)
	}
}

func TestSearchController_ObserveOnlyOnChange(t *testing.T) {
	f := newFakeFetcher()
	c := NewSearchController(f, LatestIssued)
	m := params.Mapping{params.KeyPage: "1"}

	if _, ok := c.Activate(m); !ok {
		t.Fatal("Activate issued no request")
	}
	if _, ok := c.Observe(params.Mapping{params.KeyPage: "1"}); ok {
		t.Fatal("Observe issued a request for an identical mapping")
	}
	if _, ok := c.Observe(params.Mapping{params.KeyPage: "2"}); !ok {
		t.Fatal("Observe ignored a changed value")
	}
	if _, ok := c.Observe(params.Mapping{}); !ok {
		t.Fatal("Observe ignored a removed key")
	}
	if got := c.Snapshot().UnfinishedTasks; got != 3 {
		t.Fatalf("UnfinishedTasks = %d, want 3", got)
	}
}

func TestSearchController_DiscardsStaleResponses(t *testing.T) {
	f := newFakeFetcher()
	c := NewSearchController(f, LatestIssued)

	first, _ := c.Activate(params.Mapping{params.KeyCategory: "Books"})
	second, _ := c.Observe(params.Mapping{params.KeyCategory: "Computers"})
	if second.Version <= first.Version {
		t.Fatalf("versions not increasing: %d then %d", first.Version, second.Version)
	}

	firstResp := c.Fetch(context.Background(), first)
	secondResp := c.Fetch(context.Background(), second)

	c.Apply(secondResp)
	c.Apply(firstResp)

	snap := c.Snapshot()
	if snap.Loading() {
		t.Fatalf("UnfinishedTasks = %d after both resolved", snap.UnfinishedTasks)
	}
	if snap.TotalItemsCount != 4 || snap.Items[0].Category != "Computers" {
		t.Fatalf("shown result = %d %v, want the newer Computers listing", snap.TotalItemsCount, snap.Items)
	}
}

func TestSearchController_LatestResolvedKeepsArrivalOrder(t *testing.T) {
	f := newFakeFetcher()
	c := NewSearchController(f, LatestResolved)

	first, _ := c.Activate(params.Mapping{params.KeyCategory: "Books"})
	second, _ := c.Observe(params.Mapping{params.KeyCategory: "Computers"})
	firstResp := c.Fetch(context.Background(), first)
	secondResp := c.Fetch(context.Background(), second)

	c.Apply(secondResp)
	c.Apply(firstResp)

	snap := c.Snapshot()
	if snap.Loading() {
		t.Fatal("still loading after both resolved")
	}
	if snap.Items[0].Category != "Books" {
		t.Fatalf("LatestResolved should show whichever resolved last; got %v", snap.Items[0].Category)
	}
}

func TestSearchController_FailureSettlesAndSurfacesError(t *testing.T) {
	f := newFakeFetcher()
	c := NewSearchController(f, LatestIssued)

	req, _ := c.Activate(params.Mapping{})
	c.Apply(c.Fetch(context.Background(), req))

	f.failSearch = errors.New("backend down")
	req, _ = c.Observe(params.Mapping{params.KeyPage: "2"})
	c.Apply(c.Fetch(context.Background(), req))

	snap := c.Snapshot()
	if snap.Loading() {
		t.Fatal("failed fetch left the view loading")
	}
	if snap.LastError == nil {
		t.Fatal("failure not surfaced")
	}
	if snap.TotalItemsCount != 18 {
		t.Fatalf("previous result lost on failure: total %d", snap.TotalItemsCount)
	}
}

func TestSearchController_InvalidParamsDoNotFetch(t *testing.T) {
	f := newFakeFetcher()
	c := NewSearchController(f, LatestIssued)

	if _, ok := c.Activate(params.Mapping{params.KeyItemsPerPage: "lots"}); ok {
		t.Fatal("Activate issued a request for invalid parameters")
	}
	snap := c.Snapshot()
	if snap.Loading() || !errors.Is(snap.LastError, params.ErrInvalidArgument) {
		t.Fatalf("snapshot = loading:%v err:%v, want idle with ErrInvalidArgument", snap.Loading(), snap.LastError)
	}
	if f.searchCount() != 0 {
		t.Fatalf("fetcher called %d times", f.searchCount())
	}
}

func TestDetailController_LoadsItemAndRelated(t *testing.T) {
	f := newFakeFetcher()
	c := NewDetailController(f)

	req, ok := c.Activate(context.Background(), params.Mapping{params.KeyID: "1"})
	if !ok {
		t.Fatal("Activate issued no request")
	}
	if !c.Snapshot().Loading() {
		t.Fatal("not loading before resolution")
	}
	c.Apply(c.Fetch(context.Background(), req))

	snap := c.Snapshot()
	if snap.Loading() {
		t.Fatal("still loading after Apply")
	}
	if snap.Item == nil || snap.Item.ID != "1" {
		t.Fatalf("Item = %#v, want id 1", snap.Item)
	}
	if len(snap.RelatedItems) != RelatedLimit {
		t.Fatalf("related = %d items, want %d", len(snap.RelatedItems), RelatedLimit)
	}
	for _, it := range snap.RelatedItems {
		if it.ID == "1" {
			t.Fatal("related items include the item itself")
		}
		if it.Category != "Clothing and Shoes" {
			t.Fatalf("related item %s from category %q", it.ID, it.Category)
		}
	}
	// Listing order is price low-to-high: 19.50, 35.00, 45.00 once item 1 is excluded.
	if snap.RelatedItems[0].ID != "2" || snap.RelatedItems[1].ID != "4" || snap.RelatedItems[2].ID != "5" {
		t.Fatalf("related order = %s %s %s", snap.RelatedItems[0].ID, snap.RelatedItems[1].ID, snap.RelatedItems[2].ID)
	}
}

func TestDetailController_TeardownSuppressesMutation(t *testing.T) {
	f := newFakeFetcher()
	c := NewDetailController(f)

	req, _ := c.Activate(context.Background(), params.Mapping{params.KeyID: "6"})
	c.Deactivate()
	if c.Active() {
		t.Fatal("Active after Deactivate")
	}

	c.Apply(c.Fetch(context.Background(), req))

	snap := c.Snapshot()
	if snap.Item != nil || snap.RelatedItems != nil || snap.LastError != nil {
		t.Fatalf("state mutated after teardown: %#v", snap)
	}
	if snap.Loading() {
		t.Fatal("in-flight count not settled after teardown")
	}
}

func TestDetailController_TeardownMidSequenceSkipsRelatedFetch(t *testing.T) {
	f := newFakeFetcher()
	c := NewDetailController(f)
	f.getHook = func(string) { c.Deactivate() }

	req, _ := c.Activate(context.Background(), params.Mapping{params.KeyID: "6"})
	c.Apply(c.Fetch(context.Background(), req))

	if n := f.searchCount(); n != 0 {
		t.Fatalf("related fetch issued %d times after teardown", n)
	}
	if snap := c.Snapshot(); snap.Item != nil || snap.Loading() {
		t.Fatalf("snapshot = %#v, want untouched and idle", snap)
	}
}

func TestDetailController_ObserveReactsToIDOnly(t *testing.T) {
	f := newFakeFetcher()
	c := NewDetailController(f)
	c.Activate(context.Background(), params.Mapping{params.KeyID: "1"})

	if _, ok := c.Observe(params.Mapping{params.KeyID: "1", "tab": "reviews"}); ok {
		t.Fatal("Observe refetched for a non-id change")
	}
	req, ok := c.Observe(params.Mapping{params.KeyID: "9"})
	if !ok || req.ID != "9" {
		t.Fatalf("Observe = %+v, %v; want a request for id 9", req, ok)
	}

	c.Deactivate()
	if _, ok := c.Observe(params.Mapping{params.KeyID: "10"}); ok {
		t.Fatal("Observe issued a request after teardown")
	}
}

func TestDetailController_StaleSequenceIgnored(t *testing.T) {
	f := newFakeFetcher()
	c := NewDetailController(f)

	first, _ := c.Activate(context.Background(), params.Mapping{params.KeyID: "1"})
	second, _ := c.Observe(params.Mapping{params.KeyID: "9"})
	firstResp := c.Fetch(context.Background(), first)
	secondResp := c.Fetch(context.Background(), second)

	c.Apply(secondResp)
	c.Apply(firstResp)

	snap := c.Snapshot()
	if snap.Item == nil || snap.Item.ID != "9" || snap.Loading() {
		t.Fatalf("snapshot item = %#v loading=%v, want id 9 idle", snap.Item, snap.Loading())
	}
}

func TestDetailController_FailureSettles(t *testing.T) {
	f := newFakeFetcher()
	c := NewDetailController(f)

	req, _ := c.Activate(context.Background(), params.Mapping{params.KeyID: "missing"})
	c.Apply(c.Fetch(context.Background(), req))

	snap := c.Snapshot()
	if snap.Loading() {
		t.Fatal("failed sequence left the view loading")
	}
	if !errors.Is(snap.LastError, catalog.ErrNotFound) {
		t.Fatalf("LastError = %v, want ErrNotFound", snap.LastError)
	}
}

// drain runs every pending fetch synchronously.
func drain(ctx context.Context, s *Session, p Pending) {
	if p.Search != nil {
		s.Search.Apply(s.Search.Fetch(ctx, *p.Search))
	}
	if p.Detail != nil {
		s.Detail.Apply(s.Detail.Fetch(ctx, *p.Detail))
	}
}

func TestSession_OneFetchPerDistinctChange(t *testing.T) {
	ctx := context.Background()
	f := newFakeFetcher()
	h := nav.NewHistory(nav.Parse("/search?page=1"))
	store := params.NewStore(h)
	s := NewSession(ctx, f, LatestIssued)

	drain(ctx, s, s.Sync(h.Location()))
	if f.searchCount() != 1 {
		t.Fatalf("activation fetches = %d, want 1", f.searchCount())
	}

	store.Update(params.Mapping{params.KeyPage: "1"})
	if p := s.Sync(h.Location()); !p.Empty() {
		t.Fatalf("identical update issued %+v", p)
	}

	store.Update(params.Mapping{params.KeySortValue: "hl"})
	p := s.Sync(h.Location())
	if p.Search == nil || p.Search.Query.Sort != params.SortHighToLow {
		t.Fatalf("sort change issued %+v", p)
	}
	drain(ctx, s, p)

	if p := s.Sync(h.Location()); !p.Empty() {
		t.Fatalf("re-sync without a change issued %+v", p)
	}
	if f.searchCount() != 2 {
		t.Fatalf("fetches = %d, want 2", f.searchCount())
	}
}

func TestSession_PriceToggleResetsPage(t *testing.T) {
	ctx := context.Background()
	f := newFakeFetcher()
	h := nav.NewHistory(nav.Parse("/search?page=2&usePriceFilter=false"))
	store := params.NewStore(h)
	s := NewSession(ctx, f, LatestIssued)
	drain(ctx, s, s.Sync(h.Location()))
	before := f.searchCount()

	store.Update(params.WithFirstPage(params.Mapping{params.KeyUsePriceFilter: "true"}))
	p := s.Sync(h.Location())
	drain(ctx, s, p)

	if got := store.Read()[params.KeyPage]; got != "1" {
		t.Fatalf("page = %q, want 1", got)
	}
	if f.searchCount()-before != 1 {
		t.Fatalf("fetches after toggle = %d, want 1", f.searchCount()-before)
	}
	last := f.searches[len(f.searches)-1]
	if !last.UsePriceFilter || last.Page != 1 || last.HasCategory {
		t.Fatalf("fetch query = %+v, want usePriceFilter on page 1 without category", last)
	}
	if got := last.Mapping()[params.KeyUsePriceFilter]; got != "true" {
		t.Fatalf("wire usePriceFilter = %q, want true", got)
	}
}

func TestSession_PaginationScenario(t *testing.T) {
	ctx := context.Background()
	f := newFakeFetcher()
	f.searchHook = func(q params.Query) (catalog.SearchResult, error) {
		return catalog.SearchResult{Data: make([]catalog.Item, 10), TotalLength: 25}, nil
	}
	h := nav.NewHistory(nav.Parse("/search?category=shoes&page=2&itemsPerPage=10"))
	s := NewSession(ctx, f, LatestIssued)
	drain(ctx, s, s.Sync(h.Location()))

	snap := s.Search.Snapshot()
	q, err := params.ParseQuery(snap.Params)
	if err != nil {
		t.Fatalf("ParseQuery returned error: %v", err)
	}
	controls, err := paging.FromQuery(q, snap.TotalItemsCount)
	if err != nil {
		t.Fatalf("FromQuery returned error: %v", err)
	}
	if controls.TotalPages != 3 {
		t.Fatalf("TotalPages = %d, want 3", controls.TotalPages)
	}
	if !controls.NextEnabled() || !controls.LastEnabled() || !controls.PrevEnabled() || !controls.FirstEnabled() {
		t.Fatalf("controls = %+v, want all enabled", controls)
	}
}

func TestSession_DetailRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFakeFetcher()
	h := nav.NewHistory(nav.Parse("/search?category=Books"))
	s := NewSession(ctx, f, LatestIssued)
	drain(ctx, s, s.Sync(h.Location()))

	h.Navigate(nav.Location{Path: nav.PathDetails, Token: params.Encode(params.Mapping{params.KeyID: "9"})})
	p := s.Sync(h.Location())
	if p.Detail == nil || p.Search != nil {
		t.Fatalf("entering details issued %+v", p)
	}
	drain(ctx, s, p)
	if it := s.Detail.Snapshot().Item; it == nil || it.ID != "9" {
		t.Fatalf("detail item = %#v", it)
	}

	h.Navigate(nav.Location{Path: nav.PathDetails, Token: params.Encode(params.Mapping{params.KeyID: "10"})})
	p = s.Sync(h.Location())
	if p.Detail == nil || p.Detail.ID != "10" {
		t.Fatalf("id change issued %+v", p)
	}
	pendingDetail := *p.Detail

	h.Back()
	h.Back()
	p = s.Sync(h.Location())
	if p.Search == nil {
		t.Fatalf("returning to search did not refetch: %+v", p)
	}
	if s.Detail.Active() {
		t.Fatal("detail scope still open after leaving the view")
	}

	s.Detail.Apply(s.Detail.Fetch(ctx, pendingDetail))
	if it := s.Detail.Snapshot().Item; it == nil || it.ID != "9" {
		t.Fatalf("late detail result applied after teardown: %#v", it)
	}
}

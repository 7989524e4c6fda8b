package catalog

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/five82/storefront/internal/params"
)

func mustQuery(t *testing.T, m params.Mapping) params.Query {
	t.Helper()
	q, err := params.ParseQuery(m)
	if err != nil {
		t.Fatalf("ParseQuery(%v) returned error: %v", m, err)
	}
	return q
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestMemory_GetItem(t *testing.T) {
	m := NewMemory(SampleItems(), 0)
	it, err := m.GetItem(context.Background(), "9")
	if err != nil {
		t.Fatalf("GetItem returned error: %v", err)
	}
	if it.Category != "Books" {
		t.Fatalf("GetItem(9).Category = %q, want Books", it.Category)
	}
	if _, err := m.GetItem(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetItem(nope) error = %v, want ErrNotFound", err)
	}
}

func TestMemory_SearchFiltersSortsAndPages(t *testing.T) {
	m := NewMemory(SampleItems(), 0)
	ctx := context.Background()

	res, err := m.SearchItems(ctx, mustQuery(t, params.Mapping{params.KeyCategory: "books"}))
	if err != nil {
		t.Fatalf("SearchItems returned error: %v", err)
	}
	if res.TotalLength != 3 {
		t.Fatalf("Books total = %d, want 3", res.TotalLength)
	}
	if got := ids(res.Data); got[0] != "11" || got[2] != "10" {
		t.Fatalf("Books low-to-high order = %v", got)
	}

	res, _ = m.SearchItems(ctx, mustQuery(t, params.Mapping{params.KeyCategory: "Books", params.KeySortValue: "hl"}))
	if got := ids(res.Data); got[0] != "10" || got[2] != "11" {
		t.Fatalf("Books high-to-low order = %v", got)
	}

	res, _ = m.SearchItems(ctx, mustQuery(t, params.Mapping{
		params.KeyUsePriceFilter: "true",
		params.KeyMinPrice:       "40",
		params.KeyMaxPrice:       "80",
	}))
	if got := ids(res.Data); res.TotalLength != 5 || len(got) != 5 || got[0] != "10" || got[4] != "18" {
		t.Fatalf("price filtered = %v of %d, want 5 items from 10 to 18", got, res.TotalLength)
	}

	res, _ = m.SearchItems(ctx, mustQuery(t, params.Mapping{params.KeyPage: "2", params.KeyItemsPerPage: "10"}))
	if res.TotalLength != 18 || len(res.Data) != 8 {
		t.Fatalf("page 2 = %d items of %d, want 8 of 18", len(res.Data), res.TotalLength)
	}

	res, _ = m.SearchItems(ctx, mustQuery(t, params.Mapping{params.KeyPage: "9"}))
	if res.TotalLength != 18 || len(res.Data) != 0 || res.Data == nil {
		t.Fatalf("page past end = %#v, want empty non-nil page", res)
	}
}

func TestMemory_SearchHugePageIsEmpty(t *testing.T) {
	m := NewMemory(SampleItems(), 0)
	for _, page := range []int{params.MaxPage, math.MaxInt} {
		q := mustQuery(t, params.Mapping{params.KeyItemsPerPage: "10"})
		q.Page = page
		res, err := m.SearchItems(context.Background(), q)
		if err != nil {
			t.Fatalf("SearchItems(page %d) returned error: %v", page, err)
		}
		if res.TotalLength != 18 || len(res.Data) != 0 || res.Data == nil {
			t.Fatalf("SearchItems(page %d) = %#v, want empty non-nil page of 18", page, res)
		}
	}
}

func TestMemory_LatencyHonoursContext(t *testing.T) {
	m := NewMemory(SampleItems(), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.GetItem(ctx, "1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("GetItem error = %v, want context.Canceled", err)
	}
}

func TestMemory_ReturnsCopies(t *testing.T) {
	m := NewMemory(SampleItems(), 0)
	it, _ := m.GetItem(context.Background(), "1")
	it.ImageURLs[0] = "changed"
	again, _ := m.GetItem(context.Background(), "1")
	if again.ImageURLs[0] == "changed" {
		t.Fatalf("GetItem shares image slice with the catalog")
	}
}

func TestMemory_Categories(t *testing.T) {
	cats, err := NewMemory(SampleItems(), 0).Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories returned error: %v", err)
	}
	want := []string{"Clothing and Shoes", "Jewelry and Watches", "Books", "Computers", "Sports and Outdoors"}
	if len(cats) != len(want) {
		t.Fatalf("Categories = %v, want %v", cats, want)
	}
	for i := range want {
		if cats[i] != want[i] {
			t.Fatalf("Categories = %v, want %v", cats, want)
		}
	}
}

func TestParseSeed(t *testing.T) {
	items, err := ParseSeed([]byte(`
[[items]]
id = "a"
name = "Alpha"
category = "Tools"
price = "10.25"
image_urls = ["a.jpg"]
popular = true

[[items]]
id = "b"
name = "Beta"
category = "Tools"
price = "3"
`))
	if err != nil {
		t.Fatalf("ParseSeed returned error: %v", err)
	}
	if len(items) != 2 || items[0].Price.String() != "10.25" || !items[0].Popular || items[1].ID != "b" {
		t.Fatalf("ParseSeed = %#v", items)
	}

	if _, err := ParseSeed([]byte("[[items]]\nname = \"x\"\nprice = \"1\"\n")); err == nil {
		t.Fatalf("ParseSeed accepted item without id")
	}
	if _, err := ParseSeed([]byte("[[items]]\nid = \"x\"\nprice = \"cheap\"\n")); err == nil {
		t.Fatalf("ParseSeed accepted bad price")
	}
	if _, err := ParseSeed([]byte("items = [")); err == nil {
		t.Fatalf("ParseSeed accepted invalid TOML")
	}
}

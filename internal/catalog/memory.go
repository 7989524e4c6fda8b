package catalog

import (
	"cmp"
	"context"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-faster/errors"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"

	"github.com/five82/storefront/internal/params"
)

var (
	_ Fetcher        = (*Memory)(nil)
	_ CategoryLister = (*Memory)(nil)
)

// Memory is an in-process catalog. Latency, when set, delays every call to
// mimic a remote backend.
type Memory struct {
	mu      sync.RWMutex
	items   []Item
	latency time.Duration
}

// NewMemory builds a catalog over a copy of items.
func NewMemory(items []Item, latency time.Duration) *Memory {
	return &Memory{items: slices.Clone(items), latency: latency}
}

// GetItem returns the item with the given id or ErrNotFound.
func (m *Memory) GetItem(ctx context.Context, id string) (Item, error) {
	if err := m.wait(ctx); err != nil {
		return Item{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, it := range m.items {
		if it.ID == id {
			return cloneItem(it), nil
		}
	}
	return Item{}, errors.Wrapf(ErrNotFound, "id %q", id)
}

// SearchItems filters by category and, when enabled, by inclusive price range,
// sorts by price, and returns the requested page.
func (m *Memory) SearchItems(ctx context.Context, q params.Query) (SearchResult, error) {
	if err := m.wait(ctx); err != nil {
		return SearchResult{}, err
	}
	m.mu.RLock()
	matched := make([]Item, 0, len(m.items))
	for _, it := range m.items {
		if q.HasCategory && !strings.EqualFold(it.Category, q.Category) {
			continue
		}
		if q.UsePriceFilter && (it.Price.LessThan(q.MinPrice) || it.Price.GreaterThan(q.MaxPrice)) {
			continue
		}
		matched = append(matched, it)
	}
	m.mu.RUnlock()

	slices.SortStableFunc(matched, func(a, b Item) int {
		c := a.Price.Cmp(b.Price)
		if q.Sort == params.SortHighToLow {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	perPage := max(q.ItemsPerPage, 1)
	page := []Item{}
	if skip := max(q.Page, 1) - 1; skip <= len(matched)/perPage {
		start := skip * perPage
		end := min(start+perPage, len(matched))
		for _, it := range matched[start:end] {
			page = append(page, cloneItem(it))
		}
	}
	return SearchResult{Data: page, TotalLength: len(matched)}, nil
}

// Categories lists distinct categories in first-seen order.
func (m *Memory) Categories(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []string
	for _, it := range m.items {
		if it.Category != "" && !slices.Contains(out, it.Category) {
			out = append(out, it.Category)
		}
	}
	return out, nil
}

func (m *Memory) wait(ctx context.Context) error {
	if m.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(m.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func cloneItem(it Item) Item {
	it.ImageURLs = slices.Clone(it.ImageURLs)
	return it
}

// seedFile is the TOML layout accepted by LoadSeed.
type seedFile struct {
	Items []struct {
		ID          string   `toml:"id"`
		Name        string   `toml:"name"`
		Category    string   `toml:"category"`
		Price       string   `toml:"price"`
		ImageURLs   []string `toml:"image_urls"`
		Popular     bool     `toml:"popular"`
		Description string   `toml:"description"`
	} `toml:"items"`
}

// LoadSeed reads items from a TOML file of [[items]] tables. Prices are
// decimal strings.
func LoadSeed(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read seed")
	}
	return ParseSeed(data)
}

// ParseSeed decodes seed TOML.
func ParseSeed(data []byte) ([]Item, error) {
	var raw seedFile
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "parse seed")
	}
	items := make([]Item, 0, len(raw.Items))
	for _, r := range raw.Items {
		if strings.TrimSpace(r.ID) == "" {
			return nil, errors.Errorf("seed item %q has no id", r.Name)
		}
		price, err := decimal.NewFromString(strings.TrimSpace(r.Price))
		if err != nil {
			return nil, errors.Wrapf(err, "seed item %s price", r.ID)
		}
		items = append(items, Item{
			ID:          r.ID,
			Name:        r.Name,
			Category:    r.Category,
			Price:       price,
			ImageURLs:   r.ImageURLs,
			Popular:     r.Popular,
			Description: r.Description,
		})
	}
	return items, nil
}

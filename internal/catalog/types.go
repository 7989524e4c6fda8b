package catalog

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/five82/storefront/internal/params"
)

// ErrNotFound is returned when a requested item does not exist.
var ErrNotFound = errors.New("item not found")

// Item is a catalog product in transport-friendly form.
type Item struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	ImageURLs   []string        `json:"imageUrls"`
	Popular     bool            `json:"popular"`
	Description string          `json:"description"`
}

// SearchResult is one page of matching items plus the total match count.
type SearchResult struct {
	Data        []Item `json:"data"`
	TotalLength int    `json:"totalLength"`
}

// Fetcher is the data-access contract the view controllers consume.
type Fetcher interface {
	GetItem(ctx context.Context, id string) (Item, error)
	SearchItems(ctx context.Context, q params.Query) (SearchResult, error)
}

// CategoryLister is implemented by fetchers that can enumerate categories.
type CategoryLister interface {
	Categories(ctx context.Context) ([]string, error)
}

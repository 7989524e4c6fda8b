package params

import (
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// SortOrder is the wire value of the sortValue key.
type SortOrder string

const (
	SortLowToHigh SortOrder = "lh"
	SortHighToLow SortOrder = "hl"
)

// Label returns the human-readable sort description.
func (s SortOrder) Label() string {
	if s == SortHighToLow {
		return "price: high to low"
	}
	return "price: low to high"
}

// Toggle returns the opposite order.
func (s SortOrder) Toggle() SortOrder {
	if s == SortHighToLow {
		return SortLowToHigh
	}
	return SortHighToLow
}

const (
	DefaultMinPrice     = "0"
	DefaultMaxPrice     = "1000"
	DefaultPage         = 1
	DefaultItemsPerPage = 10
	MaxItemsPerPage     = 100
	// MaxPage keeps (page-1)*itemsPerPage well inside int range.
	MaxPage = 1_000_000
)

// Titles shown above the listing.
const (
	TitleBrowsing      = "Popular products"
	TitleSearchResults = "Search results"
)

// Query is the typed view of a Mapping. It is recomputed from the mapping on
// every evaluation and never edited in place.
type Query struct {
	Category       string
	HasCategory    bool
	MinPrice       decimal.Decimal
	MaxPrice       decimal.Decimal
	UsePriceFilter bool
	Sort           SortOrder
	Page           int
	ItemsPerPage   int
}

// ParseQuery derives a Query from m, applying defaults for absent keys.
// Values that are present but malformed fail with ErrInvalidArgument.
func ParseQuery(m Mapping) (Query, error) {
	q := Query{Sort: SortLowToHigh, Page: DefaultPage, ItemsPerPage: DefaultItemsPerPage}
	q.Category, q.HasCategory = m.Lookup(KeyCategory)

	var err error
	if q.MinPrice, err = parsePrice(KeyMinPrice, m, DefaultMinPrice); err != nil {
		return Query{}, err
	}
	if q.MaxPrice, err = parsePrice(KeyMaxPrice, m, DefaultMaxPrice); err != nil {
		return Query{}, err
	}

	switch v := m.Get(KeyUsePriceFilter, "false"); v {
	case "true":
		q.UsePriceFilter = true
	case "false", "":
	default:
		return Query{}, errors.Wrapf(ErrInvalidArgument, "%s %q", KeyUsePriceFilter, v)
	}
	if q.UsePriceFilter && q.MinPrice.GreaterThan(q.MaxPrice) {
		return Query{}, errors.Wrapf(ErrInvalidArgument, "price range %s-%s", q.MinPrice, q.MaxPrice)
	}

	if v, ok := m.Lookup(KeySortValue); ok && v != "" {
		switch SortOrder(v) {
		case SortLowToHigh, SortHighToLow:
			q.Sort = SortOrder(v)
		default:
			return Query{}, errors.Wrapf(ErrInvalidArgument, "%s %q", KeySortValue, v)
		}
	}

	if q.Page, err = parseBounded(KeyPage, m, DefaultPage, 1, MaxPage); err != nil {
		return Query{}, err
	}
	if q.ItemsPerPage, err = parseBounded(KeyItemsPerPage, m, DefaultItemsPerPage, 1, MaxItemsPerPage); err != nil {
		return Query{}, err
	}
	return q, nil
}

// Mapping renders the query in the shape the fetch collaborator expects.
func (q Query) Mapping() Mapping {
	out := Mapping{
		KeyMinPrice:       q.MinPrice.String(),
		KeyMaxPrice:       q.MaxPrice.String(),
		KeyUsePriceFilter: strconv.FormatBool(q.UsePriceFilter),
		KeySortValue:      string(q.Sort),
		KeyPage:           strconv.Itoa(q.Page),
		KeyItemsPerPage:   strconv.Itoa(q.ItemsPerPage),
	}
	if q.HasCategory {
		out[KeyCategory] = q.Category
	}
	return out
}

// Title picks the listing heading: the browsing label without a category,
// the category itself when it was chosen directly, search results otherwise.
func Title(m Mapping) string {
	category, ok := m.Lookup(KeyCategory)
	switch {
	case !ok:
		return TitleBrowsing
	case m.Get(KeyDirectClick, "") == "true":
		return category
	default:
		return TitleSearchResults
	}
}

func parsePrice(key string, m Mapping, fallback string) (decimal.Decimal, error) {
	raw := m.Get(key, "")
	if strings.TrimSpace(raw) == "" {
		raw = fallback
	}
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, errors.Wrapf(ErrInvalidArgument, "%s %q", key, raw)
	}
	if d.IsNegative() {
		return decimal.Zero, errors.Wrapf(ErrInvalidArgument, "%s %q is negative", key, raw)
	}
	return d, nil
}

// parseBounded reads an integer key; hi <= 0 means no upper bound.
func parseBounded(key string, m Mapping, fallback, lo, hi int) (int, error) {
	raw, ok := m.Lookup(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < lo || (hi > 0 && n > hi) {
		return 0, errors.Wrapf(ErrInvalidArgument, "%s %q", key, raw)
	}
	return n, nil
}

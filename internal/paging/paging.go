// Package paging turns a result count and page size into page navigation
// controls whose actions are parameter updates.
package paging

import (
	"fmt"
	"strconv"

	"github.com/go-faster/errors"

	"github.com/five82/storefront/internal/params"
)

// TotalPages returns ceil(total / perPage). perPage must be at least 1 and
// total must not be negative.
func TotalPages(total, perPage int) (int, error) {
	if perPage < 1 {
		return 0, errors.Wrapf(params.ErrInvalidArgument, "items per page %d", perPage)
	}
	if total < 0 {
		return 0, errors.Wrapf(params.ErrInvalidArgument, "total count %d", total)
	}
	return (total + perPage - 1) / perPage, nil
}

// Controls is the state of the first/previous/next/last buttons.
type Controls struct {
	Page       int
	TotalPages int
}

// New computes controls for the given page.
func New(page, total, perPage int) (Controls, error) {
	if page < 1 {
		return Controls{}, errors.Wrapf(params.ErrInvalidArgument, "page %d", page)
	}
	pages, err := TotalPages(total, perPage)
	if err != nil {
		return Controls{}, err
	}
	return Controls{Page: page, TotalPages: pages}, nil
}

// FromQuery computes controls for a derived query and a fetched total.
func FromQuery(q params.Query, total int) (Controls, error) {
	return New(q.Page, total, q.ItemsPerPage)
}

func (c Controls) FirstEnabled() bool { return c.Page > 1 }
func (c Controls) PrevEnabled() bool  { return c.Page > 1 }
func (c Controls) NextEnabled() bool  { return c.Page < c.TotalPages }
func (c Controls) LastEnabled() bool  { return c.Page < c.TotalPages }

// First returns the update moving to page 1.
func (c Controls) First() params.Mapping { return pageUpdate(1) }

// Prev returns the update moving one page back.
func (c Controls) Prev() params.Mapping { return pageUpdate(c.Page - 1) }

// Next returns the update moving one page forward.
func (c Controls) Next() params.Mapping { return pageUpdate(c.Page + 1) }

// Last returns the update moving to the final page.
func (c Controls) Last() params.Mapping { return pageUpdate(c.TotalPages) }

// Label renders "Page X of Y".
func (c Controls) Label() string {
	return fmt.Sprintf("Page %d of %d", c.Page, c.TotalPages)
}

func pageUpdate(page int) params.Mapping {
	return params.Mapping{params.KeyPage: strconv.Itoa(page)}
}

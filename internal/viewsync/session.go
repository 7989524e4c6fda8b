// Package viewsync drives the listing and detail views from the parameter
// mapping in the current location.
//
// Controllers split every fetch into three steps so that only one goroutine
// ever mutates view state:
//
//	req, ok := ctrl.Observe(m)      // decide; count the task
//	resp := ctrl.Fetch(ctx, req)    // I/O only, any goroutine
//	ctrl.Apply(resp)                // settle; back on the owning loop
//
// Session routes locations to the right controller and handles activation
// and teardown when the view path changes.
package viewsync

import (
	"context"

	"github.com/five82/storefront/internal/catalog"
	"github.com/five82/storefront/internal/nav"
	"github.com/five82/storefront/internal/params"
)

// Pending lists the fetches a Sync call issued. Nil entries issued nothing.
type Pending struct {
	Search *SearchRequest
	Detail *DetailRequest
}

// Empty reports whether nothing was issued.
func (p Pending) Empty() bool {
	return p.Search == nil && p.Detail == nil
}

// Session owns one controller per view and tracks which view is active.
type Session struct {
	Search *SearchController
	Detail *DetailController

	ctx  context.Context
	view string
}

// NewSession builds a session. ctx bounds every detail activation scope.
func NewSession(ctx context.Context, fetcher catalog.Fetcher, order ResolutionOrder) *Session {
	return &Session{
		Search: NewSearchController(fetcher, order),
		Detail: NewDetailController(fetcher),
		ctx:    ctx,
	}
}

// View returns the active view path, or "" before the first Sync.
func (s *Session) View() string {
	return s.view
}

// Sync brings the controllers in line with loc. Entering a view activates
// it; staying on a view only reacts to parameter changes. Leaving the detail
// view closes its scope.
func (s *Session) Sync(loc nav.Location) Pending {
	m := params.Decode(loc.Token)
	entering := loc.Path != s.view
	s.view = loc.Path

	var p Pending
	switch loc.Path {
	case nav.PathDetails:
		var req DetailRequest
		var ok bool
		if entering {
			req, ok = s.Detail.Activate(s.ctx, m)
		} else {
			req, ok = s.Detail.Observe(m)
		}
		if ok {
			p.Detail = &req
		}
	default:
		if entering {
			s.Detail.Deactivate()
		}
		var req SearchRequest
		var ok bool
		if entering {
			req, ok = s.Search.Activate(m)
		} else {
			req, ok = s.Search.Observe(m)
		}
		if ok {
			p.Search = &req
		}
	}
	return p
}

// Close deactivates the detail view.
func (s *Session) Close() {
	s.Detail.Deactivate()
}

// Package state holds the displayed data for the storefront views.
//
// # Overview
//
// Each view owns one store: SearchStore for the product listing and
// DetailStore for a single product with its related items. A store is the
// only place fetched data lives once it has been accepted; controllers in
// viewsync decide whether a result is accepted, the UI only reads snapshots.
//
// # Core Types
//
// SearchStore / SearchSnapshot:
//   - Items and TotalItemsCount from the last accepted listing fetch
//   - UnfinishedTasks, the in-flight fetch count that drives the spinner
//   - Title and Params, the parameter mapping currently on screen
//   - LastError and ConsecutiveFailures for the error banner
//
// DetailStore / DetailSnapshot:
//   - Item and RelatedItems from the last accepted fetch sequence
//   - UnfinishedTasks, LastError, ConsecutiveFailures as above
//
// # Task Accounting
//
// Every fetch is bracketed by BeginTask and EndTask. EndTask always
// decrements the counter, on success, on failure, and when the caller asks
// for the result to be dropped, so a failed or discarded fetch can never
// leave a view stuck in its loading state.
//
//	store.BeginTask()                 // UnfinishedTasks++
//	res, err := fetch()
//	store.EndTask(res, err, apply)    // UnfinishedTasks--
//	  apply=false → nothing else changes
//	  err != nil  → LastError = err, previous items kept
//	  otherwise   → items replaced, LastError cleared
//
// # Concurrency Model
//
// Stores use sync.RWMutex and hand out copies from Snapshot, the same
// producer/consumer split as a poller feeding a UI: fetch goroutines settle
// tasks, the render loop reads snapshots. The lock is never held across
// network I/O.
//
// # Testing Considerations
//
// Zero values are ready to use:
//
//	var s state.SearchStore
//	s.BeginTask()
package state

// Package ui provides the storefront terminal interface.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model owns the widgets and view state and
// reaches the catalog only through a viewsync.Session. Every catalog fetch
// runs as a tea.Cmd and comes back as a message, so snapshots are only ever
// mutated from Update.
//
// # Navigation
//
// The current view and its parameters live in a nav.History. Key handlers
// never touch the controllers directly; they write to the history, either by
// merging into the current parameters through params.Store or by navigating
// to a fresh location (opening an item, picking a header category). A
// subscription on the history delivers locationMsg, and the model then calls
// Session.Sync and dispatches whatever fetches it issued.
//
// # Package Structure
//
//   - app.go: Model, Options, message types, commands and Run
//   - input.go: key handling and the location helpers it uses
//   - search.go: listing view with filters and pagination
//   - detail.go: item view with description, quantity and related items
//   - header.go: header, footer and error banner
//   - modal.go: modal interface and the price range dialog
//   - help.go: help overlay
//   - keys.go: key bindings and their bubbles/help adapters
//   - theme.go: color palettes and Lipgloss styles
//
// # Loading and Errors
//
// A spinner shows while a view has fetches outstanding. The listing hides its
// result count and page controls until every fetch has settled. Failures keep
// the last good data on screen and raise a banner; after repeated listing
// failures the banner reports the catalog as unreachable.
//
// # Themes
//
// Themes cycle with T. The active theme is returned from Run so the caller
// can persist it with the last listing location.
package ui

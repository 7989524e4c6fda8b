// Package app wires the storefront TUI together.
//
// # Overview
//
// Run is the composition root: it loads configuration and preferences, picks
// a catalog backend, decides where the session starts and hands everything to
// the ui package. When the UI exits it writes the active theme and the last
// listing location back to the preferences file.
//
// # Startup Sequence
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()     Read storefront config and env overrides
//	       ├─────> openLog()         Redirect the standard logger to a file
//	       ├─────> prefs.Load()      Theme and last listing
//	       ├─────> NewBackend()      In-memory catalog or HTTP client
//	       ├─────> loadCategories()  Unless the config lists them
//	       ├─────> StartLocation()   Flag, then saved listing, then /search
//	       ├─────> ui.Run()          Start TUI (blocks)
//	       └─────> prefs.Save()      Persist theme and last listing
//
// # Backends
//
//   - memory: catalog.Memory over the built-in sample items, or over the
//     seed_file when one is configured. latency_ms delays every call.
//   - http: catalog.Client against a catalogd instance at api_bind.
//
// # Error Handling
//
// Configuration errors, an unusable log file and backend construction
// failures are returned from Run. A failed category listing is logged and the
// header simply offers no categories. Fetch failures during the session are
// shown in the UI and never end it.
package app

// Package config loads the storefront configuration file.
//
// # Overview
//
// Both binaries read the same TOML file. The TUI uses it to pick a catalog
// backend and a log destination; catalogd uses it for its listen address and
// seed data.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/storefront/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. Apply STOREFRONT_API_BIND and STOREFRONT_BACKEND from the environment,
//     after loading a .env file from the working directory if one exists
//
// # Default Values
//
//   - Config file: ~/.config/storefront/config.toml
//   - API endpoint: 127.0.0.1:7488
//   - Backend: memory
//   - Log file: ~/.local/share/storefront/storefront.log
//   - Items per page: 10
//
// # TOML Format
//
//	api_bind = "127.0.0.1:7488"
//	backend = "http"            # or "memory"
//	log_file = "~/.local/share/storefront/storefront.log"
//	seed_file = "~/catalog.toml"
//	categories = ["Books", "Computers"]
//	items_per_page = 10
//	latency_ms = 250            # memory backend only
//
// Every field is optional. Tilde expansion is applied to log_file and
// seed_file. An empty categories list means the categories are fetched from
// the backend.
//
// # Error Handling
//
// Load returns errors for path expansion failures, unreadable files, TOML
// parse errors, out-of-range values and unknown backends. A missing config
// file is not an error.
package config

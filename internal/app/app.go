package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/storefront/internal/catalog"
	"github.com/five82/storefront/internal/config"
	"github.com/five82/storefront/internal/nav"
	"github.com/five82/storefront/internal/params"
	"github.com/five82/storefront/internal/prefs"
	"github.com/five82/storefront/internal/ui"
	"github.com/five82/storefront/internal/viewsync"
)

// Options configure the storefront application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/storefront/prefs.toml
	Location   string // start location, e.g. "/search?category=Books"; empty restores the last listing
	// ArrivalOrder shows listing results in the order they resolve instead of
	// discarding responses to superseded requests.
	ArrivalOrder bool
}

const categoryTimeout = 3 * time.Second

// Backend is a catalog the UI can browse.
type Backend interface {
	catalog.Fetcher
	catalog.CategoryLister
}

// Run boots the storefront TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFile, err := openLog(cfg.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	backend, err := NewBackend(cfg)
	if err != nil {
		return fmt.Errorf("init catalog backend: %w", err)
	}

	categories := cfg.Categories
	if len(categories) == 0 {
		categories = loadCategories(ctx, backend)
	}

	order := viewsync.LatestIssued
	if opts.ArrivalOrder {
		order = viewsync.LatestResolved
	}

	start := StartLocation(opts.Location, userPrefs.LastQuery, cfg.ItemsPerPage)
	log.Printf("starting at %s with %s backend", start, cfg.Backend)

	final, runErr := ui.Run(ui.Options{
		Context:    ctx,
		Fetcher:    backend,
		History:    nav.NewHistory(start),
		Categories: categories,
		Order:      order,
		ThemeName:  userPrefs.Theme,
		PrefsPath:  opts.PrefsPath,
	})

	userPrefs.Theme = final.ThemeName()
	userPrefs.LastQuery = final.LastSearch()
	if err := prefs.Save(opts.PrefsPath, userPrefs); err != nil {
		log.Printf("save prefs: %v", err)
	}
	return runErr
}

// NewBackend builds the catalog named by cfg.Backend.
func NewBackend(cfg config.Config) (Backend, error) {
	switch cfg.Backend {
	case config.BackendHTTP:
		return catalog.NewClient(cfg.APIBind)
	case config.BackendMemory, "":
		items := catalog.SampleItems()
		if cfg.SeedFile != "" {
			seeded, err := catalog.LoadSeed(cfg.SeedFile)
			if err != nil {
				return nil, err
			}
			items = seeded
		}
		return catalog.NewMemory(items, cfg.Latency), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// StartLocation picks the first location: an explicit one wins over the
// last listing saved in prefs. A listing without an itemsPerPage key gets
// the configured page size when it differs from the default.
func StartLocation(explicit, last string, itemsPerPage int) nav.Location {
	raw := explicit
	if raw == "" {
		raw = last
	}
	loc := nav.Parse(raw)
	if loc.Path != nav.PathSearch || itemsPerPage <= 0 || itemsPerPage == params.DefaultItemsPerPage {
		return loc
	}
	m := params.Decode(loc.Token)
	if _, ok := m.Lookup(params.KeyItemsPerPage); ok {
		return loc
	}
	m[params.KeyItemsPerPage] = strconv.Itoa(itemsPerPage)
	loc.Token = params.Encode(m)
	return loc
}

func loadCategories(ctx context.Context, lister catalog.CategoryLister) []string {
	ctx, cancel := context.WithTimeout(ctx, categoryTimeout)
	defer cancel()
	names, err := lister.Categories(ctx)
	if err != nil {
		log.Printf("category listing failed: %v", err)
		return nil
	}
	return names
}

// openLog points the standard logger at path so log output stays off the
// terminal the TUI draws on.
func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(path, "storefront")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// Package prefs persists storefront user preferences in
// ~/.config/storefront/prefs.toml.
package prefs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/storefront/internal/nav"
)

// Prefs holds user preferences. LastQuery is the last listing location
// (path?token) shown, so a restart reopens the same view.
type Prefs struct {
	Theme     string `toml:"theme"`
	LastQuery string `toml:"last_query"`
}

const (
	defaultPrefsPath = "~/.config/storefront/prefs.toml"
	defaultTheme     = "Nightfox"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from path. A missing, unreadable or malformed file
// yields the defaults; the storefront starts on the default listing rather
// than refusing to open. A saved location that is not a listing is dropped.
func Load(path string) (Prefs, error) {
	p := Prefs{Theme: defaultTheme}

	resolved, err := resolvePath(path)
	if err != nil {
		return p, nil
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return p, nil
	}
	var stored Prefs
	if err := toml.Unmarshal(data, &stored); err != nil {
		return p, nil
	}

	if theme := strings.TrimSpace(stored.Theme); theme != "" {
		p.Theme = theme
	}
	if last := strings.TrimSpace(stored.LastQuery); last != "" && nav.Parse(last).Path == nav.PathSearch {
		p.LastQuery = last
	}
	return p, nil
}

// Save writes p to path through a temporary file in the same directory, so an
// interrupted exit never leaves a truncated prefs file behind.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return errors.Wrap(err, "resolve path")
	}
	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create prefs dir")
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "marshal prefs")
	}

	tmp, err := os.CreateTemp(dir, ".prefs-*.toml")
	if err != nil {
		return errors.Wrap(err, "create temp prefs")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "write prefs")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close prefs")
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return errors.Wrap(err, "chmod prefs")
	}
	if err := os.Rename(tmp.Name(), resolved); err != nil {
		return errors.Wrap(err, "replace prefs")
	}
	return nil
}

func resolvePath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		trimmed = defaultPrefsPath
	}
	if rest, ok := strings.CutPrefix(trimmed, "~"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "resolve home dir")
		}
		trimmed = filepath.Join(home, rest)
	}
	return filepath.Abs(trimmed)
}

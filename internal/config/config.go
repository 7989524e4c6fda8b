package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Backend names accepted in the backend field.
const (
	BackendMemory = "memory"
	BackendHTTP   = "http"
)

// Environment variables that override the file.
const (
	EnvAPIBind = "STOREFRONT_API_BIND"
	EnvBackend = "STOREFRONT_BACKEND"
)

// Config holds the storefront client and catalogd settings.
type Config struct {
	APIBind      string
	Backend      string
	LogFile      string
	SeedFile     string
	Categories   []string
	ItemsPerPage int
	Latency      time.Duration
}

const (
	defaultConfigPath   = "~/.config/storefront/config.toml"
	defaultLogFile      = "~/.local/share/storefront/storefront.log"
	defaultAPIBind      = "127.0.0.1:7488"
	defaultBackend      = BackendMemory
	defaultItemsPerPage = 10
	maxItemsPerPage     = 100
)

// Load locates and parses the storefront config, falling back to defaults
// when missing. A .env file in the working directory, when present, is
// loaded before the environment overrides are applied.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIBind:      defaultAPIBind,
		Backend:      defaultBackend,
		LogFile:      mustExpand(defaultLogFile),
		ItemsPerPage: defaultItemsPerPage,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
		return applyEnv(cfg)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBind      string   `toml:"api_bind"`
		Backend      string   `toml:"backend"`
		LogFile      string   `toml:"log_file"`
		SeedFile     string   `toml:"seed_file"`
		Categories   []string `toml:"categories"`
		ItemsPerPage int      `toml:"items_per_page"`
		LatencyMS    int      `toml:"latency_ms"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBind); v != "" {
		cfg.APIBind = v
	}
	if v := strings.TrimSpace(raw.Backend); v != "" {
		cfg.Backend = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.SeedFile); v != "" {
		cfg.SeedFile = mustExpand(v)
	}
	for _, c := range raw.Categories {
		if c = strings.TrimSpace(c); c != "" {
			cfg.Categories = append(cfg.Categories, c)
		}
	}
	if raw.ItemsPerPage != 0 {
		if raw.ItemsPerPage < 1 || raw.ItemsPerPage > maxItemsPerPage {
			return Config{}, fmt.Errorf("items_per_page %d not in 1..%d", raw.ItemsPerPage, maxItemsPerPage)
		}
		cfg.ItemsPerPage = raw.ItemsPerPage
	}
	if raw.LatencyMS < 0 {
		return Config{}, fmt.Errorf("latency_ms %d is negative", raw.LatencyMS)
	}
	cfg.Latency = time.Duration(raw.LatencyMS) * time.Millisecond

	return applyEnv(cfg)
}

func applyEnv(cfg Config) (Config, error) {
	// godotenv never overrides variables already set in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if v := strings.TrimSpace(os.Getenv(EnvAPIBind)); v != "" {
		cfg.APIBind = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvBackend)); v != "" {
		cfg.Backend = strings.ToLower(v)
	}
	switch cfg.Backend {
	case BackendMemory, BackendHTTP:
	default:
		return Config{}, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

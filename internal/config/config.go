// Package config loads lookbook configuration: an optional TOML file under
// the user config directory, overridden by LOOKBOOK_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds settings for all lookbook binaries. Client and server
// settings live in one file; each binary reads what it needs.
type Config struct {
	// DataURL is the snapshot endpoint (read and write).
	DataURL string `toml:"data_url"`
	// FallbackURL is a secondary static snapshot used when DataURL cannot
	// be read. Optional.
	FallbackURL string `toml:"fallback_url"`
	// EditKey authorizes writes. Optional; when empty the client prompts
	// on the first rejected write.
	EditKey string `toml:"edit_key"`

	// ListenAddr is the lookbookd listen address.
	ListenAddr string `toml:"listen_addr"`
	// StorePath is the lookbookd SQLite blob store location.
	StorePath string `toml:"store_path"`
	// DefaultSnapshotPath is the bundled snapshot lookbookd serves before
	// anything has been written.
	DefaultSnapshotPath string `toml:"default_snapshot_path"`
}

func defaults() Config {
	return Config{
		DataURL:             "http://localhost:5003/api/data",
		ListenAddr:          ":5003",
		StorePath:           filepath.Join(dataDir(), "store.db"),
		DefaultSnapshotPath: "data/collections.json",
	}
}

// Load reads the config file if present and applies environment overrides.
// A missing file is not an error; a malformed one is.
func Load() (*Config, error) {
	cfg := defaults()

	path := Path()
	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return &cfg, nil
}

// Path returns the config file location, honoring LOOKBOOK_CONFIG.
func Path() string {
	if env := os.Getenv("LOOKBOOK_CONFIG"); env != "" {
		return env
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "lookbook.toml"
	}
	return filepath.Join(base, "lookbook", "config.toml")
}

func applyEnv(cfg *Config) {
	overrides := map[string]*string{
		"LOOKBOOK_DATA_URL":         &cfg.DataURL,
		"LOOKBOOK_FALLBACK_URL":     &cfg.FallbackURL,
		"LOOKBOOK_EDIT_KEY":         &cfg.EditKey,
		"LOOKBOOK_ADDR":             &cfg.ListenAddr,
		"LOOKBOOK_STORE":            &cfg.StorePath,
		"LOOKBOOK_DEFAULT_SNAPSHOT": &cfg.DefaultSnapshotPath,
	}
	for name, dst := range overrides {
		if value := os.Getenv(name); value != "" {
			*dst = value
		}
	}
}

func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "lookbook")
}

// Package config handles persistent user configuration for backdrop.
//
// Configuration is stored as JSON at ~/.config/backdrop/config.json (or
// the platform-equivalent path returned by os.UserConfigDir).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"backdrop/internal/domain"
	"backdrop/internal/policy"
)

const (
	appDir   = "backdrop"
	fileName = "config.json"
)

// pathOverride, when non-empty, replaces the default config file path.
// Intended for testing. Use SetPath / ResetPath to manage.
var pathOverride string

// SetPath overrides the config file path. Intended for testing.
func SetPath(p string) { pathOverride = p }

// ResetPath clears the path override, reverting to the default. Intended for testing.
func ResetPath() { pathOverride = "" }

// Config holds user preferences that persist across invocations. Empty
// fields fall back to the stock catalog, exclusions, and breakpoint.
type Config struct {
	DarkDesktop  string `json:"dark_desktop,omitempty"`
	DarkMobile   string `json:"dark_mobile,omitempty"`
	LightDesktop string `json:"light_desktop,omitempty"`
	LightMobile  string `json:"light_mobile,omitempty"`
	Fallback     string `json:"fallback,omitempty"`

	Exclusions []string `json:"exclusions,omitempty"`

	MobileBreakpoint int `json:"mobile_breakpoint,omitempty"`

	// AssetHost is the base URL site-relative image refs are fetched
	// from during prefetch (e.g. "https://assets.example.com").
	AssetHost string `json:"asset_host,omitempty"`
}

// Catalog builds the effective image catalog: configured entries where
// present, stock entries elsewhere.
func (c *Config) Catalog() (*domain.Catalog, error) {
	stock := domain.DefaultCatalog()
	pick := func(configured string, fallback domain.ImageRef) domain.ImageRef {
		if configured != "" {
			return domain.ImageRef(configured)
		}
		return fallback
	}

	cat, err := domain.NewCatalog(domain.Entries{
		DarkDesktop:  pick(c.DarkDesktop, stock.Lookup(domain.Dark, domain.Desktop)),
		DarkMobile:   pick(c.DarkMobile, stock.Lookup(domain.Dark, domain.Mobile)),
		LightDesktop: pick(c.LightDesktop, stock.Lookup(domain.Light, domain.Desktop)),
		LightMobile:  pick(c.LightMobile, stock.Lookup(domain.Light, domain.Mobile)),
		Fallback:     pick(c.Fallback, stock.Fallback()),
	})
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cat, nil
}

// ExclusionList returns the effective exclusion list.
func (c *Config) ExclusionList() policy.Exclusions {
	if len(c.Exclusions) == 0 {
		return policy.DefaultExclusions()
	}
	return policy.Exclusions(c.Exclusions)
}

// Breakpoint returns the effective mobile breakpoint.
func (c *Config) Breakpoint() int {
	if c.MobileBreakpoint > 0 {
		return c.MobileBreakpoint
	}
	return domain.DefaultBreakpoint
}

// Path returns the absolute path to the config file.
// If SetPath has been called, that value is returned instead.
// Otherwise it uses os.UserConfigDir which resolves to
// ~/Library/Application Support on macOS, ~/.config on Linux, and
// %AppData% on Windows.
func Path() (string, error) {
	if pathOverride != "" {
		return pathOverride, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: unable to determine config directory: %w", err)
	}
	return filepath.Join(base, appDir, fileName), nil
}

// Load reads the config file from disk and returns the parsed Config.
// If the file does not exist, a zero-value Config is returned (not an error).
func Load() (*Config, error) {
	return loadFrom("")
}

func loadFrom(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config to disk, creating the parent directory if needed.
func (c *Config) Save() error {
	return c.saveTo("")
}

func (c *Config) saveTo(path string) error {
	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			return err
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: failed to create directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: failed to write %s: %w", path, err)
	}

	return nil
}

// LoadFrom reads the config from the given path. Intended for testing.
func LoadFrom(path string) (*Config, error) {
	return loadFrom(path)
}

// SaveTo writes the config to the given path. Intended for testing.
func (c *Config) SaveTo(path string) error {
	return c.saveTo(path)
}

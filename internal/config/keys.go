package config

import (
	"fmt"
	"strconv"
	"strings"

	"backdrop/internal/util"
)

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the CLI-facing key name (e.g. "dark-desktop").
	Name string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Get returns the current value for this key from a loaded Config.
	Get func(cfg *Config) string

	// Set applies a value for this key to the given Config (in memory
	// only; the caller is responsible for calling Save). It returns an
	// error when the value does not parse for this key.
	Set func(cfg *Config, value string) error
}

func refKey(name, desc string, field func(cfg *Config) *string) KeySpec {
	return KeySpec{
		Name:        name,
		Description: desc,
		Get:         func(cfg *Config) string { return *field(cfg) },
		Set: func(cfg *Config, v string) error {
			if v != "" {
				if err := util.ValidateImageRef(v); err != nil {
					return err
				}
			}
			*field(cfg) = v
			return nil
		},
	}
}

// Keys is the authoritative list of all supported configuration keys.
// To add a new option: add a field to Config and append a KeySpec here.
var Keys = []KeySpec{
	refKey("dark-desktop", "Background image for dark mode on desktop", func(cfg *Config) *string { return &cfg.DarkDesktop }),
	refKey("dark-mobile", "Background image for dark mode on mobile", func(cfg *Config) *string { return &cfg.DarkMobile }),
	refKey("light-desktop", "Background image for light mode on desktop", func(cfg *Config) *string { return &cfg.LightDesktop }),
	refKey("light-mobile", "Background image for light mode on mobile", func(cfg *Config) *string { return &cfg.LightMobile }),
	refKey("fallback", "Neutral background for excluded pages and desktop without a mode", func(cfg *Config) *string { return &cfg.Fallback }),
	{
		Name:        "exclusions",
		Description: "Comma-separated path prefixes excluded from mode-driven switching",
		Get:         func(cfg *Config) string { return strings.Join(cfg.Exclusions, ",") },
		Set: func(cfg *Config, v string) error {
			cfg.Exclusions = nil
			for _, p := range strings.Split(v, ",") {
				p = strings.TrimSpace(p)
				if p == "" {
					continue
				}
				if !strings.HasPrefix(p, "/") {
					return fmt.Errorf("exclusion %q must start with /", p)
				}
				cfg.Exclusions = append(cfg.Exclusions, p)
			}
			return nil
		},
	},
	{
		Name:        "mobile-breakpoint",
		Description: "Viewport width (px) below which pages are classified as mobile",
		Get: func(cfg *Config) string {
			if cfg.MobileBreakpoint == 0 {
				return ""
			}
			return strconv.Itoa(cfg.MobileBreakpoint)
		},
		Set: func(cfg *Config, v string) error {
			if v == "" {
				cfg.MobileBreakpoint = 0
				return nil
			}
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return fmt.Errorf("mobile-breakpoint must be a positive integer, got %q", v)
			}
			cfg.MobileBreakpoint = n
			return nil
		},
	},
	{
		Name:        "asset-host",
		Description: "Base URL used to prefetch site-relative image refs",
		Get:         func(cfg *Config) string { return cfg.AssetHost },
		Set: func(cfg *Config, v string) error {
			v = strings.TrimSpace(v)
			if v != "" && !strings.HasPrefix(v, "http://") && !strings.HasPrefix(v, "https://") {
				return fmt.Errorf("asset-host must be an http(s) URL, got %q", v)
			}
			cfg.AssetHost = v
			return nil
		},
	},
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// The name is matched case-insensitively after trimming whitespace.
func Lookup(name string) *KeySpec {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// KeyNames returns the names of all registered keys.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// KeysHelp builds a formatted block listing all available keys and their
// descriptions, suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	if len(Keys) == 0 {
		return ""
	}

	// Find the longest key name for alignment.
	maxLen := 0
	for _, k := range Keys {
		if len(k.Name) > maxLen {
			maxLen = len(k.Name)
		}
	}

	var b strings.Builder
	b.WriteString("Available keys:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s\n", maxLen, k.Name, k.Description)
	}
	return b.String()
}

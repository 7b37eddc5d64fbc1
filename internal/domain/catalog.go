package domain

import "fmt"

// ImageRef is an opaque reference to a background image: an http(s) URL
// or a site-relative asset path. The empty string means "none".
type ImageRef string

// IsZero reports whether the reference is empty.
func (r ImageRef) IsZero() bool { return r == "" }

// catalogKey identifies one mode/class slot in the catalog.
type catalogKey struct {
	mode  ColorMode
	class DeviceClass
}

// Catalog is the immutable mapping from (ColorMode, DeviceClass) to an
// image reference, plus a single fallback reference used for excluded
// pages and neutral desktop states. Every slot is guaranteed non-empty
// by construction, so Lookup is total and has no error path.
type Catalog struct {
	entries  map[catalogKey]ImageRef
	fallback ImageRef
}

// Entries holds the raw inputs to NewCatalog.
type Entries struct {
	DarkDesktop  ImageRef
	DarkMobile   ImageRef
	LightDesktop ImageRef
	LightMobile  ImageRef
	Fallback     ImageRef
}

// NewCatalog validates and builds a catalog. All four mode/class entries
// and the fallback must be non-empty.
func NewCatalog(e Entries) (*Catalog, error) {
	slots := []struct {
		name string
		ref  ImageRef
	}{
		{"dark/desktop", e.DarkDesktop},
		{"dark/mobile", e.DarkMobile},
		{"light/desktop", e.LightDesktop},
		{"light/mobile", e.LightMobile},
		{"fallback", e.Fallback},
	}
	for _, s := range slots {
		if s.ref.IsZero() {
			return nil, fmt.Errorf("%w: %s", ErrIncompleteCatalog, s.name)
		}
	}

	return &Catalog{
		entries: map[catalogKey]ImageRef{
			{Dark, Desktop}:  e.DarkDesktop,
			{Dark, Mobile}:   e.DarkMobile,
			{Light, Desktop}: e.LightDesktop,
			{Light, Mobile}:  e.LightMobile,
		},
		fallback: e.Fallback,
	}, nil
}

// DefaultEntries returns the stock catalog entries. The desktop entry is
// shared between modes (the desktop art reads fine on both).
func DefaultEntries() Entries {
	return Entries{
		DarkDesktop:  "/assets/backgrounds/desktop.webp",
		DarkMobile:   "/assets/backgrounds/mobile-dark.webp",
		LightDesktop: "/assets/backgrounds/desktop.webp",
		LightMobile:  "/assets/backgrounds/mobile-light.webp",
		Fallback:     "/assets/backgrounds/plain.webp",
	}
}

// DefaultCatalog returns the stock catalog. Because the desktop entry is
// shared, Refs reports four distinct references rather than five.
func DefaultCatalog() *Catalog {
	cat, err := NewCatalog(DefaultEntries())
	if err != nil {
		// Unreachable: the stock entries are all non-empty.
		panic(err)
	}
	return cat
}

// Lookup returns the image reference for a mode/class pair. It is total:
// every pair has a defined entry.
func (c *Catalog) Lookup(mode ColorMode, class DeviceClass) ImageRef {
	return c.entries[catalogKey{mode, class}]
}

// Fallback returns the neutral fallback reference.
func (c *Catalog) Fallback() ImageRef { return c.fallback }

// Refs returns every distinct reference in the catalog (the four
// mode/class entries plus the fallback, deduplicated) in a stable
// order, for prefetching.
func (c *Catalog) Refs() []ImageRef {
	ordered := []ImageRef{
		c.entries[catalogKey{Dark, Desktop}],
		c.entries[catalogKey{Dark, Mobile}],
		c.entries[catalogKey{Light, Desktop}],
		c.entries[catalogKey{Light, Mobile}],
		c.fallback,
	}

	seen := make(map[ImageRef]bool, len(ordered))
	refs := make([]ImageRef, 0, len(ordered))
	for _, ref := range ordered {
		if seen[ref] {
			continue
		}
		seen[ref] = true
		refs = append(refs, ref)
	}
	return refs
}

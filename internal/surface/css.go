// Package surface provides display-surface implementations for the
// backdrop controller: a CSS writer that emits background-image
// declarations, and an in-memory recorder for tests.
package surface

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"backdrop/internal/domain"
)

// CSS writes each applied background as a CSS declaration block to an
// io.Writer. It is the output form of the `resolve --output css` path:
// one block per SetBackground call, so piping into a stylesheet or a
// live-reload endpoint just works.
type CSS struct {
	mu sync.Mutex
	w  io.Writer

	// selector is the element the background is applied to.
	selector string

	// maskSelector is the optional mask element. When empty, ClearMask
	// is a no-op, mirroring a page without a mask.
	maskSelector string
}

// CSSOption configures a CSS surface.
type CSSOption func(*CSS)

// WithSelector sets the target selector (default "body").
func WithSelector(sel string) CSSOption {
	return func(c *CSS) { c.selector = sel }
}

// WithMaskSelector enables mask clearing against the given selector.
func WithMaskSelector(sel string) CSSOption {
	return func(c *CSS) { c.maskSelector = sel }
}

// NewCSS returns a surface writing to w.
func NewCSS(w io.Writer, opts ...CSSOption) *CSS {
	c := &CSS{w: w, selector: "body"}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetBackground writes the background-image declaration for ref.
func (c *CSS) SetBackground(ref domain.ImageRef) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "%s { background-image: url(%q); }\n", c.selector, string(ref))
}

// ClearMask writes the mask-clearing declaration, or nothing if no mask
// selector is configured.
func (c *CSS) ClearMask() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.maskSelector == "" {
		return
	}
	fmt.Fprintf(c.w, "%s { background-color: transparent; }\n", c.maskSelector)
}

// Declaration renders the background-image declaration for a ref without
// a surface, for one-shot CLI output.
func Declaration(selector string, ref domain.ImageRef) string {
	if selector == "" {
		selector = "body"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s { background-image: url(%q); }", selector, string(ref))
	return b.String()
}

// Package controller wires the signal sources to the policy resolver
// and the display surface. One controller instance manages one page:
// it performs the startup resolution, prefetches the catalog, and keeps
// the background synchronized as the mode attribute, viewport, or
// toggle control fires.
package controller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"backdrop/internal/domain"
	"backdrop/internal/policy"
	"backdrop/internal/signal"

	"github.com/charmbracelet/log"
)

// --- Timing configuration ---

const (
	// ResizeDebounce is the trailing-edge debounce window for viewport
	// resizes: a burst of resize events collapses to one resolution
	// this long after the last event.
	ResizeDebounce = 200 * time.Millisecond

	// ToggleDelay is the fixed wait after a toggle click before
	// re-resolving. The toggle's own handler flips the mode attribute
	// with no ordering guarantee relative to the click signal, so the
	// re-read is deferred until the attribute has settled.
	ToggleDelay = 100 * time.Millisecond
)

// DefaultModeAttribute is the attribute watched for mode changes when
// Options.AttributeName is empty.
const DefaultModeAttribute = "data-theme"

// --- Resolution triggers ---

const (
	TriggerStartup   = "startup"
	TriggerAttribute = "attribute"
	TriggerResize    = "resize"
	TriggerToggle    = "toggle"
	TriggerReload    = "reload"
)

// Warmer prefetches catalog references. Warm must not block: outcomes
// are unobserved by the controller.
type Warmer interface {
	Warm(ctx context.Context, refs []domain.ImageRef)
}

// Options configures a Controller. Catalog, Attributes, Viewport, Path,
// and Surface are required.
type Options struct {
	Catalog    *domain.Catalog
	Exclusions policy.Exclusions

	// Attributes carries the mode attribute; AttributeName selects
	// which one (DefaultModeAttribute when empty).
	Attributes    *signal.Attributes
	AttributeName string

	Viewport domain.Viewport
	Path     func() string
	Surface  domain.Surface

	// Breakpoint overrides the mobile width threshold
	// (domain.DefaultBreakpoint when non-positive).
	Breakpoint int

	// Warmer, when set, is invoked once at startup with every catalog
	// ref. Nil skips prefetching.
	Warmer Warmer

	// HasToggle indicates a toggle control is wired. When false, Start
	// logs a warning; OnToggle calls still work but nothing is
	// expected to produce them.
	HasToggle bool

	// Sink, when set, receives a copy of every resolution event (after
	// the trace records it).
	Sink func(Event)

	Logger *log.Logger
}

// Controller is the orchestrator. All resolution and surface access is
// serialized behind one mutex, so the surface observes a single ordered
// stream of applications no matter which timer goroutine fired.
type Controller struct {
	mu sync.Mutex

	catalog    *domain.Catalog
	exclusions policy.Exclusions
	attrs      *signal.Attributes
	attrName   string
	viewport   domain.Viewport
	path       func() string
	surface    domain.Surface
	breakpoint int
	warmer     Warmer
	hasToggle  bool
	sink       func(Event)
	logger     *log.Logger

	resizeTimer *signal.SlotTimer
	toggleTimer *signal.SlotTimer
	cancelWatch func()

	trace   *Trace
	started bool
}

// New validates options and builds a controller. This is the only error
// path in the package; once constructed, nothing the controller does
// returns an error to its caller.
func New(opts Options) (*Controller, error) {
	switch {
	case opts.Catalog == nil:
		return nil, fmt.Errorf("controller: catalog is required")
	case opts.Attributes == nil:
		return nil, fmt.Errorf("controller: attributes are required")
	case opts.Viewport == nil:
		return nil, fmt.Errorf("controller: viewport is required")
	case opts.Path == nil:
		return nil, fmt.Errorf("controller: path func is required")
	case opts.Surface == nil:
		return nil, fmt.Errorf("controller: surface is required")
	}

	attrName := opts.AttributeName
	if attrName == "" {
		attrName = DefaultModeAttribute
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Controller{
		catalog:     opts.Catalog,
		exclusions:  opts.Exclusions,
		attrs:       opts.Attributes,
		attrName:    attrName,
		viewport:    opts.Viewport,
		path:        opts.Path,
		surface:     opts.Surface,
		breakpoint:  opts.Breakpoint,
		warmer:      opts.Warmer,
		hasToggle:   opts.HasToggle,
		sink:        opts.Sink,
		logger:      logger,
		resizeTimer: signal.NewSlotTimer(),
		toggleTimer: signal.NewSlotTimer(),
		trace:       NewTrace(0),
	}, nil
}

// Start runs the one-time startup sequence: prefetch every catalog ref,
// perform the initial resolution (exact-match exclusion rule), and
// subscribe to mode-attribute changes. Calling Start twice is a no-op.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	if c.warmer != nil {
		c.warmer.Warm(ctx, c.catalog.Refs())
	}

	c.startupResolve(TriggerStartup)

	c.cancelWatch = c.attrs.Watch(c.attrName, func(old, new string) {
		c.OnAttributeChange(old, new)
	})

	if !c.hasToggle {
		c.logger.Warn("no toggle control wired; click-driven updates disabled",
			"attribute", c.attrName)
	}
}

// Stop cancels pending timers, unsubscribes the attribute watcher, and
// clears the diagnostic trace.
func (c *Controller) Stop() {
	c.resizeTimer.Stop()
	c.toggleTimer.Stop()

	c.mu.Lock()
	cancel := c.cancelWatch
	c.cancelWatch = nil
	c.started = false
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	c.trace.Clear()
}

// Trace exposes the diagnostic event ring.
func (c *Controller) Trace() *Trace { return c.trace }

// --- Signal handlers ---

// OnAttributeChange handles a mode-attribute mutation. On non-excluded
// pages it re-resolves and applies; the visual mask is cleared either
// way.
func (c *Controller) OnAttributeChange(old, new string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.exclusions.Matches(c.path()) {
		c.resolveAndApply(TriggerAttribute, domain.Input{
			Mode:    domain.ParseMode(new),
			HasMode: true,
		})
		return
	}
	c.surface.ClearMask()
}

// OnResize notes a viewport resize. The actual resolution runs once,
// ResizeDebounce after the last call in a burst, sampling the width and
// mode at fire time. No exclusion check here: the resolver's own
// excluded-path rule covers it.
func (c *Controller) OnResize() {
	c.resizeTimer.Schedule(ResizeDebounce, func() {
		c.resolveFresh(TriggerResize)
	})
}

// OnToggle notes a toggle click and re-resolves after ToggleDelay. A
// second click within the window replaces the pending resolution.
func (c *Controller) OnToggle() {
	c.toggleTimer.Schedule(ToggleDelay, func() {
		c.resolveFresh(TriggerToggle)
	})
}

// Reload re-runs the startup resolution (exact-match exclusion rule).
// Bindings call this when the page path changes.
func (c *Controller) Reload() {
	c.startupResolve(TriggerReload)
}

// --- Resolution ---

// resolveFresh re-reads the mode attribute and resolves with no
// override. Used by the resize and toggle handlers.
func (c *Controller) resolveFresh(trigger string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resolveAndApply(trigger, domain.Input{
		Mode:    domain.ParseMode(c.attrs.Get(c.attrName)),
		HasMode: true,
	})
}

// startupResolve applies the startup rule: an exact match against the
// exclusion list (not the prefix match the runtime handlers use)
// resolves without a mode.
func (c *Controller) startupResolve(trigger string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	in := domain.Input{}
	if !c.exclusions.MatchesExact(c.path()) {
		in.Mode = domain.ParseMode(c.attrs.Get(c.attrName))
		in.HasMode = true
	}
	c.resolveAndApply(trigger, in)
}

// resolveAndApply samples path and width, resolves, pushes the result
// onto the surface, and clears the mask. Callers hold c.mu.
func (c *Controller) resolveAndApply(trigger string, in domain.Input) {
	start := time.Now()

	path := c.path()
	width := c.viewport.Width()
	in.Class = domain.ClassifyWidth(width, c.breakpoint)

	ref := policy.Resolve(in, path, c.catalog, c.exclusions)
	c.surface.SetBackground(ref)
	c.surface.ClearMask()

	mode := "none"
	if in.HasMode {
		mode = in.Mode.String()
	}
	event := Event{
		Time:     start,
		Trigger:  trigger,
		Path:     path,
		Mode:     mode,
		Class:    in.Class.String(),
		Width:    width,
		Ref:      ref,
		Duration: time.Since(start),
	}
	c.trace.Add(event)
	if c.sink != nil {
		c.sink(event)
	}

	c.logger.Debug("background resolved",
		"trigger", trigger, "path", path, "mode", mode,
		"class", event.Class, "width", width, "ref", ref)
}

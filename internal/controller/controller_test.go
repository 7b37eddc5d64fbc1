package controller

import (
	"context"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"backdrop/internal/domain"
	"backdrop/internal/policy"
	"backdrop/internal/signal"
	"backdrop/internal/surface"

	"github.com/charmbracelet/log"
)

// harness bundles a controller with its injected fakes.
type harness struct {
	ctrl  *Controller
	attrs *signal.Attributes
	rec   *surface.Recorder
	cat   *domain.Catalog

	width atomic.Int64
	path  atomic.Value // string
}

func newHarness(t *testing.T, excl policy.Exclusions, opts func(*Options)) *harness {
	t.Helper()

	h := &harness{
		attrs: signal.NewAttributes(),
		rec:   surface.NewRecorder(),
	}
	cat, err := domain.NewCatalog(domain.Entries{
		DarkDesktop:  "/img/dark-desktop.webp",
		DarkMobile:   "/img/dark-mobile.webp",
		LightDesktop: "/img/light-desktop.webp",
		LightMobile:  "/img/light-mobile.webp",
		Fallback:     "/img/plain.webp",
	})
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}
	h.cat = cat
	h.width.Store(1280)
	h.path.Store("/")

	o := Options{
		Catalog:    cat,
		Exclusions: excl,
		Attributes: h.attrs,
		Viewport:   domain.WidthFunc(func() int { return int(h.width.Load()) }),
		Path:       func() string { return h.path.Load().(string) },
		Surface:    h.rec,
		HasToggle:  true,
		Logger:     log.New(io.Discard),
	}
	if opts != nil {
		opts(&o)
	}

	ctrl, err := New(o)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	h.ctrl = ctrl
	t.Cleanup(ctrl.Stop)
	return h
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(Options{})
	if err == nil {
		t.Fatal("expected error for empty options")
	}
}

func TestStart_InitialResolution(t *testing.T) {
	h := newHarness(t, policy.DefaultExclusions(), nil)
	h.attrs.Set(DefaultModeAttribute, "dark")

	h.ctrl.Start(context.Background())

	if got := h.rec.Current(); got != h.cat.Lookup(domain.Dark, domain.Desktop) {
		t.Errorf("startup background = %q, want dark desktop entry", got)
	}
	if h.rec.MaskClears() == 0 {
		t.Error("startup should clear the mask")
	}
}

func TestStart_ExactMatchExclusion(t *testing.T) {
	h := newHarness(t, policy.Exclusions{"/about/"}, nil)
	h.attrs.Set(DefaultModeAttribute, "dark")
	h.path.Store("/about/")

	h.ctrl.Start(context.Background())

	// Exact match fires on "/about/" itself: modeless desktop → fallback.
	if got := h.rec.Current(); got != h.cat.Fallback() {
		t.Errorf("startup on excluded page = %q, want fallback", got)
	}
}

func TestStart_ExactMatchDoesNotFireOnSubpath(t *testing.T) {
	h := newHarness(t, policy.Exclusions{"/about/"}, nil)
	h.attrs.Set(DefaultModeAttribute, "dark")
	h.path.Store("/about/team/")

	h.ctrl.Start(context.Background())

	// Startup uses exact match only, so the subpath keeps its mode; the
	// resolver's prefix rule then routes it to the fallback anyway.
	if got := h.rec.Current(); got != h.cat.Fallback() {
		t.Errorf("startup on excluded subpath = %q, want fallback", got)
	}

	// On mobile the same subpath resolves to the dark mobile entry.
	h.width.Store(390)
	h.ctrl.Reload()
	if got := h.rec.Current(); got != h.cat.Lookup(domain.Dark, domain.Mobile) {
		t.Errorf("mobile reload on excluded subpath = %q, want dark mobile entry", got)
	}
}

func TestAttributeChange_Resolves(t *testing.T) {
	h := newHarness(t, policy.DefaultExclusions(), nil)
	h.attrs.Set(DefaultModeAttribute, "light")
	h.ctrl.Start(context.Background())

	h.attrs.Set(DefaultModeAttribute, "dark")

	if got := h.rec.Current(); got != h.cat.Lookup(domain.Dark, domain.Desktop) {
		t.Errorf("after attribute change = %q, want dark desktop entry", got)
	}
}

func TestAttributeChange_ExcludedPageOnlyClearsMask(t *testing.T) {
	h := newHarness(t, policy.Exclusions{"/about/"}, nil)
	h.attrs.Set(DefaultModeAttribute, "light")
	h.ctrl.Start(context.Background())
	h.path.Store("/about/team/")

	applied := len(h.rec.Applied())
	clears := h.rec.MaskClears()

	h.attrs.Set(DefaultModeAttribute, "dark")

	if got := len(h.rec.Applied()); got != applied {
		t.Errorf("excluded page applied %d new backgrounds, want 0", got-applied)
	}
	if h.rec.MaskClears() != clears+1 {
		t.Error("mask should be cleared even on excluded pages")
	}
}

func TestResize_DebouncesBurst(t *testing.T) {
	h := newHarness(t, policy.DefaultExclusions(), nil)
	h.attrs.Set(DefaultModeAttribute, "dark")
	h.ctrl.Start(context.Background())
	applied := len(h.rec.Applied())

	// Burst of three resizes; only the width at fire time matters.
	h.width.Store(500)
	h.ctrl.OnResize()
	time.Sleep(50 * time.Millisecond)
	h.ctrl.OnResize()
	time.Sleep(50 * time.Millisecond)
	h.width.Store(390)
	h.ctrl.OnResize()

	// Inside the debounce window nothing has fired yet.
	time.Sleep(100 * time.Millisecond)
	if got := len(h.rec.Applied()); got != applied {
		t.Errorf("resolution fired inside debounce window (%d applications)", got-applied)
	}

	time.Sleep(200 * time.Millisecond)
	if got := len(h.rec.Applied()); got != applied+1 {
		t.Fatalf("expected exactly 1 resolution after burst, got %d", got-applied)
	}
	if got := h.rec.Current(); got != h.cat.Lookup(domain.Dark, domain.Mobile) {
		t.Errorf("debounced resolution = %q, want dark mobile (width sampled at fire time)", got)
	}
}

func TestToggle_DelaysThenReadsSettledMode(t *testing.T) {
	h := newHarness(t, policy.DefaultExclusions(), nil)
	h.attrs.Set(DefaultModeAttribute, "light")
	h.ctrl.Start(context.Background())

	// The toggle click fires before its handler has flipped the
	// attribute; the delayed re-read must observe the settled value.
	h.ctrl.OnToggle()
	time.Sleep(20 * time.Millisecond)
	h.attrs.Set(DefaultModeAttribute, "dark")

	time.Sleep(200 * time.Millisecond)
	if got := h.rec.Current(); got != h.cat.Lookup(domain.Dark, domain.Desktop) {
		t.Errorf("after toggle = %q, want dark desktop entry", got)
	}
}

func TestStop_ClearsTraceAndCancelsTimers(t *testing.T) {
	h := newHarness(t, policy.DefaultExclusions(), nil)
	h.attrs.Set(DefaultModeAttribute, "dark")
	h.ctrl.Start(context.Background())

	if h.ctrl.Trace().Len() == 0 {
		t.Fatal("expected startup event in trace")
	}

	h.ctrl.OnResize()
	applied := len(h.rec.Applied())
	h.ctrl.Stop()

	time.Sleep(300 * time.Millisecond)
	if got := len(h.rec.Applied()); got != applied {
		t.Error("pending resize resolution fired after Stop")
	}
	if h.ctrl.Trace().Len() != 0 {
		t.Error("trace not cleared on Stop")
	}

	// The unsubscribed watcher must not resolve either.
	h.attrs.Set(DefaultModeAttribute, "light")
	if got := len(h.rec.Applied()); got != applied {
		t.Error("attribute watcher still live after Stop")
	}
}

func TestStart_WarnsWhenToggleMissing(t *testing.T) {
	var buf strings.Builder
	h := newHarness(t, policy.DefaultExclusions(), func(o *Options) {
		o.HasToggle = false
		o.Logger = log.New(&buf)
	})

	h.ctrl.Start(context.Background())

	if !strings.Contains(buf.String(), "no toggle control") {
		t.Errorf("expected missing-toggle warning, log output:\n%s", buf.String())
	}
}

func TestStart_PrefetchesCatalog(t *testing.T) {
	var warmed atomic.Int32
	h := newHarness(t, policy.DefaultExclusions(), func(o *Options) {
		o.Warmer = warmerFunc(func(ctx context.Context, refs []domain.ImageRef) {
			warmed.Store(int32(len(refs)))
		})
	})

	h.ctrl.Start(context.Background())

	if got := warmed.Load(); got != int32(len(h.cat.Refs())) {
		t.Errorf("warmed %d refs, want %d", got, len(h.cat.Refs()))
	}
}

func TestSink_ReceivesEvents(t *testing.T) {
	events := make(chan Event, 8)
	h := newHarness(t, policy.DefaultExclusions(), func(o *Options) {
		o.Sink = func(e Event) { events <- e }
	})
	h.attrs.Set(DefaultModeAttribute, "dark")

	h.ctrl.Start(context.Background())

	select {
	case e := <-events:
		if e.Trigger != TriggerStartup {
			t.Errorf("first event trigger = %q, want %q", e.Trigger, TriggerStartup)
		}
		if e.Mode != "dark" || e.Class != "desktop" {
			t.Errorf("event = %+v, want dark desktop", e)
		}
	default:
		t.Fatal("no event delivered to sink")
	}
}

// warmerFunc adapts a function to the Warmer interface.
type warmerFunc func(ctx context.Context, refs []domain.ImageRef)

func (f warmerFunc) Warm(ctx context.Context, refs []domain.ImageRef) { f(ctx, refs) }

package tui

import (
	"context"
	"io"
	"testing"
	"time"

	"backdrop/internal/controller"
	"backdrop/internal/domain"
	"backdrop/internal/policy"
	"backdrop/internal/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func previewFixture(t *testing.T) (previewModel, *simState, *signal.Attributes) {
	t.Helper()

	cat := domain.DefaultCatalog()
	sim := &simState{path: "/", width: 1280}
	attrs := signal.NewAttributes()
	attrs.Set(controller.DefaultModeAttribute, "light")

	ctrl, err := controller.New(controller.Options{
		Catalog:    cat,
		Exclusions: policy.DefaultExclusions(),
		Attributes: attrs,
		Viewport:   sim,
		Path:       sim.Path,
		Surface:    &programSurface{},
		HasToggle:  true,
		Logger:     log.New(io.Discard),
	})
	if err != nil {
		t.Fatalf("controller.New failed: %v", err)
	}
	t.Cleanup(ctrl.Stop)
	ctrl.Start(context.Background())

	m := newPreviewModel(ctrl, attrs, sim, cat, []string{"/", "/posts/", "/about/"}, false)
	m.width, m.height = 80, 24
	m.started = true
	return m, sim, attrs
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPreview_ToggleFlipsAttribute(t *testing.T) {
	m, _, attrs := previewFixture(t)

	m.handleKey(key("t"))

	if got := attrs.Get(controller.DefaultModeAttribute); got != "dark" {
		t.Errorf("attribute after toggle = %q, want dark", got)
	}
}

func TestPreview_NavigationWraps(t *testing.T) {
	m, sim, _ := previewFixture(t)

	next, _ := m.handleKey(key("l"))
	m = next.(previewModel)
	if sim.Path() != "/posts/" {
		t.Errorf("path after → = %q, want /posts/", sim.Path())
	}

	next, _ = m.handleKey(key("h"))
	m = next.(previewModel)
	next, _ = m.handleKey(key("h"))
	m = next.(previewModel)
	if sim.Path() != "/about/" {
		t.Errorf("path after wrapping ← = %q, want /about/", sim.Path())
	}
}

func TestPreview_WidthNudgeHasFloor(t *testing.T) {
	m, sim, _ := previewFixture(t)
	sim.SetWidth(widthStep)

	m.handleKey(key("["))

	if got := sim.Width(); got != widthStep {
		t.Errorf("width nudged below floor: %d", got)
	}
}

func TestPreview_QuitKey(t *testing.T) {
	m, _, _ := previewFixture(t)

	_, cmd := m.handleKey(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Errorf("expected tea.Quit, got %T", msg)
	}
}

func TestPreview_ResolutionMsgBoundsHistory(t *testing.T) {
	m, _, _ := previewFixture(t)

	var model tea.Model = m
	for range maxPreviewEvents + 10 {
		model, _ = model.(previewModel).Update(resolutionMsg{event: controller.Event{Trigger: controller.TriggerResize}})
	}

	got := model.(previewModel)
	if len(got.events) != maxPreviewEvents {
		t.Errorf("event history length = %d, want %d", len(got.events), maxPreviewEvents)
	}
}

// TestPreview_ToggleUnderRunningProgram exercises the full wiring the
// fixture tests bypass: a live event loop with the surface attached, so
// a resolution triggered from inside Update has to round-trip through
// Program.Send without blocking the loop that triggered it.
func TestPreview_ToggleUnderRunningProgram(t *testing.T) {
	cat := domain.DefaultCatalog()
	sim := &simState{path: "/", width: 1280}
	attrs := signal.NewAttributes()
	attrs.Set(controller.DefaultModeAttribute, "light")
	surf := &programSurface{}

	ctrl, err := controller.New(controller.Options{
		Catalog:    cat,
		Exclusions: policy.DefaultExclusions(),
		Attributes: attrs,
		Viewport:   sim,
		Path:       sim.Path,
		Surface:    surf,
		HasToggle:  true,
		Logger:     log.New(io.Discard),
	})
	if err != nil {
		t.Fatalf("controller.New failed: %v", err)
	}
	defer ctrl.Stop()

	m := newPreviewModel(ctrl, attrs, sim, cat, []string{"/", "/posts/"}, true)
	p := tea.NewProgram(m, tea.WithInput(nil), tea.WithoutRenderer())
	surf.attach(p.Send)

	done := make(chan error, 1)
	go func() {
		_, err := p.Run()
		done <- err
	}()

	p.Send(tea.WindowSizeMsg{Width: 80, Height: 24})
	p.Send(key("t"))
	p.Send(key("l"))
	p.Send(key("q"))

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("program exited with error: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("program did not quit; a resolution blocked the event loop")
	}

	if got := attrs.Get(controller.DefaultModeAttribute); got != "dark" {
		t.Errorf("attribute after toggle = %q, want dark", got)
	}
}

func TestPreview_ViewRendersWithoutSize(t *testing.T) {
	m, _, _ := previewFixture(t)
	m.width = 0

	if view := m.View(); view != "" {
		t.Errorf("expected empty view before first WindowSizeMsg, got %q", view)
	}
}

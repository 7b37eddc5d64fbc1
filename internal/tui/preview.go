// Package tui implements the interactive preview: a Bubbletea program
// that simulates a site's pages and drives the backdrop controller with
// synthetic signals (terminal resizes, a toggle key, page navigation).
package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"backdrop/internal/controller"
	"backdrop/internal/domain"
	"backdrop/internal/journal"
	"backdrop/internal/policy"
	"backdrop/internal/prefetch"
	"backdrop/internal/signal"
	"backdrop/internal/tui/components"
	"backdrop/internal/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
)

// columnPx converts terminal columns to simulated viewport pixels.
// A terminal cell is roughly 8 px wide at common font sizes.
const columnPx = 8

// widthStep is the px nudge applied by the [ and ] keys.
const widthStep = 64

// --- Simulated environment ---

// simState is the externally-owned observable state the controller
// queries: the simulated viewport width and the current page path.
// Timer goroutines read it, the Update loop writes it.
type simState struct {
	mu    sync.Mutex
	width int
	path  string
}

func (s *simState) Width() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width
}

func (s *simState) SetWidth(px int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if px < widthStep {
		px = widthStep
	}
	s.width = px
}

func (s *simState) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

func (s *simState) SetPath(p string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.path = p
}

// programSurface forwards controller output into the Bubbletea loop.
// The send func is attached after the program is constructed; anything
// applied before that (nothing, in practice) is dropped.
type programSurface struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func (s *programSurface) attach(send func(tea.Msg)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.send = send
}

func (s *programSurface) post(msg tea.Msg) {
	s.mu.Lock()
	send := s.send
	s.mu.Unlock()
	if send == nil {
		return
	}
	// Resolutions are triggered from inside Update (toggle, navigation),
	// and Program.Send blocks until the event loop receives the message.
	// The send must run off the loop's goroutine or the first toggle
	// would wedge the program.
	go send(msg)
}

func (s *programSurface) SetBackground(ref domain.ImageRef) {
	s.post(backgroundAppliedMsg{ref: ref})
}

func (s *programSurface) ClearMask() {
	s.post(maskClearedMsg{})
}

// --- Messages ---

type backgroundAppliedMsg struct {
	ref domain.ImageRef
}

type maskClearedMsg struct{}

// resolutionMsg carries the full controller event for the activity view.
type resolutionMsg struct {
	event controller.Event
}

// controllerStartedMsg is sent once Start (including its synchronous
// startup resolution) has returned.
type controllerStartedMsg struct{}

// --- Options ---

// PreviewOptions configures a preview session.
type PreviewOptions struct {
	Catalog    *domain.Catalog
	Exclusions policy.Exclusions
	Breakpoint int

	// Pages is the set of simulated page paths; ←/→ navigates them.
	Pages []string

	// FixedWidth pins the simulated viewport width (px). When 0, the
	// width tracks the terminal size.
	FixedWidth int

	// Warmer, when set, performs the startup prefetch.
	Warmer *prefetch.Warmer

	// Journal, when set, receives every resolution event.
	Journal journal.Repository

	Logger *log.Logger
}

// --- Model ---

type previewModel struct {
	ctrl  *controller.Controller
	attrs *signal.Attributes
	sim   *simState
	cat   *domain.Catalog

	pages   []string
	pageIdx int

	fixedWidth bool

	current      domain.ImageRef
	maskCleared  bool
	lastEvent    *controller.Event
	events       []controller.Event
	showActivity bool

	spin    spinner.Model
	started bool

	width  int
	height int
}

// maxPreviewEvents bounds the activity list kept in the model.
const maxPreviewEvents = 32

func newPreviewModel(ctrl *controller.Controller, attrs *signal.Attributes, sim *simState, cat *domain.Catalog, pages []string, fixedWidth bool) previewModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	return previewModel{
		ctrl:       ctrl,
		attrs:      attrs,
		sim:        sim,
		cat:        cat,
		pages:      pages,
		fixedWidth: fixedWidth,
		spin:       sp,
	}
}

func (m previewModel) Init() tea.Cmd {
	start := func() tea.Msg {
		m.ctrl.Start(context.Background())
		return controllerStartedMsg{}
	}
	return tea.Batch(m.spin.Tick, start)
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.fixedWidth {
			m.sim.SetWidth(msg.Width * columnPx)
			m.ctrl.OnResize()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case controllerStartedMsg:
		m.started = true
		return m, nil

	case backgroundAppliedMsg:
		m.current = msg.ref
		return m, nil

	case maskClearedMsg:
		m.maskCleared = true
		return m, nil

	case resolutionMsg:
		m.lastEvent = &msg.event
		m.events = append(m.events, msg.event)
		if len(m.events) > maxPreviewEvents {
			m.events = m.events[len(m.events)-maxPreviewEvents:]
		}
		return m, nil

	case spinner.TickMsg:
		if m.started {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m previewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "t":
		// A toggle click flips the mode attribute (firing the attribute
		// observer) and independently schedules the delayed re-read.
		mode := domain.ParseMode(m.attrs.Get(controller.DefaultModeAttribute))
		m.attrs.Set(controller.DefaultModeAttribute, mode.Flip().AttrValue())
		m.ctrl.OnToggle()

	case "left", "h":
		if len(m.pages) > 1 {
			m.pageIdx = (m.pageIdx + len(m.pages) - 1) % len(m.pages)
			m.sim.SetPath(m.pages[m.pageIdx])
			m.ctrl.Reload()
		}

	case "right", "l":
		if len(m.pages) > 1 {
			m.pageIdx = (m.pageIdx + 1) % len(m.pages)
			m.sim.SetPath(m.pages[m.pageIdx])
			m.ctrl.Reload()
		}

	case "[":
		m.sim.SetWidth(m.sim.Width() - widthStep)
		m.ctrl.OnResize()

	case "]":
		m.sim.SetWidth(m.sim.Width() + widthStep)
		m.ctrl.OnResize()

	case "s":
		m.showActivity = !m.showActivity
	}

	return m, nil
}

// --- View ---

func (m previewModel) View() string {
	if m.width == 0 {
		return ""
	}

	mode := m.attrs.Get(controller.DefaultModeAttribute)
	if mode == "" {
		mode = "light"
	}

	header := components.Header(m.width, m.sim.Path(), mode)
	footer := components.Footer(m.width, []components.KeyBinding{
		{Key: "t", Desc: "toggle mode"},
		{Key: "←/→", Desc: "navigate"},
		{Key: "[/]", Desc: "viewport"},
		{Key: "s", Desc: "activity"},
		{Key: "q", Desc: "quit"},
	})
	status := components.StatusBar(m.width, m.statusText(), false)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if status != "" {
		contentHeight -= lipgloss.Height(status)
	}
	if contentHeight < 3 {
		contentHeight = 3
	}

	var body string
	if m.showActivity {
		body = m.activityView(contentHeight)
	} else {
		body = m.backdropView(contentHeight)
	}

	sections := []string{header, body}
	if status != "" {
		sections = append(sections, status)
	}
	sections = append(sections, footer)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m previewModel) statusText() string {
	if !m.started {
		return m.spin.View() + " warming catalog..."
	}
	if m.lastEvent == nil {
		return ""
	}
	e := m.lastEvent
	return fmt.Sprintf("%s  %s  %s/%s  %dpx", e.Trigger, e.Path, e.Mode, e.Class, e.Width)
}

// backdropView paints the simulated page: a filled canvas standing in
// for the background image, with the resolved ref centered on it.
func (m previewModel) backdropView(height int) string {
	label := lipgloss.JoinVertical(lipgloss.Center,
		styles.Value.Render(string(m.current)),
		styles.MutedText.Render(fmt.Sprintf("viewport %d px", m.sim.Width())),
	)

	return lipgloss.NewStyle().
		Width(m.width).
		Height(height).
		Background(m.fillColor()).
		Align(lipgloss.Center, lipgloss.Center).
		Render(label)
}

// fillColor picks the stand-in tone for the applied ref by matching it
// back against the catalog.
func (m previewModel) fillColor() lipgloss.Color {
	switch m.current {
	case m.cat.Lookup(domain.Dark, domain.Desktop), m.cat.Lookup(domain.Dark, domain.Mobile):
		return styles.FillDark
	case m.cat.Lookup(domain.Light, domain.Desktop), m.cat.Lookup(domain.Light, domain.Mobile):
		return styles.FillLight
	default:
		return styles.FillFallback
	}
}

// activityView renders the resolution history: a duration sparkline on
// top, the most recent events beneath it.
func (m previewModel) activityView(height int) string {
	durations := make([]float64, 0, len(m.events))
	for _, e := range m.events {
		durations = append(durations, float64(e.Duration.Microseconds())/1000)
	}

	chart := components.ActivityChart("Resolution time", durations, m.width-4)

	listHeight := height - lipgloss.Height(chart) - 2
	if listHeight < 1 {
		listHeight = 1
	}

	var lines []string
	start := len(m.events) - listHeight
	if start < 0 {
		start = 0
	}
	for _, e := range m.events[start:] {
		line := fmt.Sprintf("%s  %-9s %-18s %s/%s → %s",
			styles.MutedText.Render(e.Time.Format("15:04:05")),
			e.Trigger, e.Path, e.Mode, e.Class, e.Ref)
		lines = append(lines, ansi.Truncate(line, m.width-4, "…"))
	}
	if len(lines) == 0 {
		lines = append(lines, styles.MutedText.Render("no resolutions yet"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		chart,
		"",
		strings.Join(lines, "\n"),
	)

	return lipgloss.NewStyle().
		Width(m.width).
		Height(height).
		Padding(0, 2).
		Render(content)
}

// --- Entry point ---

// RunPreview wires a controller to the simulated environment and runs
// the preview program until the user quits. The controller is stopped
// (clearing its diagnostic trace) on the way out.
func RunPreview(opts PreviewOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	pages := opts.Pages
	if len(pages) == 0 {
		pages = []string{"/", "/posts/hello/", "/about/"}
	}

	sim := &simState{path: pages[0]}
	if opts.FixedWidth > 0 {
		sim.SetWidth(opts.FixedWidth)
	} else {
		sim.SetWidth(1280)
	}

	attrs := signal.NewAttributes()
	attrs.Set(controller.DefaultModeAttribute, domain.Light.AttrValue())

	surf := &programSurface{}

	sink := func(e controller.Event) {
		if opts.Journal != nil {
			entry := journal.FromEvent(e)
			if err := opts.Journal.Save(&entry); err != nil {
				logger.Debug("journal write failed", "error", err)
			}
		}
		surf.post(resolutionMsg{event: e})
	}

	ctrlOpts := controller.Options{
		Catalog:    opts.Catalog,
		Exclusions: opts.Exclusions,
		Attributes: attrs,
		Viewport:   sim,
		Path:       sim.Path,
		Surface:    surf,
		Breakpoint: opts.Breakpoint,
		HasToggle:  true,
		Sink:       sink,
		Logger:     logger,
	}
	if opts.Warmer != nil {
		ctrlOpts.Warmer = opts.Warmer
	}

	ctrl, err := controller.New(ctrlOpts)
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	defer ctrl.Stop()

	model := newPreviewModel(ctrl, attrs, sim, opts.Catalog, pages, opts.FixedWidth > 0)

	p := tea.NewProgram(model, tea.WithAltScreen())
	surf.attach(p.Send)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}

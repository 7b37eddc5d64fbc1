package controller

import (
	"sync"
	"time"

	"backdrop/internal/domain"
)

// Event is one recorded resolution: which signal fired, what was
// sampled, and what came out.
type Event struct {
	Time     time.Time
	Trigger  string
	Path     string
	Mode     string // "dark", "light", or "none" for excluded startup
	Class    string // "desktop" or "mobile"
	Width    int
	Ref      domain.ImageRef
	Duration time.Duration
}

// Trace is a bounded in-memory ring of recent resolution events. It
// backs the preview's activity overlay and is wiped on Stop, matching
// the page-unload diagnostic clear.
type Trace struct {
	mu     sync.Mutex
	max    int
	events []Event
}

// defaultTraceSize bounds the ring; enough for an overlay screenful.
const defaultTraceSize = 64

// NewTrace returns a ring holding at most max events (defaultTraceSize
// when max is non-positive).
func NewTrace(max int) *Trace {
	if max <= 0 {
		max = defaultTraceSize
	}
	return &Trace{max: max}
}

// Add appends an event, evicting the oldest when full.
func (t *Trace) Add(e Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, e)
	if len(t.events) > t.max {
		t.events = t.events[len(t.events)-t.max:]
	}
}

// Events returns a copy of the recorded events, oldest first.
func (t *Trace) Events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}

// Len returns the number of recorded events.
func (t *Trace) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.events)
}

// Clear discards all recorded events.
func (t *Trace) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = nil
}

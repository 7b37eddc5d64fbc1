// Package journal persists resolution events to a local SQLite
// database so a preview session's decisions can be inspected after the
// fact (which signal fired, what was sampled, what was applied).
package journal

import (
	"time"

	"backdrop/internal/controller"
)

// Entry is a persisted resolution event.
type Entry struct {
	ID         int64     `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Trigger    string    `json:"trigger"`
	Path       string    `json:"path"`
	Mode       string    `json:"mode"`
	Class      string    `json:"class"`
	Width      int       `json:"width"`
	Ref        string    `json:"ref"`
	DurationMs int64     `json:"duration_ms"`
}

// FromEvent converts a controller event into a journal entry.
func FromEvent(e controller.Event) Entry {
	return Entry{
		Timestamp:  e.Time,
		Trigger:    e.Trigger,
		Path:       e.Path,
		Mode:       e.Mode,
		Class:      e.Class,
		Width:      e.Width,
		Ref:        string(e.Ref),
		DurationMs: e.Duration.Milliseconds(),
	}
}

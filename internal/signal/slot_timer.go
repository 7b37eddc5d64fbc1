// Package signal provides the two reusable signal-source primitives the
// controller is built on: a single-slot cancellable timer (the debounce
// and delay mechanism) and an observable attribute set (the mode
// attribute, abstracted away from any particular document API).
package signal

import (
	"sync"
	"time"
)

// SlotTimer is a single-slot cancellable timer with cancel-and-replace
// semantics: scheduling a new invocation silently drops any pending one,
// so at most one invocation is ever pending. Used trailing-edge: a
// burst of Schedule calls collapses to one firing, delay after the last
// call.
type SlotTimer struct {
	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

// NewSlotTimer returns an empty timer.
func NewSlotTimer() *SlotTimer {
	return &SlotTimer{}
}

// Schedule arms the timer to run fn after d, cancelling any pending
// invocation first. fn runs on the timer's own goroutine.
func (s *SlotTimer) Schedule(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.gen++
	gen := s.gen

	s.timer = time.AfterFunc(d, func() {
		// A Schedule or Stop racing with an already-fired timer bumps
		// the generation; a stale firing must not run.
		s.mu.Lock()
		stale := gen != s.gen
		if !stale {
			s.timer = nil
		}
		s.mu.Unlock()
		if stale {
			return
		}
		fn()
	})
}

// Stop cancels any pending invocation. Safe to call on an empty timer.
func (s *SlotTimer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
}

// Pending reports whether an invocation is currently armed. Intended for
// tests and diagnostics; the answer can be stale by the time it is used.
func (s *SlotTimer) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

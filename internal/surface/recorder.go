package surface

import (
	"sync"

	"backdrop/internal/domain"
)

// Recorder is an in-memory Surface for tests: it captures every applied
// reference and mask clear, and exposes the final state.
type Recorder struct {
	mu         sync.Mutex
	applied    []domain.ImageRef
	maskClears int
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// SetBackground records ref as the latest applied background.
func (r *Recorder) SetBackground(ref domain.ImageRef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applied = append(r.applied, ref)
}

// ClearMask records a mask clear.
func (r *Recorder) ClearMask() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.maskClears++
}

// Current returns the most recently applied reference ("" if none).
func (r *Recorder) Current() domain.ImageRef {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.applied) == 0 {
		return ""
	}
	return r.applied[len(r.applied)-1]
}

// Applied returns a copy of every applied reference, in order.
func (r *Recorder) Applied() []domain.ImageRef {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ImageRef, len(r.applied))
	copy(out, r.applied)
	return out
}

// MaskClears returns how many times ClearMask was called.
func (r *Recorder) MaskClears() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.maskClears
}

package domain

// Input is the transient value fed into a single resolution. It is built
// fresh for every call; nothing in it is cached between resolutions.
type Input struct {
	// Mode is the current color mode. Only meaningful when HasMode is true.
	Mode ColorMode

	// HasMode is false when the page is excluded from mode-based theming
	// (the startup exact-match exclusion), in which case the resolver
	// applies its neutral rule instead of a mode lookup.
	HasMode bool

	// Class is the device class sampled at resolution time.
	Class DeviceClass

	// Override, when non-empty, wins over every other signal.
	Override ImageRef
}

// --- Ports ---
//
// The controller never owns the signals it reacts to. Each port is a
// live query into externally-owned state, re-read on every resolution.

// Viewport yields the current viewport width in px.
type Viewport interface {
	Width() int
}

// Surface is the display the resolved background is pushed onto.
type Surface interface {
	// SetBackground makes ref the active background. Re-applying the
	// same ref is harmless.
	SetBackground(ref ImageRef)

	// ClearMask clears the visual mask, if the surface has one.
	// Surfaces without a mask treat this as a no-op.
	ClearMask()
}

// WidthFunc adapts a function to the Viewport interface.
type WidthFunc func() int

func (f WidthFunc) Width() int { return f() }

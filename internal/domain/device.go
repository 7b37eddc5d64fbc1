package domain

// DeviceClass is the coarse viewport bucket a page is rendered for.
type DeviceClass int

const (
	Desktop DeviceClass = iota
	Mobile
)

// DefaultBreakpoint is the viewport width (in px) below which a page is
// classified as Mobile. Matches the common CSS tablet breakpoint.
const DefaultBreakpoint = 768

// ClassifyWidth buckets a viewport width against a breakpoint. A width
// strictly below the breakpoint is Mobile; everything else is Desktop.
// A non-positive breakpoint falls back to DefaultBreakpoint.
//
// Classification is always performed at resolution time from a live
// width query; callers must not cache the result.
func ClassifyWidth(px, breakpoint int) DeviceClass {
	if breakpoint <= 0 {
		breakpoint = DefaultBreakpoint
	}
	if px < breakpoint {
		return Mobile
	}
	return Desktop
}

// String returns "mobile" or "desktop".
func (d DeviceClass) String() string {
	if d == Mobile {
		return "mobile"
	}
	return "desktop"
}

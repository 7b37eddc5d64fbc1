// Package domain defines the core types of the backdrop controller:
// color modes, device classes, image references, and the immutable
// image catalog, plus the ports the controller consumes to observe
// its environment and push results out.
package domain

// ColorMode is the user-selected theme.
type ColorMode int

const (
	Light ColorMode = iota
	Dark
)

// modeAttrDark is the attribute value that selects dark mode.
// Any other value (including empty) is treated as light.
const modeAttrDark = "dark"

// ParseMode interprets a raw attribute value as a ColorMode.
// Unrecognized values default to Light.
func ParseMode(value string) ColorMode {
	if value == modeAttrDark {
		return Dark
	}
	return Light
}

// String returns the attribute-value form of the mode ("dark" or "light").
func (m ColorMode) String() string {
	if m == Dark {
		return "dark"
	}
	return "light"
}

// AttrValue returns the value to write into the mode attribute for this mode.
func (m ColorMode) AttrValue() string { return m.String() }

// Flip returns the opposite mode.
func (m ColorMode) Flip() ColorMode {
	if m == Dark {
		return Light
	}
	return Dark
}

package components

import (
	"strings"

	"backdrop/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// KeyBinding is one entry in the footer help bar.
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer renders the key help bar pinned to the bottom of the preview.
// Bindings are joined with a dot separator and trimmed from the right
// when the terminal is too narrow to show them all.
func Footer(width int, bindings []KeyBinding) string {
	if width < 10 || len(bindings) == 0 {
		return ""
	}

	sep := styles.KeySepStyle.Render(" · ")
	innerWidth := width - 4

	var parts []string
	used := 0
	for i, b := range bindings {
		part := styles.FormatKeyBinding(b.Key, b.Desc)
		need := lipgloss.Width(part)
		if i > 0 {
			need += lipgloss.Width(sep)
		}
		if used+need > innerWidth && len(parts) > 0 {
			break
		}
		parts = append(parts, part)
		used += need
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderTop(true).
		BorderForeground(styles.DimGray).
		Render(strings.Join(parts, sep))
}

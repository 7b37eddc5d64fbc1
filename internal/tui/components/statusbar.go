package components

import (
	"backdrop/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// StatusBar renders the one-line status strip between the backdrop view
// and the footer: the latest resolution summary, or an error. The
// message is truncated rather than wrapped so the bar never grows past
// one row.
func StatusBar(width int, message string, isError bool) string {
	if message == "" || width < 10 {
		return ""
	}

	style := styles.MutedText
	if isError {
		style = styles.ErrorText
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		Render(style.Render(ansi.Truncate(message, width-4, "…")))
}

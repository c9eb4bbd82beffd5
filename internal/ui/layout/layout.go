package layout

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/edslab/mineraliz/internal/ui/theme"
)

const (
	// DefaultWidth is the report width when the terminal size is unknown.
	DefaultWidth = 72
	MinWidth     = 40
)

// ClampWidth bounds a terminal width to something a report can use.
func ClampWidth(width int) int {
	if width <= 0 {
		return DefaultWidth
	}
	if width < MinWidth {
		return MinWidth
	}
	return width
}

// RenderHeader renders a title on the left and detail on the right.
func RenderHeader(title, detail string, width int) string {
	left := theme.Title.Render(title)
	right := theme.Hint.Render(detail)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// RenderCard frames content in a bordered card of the given outer width.
func RenderCard(content string, width int) string {
	inner := width - 2
	if inner < 0 {
		inner = 0
	}
	return theme.Card.Width(inner).Render(content)
}

// KeyValues renders aligned "key  value" lines.
func KeyValues(pairs [][2]string) string {
	keyWidth := 0
	for _, p := range pairs {
		keyWidth = max(keyWidth, lipgloss.Width(p[0]))
	}
	lines := make([]string, len(pairs))
	for i, p := range pairs {
		key := p[0] + strings.Repeat(" ", keyWidth-lipgloss.Width(p[0]))
		lines[i] = theme.Hint.Render(key) + "  " + theme.Body.Render(p[1])
	}
	return strings.Join(lines, "\n")
}

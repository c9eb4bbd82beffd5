package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/edslab/mineraliz/internal/ui/theme"
)

// ShareBar displays one label's share of a batch as a horizontal bar.
type ShareBar struct {
	Label      string
	LabelWidth int
	Count      int
	Share      float64
	Width      int
	// Dim renders the label in the unlabeled style.
	Dim bool
}

// View renders the bar.
func (b ShareBar) View() string {
	style := theme.Label
	if b.Dim {
		style = theme.Unlabeled
	}
	label := b.Label
	if pad := b.LabelWidth - lipgloss.Width(label); pad > 0 {
		label += strings.Repeat(" ", pad)
	}
	result := style.Render(label) + "  "

	suffix := fmt.Sprintf("  %6d %5.1f%%", b.Count, b.Share*100)

	barWidth := b.Width - lipgloss.Width(result) - len(suffix)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * b.Share)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	empty := barWidth - filled

	result += theme.BarFilled.Render(strings.Repeat(" ", filled)) +
		theme.BarEmpty.Render(strings.Repeat(" ", empty))

	return result + theme.Count.Render(suffix)
}

// Package report renders classification results for the terminal.
package report

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/edslab/mineraliz/internal/ui/components"
	"github.com/edslab/mineraliz/internal/ui/layout"
	"github.com/edslab/mineraliz/internal/ui/theme"
)

// Batch is the data a batch summary shows.
type Batch struct {
	Scheme    string
	Title     string
	Rows      int
	Unlabeled int
	Counts    map[string]int
	Duration  time.Duration
	// IsUnlabeled marks labels drawn in the unlabeled style.
	IsUnlabeled func(string) bool
}

// Summary renders a batch as a header, key figures and one bar per label,
// most frequent label first.
func Summary(b Batch, width int) string {
	width = layout.ClampWidth(width)

	var sb strings.Builder
	sb.WriteString(layout.RenderHeader("Scheme "+b.Scheme, b.Title, width))
	sb.WriteString("\n\n")
	sb.WriteString(layout.KeyValues([][2]string{
		{"rows", humanize.Comma(int64(b.Rows))},
		{"labels", fmt.Sprint(len(b.Counts))},
		{"unlabeled", fmt.Sprintf("%s (%.1f%%)", humanize.Comma(int64(b.Unlabeled)), percent(b.Unlabeled, b.Rows))},
		{"elapsed", b.Duration.Round(time.Microsecond).String()},
	}))
	sb.WriteString("\n\n")

	labels := SortedLabels(b.Counts)
	labelWidth := 0
	for _, l := range labels {
		labelWidth = max(labelWidth, len(l))
	}
	for _, l := range labels {
		bar := components.ShareBar{
			Label:      l,
			LabelWidth: labelWidth,
			Count:      b.Counts[l],
			Share:      percent(b.Counts[l], b.Rows) / 100,
			Width:      width,
			Dim:        b.IsUnlabeled != nil && b.IsUnlabeled(l),
		}
		sb.WriteString(bar.View())
		sb.WriteString("\n")
	}
	return sb.String()
}

// SortedLabels orders labels by descending count, then by name.
func SortedLabels(counts map[string]int) []string {
	labels := make([]string, 0, len(counts))
	for l := range counts {
		labels = append(labels, l)
	}
	slices.SortFunc(labels, func(a, b string) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return labels
}

// Step is one line of an explanation.
type Step struct {
	Text    string
	Matched bool
}

// Explanation renders the label of one row and the steps that led to it.
func Explanation(title, label string, steps []Step, width int) string {
	width = layout.ClampWidth(width)
	lines := make([]string, 0, len(steps)+2)
	lines = append(lines, theme.Title.Render(title)+"  "+theme.Label.Render(label), "")
	for _, s := range steps {
		mark := theme.Hint.Render("·")
		if s.Matched {
			mark = theme.Matched.Render("✓")
		}
		lines = append(lines, mark+" "+theme.Body.Render(s.Text))
	}
	return layout.RenderCard(strings.Join(lines, "\n"), width)
}

// Plain strips terminal styling from rendered output.
func Plain(s string) string { return ansi.Strip(s) }

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) * 100 / float64(total)
}

package components

import (
	"fmt"
	"strings"

	"github.com/MarcoCDuran/FinancialHealth/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a plain block progress bar with a trailing percentage.
// Used by the loading screen.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	filledStyle := lipgloss.NewStyle().Foreground(t.Accent)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	pctStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))

	return b.String() + " " + pctStyle.Render(fmt.Sprintf("%.0f%%", pct*100))
}

// LabeledBar renders a left-aligned label, a solid-fill bar, and the
// percentage. The bar is clamped to 100% but the printed percentage is not,
// so an exceeded limit still reads over 100.
func LabeledBar(label string, pct float64, fill lipgloss.Color, labelW, barW int) string {
	t := theme.Active

	if pct < 0 {
		pct = 0
	}
	shown := pct
	if shown > 1 {
		shown = 1
	}

	bar := progress.New(
		progress.WithSolidFill(string(fill)),
		progress.WithWidth(barW),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	pctStyle := lipgloss.NewStyle().Foreground(fill).Bold(true)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		" " +
		bar.ViewAs(shown) +
		" " +
		pctStyle.Render(fmt.Sprintf("%4.0f%%", pct*100))
}

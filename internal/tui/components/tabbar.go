package components

import (
	"strings"

	"github.com/MarcoCDuran/FinancialHealth/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar. The shortcut key is the
// first letter of the name.
type Tab struct {
	Name string
	Key  rune
}

// Tabs defines all dashboard tabs in display order.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o'},
	{Name: "Projections", Key: 'p'},
	{Name: "Limits", Key: 'l'},
	{Name: "Goals", Key: 'g'},
}

// TabVisualWidth returns the rendered cell width of one tab. Mouse hitboxes
// in the app must match this exactly. An inactive tab renders its shortcut
// letter in brackets, which adds two cells.
func TabVisualWidth(tab Tab, active bool) int {
	if active {
		return len(tab.Name) + 2 // one space of padding each side
	}
	return len(tab.Name) + 4 // padding + brackets around the shortcut
}

// RenderTabBar renders the single-line tab bar with the given active index.
// Tabs are separated by one vertical bar cell.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim)

	var b strings.Builder
	for i, tab := range Tabs {
		if i > 0 {
			b.WriteString(dimStyle.Render("│"))
		}
		if i == activeIdx {
			b.WriteString(" ")
			b.WriteString(activeStyle.Render(tab.Name))
			b.WriteString(" ")
		} else {
			b.WriteString(" ")
			b.WriteString(dimStyle.Render("["))
			b.WriteString(keyStyle.Render(tab.Name[:1]))
			b.WriteString(dimStyle.Render("]"))
			b.WriteString(inactiveStyle.Render(tab.Name[1:]))
			b.WriteString(" ")
		}
	}

	bar := b.String()
	pad := width - lipgloss.Width(bar)
	if pad > 0 {
		bar += strings.Repeat(" ", pad)
	}
	return bar
}

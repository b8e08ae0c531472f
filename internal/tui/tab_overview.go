package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MarcoCDuran/FinancialHealth/internal/cli"
	"github.com/MarcoCDuran/FinancialHealth/internal/tui/components"
	"github.com/MarcoCDuran/FinancialHealth/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	sum := a.dash.Summary
	health := a.dash.Health
	var b strings.Builder

	// Row 1: Metric cards
	balanceTone := t.Green
	if sum.PartialBalance.IsNegative() {
		balanceTone = t.Red
	}
	healthNote := string(health.Level)
	if health.LowConfidence {
		healthNote += " · low confidence"
	}

	metrics := []components.Metric{
		{Label: "Income", Value: cli.FormatMoney(sum.TotalIncome), Note: "this month", Tone: t.Green},
		{Label: "Expenses", Value: cli.FormatMoney(sum.TotalExpenses), Note: "this month", Tone: t.Orange},
		{Label: "Balance", Value: cli.FormatSignedMoney(sum.PartialBalance), Note: "income - expenses", Tone: balanceTone},
		{Label: "Health", Value: fmt.Sprintf("%.0f/100", health.TotalScore), Note: healthNote, Tone: levelColor(health.Level)},
	}
	b.WriteString(components.MetricRow(metrics, cw))
	b.WriteString("\n")

	// Row 2: expenses by category + projected savings
	halves := components.LayoutRow(cw, 2)
	catCard := components.ContentCard("Expenses by Category",
		a.renderCategoryBars(components.CardInnerWidth(halves[0])), halves[0])
	savCard := components.ContentCard("Projected Savings",
		a.renderSavingsRows(), halves[1])

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Expenses by Category",
			a.renderCategoryBars(components.CardInnerWidth(cw)), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Projected Savings", a.renderSavingsRows(), cw))
	} else {
		b.WriteString(components.CardRow([]string{catCard, savCard}))
	}
	b.WriteString("\n")

	// Row 3: Recommendations
	b.WriteString(components.ContentCard("Recommendations",
		a.renderRecommendations(components.CardInnerWidth(cw)), cw))

	return b.String()
}

// renderCategoryBars shows this month's spend per category as horizontal
// bars, largest first.
func (a App) renderCategoryBars(innerW int) string {
	t := theme.Active

	type catSpend struct {
		name  string
		value float64
	}
	var cats []catSpend
	for name, amount := range a.dash.Summary.ExpensesByCategory {
		f, _ := amount.Float64()
		cats = append(cats, catSpend{name: name, value: f})
	}
	if len(cats) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("No expenses yet this month.")
	}
	sort.Slice(cats, func(i, j int) bool {
		if cats[i].value != cats[j].value {
			return cats[i].value > cats[j].value
		}
		return cats[i].name < cats[j].name
	})
	if len(cats) > 6 {
		cats = cats[:6]
	}

	maxVal := cats[0].value
	if maxVal <= 0 {
		maxVal = 1
	}

	nameW := 14
	amountW := 13
	barMax := innerW - nameW - amountW - 2
	if barMax < 1 {
		barMax = 1
	}

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	barStyle := lipgloss.NewStyle().Foreground(t.Orange)

	var b strings.Builder
	for _, c := range cats {
		barLen := int(c.value / maxVal * float64(barMax))
		fmt.Fprintf(&b, "%s %s %s\n",
			nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(c.name, nameW))),
			amountStyle.Render(fmt.Sprintf("%*s", amountW, formatCompactMoney(c.value))),
			barStyle.Render(strings.Repeat("█", barLen)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderSavingsRows lists the projected savings per horizon month.
func (a App) renderSavingsRows() string {
	t := theme.Active

	keys := monthKeysOf(a.dash.SavingsCapacity)
	if len(keys) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("No projection data.")
	}

	monthStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	posStyle := lipgloss.NewStyle().Foreground(t.Green)
	negStyle := lipgloss.NewStyle().Foreground(t.Red)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	for _, k := range keys {
		sc := a.dash.SavingsCapacity[k]
		amountStyle := posStyle
		if sc.ProjectedSavings.IsNegative() {
			amountStyle = negStyle
		}
		note := fmt.Sprintf("(%s rate)", cli.FormatPercent(sc.SavingsRate))
		if sc.LowConfidence {
			note = "(low confidence)"
		}
		fmt.Fprintf(&b, "%s  %s  %s\n",
			monthStyle.Render(fmt.Sprintf("%-9s", cli.FormatMonthKey(k))),
			amountStyle.Render(fmt.Sprintf("%14s", cli.FormatSignedMoney(sc.ProjectedSavings))),
			dimStyle.Render(note))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderRecommendations prints the engine's advice list, wrapped to the card.
func (a App) renderRecommendations(innerW int) string {
	t := theme.Active
	recs := a.dash.Health.Recommendations
	if len(recs) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("Nothing to flag.")
	}

	bulletStyle := lipgloss.NewStyle().Foreground(t.Accent)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	var b strings.Builder
	for _, rec := range recs {
		lines := wrapText(rec, innerW-2)
		for j, line := range lines {
			if j == 0 {
				b.WriteString(bulletStyle.Render("• "))
			} else {
				b.WriteString("  ")
			}
			b.WriteString(textStyle.Render(line))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatCompactMoney renders a float as currency without decimal cents,
// for tight bar labels.
func formatCompactMoney(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%.0f", v)
	// Insert thousands separators
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := "R$ " + strings.Join(parts, ".")
	if neg {
		out = "-" + out
	}
	return out
}

// wrapText splits s into lines no wider than width, breaking on spaces.
func wrapText(s string, width int) []string {
	if width < 10 {
		width = 10
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	lines = append(lines, line)
	return lines
}

package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MarcoCDuran/FinancialHealth/internal/cli"
	"github.com/MarcoCDuran/FinancialHealth/internal/tui/components"
	"github.com/MarcoCDuran/FinancialHealth/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

func (a App) renderProjectionsTab(cw int) string {
	t := theme.Active
	var b strings.Builder

	keys := monthKeysOf(a.proj.SavingsCapacity)
	if len(keys) == 0 {
		return components.ContentCard("Projections",
			lipgloss.NewStyle().Foreground(t.TextDim).Render("No projection data."), cw)
	}

	// Row 1: projected expenses chart
	vals := make([]float64, len(keys))
	labels := make([]string, len(keys))
	for i, k := range keys {
		f, _ := a.proj.Expenses[k].ProjectedTotal.Float64()
		vals[i] = f
		labels[i] = shortMonthKey(k)
	}
	chartH := 9
	if a.isCompactLayout() {
		chartH = 6
	}
	b.WriteString(components.ContentCard(
		fmt.Sprintf("Projected Expenses (%d months)", len(keys)),
		components.BarChart(vals, labels, t.Orange, components.CardInnerWidth(cw), chartH),
		cw,
	))
	b.WriteString("\n")

	// Row 2: month by month table
	b.WriteString(components.ContentCard("Month by Month", a.renderProjectionRows(), cw))
	b.WriteString("\n")

	// Row 3: where the projected spend goes (first horizon month)
	first := a.proj.Expenses[keys[0]]
	if len(first.ByCategory) > 0 {
		b.WriteString(components.ContentCard(
			fmt.Sprintf("Projected Spend by Category (%s)", cli.FormatMonthKey(keys[0])),
			a.renderProjectedCategoryBars(first.ByCategory, components.CardInnerWidth(cw)),
			cw,
		))
	}

	return b.String()
}

func (a App) renderProjectionRows() string {
	t := theme.Active

	headStyle := lipgloss.NewStyle().Foreground(t.TextDim).Bold(true)
	monthStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	incomeStyle := lipgloss.NewStyle().Foreground(t.Green)
	expenseStyle := lipgloss.NewStyle().Foreground(t.Orange)
	posStyle := lipgloss.NewStyle().Foreground(t.Green)
	negStyle := lipgloss.NewStyle().Foreground(t.Red)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", headStyle.Render(fmt.Sprintf(
		"%-9s  %14s  %14s  %14s  %7s",
		"Month", "Income", "Expenses", "Savings", "Rate")))

	for _, k := range monthKeysOf(a.proj.SavingsCapacity) {
		sc := a.proj.SavingsCapacity[k]

		savStyle := posStyle
		if sc.ProjectedSavings.IsNegative() {
			savStyle = negStyle
		}
		rate := cli.FormatPercent(sc.SavingsRate)
		marker := ""
		if sc.LowConfidence {
			marker = dimStyle.Render("  low confidence")
		}

		fmt.Fprintf(&b, "%s  %s  %s  %s  %s%s\n",
			monthStyle.Render(fmt.Sprintf("%-9s", cli.FormatMonthKey(k))),
			incomeStyle.Render(fmt.Sprintf("%14s", cli.FormatMoney(sc.ProjectedIncome))),
			expenseStyle.Render(fmt.Sprintf("%14s", cli.FormatMoney(sc.ProjectedExpenses))),
			savStyle.Render(fmt.Sprintf("%14s", cli.FormatSignedMoney(sc.ProjectedSavings))),
			dimStyle.Render(fmt.Sprintf("%7s", rate)),
			marker)
	}

	avg := a.proj.AvgMonthlySavings()
	avgStyle := posStyle
	if avg.IsNegative() {
		avgStyle = negStyle
	}
	fmt.Fprintf(&b, "%s  %s",
		dimStyle.Render(fmt.Sprintf("%-9s", "avg")),
		avgStyle.Render(fmt.Sprintf("%46s", cli.FormatSignedMoney(avg))))

	return b.String()
}

// renderProjectedCategoryBars shows one month's projected expense split,
// resolved to category names.
func (a App) renderProjectedCategoryBars(byCategory map[string]decimal.Decimal, innerW int) string {
	t := theme.Active

	type catProj struct {
		name  string
		value float64
	}
	var cats []catProj
	for id, amount := range byCategory {
		name := id
		if c, ok := a.categories[id]; ok {
			name = c.Name
		}
		f, _ := amount.Float64()
		cats = append(cats, catProj{name: name, value: f})
	}
	sort.Slice(cats, func(i, j int) bool {
		if cats[i].value != cats[j].value {
			return cats[i].value > cats[j].value
		}
		return cats[i].name < cats[j].name
	})
	if len(cats) > 8 {
		cats = cats[:8]
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
	barStyle := lipgloss.NewStyle().Foreground(t.Blue)

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

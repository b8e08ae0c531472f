package tui

import (
	"fmt"
	"strings"

	"github.com/MarcoCDuran/FinancialHealth/internal/cli"
	"github.com/MarcoCDuran/FinancialHealth/internal/model"
	"github.com/MarcoCDuran/FinancialHealth/internal/tui/components"
	"github.com/MarcoCDuran/FinancialHealth/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderLimitsTab(cw int) string {
	t := theme.Active
	limits := a.dash.Limits

	if len(limits) == 0 {
		body := lipgloss.NewStyle().Foreground(t.TextDim).
			Render("No spending limits set.\nCreate one via the API or load the sample data.")
		return components.ContentCard("Spending Limits", body, cw)
	}

	innerW := components.CardInnerWidth(cw)

	nameW := 0
	for _, ls := range limits {
		if len(ls.Category.Name) > nameW {
			nameW = len(ls.Category.Name)
		}
	}
	if nameW > 20 {
		nameW = 20
	}

	barW := innerW - nameW - 40
	if barW < 10 {
		barW = 10
	}

	detailStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	var b strings.Builder
	withinCount := 0

	for i, ls := range limits {
		if i > 0 {
			b.WriteString("\n")
		}
		if ls.State != model.LimitExceeded {
			withinCount++
		}

		fill := limitColor(ls.State)
		b.WriteString(components.LabeledBar(
			truncStr(ls.Category.Name, nameW), ls.UsedPercent/100, fill, nameW, barW))
		b.WriteString("  ")
		b.WriteString(cli.RenderLimitState(ls.State))
		b.WriteString("\n")
		b.WriteString(detailStyle.Render(fmt.Sprintf("%*s %s of %s",
			nameW, "",
			cli.FormatMoney(ls.CurrentSpent),
			cli.FormatMoney(ls.Limit.MonthlyLimit))))
		b.WriteString("\n")
	}

	title := fmt.Sprintf("Spending Limits (%s) · %d of %d within limit",
		a.asOf.Format("January 2006"), withinCount, len(limits))
	return components.ContentCard(title, strings.TrimRight(b.String(), "\n"), cw)
}

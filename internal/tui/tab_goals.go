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

func (a App) renderGoalsTab(cw int) string {
	t := theme.Active
	goals := a.dash.Goals

	if len(goals) == 0 {
		body := lipgloss.NewStyle().Foreground(t.TextDim).
			Render("No savings goals yet.\nCreate one via the API or load the sample data.")
		return components.ContentCard("Goals", body, cw)
	}

	var b strings.Builder
	for i, gp := range goals {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(a.renderGoalCard(gp, cw))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a App) renderGoalCard(gp model.GoalProgress, cw int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(cw)

	amountStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	detailStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	neededStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	barW := innerW - 30
	if barW < 10 {
		barW = 10
	}

	var b strings.Builder
	b.WriteString(components.LabeledBar("funded", gp.ProgressPercent/100, goalColor(gp.State), 6, barW))
	b.WriteString("  ")
	b.WriteString(cli.RenderGoalState(gp.State))
	b.WriteString("\n")

	b.WriteString(amountStyle.Render(fmt.Sprintf("%s of %s",
		cli.FormatMoney(gp.Goal.CurrentAmount),
		cli.FormatMoney(gp.Goal.TargetAmount))))
	b.WriteString("\n")

	switch {
	case gp.State == model.GoalCompleted:
		b.WriteString(detailStyle.Render("Target reached."))
	case gp.State == model.GoalOverdue:
		b.WriteString(detailStyle.Render(fmt.Sprintf("Due %s (past) · still missing ", cli.FormatDate(gp.Goal.TargetDate))))
		b.WriteString(neededStyle.Render(cli.FormatMoney(gp.MonthlySavingsNeeded)))
	default:
		b.WriteString(detailStyle.Render(fmt.Sprintf("Due %s · %s left · needs ",
			cli.FormatDate(gp.Goal.TargetDate), cli.FormatMonths(gp.MonthsRemaining))))
		b.WriteString(neededStyle.Render(cli.FormatMoney(gp.MonthlySavingsNeeded) + "/mo"))
		if !gp.Achievable {
			b.WriteString(detailStyle.Render(" · above projected capacity"))
		}
	}

	title := gp.Goal.Name
	if gp.Goal.Description != "" {
		title += " · " + truncStr(gp.Goal.Description, innerW-len(gp.Goal.Name)-3)
	}
	return components.ContentCard(title, b.String(), cw)
}

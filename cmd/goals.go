package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MarcoCDuran/FinancialHealth/internal/cli"
	"github.com/MarcoCDuran/FinancialHealth/internal/engine"
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Goal progress and feasibility",
	RunE:  runGoals,
}

func init() {
	rootCmd.AddCommand(goalsCmd)
}

func runGoals(_ *cobra.Command, _ []string) error {
	snap, params, asOf, err := loadSnapshot()
	if err != nil {
		return err
	}

	if len(snap.Goals) == 0 {
		fmt.Println("\n  No goals defined.")
		return nil
	}

	proj := engine.ComputeProjections(snap, asOf, params.ProjectionMonths, params)
	capacity := proj.AvgMonthlySavings()
	progress := engine.EvaluateGoals(snap.Goals, asOf, capacity)

	fmt.Println()
	fmt.Println(cli.RenderTitle("GOALS"))
	fmt.Println()
	fmt.Printf("  Projected savings capacity: %s/month\n\n", cli.FormatMoney(capacity))

	rows := make([][]string, 0, len(progress))
	for _, g := range progress {
		rows = append(rows, []string{
			g.Goal.Name,
			cli.FormatMoney(g.Goal.CurrentAmount) + " / " + cli.FormatMoney(g.Goal.TargetAmount),
			cli.FormatPercent(g.ProgressPercent),
			cli.FormatDate(g.Goal.TargetDate),
			cli.FormatMonths(g.MonthsRemaining),
			cli.FormatMoney(g.MonthlySavingsNeeded),
			cli.RenderGoalState(g.State),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Goal", "Funded", "Progress", "Target", "Left", "Needed/mo", "Status"},
		Rows:    rows,
	}))
	fmt.Println()

	return nil
}

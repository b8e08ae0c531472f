package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MarcoCDuran/FinancialHealth/internal/cli"
	"github.com/MarcoCDuran/FinancialHealth/internal/engine"
)

var limitsCmd = &cobra.Command{
	Use:   "limits",
	Short: "Spending limit usage for the current month",
	RunE:  runLimits,
}

func init() {
	rootCmd.AddCommand(limitsCmd)
}

func runLimits(_ *cobra.Command, _ []string) error {
	snap, params, asOf, err := loadSnapshot()
	if err != nil {
		return err
	}

	if len(snap.Limits) == 0 {
		fmt.Println("\n  No spending limits configured.")
		return nil
	}

	statuses := engine.EvaluateLimits(snap, asOf, params)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SPENDING LIMITS  %s", asOf.Format("Jan 2006"))))
	fmt.Println()

	rows := make([][]string, 0, len(statuses))
	for _, l := range statuses {
		rows = append(rows, []string{
			l.Category.Name,
			cli.FormatMoney(l.CurrentSpent),
			cli.FormatMoney(l.Limit.MonthlyLimit),
			cli.RenderUsageBar(l.UsedPercent, l.State, 14),
			cli.RenderLimitState(l.State),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Category", "Spent", "Limit", "Usage", "Status"},
		Rows:    rows,
	}))
	fmt.Println()

	return nil
}

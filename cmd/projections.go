package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/MarcoCDuran/FinancialHealth/internal/cli"
	"github.com/MarcoCDuran/FinancialHealth/internal/engine"
)

var flagProjectionMonths int

var projectionsCmd = &cobra.Command{
	Use:   "projections",
	Short: "Projected income, expenses, and savings capacity",
	RunE:  runProjections,
}

func init() {
	projectionsCmd.Flags().IntVarP(&flagProjectionMonths, "months", "n", 0, "Projection horizon in months (default from config)")
	rootCmd.AddCommand(projectionsCmd)
}

func runProjections(_ *cobra.Command, _ []string) error {
	snap, params, asOf, err := loadSnapshot()
	if err != nil {
		return err
	}

	months := params.ProjectionMonths
	if flagProjectionMonths > 0 {
		months = flagProjectionMonths
	}

	proj := engine.ComputeProjections(snap, asOf, months, params)

	keys := make([]string, 0, len(proj.SavingsCapacity))
	for key := range proj.SavingsCapacity {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PROJECTIONS  Next %dmo", months)))
	fmt.Println()

	rows := make([][]string, 0, len(keys))
	lowConfidence := false
	for _, key := range keys {
		sc := proj.SavingsCapacity[key]
		if sc.LowConfidence {
			lowConfidence = true
		}
		rows = append(rows, []string{
			cli.FormatMonthKey(key),
			cli.FormatMoney(sc.ProjectedIncome),
			cli.FormatMoney(sc.ProjectedExpenses),
			cli.FormatSignedMoney(sc.ProjectedSavings),
			cli.FormatPercent(sc.SavingsRate),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Income", "Expenses", "Savings", "Rate"},
		Rows:    rows,
	}))
	fmt.Println()

	// Category breakdown for the first projected month.
	if len(keys) > 0 {
		exp := proj.Expenses[keys[0]]
		if len(exp.ByCategory) > 0 {
			fmt.Printf("  Expected expenses in %s\n", cli.FormatMonthKey(keys[0]))
			names := make([]string, 0, len(exp.ByCategory))
			maxSpend := 0.0
			for name, amount := range exp.ByCategory {
				names = append(names, name)
				if f, _ := amount.Float64(); f > maxSpend {
					maxSpend = f
				}
			}
			sort.Strings(names)
			for _, name := range names {
				f, _ := exp.ByCategory[name].Float64()
				fmt.Println(cli.RenderHorizontalBar(name, f, maxSpend, 30))
			}
			fmt.Println()
		}
	}

	if lowConfidence {
		fmt.Println("  Projections carry low confidence: not enough income history.")
		fmt.Println()
	}

	return nil
}

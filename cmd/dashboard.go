package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/MarcoCDuran/FinancialHealth/internal/cli"
	"github.com/MarcoCDuran/FinancialHealth/internal/engine"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Current month summary, health score, and alerts",
	RunE:  runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(_ *cobra.Command, _ []string) error {
	snap, params, asOf, err := loadSnapshot()
	if err != nil {
		return err
	}

	d := engine.ComputeDashboard(snap, asOf, params)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("FINANCIAL DASHBOARD  %s", asOf.Format("Jan 2006"))))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Title: "This month",
		Rows: [][]string{
			{"Income", cli.FormatMoney(d.Summary.TotalIncome)},
			{"Expenses", cli.FormatMoney(d.Summary.TotalExpenses)},
			{"Balance", cli.FormatSignedMoney(d.Summary.PartialBalance)},
		},
	}))
	fmt.Println()

	fmt.Printf("  Health: %s %s\n", cli.FormatScore(d.Health.TotalScore, string(d.Health.Level)), cli.RenderHealthLevel(d.Health.Level))
	if d.Health.LowConfidence {
		fmt.Println("  (low confidence: little or no income history)")
	}
	fmt.Println()

	if len(d.Summary.ExpensesByCategory) > 0 {
		fmt.Println("  Expenses by category")
		names := make([]string, 0, len(d.Summary.ExpensesByCategory))
		maxSpend := 0.0
		for name, amount := range d.Summary.ExpensesByCategory {
			names = append(names, name)
			if f, _ := amount.Float64(); f > maxSpend {
				maxSpend = f
			}
		}
		sort.Strings(names)
		for _, name := range names {
			f, _ := d.Summary.ExpensesByCategory[name].Float64()
			fmt.Println(cli.RenderHorizontalBar(name, f, maxSpend, 30))
		}
		fmt.Println()
	}

	if len(d.Limits) > 0 {
		rows := make([][]string, 0, len(d.Limits))
		for _, l := range d.Limits {
			rows = append(rows, []string{
				l.Category.Name,
				cli.FormatMoney(l.CurrentSpent),
				cli.FormatMoney(l.Limit.MonthlyLimit),
				cli.RenderUsageBar(l.UsedPercent, l.State, 10),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Spending limits",
			Headers: []string{"Category", "Spent", "Limit", "Usage"},
			Rows:    rows,
		}))
		fmt.Println()
	}

	if len(d.Goals) > 0 {
		rows := make([][]string, 0, len(d.Goals))
		for _, g := range d.Goals {
			rows = append(rows, []string{
				g.Goal.Name,
				cli.FormatPercent(g.ProgressPercent),
				cli.FormatMoney(g.MonthlySavingsNeeded),
				cli.RenderGoalState(g.State),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Goals",
			Headers: []string{"Goal", "Progress", "Needed/mo", "Status"},
			Rows:    rows,
		}))
		fmt.Println()
	}

	if len(d.Health.Recommendations) > 0 {
		fmt.Println("  Recommendations")
		for _, rec := range d.Health.Recommendations {
			fmt.Printf("  • %s\n", rec)
		}
		fmt.Println()
	}

	return nil
}

// Package cmd implements the financialhealth CLI commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MarcoCDuran/FinancialHealth/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Database: %s\n", cfg.DatabasePath())
	fmt.Printf("    Currency: %s\n", cfg.General.Currency)
	fmt.Println()

	fmt.Println("  [Engine]")
	fmt.Printf("    Lookback months:       %d\n", cfg.Engine.LookbackMonths)
	fmt.Printf("    Recurrence min months: %d\n", cfg.Engine.RecurrenceMinMonths)
	fmt.Printf("    Recurrence tolerance:  ±%.0f%%\n", cfg.Engine.RecurrenceTolerance*100)
	fmt.Printf("    Blend alpha:           %.2f\n", cfg.Engine.BlendAlpha)
	fmt.Printf("    Projection months:     %d\n", cfg.Engine.ProjectionMonths)
	fmt.Printf("    Limit warning ratio:   %.0f%%\n", cfg.Engine.LimitWarningRatio*100)
	fmt.Printf("    Health weights:        savings %.2f, limits %.2f, goals %.2f\n",
		cfg.Engine.WeightSavings, cfg.Engine.WeightLimits, cfg.Engine.WeightGoals)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address: %s\n", cfg.Server.Addr)
	fmt.Println()

	fmt.Println("  Edit the config file directly to change these values.")
	return nil
}

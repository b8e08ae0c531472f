package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample data into an empty database",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(_ *cobra.Command, _ []string) error {
	asOf, err := asOfDate()
	if err != nil {
		return err
	}

	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.SeedSampleData(asOf); err != nil {
		return err
	}

	fmt.Printf("  Sample data loaded into %s\n", cfg.DatabasePath())
	fmt.Println("  Try: financialhealth dashboard")
	return nil
}

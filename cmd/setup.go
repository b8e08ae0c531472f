package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MarcoCDuran/FinancialHealth/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Load existing config or defaults
	cfg, _ := config.Load()

	fmt.Println()
	fmt.Println("  Welcome to FinancialHealth!")
	fmt.Println()

	// 1. Database path
	fmt.Println("  1. Database location")
	fmt.Printf("     Current: %s\n", cfg.DatabasePath())
	fmt.Print("     New path (blank to keep) > ")
	dbPath, _ := reader.ReadString('\n')
	dbPath = strings.TrimSpace(dbPath)
	if dbPath != "" {
		cfg.General.DatabasePath = dbPath
	}
	fmt.Println()

	// 2. Projection horizon
	fmt.Println("  2. Default projection horizon")
	fmt.Println("     (1) 3 months [default]")
	fmt.Println("     (2) 6 months")
	fmt.Println("     (3) 12 months")
	fmt.Print("     > ")
	choice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(choice) {
	case "2":
		cfg.Engine.ProjectionMonths = 6
	case "3":
		cfg.Engine.ProjectionMonths = 12
	default:
		cfg.Engine.ProjectionMonths = 3
	}
	fmt.Println()

	// 3. API server address
	fmt.Println("  3. API server address")
	fmt.Printf("     Current: %s\n", cfg.Server.Addr)
	fmt.Print("     New address (blank to keep) > ")
	addr, _ := reader.ReadString('\n')
	addr = strings.TrimSpace(addr)
	if addr != "" {
		cfg.Server.Addr = addr
	}

	// Save
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `financialhealth setup` anytime to reconfigure.")
	fmt.Println("  Load sample data with `financialhealth seed`.")
	fmt.Println()

	return nil
}

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/MarcoCDuran/FinancialHealth/internal/config"
	"github.com/MarcoCDuran/FinancialHealth/internal/engine"
	"github.com/MarcoCDuran/FinancialHealth/internal/store"
)

var (
	flagDB    string
	flagAsOf  string
	flagQuiet bool
)

var rootCmd = &cobra.Command{
	Use:   "financialhealth",
	Short: "Personal finance projections and health scoring",
	Long:  "Track transactions, project future expenses and income, and score your financial health.",
	RunE:  runDashboard,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database path (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagAsOf, "as-of", "", "Evaluate as of this date, YYYY-MM-DD (default today)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// openStore opens the configured database and makes sure the default
// categories exist.
func openStore() (*store.Store, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, fmt.Errorf("loading config: %w", err)
	}

	path := flagDB
	if path == "" {
		path = cfg.DatabasePath()
	}

	st, err := store.Open(path)
	if err != nil {
		return nil, cfg, err
	}
	if err := st.EnsureDefaultCategories(); err != nil {
		_ = st.Close()
		return nil, cfg, err
	}
	return st, cfg, nil
}

// asOfDate resolves the --as-of flag, defaulting to now.
func asOfDate() (time.Time, error) {
	if flagAsOf == "" {
		return time.Now(), nil
	}
	d, err := time.Parse("2006-01-02", flagAsOf)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --as-of date %q, expected YYYY-MM-DD", flagAsOf)
	}
	return d, nil
}

// loadSnapshot is the shared data loading path used by the reporting
// commands.
func loadSnapshot() (engine.Snapshot, engine.Params, time.Time, error) {
	asOf, err := asOfDate()
	if err != nil {
		return engine.Snapshot{}, engine.Params{}, time.Time{}, err
	}

	st, cfg, err := openStore()
	if err != nil {
		return engine.Snapshot{}, engine.Params{}, time.Time{}, err
	}
	defer func() { _ = st.Close() }()

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Reading %s...\n", cfg.DatabasePath())
	}

	snap, err := st.Snapshot()
	if err != nil {
		return engine.Snapshot{}, engine.Params{}, time.Time{}, err
	}
	return snap, engine.FromConfig(cfg.Engine), asOf, nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MarcoCDuran/FinancialHealth/internal/importer"
)

var flagImportDryRun bool

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import transactions from a CSV export",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var importTemplateCmd = &cobra.Command{
	Use:   "template",
	Short: "Print the CSV import template",
	RunE: func(_ *cobra.Command, _ []string) error {
		fmt.Print(importer.Template())
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVar(&flagImportDryRun, "dry-run", false, "Validate only, import nothing")
	importCmd.AddCommand(importTemplateCmd)
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	categories, err := st.ListCategories()
	if err != nil {
		return err
	}
	accounts, err := st.ListAccounts()
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	res, err := importer.Parse(f, categories, accounts)
	if err != nil {
		return err
	}

	for _, e := range res.Errors {
		fmt.Fprintf(os.Stderr, "  %s\n", e)
	}
	for _, name := range res.UnknownCategories {
		fmt.Fprintf(os.Stderr, "  Unknown category %q; its rows were skipped\n", name)
	}

	importable := res.Transactions[:0:0]
	for _, t := range res.Transactions {
		if t.CategoryID != "" {
			importable = append(importable, t)
		}
	}

	if flagImportDryRun {
		fmt.Printf("  %d rows valid, %d rejected (dry run, nothing imported)\n",
			len(importable), len(res.Errors))
		return nil
	}

	if len(importable) > 0 {
		if err := st.CreateTransactions(importable); err != nil {
			return err
		}
	}
	fmt.Printf("  Imported %d transactions, %d rows rejected\n", len(importable), len(res.Errors))
	return nil
}

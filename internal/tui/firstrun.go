package tui

import (
	"github.com/MarcoCDuran/FinancialHealth/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// seedValues holds the answers from the first-run form.
type seedValues struct {
	loadSample bool
	themeName  string
}

// newSeedForm builds the form shown when the database has no transactions.
func newSeedForm(vals *seedValues) *huh.Form {
	vals.loadSample = true
	vals.themeName = theme.Active.Name

	themeOpts := make([]huh.Option[string], len(theme.All))
	for i, t := range theme.All {
		themeOpts[i] = huh.NewOption(t.Name, t.Name)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to financialhealth").
				Description("The database is empty. You can start with sample data\nand replace it with a CSV import later."),
			huh.NewConfirm().
				Title("Load sample data?").
				Affirmative("Yes, load it").
				Negative("No, start empty").
				Value(&vals.loadSample),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.themeName),
		),
	)
}

package engine

import (
	"testing"

	"github.com/MarcoCDuran/FinancialHealth/internal/model"
)

func limitSnapshot(t *testing.T) Snapshot {
	t.Helper()
	return Snapshot{
		Categories: []model.Category{
			{ID: "cat-food", Name: "Food"},
			{ID: "cat-leisure", Name: "Leisure"},
		},
		Limits: []model.SpendingLimit{
			{ID: "lim-1", CategoryID: "cat-food", MonthlyLimit: dec(t, "1000")},
			{ID: "lim-2", CategoryID: "cat-leisure", MonthlyLimit: dec(t, "300")},
		},
	}
}

func TestEvaluateLimitsClassification(t *testing.T) {
	// Food 800 of 1000 (exactly 0.8x) stays OK; Leisure 350 of 300 exceeds.
	asOf := mustDate(t, "2025-07-24")
	snap := limitSnapshot(t)
	snap.Transactions = []model.Transaction{
		tx(t, "2025-07-05", "800.00", model.TypeExpense, "cat-food"),
		tx(t, "2025-07-10", "350.00", model.TypeExpense, "cat-leisure"),
	}

	statuses := EvaluateLimits(snap, asOf, DefaultParams())
	if len(statuses) != 2 {
		t.Fatalf("statuses = %d, want 2", len(statuses))
	}

	// Sorted by category name: Food then Leisure.
	food, leisure := statuses[0], statuses[1]
	if food.Category.Name != "Food" || leisure.Category.Name != "Leisure" {
		t.Fatalf("unexpected order: %s, %s", food.Category.Name, leisure.Category.Name)
	}
	if food.State != model.LimitOK {
		t.Errorf("Food at exactly 80%% = %v, want ok", food.State)
	}
	if leisure.State != model.LimitExceeded {
		t.Errorf("Leisure over limit = %v, want exceeded", leisure.State)
	}
	assertDecEq(t, food.CurrentSpent, "800", "Food current spent")
	if food.UsedPercent != 80 {
		t.Errorf("Food used percent = %v, want 80", food.UsedPercent)
	}
}

func TestEvaluateLimitsWarningBoundary(t *testing.T) {
	cases := []struct {
		name  string
		spent string
		want  model.LimitState
	}{
		{"just below warning", "790.00", model.LimitOK},
		{"exact warning ratio", "800.00", model.LimitOK},
		{"just above warning", "810.00", model.LimitWarning},
		{"exact limit", "1000.00", model.LimitWarning},
		{"above limit", "1000.01", model.LimitExceeded},
		{"no spend", "0.00", model.LimitOK},
	}

	asOf := mustDate(t, "2025-07-24")
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap := limitSnapshot(t)
			if tc.spent != "0.00" {
				snap.Transactions = []model.Transaction{
					tx(t, "2025-07-05", tc.spent, model.TypeExpense, "cat-food"),
				}
			}
			statuses := EvaluateLimits(snap, asOf, DefaultParams())
			if statuses[0].State != tc.want {
				t.Errorf("spent %s of 1000: state = %v, want %v", tc.spent, statuses[0].State, tc.want)
			}
		})
	}
}

func TestEvaluateLimitsCalendarMonthBoundary(t *testing.T) {
	// Spend from the previous month never counts, even within 30 days.
	asOf := mustDate(t, "2025-07-02")
	snap := limitSnapshot(t)
	snap.Transactions = []model.Transaction{
		tx(t, "2025-06-28", "2000.00", model.TypeExpense, "cat-food"),
		tx(t, "2025-07-01", "150.00", model.TypeExpense, "cat-food"),
	}

	statuses := EvaluateLimits(snap, asOf, DefaultParams())
	assertDecEq(t, statuses[0].CurrentSpent, "150", "calendar-month spend")
	if statuses[0].State != model.LimitOK {
		t.Errorf("state = %v, want ok", statuses[0].State)
	}
}

func TestEvaluateLimitsIgnoresIncome(t *testing.T) {
	asOf := mustDate(t, "2025-07-24")
	snap := limitSnapshot(t)
	snap.Transactions = []model.Transaction{
		tx(t, "2025-07-05", "5000.00", model.TypeIncome, "cat-food"),
	}

	statuses := EvaluateLimits(snap, asOf, DefaultParams())
	if !statuses[0].CurrentSpent.IsZero() {
		t.Errorf("income must not count as spend, got %s", statuses[0].CurrentSpent)
	}
}

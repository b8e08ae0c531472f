package engine

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/MarcoCDuran/FinancialHealth/internal/model"
)

func TestDetectRecurringExactMonthlyRent(t *testing.T) {
	asOf := mustDate(t, "2025-07-15")
	window := LookbackWindow(asOf, 6)
	txs := monthlyRent(t, 6, "1200.00")

	rec := DetectRecurring(txs, window, DefaultParams())

	key := RecurrenceKey{CategoryID: "cat-rent", Type: model.TypeExpense}
	amount, ok := rec[key]
	if !ok {
		t.Fatal("no recurring pattern detected for 6 exact monthly payments")
	}
	assertDecEq(t, amount, "1200", "recurring amount")
}

func TestDetectRecurringMedianResistsSpike(t *testing.T) {
	asOf := mustDate(t, "2025-07-15")
	window := LookbackWindow(asOf, 6)

	txs := monthlyRent(t, 5, "1200.00")
	// One-off renovation charge in the same category, way outside the band.
	txs = append(txs, tx(t, "2025-06-20", "9500.00", model.TypeExpense, "cat-rent"))

	rec := DetectRecurring(txs, window, DefaultParams())

	amount, ok := rec[RecurrenceKey{CategoryID: "cat-rent", Type: model.TypeExpense}]
	if !ok {
		t.Fatal("spike should not break an otherwise steady pattern")
	}
	assertDecEq(t, amount, "1200", "recurring amount with spike present")
}

func TestDetectRecurringToleranceBand(t *testing.T) {
	asOf := mustDate(t, "2025-07-15")
	window := LookbackWindow(asOf, 6)

	// Grocery-style spend drifting within ±15% of its median.
	txs := []model.Transaction{
		tx(t, "2025-02-10", "760.00", model.TypeExpense, "cat-food"),
		tx(t, "2025-03-10", "800.00", model.TypeExpense, "cat-food"),
		tx(t, "2025-04-10", "840.00", model.TypeExpense, "cat-food"),
		tx(t, "2025-05-10", "790.00", model.TypeExpense, "cat-food"),
	}

	rec := DetectRecurring(txs, window, DefaultParams())

	amount, ok := rec[RecurrenceKey{CategoryID: "cat-food", Type: model.TypeExpense}]
	if !ok {
		t.Fatal("amounts within tolerance should form a pattern")
	}
	// Median of 760, 790, 800, 840.
	assertDecEq(t, amount, "795", "recurring amount")
}

func TestDetectRecurringTooFewTransactions(t *testing.T) {
	asOf := mustDate(t, "2025-07-15")
	window := LookbackWindow(asOf, 6)

	txs := []model.Transaction{
		tx(t, "2025-05-05", "1200.00", model.TypeExpense, "cat-rent"),
		tx(t, "2025-06-05", "1200.00", model.TypeExpense, "cat-rent"),
	}

	rec := DetectRecurring(txs, window, DefaultParams())
	if len(rec) != 0 {
		t.Fatalf("2 transactions should not qualify with min 3 months, got %v", rec)
	}
}

func TestDetectRecurringScatteredAmountsDoNotQualify(t *testing.T) {
	asOf := mustDate(t, "2025-07-15")
	window := LookbackWindow(asOf, 6)

	// Same category every month but wildly different magnitudes.
	txs := []model.Transaction{
		tx(t, "2025-02-10", "50.00", model.TypeExpense, "cat-misc"),
		tx(t, "2025-03-10", "400.00", model.TypeExpense, "cat-misc"),
		tx(t, "2025-04-10", "1500.00", model.TypeExpense, "cat-misc"),
		tx(t, "2025-05-10", "12.00", model.TypeExpense, "cat-misc"),
		tx(t, "2025-06-10", "3000.00", model.TypeExpense, "cat-misc"),
	}

	rec := DetectRecurring(txs, window, DefaultParams())
	if _, ok := rec[RecurrenceKey{CategoryID: "cat-misc", Type: model.TypeExpense}]; ok {
		t.Fatal("scattered magnitudes should not be detected as recurring")
	}
}

func TestDetectRecurringIgnoresTransactionsOutsideWindow(t *testing.T) {
	asOf := mustDate(t, "2025-07-15")
	window := LookbackWindow(asOf, 6)

	// Three old payments before the window plus one inside: not a pattern.
	txs := []model.Transaction{
		tx(t, "2024-10-05", "1200.00", model.TypeExpense, "cat-rent"),
		tx(t, "2024-11-05", "1200.00", model.TypeExpense, "cat-rent"),
		tx(t, "2024-12-05", "1200.00", model.TypeExpense, "cat-rent"),
		tx(t, "2025-06-05", "1200.00", model.TypeExpense, "cat-rent"),
	}

	rec := DetectRecurring(txs, window, DefaultParams())
	if len(rec) != 0 {
		t.Fatalf("out-of-window transactions must not count, got %v", rec)
	}
}

func TestRecurringTotalForTypeSeparatesIncomeFromExpense(t *testing.T) {
	asOf := mustDate(t, "2025-07-15")
	window := LookbackWindow(asOf, 6)

	var txs []model.Transaction
	for _, d := range []string{"2025-04-01", "2025-05-01", "2025-06-01"} {
		txs = append(txs, tx(t, d, "5500.00", model.TypeIncome, "cat-salary"))
		txs = append(txs, tx(t, d, "1200.00", model.TypeExpense, "cat-rent"))
	}

	rec := DetectRecurring(txs, window, DefaultParams())
	assertDecEq(t, rec.TotalForType(model.TypeIncome), "5500", "recurring income total")
	assertDecEq(t, rec.TotalForType(model.TypeExpense), "1200", "recurring expense total")
}

func TestMedian(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want string
	}{
		{"odd", []string{"3", "1", "2"}, "2"},
		{"even", []string{"1", "2", "3", "4"}, "2.5"},
		{"single", []string{"7"}, "7"},
		{"empty", nil, "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := make([]decimal.Decimal, 0, len(tc.in))
			for _, s := range tc.in {
				in = append(in, dec(t, s))
			}
			assertDecEq(t, median(in), tc.want, "median")
		})
	}
}

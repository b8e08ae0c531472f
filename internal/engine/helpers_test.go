package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MarcoCDuran/FinancialHealth/internal/model"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}

func tx(t *testing.T, date, amount string, typ model.TransactionType, categoryID string) model.Transaction {
	t.Helper()
	return model.Transaction{
		ID:          date + "-" + categoryID + "-" + amount,
		Description: "test",
		Amount:      dec(t, amount),
		Type:        typ,
		Date:        mustDate(t, date),
		CategoryID:  categoryID,
		AccountID:   "acc-1",
	}
}

// monthlyRent returns n months of an identical rent expense, one per month,
// ending the month before asOf.
func monthlyRent(t *testing.T, n int, amount string) []model.Transaction {
	t.Helper()
	var txs []model.Transaction
	dates := []string{"2025-01-05", "2025-02-05", "2025-03-05", "2025-04-05", "2025-05-05", "2025-06-05"}
	if n > len(dates) {
		t.Fatalf("monthlyRent supports up to %d months, got %d", len(dates), n)
	}
	for _, d := range dates[len(dates)-n:] {
		txs = append(txs, tx(t, d, amount, model.TypeExpense, "cat-rent"))
	}
	return txs
}

func assertDecEq(t *testing.T, got decimal.Decimal, want string, label string) {
	t.Helper()
	if !got.Equal(dec(t, want)) {
		t.Fatalf("%s = %s, want %s", label, got, want)
	}
}

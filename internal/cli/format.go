// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatMoney formats an amount in Brazilian real convention.
// e.g., 1234.5 -> "R$ 1.234,50", -87.3 -> "-R$ 87,30"
func FormatMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + FormatMoney(d.Neg())
	}

	s := d.StringFixed(2)
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	remainder := len(intPart) % 3
	if remainder > 0 {
		b.WriteString(intPart[:remainder])
	}
	for i := remainder; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(intPart[i : i+3])
	}

	return "R$ " + b.String() + "," + fracPart
}

// FormatSignedMoney prefixes positive amounts with "+" so deltas read
// unambiguously in tables.
func FormatSignedMoney(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + FormatMoney(d)
	}
	return FormatMoney(d)
}

// FormatPercent formats a 0-100 percentage with one decimal place.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// FormatMonthKey renders a "YYYY-MM" projection key as "Jan 2025".
// Unparseable keys pass through untouched.
func FormatMonthKey(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return t.Format("Jan 2006")
}

// FormatDate renders a date in the DD/MM/YYYY convention used across the
// CSV importer and terminal output.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatMonths renders a fractional month count.
// e.g., 8.5 -> "8.5 months", 1 -> "1 month"
func FormatMonths(m float64) string {
	if m == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%.1f months", m)
}

// FormatScore renders a health score with its level.
// e.g., 78.5, "Good" -> "78.5/100 (Good)"
func FormatScore(score float64, level string) string {
	return fmt.Sprintf("%.1f/100 (%s)", score, level)
}

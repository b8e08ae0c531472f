package cli

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "R$ 0,00"},
		{"5.5", "R$ 5,50"},
		{"1234.5", "R$ 1.234,50"},
		{"1234567.89", "R$ 1.234.567,89"},
		{"-87.3", "-R$ 87,30"},
		{"1000000", "R$ 1.000.000,00"},
	}
	for _, tc := range cases {
		d := decimal.RequireFromString(tc.in)
		if got := FormatMoney(d); got != tc.want {
			t.Errorf("FormatMoney(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatSignedMoney(t *testing.T) {
	if got := FormatSignedMoney(decimal.RequireFromString("10")); got != "+R$ 10,00" {
		t.Errorf("positive = %q, want +R$ 10,00", got)
	}
	if got := FormatSignedMoney(decimal.RequireFromString("-10")); got != "-R$ 10,00" {
		t.Errorf("negative = %q, want -R$ 10,00", got)
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(62.5); got != "62.5%" {
		t.Errorf("FormatPercent(62.5) = %q, want 62.5%%", got)
	}
	if got := FormatPercent(0); got != "0.0%" {
		t.Errorf("FormatPercent(0) = %q, want 0.0%%", got)
	}
}

func TestFormatMonthKey(t *testing.T) {
	if got := FormatMonthKey("2025-08"); got != "Aug 2025" {
		t.Errorf("FormatMonthKey(2025-08) = %q, want Aug 2025", got)
	}
	if got := FormatMonthKey("garbage"); got != "garbage" {
		t.Errorf("unparseable key should pass through, got %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(d); got != "05/07/2025" {
		t.Errorf("FormatDate = %q, want 05/07/2025", got)
	}
}

func TestFormatMonths(t *testing.T) {
	if got := FormatMonths(1); got != "1 month" {
		t.Errorf("FormatMonths(1) = %q", got)
	}
	if got := FormatMonths(8.5); got != "8.5 months" {
		t.Errorf("FormatMonths(8.5) = %q", got)
	}
}

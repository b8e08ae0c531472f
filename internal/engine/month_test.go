package engine

import (
	"testing"
	"time"
)

func TestMonthKey(t *testing.T) {
	m := Month{Year: 2025, Month: time.February}
	if got := m.Key(); got != "2025-02" {
		t.Fatalf("Key() = %q, want 2025-02", got)
	}
}

func TestAddMonthsCrossesYearBoundary(t *testing.T) {
	m := Month{Year: 2025, Month: time.November}

	next := m.AddMonths(3)
	if next.Year != 2026 || next.Month != time.February {
		t.Fatalf("Nov 2025 + 3 = %v, want Feb 2026", next)
	}

	prev := m.AddMonths(-12)
	if prev.Year != 2024 || prev.Month != time.November {
		t.Fatalf("Nov 2025 - 12 = %v, want Nov 2024", prev)
	}
}

func TestLookbackWindowExcludesCurrentMonth(t *testing.T) {
	asOf := mustDate(t, "2025-07-15")
	window := LookbackWindow(asOf, 6)

	if len(window) != 6 {
		t.Fatalf("window length = %d, want 6", len(window))
	}
	if window[0] != (Month{Year: 2025, Month: time.January}) {
		t.Errorf("oldest month = %v, want Jan 2025", window[0])
	}
	if window[5] != (Month{Year: 2025, Month: time.June}) {
		t.Errorf("newest month = %v, want Jun 2025", window[5])
	}
	for _, m := range window {
		if m.Contains(asOf) {
			t.Errorf("window contains the partial current month %v", m)
		}
	}
}

func TestLookbackWindowDegenerate(t *testing.T) {
	if got := LookbackWindow(mustDate(t, "2025-07-15"), 0); got != nil {
		t.Fatalf("zero-length window = %v, want nil", got)
	}
}

func TestMonthContains(t *testing.T) {
	m := Month{Year: 2025, Month: time.June}
	if !m.Contains(mustDate(t, "2025-06-30")) {
		t.Error("June should contain 2025-06-30")
	}
	if m.Contains(mustDate(t, "2025-07-01")) {
		t.Error("June should not contain 2025-07-01")
	}
	if m.Contains(mustDate(t, "2024-06-15")) {
		t.Error("June 2025 should not contain June 2024 dates")
	}
}

package tui

import (
	"testing"
	"time"

	"github.com/MarcoCDuran/FinancialHealth/internal/engine"
	"github.com/MarcoCDuran/FinancialHealth/internal/tui/components"

	tea "github.com/charmbracelet/bubbletea"
)

func testApp() App {
	a := NewApp(nil, engine.DefaultParams(), time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC), "BRL")
	a.loaded = true
	a.width = 120
	a.height = 40
	return a
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0

		for i, tab := range components.Tabs {
			w := components.TabVisualWidth(tab, i == active)
			x := pos + w/2 // midpoint inside this tab
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w
			if i < len(components.Tabs)-1 {
				pos++ // separator
			}
		}

		if got := a.tabAtX(pos + 5); got != -1 {
			t.Fatalf("click past the bar -> tab=%d, want -1", got)
		}
	}
}

func TestKeySwitchesTabs(t *testing.T) {
	cases := []struct {
		key  string
		want int
	}{
		{"o", 0},
		{"p", 1},
		{"l", 2},
		{"g", 3},
	}

	for _, tc := range cases {
		a := testApp()
		m, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tc.key)})
		got := m.(App)
		if got.activeTab != tc.want {
			t.Errorf("key %q: activeTab = %d, want %d", tc.key, got.activeTab, tc.want)
		}
	}
}

func TestArrowKeysWrapAround(t *testing.T) {
	a := testApp()
	a.activeTab = 0

	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyLeft})
	got := m.(App)
	if got.activeTab != len(components.Tabs)-1 {
		t.Fatalf("left from tab 0 -> %d, want %d", got.activeTab, len(components.Tabs)-1)
	}

	m, _ = got.Update(tea.KeyMsg{Type: tea.KeyRight})
	got = m.(App)
	if got.activeTab != 0 {
		t.Fatalf("right from last tab -> %d, want 0", got.activeTab)
	}
}

func TestEmptyDataShowsFirstRunForm(t *testing.T) {
	a := testApp()
	a.loaded = false

	m, cmd := a.Update(dataMsg{txCount: 0})
	got := m.(App)

	if !got.loaded {
		t.Fatal("app should be loaded after dataMsg")
	}
	if got.seedForm == nil {
		t.Fatal("empty database should activate the first-run form")
	}
	if cmd == nil {
		t.Fatal("form activation should return its Init command")
	}

	// A later empty reload must not re-open the form.
	got.seedForm = nil
	m, _ = got.Update(dataMsg{txCount: 0})
	got = m.(App)
	if got.seedForm != nil {
		t.Fatal("form should only be offered once")
	}
}

func TestDataWithTransactionsSkipsForm(t *testing.T) {
	a := testApp()
	a.loaded = false

	m, _ := a.Update(dataMsg{txCount: 12})
	got := m.(App)
	if got.seedForm != nil {
		t.Fatal("non-empty database should not trigger the first-run form")
	}
	if got.txCount != 12 {
		t.Fatalf("txCount = %d, want 12", got.txCount)
	}
}

func TestDataErrorKeepsPreviousData(t *testing.T) {
	a := testApp()
	a.txCount = 7

	m, _ := a.Update(dataMsg{err: errTest, txCount: 0})
	got := m.(App)
	if got.txCount != 7 {
		t.Fatalf("failed reload overwrote data: txCount = %d, want 7", got.txCount)
	}
	if got.loadErr == nil {
		t.Fatal("load error should be recorded")
	}
}

func TestShortMonthKey(t *testing.T) {
	if got := shortMonthKey("2025-08"); got != "Aug" {
		t.Errorf("shortMonthKey(2025-08) = %q, want Aug", got)
	}
	if got := shortMonthKey("garbage"); got != "garbage" {
		t.Errorf("unparseable key should pass through, got %q", got)
	}
}

func TestMonthKeysSorted(t *testing.T) {
	m := map[string]int{"2025-10": 1, "2025-08": 2, "2026-01": 3, "2025-09": 4}
	got := monthKeysOf(m)
	want := []string{"2025-08", "2025-09", "2025-10", "2026-01"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("keys[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("consider reducing expenses in this category to stay on track", 20)
	if len(lines) < 2 {
		t.Fatalf("expected multiple lines, got %d", len(lines))
	}
	for _, l := range lines {
		if len(l) > 20 {
			t.Errorf("line %q exceeds width", l)
		}
	}
}

var errTest = &testError{}

type testError struct{}

func (*testError) Error() string { return "snapshot failed" }

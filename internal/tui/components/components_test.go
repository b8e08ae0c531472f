package components

import (
	"strings"
	"testing"

	"github.com/MarcoCDuran/FinancialHealth/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
	theme.SetActive("flexoki-dark")
}

func TestLayoutRowSumsExactly(t *testing.T) {
	for _, tc := range []struct{ total, n int }{
		{120, 4}, {121, 4}, {123, 4}, {80, 3}, {7, 2},
	} {
		widths := LayoutRow(tc.total, tc.n)
		if len(widths) != tc.n {
			t.Fatalf("LayoutRow(%d, %d) returned %d widths", tc.total, tc.n, len(widths))
		}
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != tc.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d", tc.total, tc.n, sum)
		}
	}
}

func TestMetricRowUsesFullWidth(t *testing.T) {
	metrics := []Metric{
		{Label: "Income", Value: "R$ 5.500,00", Note: "this month"},
		{Label: "Expenses", Value: "R$ 2.000,00"},
		{Label: "Balance", Value: "+R$ 3.500,00", Tone: theme.Active.Green},
		{Label: "Health", Value: "85/100", Note: "Excellent"},
	}

	row := MetricRow(metrics, 120)
	if got := lipgloss.Width(row); got != 120 {
		t.Errorf("MetricRow width = %d, want 120", got)
	}
}

func TestCardRowHeightMatchesTallest(t *testing.T) {
	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := len(strings.Split(shortCard, "\n"))
	tallLines := len(strings.Split(tallCard, "\n"))
	if shortLines >= tallLines {
		t.Fatal("test setup error: short card should be shorter than tall card")
	}

	joined := CardRow([]string{tallCard, shortCard})
	lines := strings.Split(joined, "\n")
	if len(lines) != tallLines {
		t.Errorf("joined height should match tallest card: got %d, want %d", len(lines), tallLines)
	}
}

func TestContentCardWidth(t *testing.T) {
	card := ContentCard("Title", "Body", 40)
	for i, line := range strings.Split(card, "\n") {
		if got := lipgloss.Width(line); got != 40 {
			t.Errorf("line %d width = %d, want 40", i, got)
		}
	}
}

func TestTabBarWidthMatchesHitboxes(t *testing.T) {
	for active := range Tabs {
		want := len(Tabs) - 1 // separators
		for i, tab := range Tabs {
			want += TabVisualWidth(tab, i == active)
		}
		bar := RenderTabBar(active, 0) // width 0: no trailing pad
		if got := lipgloss.Width(bar); got != want {
			t.Errorf("active=%d: rendered width %d, want %d", active, got, want)
		}
	}
}

func TestLabeledBarClampsBarNotPercent(t *testing.T) {
	out := LabeledBar("Lazer", 1.57, theme.Active.Red, 10, 20)
	if !strings.Contains(out, "157%") {
		t.Errorf("overspend should print the real percentage, got %q", out)
	}
}

func TestProgressBarBounds(t *testing.T) {
	for _, pct := range []float64{-0.5, 0, 0.5, 1, 1.5} {
		out := ProgressBar(pct, 20)
		if out == "" {
			t.Fatalf("empty bar for pct=%v", pct)
		}
	}
}

func TestBarChartRendersAxisAndLabels(t *testing.T) {
	vals := []float64{1200, 1900, 1500}
	labels := []string{"Aug", "Sep", "Oct"}

	out := BarChart(vals, labels, theme.Active.Blue, 60, 8)
	if !strings.Contains(out, "└") {
		t.Error("chart should contain the x-axis corner")
	}
	for _, lbl := range labels {
		if !strings.Contains(out, lbl) {
			t.Errorf("chart missing label %q", lbl)
		}
	}
	if !strings.Contains(out, "2k") {
		t.Errorf("chart should show the rounded ceiling tick, got:\n%s", out)
	}
}

func TestBarChartTinySpaceFallsBackToSparkline(t *testing.T) {
	out := BarChart([]float64{1, 2, 3}, nil, theme.Active.Blue, 10, 2)
	if strings.Contains(out, "└") {
		t.Error("tiny chart should fall back to a sparkline")
	}
}

func TestSparklineEmpty(t *testing.T) {
	if out := Sparkline(nil, theme.Active.Blue); out != "" {
		t.Errorf("empty input should render nothing, got %q", out)
	}
}

func TestNiceCeiling(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{1900, 2000},
		{2000, 2000},
		{2100, 5000},
		{45, 50},
		{7, 10},
		{0, 1},
	}
	for _, tc := range cases {
		if got := niceCeiling(tc.in); got != tc.want {
			t.Errorf("niceCeiling(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

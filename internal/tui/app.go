// Package tui provides the interactive Bubble Tea dashboard for
// financialhealth.
package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/MarcoCDuran/FinancialHealth/internal/cli"
	"github.com/MarcoCDuran/FinancialHealth/internal/engine"
	"github.com/MarcoCDuran/FinancialHealth/internal/model"
	"github.com/MarcoCDuran/FinancialHealth/internal/store"
	"github.com/MarcoCDuran/FinancialHealth/internal/tui/components"
	"github.com/MarcoCDuran/FinancialHealth/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// dataMsg carries a freshly computed dashboard and projections.
type dataMsg struct {
	dash       model.Dashboard
	proj       model.Projections
	categories map[string]model.Category
	txCount    int
	err        error
}

// seededMsg is sent when the sample data load finishes.
type seededMsg struct{ err error }

// App is the root Bubble Tea model.
type App struct {
	st       *store.Store
	params   engine.Params
	asOf     time.Time
	currency string

	// Data
	dash       model.Dashboard
	proj       model.Projections
	categories map[string]model.Category
	txCount    int
	loaded     bool
	loadErr    error
	refreshing bool

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// First-run form, shown once when the database has no transactions
	seedForm *huh.Form
	seedVals seedValues
	asked    bool

	spinner spinner.Model
}

const (
	minTerminalWidth = 70
	compactWidth     = 100
	maxContentWidth  = 160
	minContentHeight = 5
)

// NewApp creates a new TUI app model. The store must stay open for the
// lifetime of the program.
func NewApp(st *store.Store, params engine.Params, asOf time.Time, currency string) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	return App{
		st:       st,
		params:   params,
		asOf:     asOf,
		currency: currency,
		spinner:  sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		a.loadCmd(),
		a.spinner.Tick,
	)
}

// loadCmd reads a snapshot and runs the projection engine off the UI loop.
func (a App) loadCmd() tea.Cmd {
	st, params, asOf := a.st, a.params, a.asOf
	return func() tea.Msg {
		snap, err := st.Snapshot()
		if err != nil {
			return dataMsg{err: err}
		}
		return dataMsg{
			dash:       engine.ComputeDashboard(snap, asOf, params),
			proj:       engine.ComputeProjections(snap, asOf, params.ProjectionMonths, params),
			categories: snap.CategoryByID(),
			txCount:    len(snap.Transactions),
		}
	}
}

func (a App) seedCmd() tea.Cmd {
	st, asOf := a.st, a.asOf
	return func() tea.Msg {
		return seededMsg{err: st.SeedSampleData(asOf)}
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.seedForm != nil {
			a.seedForm = a.seedForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.seedForm != nil {
			return a, nil
		}
		if msg.Button == tea.MouseButtonLeft && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		// Global: quit
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loaded {
			return a, nil
		}

		// First-run form intercepts all keys
		if a.seedForm != nil {
			return a.updateSeedForm(msg)
		}

		// Help toggle
		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "r":
			if !a.refreshing {
				a.refreshing = true
				return a, a.loadCmd()
			}
		case "o":
			a.activeTab = 0
		case "p":
			a.activeTab = 1
		case "l":
			a.activeTab = 2
		case "g":
			a.activeTab = 3
		case "left", "h":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		}
		return a, nil

	case dataMsg:
		a.loaded = true
		a.refreshing = false
		a.loadErr = msg.err
		if msg.err != nil {
			return a, nil
		}
		a.dash = msg.dash
		a.proj = msg.proj
		a.categories = msg.categories
		a.txCount = msg.txCount

		if a.txCount == 0 && !a.asked {
			a.asked = true
			a.seedForm = newSeedForm(&a.seedVals)
			if a.width > 0 {
				a.seedForm = a.seedForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.seedForm.Init()
		}
		return a, nil

	case seededMsg:
		a.loadErr = msg.err
		return a, a.loadCmd()

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the first-run form (cursor blinks, etc.)
	if a.seedForm != nil {
		return a.updateSeedForm(msg)
	}

	return a, nil
}

func (a App) updateSeedForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.seedForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.seedForm = f
	}

	switch a.seedForm.State {
	case huh.StateCompleted:
		theme.SetActive(a.seedVals.themeName)
		loadSample := a.seedVals.loadSample
		a.seedForm = nil
		if loadSample {
			a.refreshing = true
			return a, a.seedCmd()
		}
		return a, nil

	case huh.StateAborted:
		a.seedForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.seedForm != nil {
		return a.seedForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  financialhealth needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active
	w := a.width
	h := a.height

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ financialhealth"))
	b.WriteString(subtitleStyle.Render(" · Financial Projections"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Reading transactions..."))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active
	h := a.height
	w := a.width

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	bindings := []struct{ key, desc string }{
		{"o p l g", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"r", "Reload from database"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w) + "\n" + a.renderContextRow(w)

	statusBar := components.RenderStatusBar(
		w, cli.FormatDate(a.asOf), a.txCount, a.currency, a.refreshing)

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case 0:
		content = a.renderOverviewTab(cw)
	case 1:
		content = a.renderProjectionsTab(cw)
	case 2:
		content = a.renderLimitsTab(cw)
	case 3:
		content = a.renderGoalsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

// renderContextRow shows the app name, the month being summarized, and the
// last load error if any.
func (a App) renderContextRow(w int) string {
	t := theme.Active

	nameStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	errStyle := lipgloss.NewStyle().Foreground(t.Red)

	row := " " + nameStyle.Render("◈ financialhealth") +
		dimStyle.Render(" · "+a.asOf.Format("January 2006"))
	if a.loadErr != nil {
		row += errStyle.Render("  " + truncStr(a.loadErr.Error(), w-lipgloss.Width(row)-3))
	}

	pad := w - lipgloss.Width(row)
	if pad > 0 {
		row += strings.Repeat(" ", pad)
	}
	return row
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)

		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}

// monthKeysOf returns the map's "YYYY-MM" keys in chronological order.
func monthKeysOf[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// shortMonthKey renders a "YYYY-MM" key as a three-letter month label.
func shortMonthKey(key string) string {
	ts, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return ts.Format("Jan")
}

func levelColor(l model.HealthLevel) lipgloss.Color {
	t := theme.Active
	switch l {
	case model.HealthExcellent:
		return t.Green
	case model.HealthGood:
		return t.Accent
	case model.HealthFair:
		return t.Yellow
	default:
		return t.Red
	}
}

func limitColor(s model.LimitState) lipgloss.Color {
	t := theme.Active
	switch s {
	case model.LimitExceeded:
		return t.Red
	case model.LimitWarning:
		return t.Yellow
	default:
		return t.Green
	}
}

func goalColor(s model.GoalState) lipgloss.Color {
	t := theme.Active
	switch s {
	case model.GoalCompleted, model.GoalOnTrack:
		return t.Green
	case model.GoalChallenging:
		return t.Yellow
	default:
		return t.Red
	}
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitlit/internal/analytics"
	"github.com/julianstephens/habitlit/internal/constants"
)

// View identifies the tab being shown.
type View int

const (
	ViewStats View = iota
	ViewBreakdown
	ViewSummary
)

var viewTitles = []string{"Stats", "Breakdown", "Summary"}

// reportLoadedMsg carries the result of one load. seq ties it to the
// request that produced it so responses for an abandoned period are dropped.
type reportLoadedMsg struct {
	seq    int
	report analytics.Report
	err    error
}

type Model struct {
	loader        *analytics.Loader
	now           func() time.Time
	keys          KeyMap
	help          help.Model
	view          View
	period        analytics.Period
	breakdownYear int
	report        *analytics.Report
	err           error
	loading       bool
	seq           int
	quitting      bool
	width         int
	height        int
}

func NewModel(loader *analytics.Loader, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	period := analytics.CurrentPeriod(now())
	return Model{
		loader:        loader,
		now:           now,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		view:          ViewStats,
		period:        period,
		breakdownYear: period.Year,
		seq:           1,
		loading:       true,
	}
}

// Init fetches the report for the request NewModel already numbered.
func (m Model) Init() tea.Cmd {
	return m.fetch(m.seq)
}

// Period returns the month currently selected.
func (m Model) Period() analytics.Period { return m.period }

// BreakdownYear returns the year shown on the breakdown tab.
func (m Model) BreakdownYear() int { return m.breakdownYear }

// Report returns the last report that matched the current selection.
func (m Model) Report() *analytics.Report { return m.report }

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.PrevMonth, m.keys.NextMonth, m.keys.Tab, m.keys.Help, m.keys.Quit}
}

func (m Model) FullHelp() [][]key.Binding {
	navigation := []key.Binding{m.keys.PrevMonth, m.keys.NextMonth, m.keys.NextYear, m.keys.PrevYear, m.keys.Today}
	views := []key.Binding{m.keys.Tab, m.keys.ShiftTab}
	global := []key.Binding{m.keys.Reload, m.keys.Help, m.keys.Quit}
	return [][]key.Binding{navigation, views, global}
}

// load starts a new numbered request for the current selection.
func (m *Model) load() tea.Cmd {
	m.seq++
	m.loading = true
	return m.fetch(m.seq)
}

// fetch returns the command that builds the report for the current
// selection, tagged with seq.
func (m Model) fetch(seq int) tea.Cmd {
	loader := m.loader
	period := m.period
	year := m.breakdownYear
	now := m.now()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.LoadTimeout)
		defer cancel()
		report, err := loader.Load(ctx, period, year, now)
		return reportLoadedMsg{seq: seq, report: report, err: err}
	}
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitlit/internal/cli"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		docStyle.Render(m.viewContent()),
		m.help.View(m),
	)
	return ui
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range viewTitles {
		if m.view == View(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewContent() string {
	var b strings.Builder

	switch m.view {
	case ViewBreakdown:
		b.WriteString(titleStyle.Render(fmt.Sprintf("Monthly breakdown for %d", m.breakdownYear)))
	default:
		b.WriteString(titleStyle.Render(m.period.Label()))
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(dangerStyle.Render("Failed to load statistics: " + m.err.Error()))
		return b.String()
	}
	if m.report == nil {
		b.WriteString(mutedStyle.Render("Loading..."))
		return b.String()
	}
	if m.loading {
		b.WriteString(mutedStyle.Render("Refreshing...") + "\n")
	}

	report := m.report
	if len(report.Stats) == 0 {
		b.WriteString(mutedStyle.Render("No habits yet. Add one with 'habitlit habit add <name>'."))
	} else {
		switch m.view {
		case ViewStats:
			b.WriteString(cli.StatsTable(report.Stats))
		case ViewBreakdown:
			names := make([]string, 0, len(report.Stats))
			for _, s := range report.Stats {
				names = append(names, s.HabitName)
			}
			b.WriteString(cli.BreakdownTable(report.Breakdown, names))
		case ViewSummary:
			b.WriteString(strings.Join(cli.SummaryLines(report.Summary), "\n"))
		}
	}

	for _, f := range report.Failures {
		b.WriteString("\n" + warningStyle.Render("⚠ "+f.Error()))
	}
	return b.String()
}

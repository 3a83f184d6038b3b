package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitlit/internal/analytics"
	"github.com/julianstephens/habitlit/internal/logger"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case reportLoadedMsg:
		if msg.seq != m.seq {
			logger.Debug("Discarding stale report", "seq", msg.seq, "current", m.seq)
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		report := msg.report
		m.report = &report
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		m.view = (m.view + 1) % View(len(viewTitles))
		return m, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.view = (m.view + View(len(viewTitles)) - 1) % View(len(viewTitles))
		return m, nil
	case key.Matches(msg, m.keys.PrevMonth):
		m.period = m.period.Prev()
	case key.Matches(msg, m.keys.NextMonth):
		m.period = m.period.Next()
	case key.Matches(msg, m.keys.PrevYear):
		m.breakdownYear--
	case key.Matches(msg, m.keys.NextYear):
		m.breakdownYear++
	case key.Matches(msg, m.keys.Today):
		m.period = analytics.CurrentPeriod(m.now())
		m.breakdownYear = m.period.Year
	case key.Matches(msg, m.keys.Reload):
	default:
		return m, nil
	}
	cmd := m.load()
	return m, cmd
}

package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitlit/internal/analytics"
	"github.com/julianstephens/habitlit/internal/models"
)

var fixedNow = time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)

type fakeSource struct {
	habits      []models.Habit
	completions map[string][]models.CompletionRecord
	listErr     error
}

func (f *fakeSource) ListHabits(ctx context.Context) ([]models.Habit, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.habits, nil
}

func (f *fakeSource) ListCompletions(ctx context.Context, habitID string) ([]models.CompletionRecord, error) {
	return f.completions[habitID], nil
}

func newTestModel(src *fakeSource) Model {
	return NewModel(analytics.NewLoader(src), func() time.Time { return fixedNow })
}

func seededSource() *fakeSource {
	return &fakeSource{
		habits: []models.Habit{{ID: "h1", Name: "Meditate", CreatedAt: fixedNow.AddDate(0, -2, 0)}},
		completions: map[string][]models.CompletionRecord{
			"h1": {
				{ID: "c1", HabitID: "h1", Year: 2025, Month: 2, Day: 19, Completed: true},
				{ID: "c2", HabitID: "h1", Year: 2025, Month: 2, Day: 20, Completed: true},
			},
		},
	}
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key and returns the updated model with its command.
func press(t *testing.T, m Model, s string) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(keyPress(s))
	return next.(Model), cmd
}

// deliver runs cmd and feeds its message back into the model.
func deliver(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	next, _ := m.Update(cmd())
	return next.(Model)
}

func TestNewModelStartsAtCurrentMonth(t *testing.T) {
	m := newTestModel(seededSource())
	if p := m.Period(); p.Year != 2025 || p.Month != 2 {
		t.Errorf("expected March 2025, got %+v", p)
	}
	if m.BreakdownYear() != 2025 {
		t.Errorf("expected breakdown year 2025, got %d", m.BreakdownYear())
	}
	if m.Report() != nil {
		t.Error("expected no report before first load")
	}
}

func TestInitResultAcceptedByProgramModel(t *testing.T) {
	var program tea.Model = NewModel(analytics.NewLoader(seededSource()), func() time.Time { return fixedNow })

	start := program.(Model)
	if !start.loading {
		t.Error("expected the model to start in the loading state")
	}
	if !strings.Contains(program.View(), "Loading") {
		t.Errorf("expected loading placeholder on launch:\n%s", program.View())
	}

	cmd := program.Init()
	if cmd == nil {
		t.Fatal("expected Init to return a load command")
	}
	program, _ = program.Update(cmd())

	m := program.(Model)
	if m.Report() == nil {
		t.Fatal("expected the first report to be accepted")
	}
	if m.loading {
		t.Error("expected loading to be cleared after the first report")
	}
	if !strings.Contains(program.View(), "Meditate") {
		t.Errorf("expected stats in view after launch:\n%s", program.View())
	}
}

func TestInitLoadsReport(t *testing.T) {
	m := newTestModel(seededSource())
	cmd := m.Init()
	m = deliver(t, m, cmd)

	r := m.Report()
	if r == nil {
		t.Fatal("expected report after init load")
	}
	if len(r.Stats) != 1 || r.Stats[0].CurrentStreak != 2 {
		t.Errorf("unexpected stats %+v", r.Stats)
	}
	if m.loading {
		t.Error("expected loading to be cleared")
	}
}

func TestMonthNavigation(t *testing.T) {
	tests := []struct {
		name      string
		keys      []string
		wantYear  int
		wantMonth int
	}{
		{"previous month", []string{"left"}, 2025, 1},
		{"next month", []string{"right"}, 2025, 3},
		{"wraps back over year", []string{"left", "left", "left"}, 2024, 11},
		{"vim keys", []string{"h", "h", "l"}, 2025, 1},
		{"today resets", []string{"right", "right", "t"}, 2025, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(seededSource())
			for _, k := range tt.keys {
				var cmd tea.Cmd
				m, cmd = press(t, m, k)
				if cmd == nil {
					t.Fatalf("expected load command after %q", k)
				}
			}
			if p := m.Period(); p.Year != tt.wantYear || p.Month != tt.wantMonth {
				t.Errorf("got %d/%d, want %d/%d", p.Year, p.Month, tt.wantYear, tt.wantMonth)
			}
		})
	}
}

func TestBreakdownYearNavigation(t *testing.T) {
	m := newTestModel(seededSource())
	m, _ = press(t, m, "down")
	m, _ = press(t, m, "down")
	if m.BreakdownYear() != 2023 {
		t.Errorf("expected 2023, got %d", m.BreakdownYear())
	}
	m, cmd := press(t, m, "up")
	if m.BreakdownYear() != 2024 {
		t.Errorf("expected 2024, got %d", m.BreakdownYear())
	}
	m = deliver(t, m, cmd)
	if m.Report().BreakdownYear != 2024 {
		t.Errorf("expected report for 2024, got %d", m.Report().BreakdownYear)
	}
	// Month selection is independent of the breakdown year
	if p := m.Period(); p.Year != 2025 || p.Month != 2 {
		t.Errorf("expected period unchanged, got %+v", p)
	}
}

func TestStaleReportDiscarded(t *testing.T) {
	m := newTestModel(seededSource())

	m, first := press(t, m, "left")
	m, second := press(t, m, "left")

	staleMsg := first()
	latestMsg := second()

	// The newer response arrives first, then the stale one
	next, _ := m.Update(latestMsg)
	m = next.(Model)
	next, _ = m.Update(staleMsg)
	m = next.(Model)

	r := m.Report()
	if r == nil {
		t.Fatal("expected report")
	}
	if r.Period.Month != 0 || r.Period.Year != 2025 {
		t.Errorf("expected January 2025 report, got %+v", r.Period)
	}
}

func TestStaleReportDoesNotClearLoading(t *testing.T) {
	m := newTestModel(seededSource())
	m, first := press(t, m, "right")
	m, _ = press(t, m, "right")

	next, _ := m.Update(first())
	m = next.(Model)
	if !m.loading {
		t.Error("expected model to keep loading until the current request returns")
	}
	if m.Report() != nil {
		t.Error("expected stale report to be ignored")
	}
}

func TestLoadError(t *testing.T) {
	src := seededSource()
	m := newTestModel(src)
	m = deliver(t, m, m.Init())

	src.listErr = errors.New("disk on fire")
	m, cmd := press(t, m, "r")
	m = deliver(t, m, cmd)

	if m.err == nil {
		t.Fatal("expected load error")
	}
	if !strings.Contains(m.View(), "disk on fire") {
		t.Errorf("expected error in view:\n%s", m.View())
	}
}

func TestTabCycling(t *testing.T) {
	m := newTestModel(seededSource())
	m, cmd := press(t, m, "tab")
	if cmd != nil {
		t.Error("switching tabs should not reload")
	}
	if m.view != ViewBreakdown {
		t.Errorf("expected breakdown view, got %d", m.view)
	}
	m, _ = press(t, m, "shift+tab")
	m, _ = press(t, m, "shift+tab")
	if m.view != ViewSummary {
		t.Errorf("expected wrap to summary view, got %d", m.view)
	}
}

func TestQuit(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		m := newTestModel(seededSource())
		m, cmd := press(t, m, k)
		if cmd == nil {
			t.Fatalf("expected quit command for %q", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("expected QuitMsg for %q", k)
		}
		if m.View() != "" {
			t.Error("expected empty view after quit")
		}
	}
}

func TestViewRendersEachTab(t *testing.T) {
	m := newTestModel(seededSource())
	if !strings.Contains(m.View(), "Loading") {
		t.Error("expected loading placeholder before first report")
	}
	m = deliver(t, m, m.Init())

	want := []string{"Meditate", "Monthly breakdown for 2025", "Best streak:"}
	for i, w := range want {
		if !strings.Contains(m.View(), w) {
			t.Errorf("tab %d missing %q:\n%s", i, w, m.View())
		}
		m, _ = press(t, m, "tab")
	}
}

func TestViewEmptyStore(t *testing.T) {
	m := newTestModel(&fakeSource{})
	m = deliver(t, m, m.Init())
	if !strings.Contains(m.View(), "No habits yet") {
		t.Errorf("expected empty-state message:\n%s", m.View())
	}
}

package tui

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fitz/taskflow/internal/app"
	"github.com/fitz/taskflow/internal/models"
	"github.com/fitz/taskflow/internal/prefs"
	"github.com/fitz/taskflow/internal/store"
	"github.com/fitz/taskflow/internal/views"
)

var fixedNow = time.Date(2024, time.June, 11, 9, 30, 0, 0, time.Local)

func newTestModel(t *testing.T, kv *prefs.Memory, tasks ...models.Task) (Model, *app.Controller) {
	t.Helper()
	opts := app.Options{
		Store:  store.NewMemory(tasks...),
		Clock:  func() time.Time { return fixedNow },
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if kv != nil {
		opts.Persister = kv
	}
	c, err := app.New(context.Background(), opts)
	if err != nil {
		t.Fatalf("app.New failed: %v", err)
	}
	return New(context.Background(), c), c
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		if m, ok = next.(Model); !ok {
			t.Fatalf("Update returned %T, want Model", next)
		}
	}
	return m
}

func TestViewKeysSwitchAndPersist(t *testing.T) {
	ctx := context.Background()
	kv := prefs.NewMemory(nil)
	m, c := newTestModel(t, kv)

	tests := []struct {
		key  string
		want models.View
	}{
		{"2", models.ViewWeek},
		{"3", models.ViewTimeline},
		{"1", models.ViewMonth},
	}
	for _, tc := range tests {
		m = press(t, m, runes(tc.key))
		if got := c.View(); got != tc.want {
			t.Errorf("after %q view = %q, want %q", tc.key, got, tc.want)
		}
		if got, _ := kv.Get(ctx, prefs.KeyActiveTab); got != string(tc.want) {
			t.Errorf("after %q persisted %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestQuickAdd(t *testing.T) {
	m, c := newTestModel(t, nil)

	m = press(t, m, runes("a"))
	if !m.adding {
		t.Fatal("expected add mode")
	}
	m = press(t, m, runes("Write report @2024-06-10..2024-06-12 #Work"), tea.KeyMsg{Type: tea.KeyEnter})

	if m.adding {
		t.Error("expected add mode to close after a successful add")
	}
	tasks := c.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	got := tasks[0]
	if got.Title != "Write report" || got.Category != "Work" || got.StartDate != "2024-06-10" || got.EndDate != "2024-06-12" {
		t.Errorf("unexpected task: %+v", got)
	}
	if !strings.Contains(m.status, "Write report") {
		t.Errorf("expected status to mention the task, got %q", m.status)
	}
}

func TestQuickAdd_BlankTitleStaysOpen(t *testing.T) {
	m, c := newTestModel(t, nil)

	m = press(t, m, runes("a"), runes("#Work"), tea.KeyMsg{Type: tea.KeyEnter})
	if !m.adding || !m.err {
		t.Errorf("expected add mode with an error, got adding=%v err=%v", m.adding, m.err)
	}
	if n := len(c.Tasks()); n != 0 {
		t.Errorf("expected no tasks, got %d", n)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.adding {
		t.Error("expected esc to cancel add mode")
	}
}

func TestMonthSelectionFollowsMonth(t *testing.T) {
	m, c := newTestModel(t, nil)

	m = press(t, m, runes("l"))
	if got := c.SelectedDate(); got != "2024-06-12" {
		t.Errorf("expected 2024-06-12, got %q", got)
	}
	m = press(t, m, runes("k"))
	if got := c.SelectedDate(); got != "2024-06-05" {
		t.Errorf("expected 2024-06-05, got %q", got)
	}

	m = press(t, m, runes("j"), runes("j"), runes("j"), runes("j"))
	if got := c.SelectedDate(); got != "2024-07-03" {
		t.Errorf("expected 2024-07-03, got %q", got)
	}
	if got := c.Month().State; got != (views.MonthState{Year: 2024, Month: 6}) {
		t.Errorf("expected July 2024 on the grid, got %+v", got)
	}

	m = press(t, m, runes("c"))
	if got := c.SelectedDate(); got != "" {
		t.Errorf("expected cleared date, got %q", got)
	}
	_ = m
}

func TestMonthPaging(t *testing.T) {
	m, c := newTestModel(t, nil)
	m = press(t, m, runes("]"), runes("]"), runes("["))
	if got := c.Month().State; got != (views.MonthState{Year: 2024, Month: 6}) {
		t.Errorf("expected July 2024, got %+v", got)
	}
	_ = m
}

func TestWeekNavigation(t *testing.T) {
	m, c := newTestModel(t, nil)
	start := c.Week().State.Anchor

	m = press(t, m, runes("2"), runes("l"), runes("]"))
	if got, want := c.Week().State.Anchor, start.AddDate(0, 0, 8); !got.Equal(want) {
		t.Errorf("anchor = %v, want %v", got, want)
	}

	m = press(t, m, runes(" "))
	want := start.AddDate(0, 0, 8)
	if got := c.Week().State.Selected; !got.Equal(want) {
		t.Errorf("selected = %v, want %v", got, want)
	}
	if got := c.SelectedDate(); got != "2024-06-19" {
		t.Errorf("expected list filtered to 2024-06-19, got %q", got)
	}

	m = press(t, m, runes("t"))
	if got := c.Week().State.Anchor; !got.Equal(start) {
		t.Errorf("expected today's week after t, got %v", got)
	}
}

func TestListFocusCyclesStatus(t *testing.T) {
	m, c := newTestModel(t, nil,
		models.Task{ID: "a", Title: "First", Status: models.TaskStatusNotStarted},
		models.Task{ID: "b", Title: "Second", Status: models.TaskStatusInProgress},
	)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, runes("j"), runes("j"), runes(" "))
	if m.cursor != 1 {
		t.Errorf("expected cursor clamped at 1, got %d", m.cursor)
	}
	if task, _ := c.Task("b"); task.Status != models.TaskStatusDone {
		t.Errorf("expected b done, got %q", task.Status)
	}
	if task, _ := c.Task("a"); task.Status != models.TaskStatusNotStarted {
		t.Errorf("expected a untouched, got %q", task.Status)
	}

	m = press(t, m, runes("k"), tea.KeyMsg{Type: tea.KeyEnter})
	if task, _ := c.Task("a"); task.Status != models.TaskStatusInProgress {
		t.Errorf("expected a in progress, got %q", task.Status)
	}
}

func TestTimelineKeys(t *testing.T) {
	m, c := newTestModel(t, nil)
	m = press(t, m, runes("3"), runes("f"))
	if got := c.TimelineOptions().Filter; string(got) != string(models.TaskStatusNotStarted) {
		t.Errorf("expected not started filter, got %q", got)
	}

	m = press(t, m, runes("f"), runes("f"), runes("f"))
	if got := c.TimelineOptions().Filter; got != filterCycle[0] {
		t.Errorf("expected filter to wrap to all, got %q", got)
	}

	m = press(t, m, runes("g"))
	if got := c.TimelineOptions().LaneBy; got != views.LaneByCategory {
		t.Errorf("expected category lanes, got %q", got)
	}
	m = press(t, m, runes("g"))
	if got := c.TimelineOptions().LaneBy; got != views.LaneByStatus {
		t.Errorf("expected status lanes, got %q", got)
	}
}

func TestQuitKey(t *testing.T) {
	m, _ := newTestModel(t, nil)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestViewRendersActiveView(t *testing.T) {
	m, _ := newTestModel(t, nil,
		models.Task{ID: "a", Title: "Dentist", StartDate: "2024-06-11", EndDate: "2024-06-11", StartTime: "09:00", EndTime: "10:00", Category: "Health"},
	)
	m = press(t, m, tea.WindowSizeMsg{Width: 160, Height: 50})

	out := m.View()
	for _, want := range []string{"Month View", "June 2024", "Dentist"} {
		if !strings.Contains(out, want) {
			t.Errorf("month view missing %q", want)
		}
	}

	m = press(t, m, runes("2"))
	if out := m.View(); !strings.Contains(out, "09:00 - 10:00") {
		t.Error("week view missing the block time range")
	}

	m = press(t, m, runes("3"))
	if out := m.View(); !strings.Contains(out, "Timeline") {
		t.Error("timeline view missing heading")
	}
}

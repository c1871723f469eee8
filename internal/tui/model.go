// Package tui is the interactive terminal board over the root controller.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fitz/taskflow/internal/app"
	"github.com/fitz/taskflow/internal/grid"
	"github.com/fitz/taskflow/internal/grouping"
	"github.com/fitz/taskflow/internal/models"
	"github.com/fitz/taskflow/internal/views"
)

// Focus selects which panel receives navigation keys.
type Focus int

const (
	FocusGrid Focus = iota
	FocusList
)

const (
	defaultWidth  = 120
	defaultHeight = 40
	listWidth     = 34
)

// filterCycle is the order the filter key steps through.
var filterCycle = []grouping.StatusFilter{
	grouping.FilterAll,
	grouping.StatusFilter(models.TaskStatusNotStarted),
	grouping.StatusFilter(models.TaskStatusInProgress),
	grouping.StatusFilter(models.TaskStatusDone),
}

// Model is the bubbletea model for the board.
type Model struct {
	ctx        context.Context
	controller *app.Controller
	keys       KeyMap
	help       help.Model
	input      textinput.Model

	focus  Focus
	adding bool
	cursor int

	width  int
	height int
	status string
	err    bool
}

// New returns a board over controller. ctx is passed to every controller
// call that persists or stores.
func New(ctx context.Context, controller *app.Controller) Model {
	input := textinput.New()
	input.Placeholder = "Title @2024-06-10..2024-06-12 09:00-11:00 #Work"
	input.Prompt = "+ "
	input.CharLimit = 200

	return Model{
		ctx:        ctx,
		controller: controller,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		input:      input,
		width:      defaultWidth,
		height:     defaultHeight,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(20, msg.Width-10)
		return m, nil
	case tea.KeyMsg:
		if m.adding {
			return m.handleAddKeys(msg)
		}
		return m.handleKeys(msg)
	}
	return m, nil
}

func (m Model) handleAddKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.adding = false
		m.input.Blur()
		m.input.Reset()
		m.setStatus("Cancelled", false)
		return m, nil
	case tea.KeyEnter:
		in := parseQuickAdd(m.input.Value())
		task, ok := m.controller.CreateTask(m.ctx, in)
		if !ok {
			m.setStatus("A task needs a title", true)
			return m, nil
		}
		m.adding = false
		m.input.Blur()
		m.input.Reset()
		m.setStatus(fmt.Sprintf("Added %q (%s)", task.Title, grid.FormatSpan(task.StartDate, task.EndDate)), false)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.MonthView):
		m.controller.SelectView(m.ctx, models.ViewMonth)
	case key.Matches(msg, m.keys.WeekView):
		m.controller.SelectView(m.ctx, models.ViewWeek)
	case key.Matches(msg, m.keys.TimelineView):
		m.controller.SelectView(m.ctx, models.ViewTimeline)
	case key.Matches(msg, m.keys.Focus):
		if m.focus == FocusGrid {
			m.focus = FocusList
		} else {
			m.focus = FocusGrid
		}
	case key.Matches(msg, m.keys.Add):
		m.adding = true
		m.status = ""
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Clear):
		m.controller.SelectDate("")
		m.cursor = 0
	case key.Matches(msg, m.keys.Today):
		m.showToday()
	case key.Matches(msg, m.keys.Filter):
		m.nextFilter()
	case key.Matches(msg, m.keys.Lanes):
		m.toggleLanes()
	default:
		if m.focus == FocusList {
			m.handleListKeys(msg)
		} else {
			m.handleGridKeys(msg)
		}
	}
	return m, nil
}

func (m *Model) handleListKeys(msg tea.KeyMsg) {
	tasks := m.controller.TaskList()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = max(0, m.cursor-1)
	case key.Matches(msg, m.keys.Down):
		m.cursor = min(max(0, len(tasks)-1), m.cursor+1)
	case key.Matches(msg, m.keys.Cycle):
		if m.cursor >= len(tasks) {
			return
		}
		task, ok := m.controller.CycleStatus(m.ctx, tasks[m.cursor].ID)
		if ok {
			m.setStatus(fmt.Sprintf("%q is now %s", task.Title, task.Status), false)
		}
	}
}

func (m *Model) handleGridKeys(msg tea.KeyMsg) {
	switch m.controller.View() {
	case models.ViewWeek:
		switch {
		case key.Matches(msg, m.keys.Left):
			m.controller.PreviousDay()
		case key.Matches(msg, m.keys.Right):
			m.controller.NextDay()
		case key.Matches(msg, m.keys.PrevPage):
			m.controller.PreviousWeek()
		case key.Matches(msg, m.keys.NextPage):
			m.controller.NextWeek()
		case key.Matches(msg, m.keys.Cycle):
			m.selectWeekDay()
		}
	case models.ViewTimeline:
	default:
		switch {
		case key.Matches(msg, m.keys.Left):
			m.moveSelection(-1)
		case key.Matches(msg, m.keys.Right):
			m.moveSelection(1)
		case key.Matches(msg, m.keys.Up):
			m.moveSelection(-7)
		case key.Matches(msg, m.keys.Down):
			m.moveSelection(7)
		case key.Matches(msg, m.keys.PrevPage):
			m.controller.PreviousMonth(m.ctx)
		case key.Matches(msg, m.keys.NextPage):
			m.controller.NextMonth(m.ctx)
		}
	}
}

// moveSelection steps the selected date and pages the month grid to
// follow it.
func (m *Model) moveSelection(days int) {
	base := m.controller.Now()
	if d, ok := grid.ParseDate(m.controller.SelectedDate()); ok {
		base = d
	}
	next := base.AddDate(0, 0, days)
	m.controller.SelectDate(grid.FormatDate(next))
	m.cursor = 0

	state := m.controller.Month().State
	target := views.MonthState{Year: next.Year(), Month: int(next.Month()) - 1}
	for state != target {
		if target.Year < state.Year || (target.Year == state.Year && target.Month < state.Month) {
			state = m.controller.PreviousMonth(m.ctx)
		} else {
			state = m.controller.NextMonth(m.ctx)
		}
	}
}

// selectWeekDay highlights the anchor day and filters the list to it.
func (m *Model) selectWeekDay() {
	anchor := m.controller.Week().State.Anchor
	date := grid.FormatDate(anchor)
	m.controller.SelectWeekDay(date)
	m.controller.SelectDate(date)
	m.cursor = 0
}

func (m *Model) showToday() {
	today := grid.FormatDate(m.controller.Now())
	switch m.controller.View() {
	case models.ViewWeek:
		m.controller.ShowWeekOf(today)
	default:
		m.controller.SelectDate(today)
		m.moveSelection(0)
	}
}

func (m *Model) nextFilter() {
	current := m.controller.TimelineOptions().Filter
	next := filterCycle[0]
	for i, f := range filterCycle {
		if f == current {
			next = filterCycle[(i+1)%len(filterCycle)]
			break
		}
	}
	m.controller.SetTimelineFilter(next)
	m.setStatus("Timeline filter: "+string(next), false)
}

func (m *Model) toggleLanes() {
	next := views.LaneByCategory
	if m.controller.TimelineOptions().LaneBy == views.LaneByCategory {
		next = views.LaneByStatus
	}
	m.controller.SetTimelineLanes(next)
	m.setStatus("Timeline lanes: "+string(next), false)
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.err = isErr
}

// View implements tea.Model.
func (m Model) View() string {
	snap := m.controller.Snapshot()
	gridWidth := max(40, m.width-listWidth-6)

	var body string
	switch {
	case snap.Week != nil:
		body = RenderWeek(*snap.Week, gridWidth)
	case snap.Timeline != nil:
		body = RenderTimeline(*snap.Timeline, gridWidth)
	case snap.Month != nil:
		body = RenderMonth(*snap.Month, gridWidth)
	}

	cursor := -1
	if m.focus == FocusList {
		cursor = min(m.cursor, len(snap.TaskList)-1)
	}
	list := RenderTaskList(snap.TaskList, snap.SelectedDate, cursor, listWidth)

	gridPanel, listPanel := panelStyle, panelStyle
	if m.focus == FocusList {
		listPanel = focusedPanelStyle
	} else {
		gridPanel = focusedPanelStyle
	}

	var b strings.Builder
	b.WriteString(m.renderTabs(snap.View, snap.TaskCount))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		gridPanel.Width(gridWidth).Render(body),
		listPanel.Width(listWidth).Render(list),
	))
	b.WriteString("\n")

	if m.adding {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	if m.status != "" {
		style := statusBarStyle
		if m.err {
			style = errorStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderTabs(active models.View, count int) string {
	tabs := make([]string, 0, len(models.ValidViews)+1)
	for i, v := range models.ValidViews {
		label := fmt.Sprintf("%d %s", i+1, v.Label())
		if v == active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	tabs = append(tabs, dimStyle.Render(fmt.Sprintf("  %d tasks", count)))
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// Run starts the board in the alternate screen and blocks until it exits.
func Run(ctx context.Context, controller *app.Controller) error {
	p := tea.NewProgram(New(ctx, controller), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

var _ tea.Model = Model{}

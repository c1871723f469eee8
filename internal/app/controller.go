// Package app holds the root controller that owns the task collection, the
// active view, the selected date and each view's navigation state.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fitz/taskflow/internal/grid"
	"github.com/fitz/taskflow/internal/grouping"
	"github.com/fitz/taskflow/internal/models"
	"github.com/fitz/taskflow/internal/prefs"
	"github.com/fitz/taskflow/internal/store"
	"github.com/fitz/taskflow/internal/views"
)

// Persister receives preference writes. Failures are logged and dropped.
type Persister = prefs.Setter

// Options configures a Controller. Zero values select defaults.
type Options struct {
	Store     store.Store
	Persister Persister
	Palette   *models.Palette
	Clock     grid.Clock
	Logger    *slog.Logger

	// Initial state, usually restored from preferences.
	View          models.View
	Month         views.MonthState
	TimelineWeeks int
}

// Controller is safe for concurrent use.
type Controller struct {
	store     store.Store
	persister Persister
	palette   *models.Palette
	clock     grid.Clock
	logger    *slog.Logger

	mu           sync.RWMutex
	tasks        []models.Task
	view         models.View
	selectedDate string
	month        views.MonthState
	week         views.WeekState
	timeline     views.TimelineOptions

	subMu   sync.Mutex
	subs    []subscriber
	nextSub int
}

// New loads the task collection from opts.Store and returns a controller.
func New(ctx context.Context, opts Options) (*Controller, error) {
	if opts.Store == nil {
		opts.Store = store.NewMemory()
	}
	if opts.Clock == nil {
		opts.Clock = grid.SystemClock
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Palette == nil {
		opts.Palette = models.DefaultPalette()
	}

	now := opts.Clock()
	if !models.IsValidView(string(opts.View)) {
		opts.View = models.DefaultView
	}
	if opts.Month == (views.MonthState{}) || !opts.Month.Valid() {
		opts.Month = views.NewMonthState(now)
	}

	timeline := views.DefaultTimelineOptions()
	if opts.TimelineWeeks > 0 {
		timeline.Weeks = opts.TimelineWeeks
	}

	tasks, err := opts.Store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	return &Controller{
		store:     opts.Store,
		persister: opts.Persister,
		palette:   opts.Palette,
		clock:     opts.Clock,
		logger:    opts.Logger,
		tasks:     tasks,
		view:      opts.View,
		month:     opts.Month,
		week:      views.NewWeekState(now),
		timeline:  timeline,
	}, nil
}

// NewTask is the input to CreateTask. Empty fields take defaults.
type NewTask struct {
	Title     string
	Status    models.TaskStatus
	StartDate string
	EndDate   string
	StartTime string
	EndTime   string
	Category  string
}

// CreateTask appends a task. It returns false without changing anything
// when the trimmed title is empty or the store rejects the write.
func (c *Controller) CreateTask(ctx context.Context, in NewTask) (models.Task, bool) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Task{}, false
	}

	now := c.clock()
	today := grid.FormatDate(now)

	task := models.Task{
		Title:     title,
		Status:    in.Status,
		StartDate: strings.TrimSpace(in.StartDate),
		EndDate:   strings.TrimSpace(in.EndDate),
		StartTime: strings.TrimSpace(in.StartTime),
		EndTime:   strings.TrimSpace(in.EndTime),
		Category:  strings.TrimSpace(in.Category),
		CreatedAt: now.UTC(),
	}
	if status, ok := models.ParseTaskStatus(string(task.Status)); ok {
		task.Status = status
	} else {
		task.Status = models.TaskStatusNotStarted
	}
	if task.StartDate == "" {
		task.StartDate = today
	}
	if task.EndDate == "" {
		task.EndDate = today
		// A future start with no end would otherwise span backwards.
		if start, ok := grid.ParseDate(task.StartDate); ok && start.After(grid.Midnight(now)) {
			task.EndDate = grid.FormatDate(start)
		}
	}
	if task.Category == "" {
		task.Category = models.DefaultCategory
	}

	c.mu.Lock()
	created, err := c.store.Create(ctx, task)
	if err != nil {
		c.mu.Unlock()
		c.logger.Error("failed to create task", "title", title, "error", err)
		return models.Task{}, false
	}
	c.tasks = append(c.tasks, created)
	c.mu.Unlock()

	c.logger.Debug("task created", "id", created.ID, "title", created.Title)
	c.emit(Event{Kind: EventTaskCreated, Task: created})
	return created, true
}

// CycleStatus advances the status of task id. It returns false when no
// task has that id.
func (c *Controller) CycleStatus(ctx context.Context, id string) (models.Task, bool) {
	c.mu.Lock()
	idx := -1
	for i, t := range c.tasks {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		c.mu.Unlock()
		return models.Task{}, false
	}

	updated := c.tasks[idx].WithStatus(c.tasks[idx].Status.Next())
	if err := c.store.Replace(ctx, updated); err != nil {
		c.mu.Unlock()
		c.logger.Error("failed to update task status", "id", id, "error", err)
		return models.Task{}, false
	}
	c.tasks[idx] = updated
	c.mu.Unlock()

	c.emit(Event{Kind: EventStatusCycled, Task: updated})
	return updated, true
}

// Tasks returns every task in creation order.
func (c *Controller) Tasks() []models.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotTasks()
}

func (c *Controller) snapshotTasks() []models.Task {
	out := make([]models.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// Task returns the task with id.
func (c *Controller) Task(id string) (models.Task, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, t := range c.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

// View returns the active view.
func (c *Controller) View() models.View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.view
}

// SelectView switches the active view and persists it. It returns false for
// an unknown view.
func (c *Controller) SelectView(ctx context.Context, view models.View) bool {
	if !models.IsValidView(string(view)) {
		return false
	}

	c.mu.Lock()
	c.view = view
	c.mu.Unlock()

	c.persist(func(p Persister) error { return prefs.SaveView(ctx, p, view) })
	c.emit(Event{Kind: EventViewSelected, View: view})
	return true
}

// SelectedDate returns the task list date filter, or "" when cleared.
func (c *Controller) SelectedDate() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selectedDate
}

// SelectDate sets the task list date filter. An empty date clears it.
// It returns false for an unparsable date.
func (c *Controller) SelectDate(date string) bool {
	date = strings.TrimSpace(date)
	if date != "" {
		d, ok := grid.ParseDate(date)
		if !ok {
			return false
		}
		date = grid.FormatDate(d)
	}

	c.mu.Lock()
	c.selectedDate = date
	c.mu.Unlock()

	c.emit(Event{Kind: EventDateSelected, Date: date})
	return true
}

// TaskList returns the tasks starting on the selected date, or all tasks
// when no date is selected.
func (c *Controller) TaskList() []models.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return grouping.FilterByDate(c.snapshotTasks(), c.selectedDate)
}

// PreviousMonth steps the month grid back and persists the position.
func (c *Controller) PreviousMonth(ctx context.Context) views.MonthState {
	return c.moveMonth(ctx, views.MonthState.Previous)
}

// NextMonth steps the month grid forward and persists the position.
func (c *Controller) NextMonth(ctx context.Context) views.MonthState {
	return c.moveMonth(ctx, views.MonthState.Next)
}

func (c *Controller) moveMonth(ctx context.Context, step func(views.MonthState) views.MonthState) views.MonthState {
	c.mu.Lock()
	c.month = step(c.month)
	state := c.month
	c.mu.Unlock()

	c.persist(func(p Persister) error { return prefs.SaveMonth(ctx, p, state) })
	c.emit(Event{Kind: EventMonthChanged})
	return state
}

// PreviousDay moves the week grid anchor back one day.
func (c *Controller) PreviousDay() views.WeekState { return c.moveWeek(views.WeekState.PreviousDay) }

// NextDay moves the week grid anchor forward one day.
func (c *Controller) NextDay() views.WeekState { return c.moveWeek(views.WeekState.NextDay) }

// PreviousWeek moves the week grid anchor back seven days.
func (c *Controller) PreviousWeek() views.WeekState { return c.moveWeek(views.WeekState.PreviousWeek) }

// NextWeek moves the week grid anchor forward seven days.
func (c *Controller) NextWeek() views.WeekState { return c.moveWeek(views.WeekState.NextWeek) }

// SelectWeekDay highlights date on the week grid. It returns false for an
// unparsable date.
func (c *Controller) SelectWeekDay(date string) (views.WeekState, bool) {
	d, ok := grid.ParseDate(date)
	if !ok {
		c.mu.RLock()
		defer c.mu.RUnlock()
		return c.week, false
	}
	return c.moveWeek(func(s views.WeekState) views.WeekState { return s.Select(d) }), true
}

// ShowWeekOf anchors the week grid on date and selects it.
func (c *Controller) ShowWeekOf(date string) (views.WeekState, bool) {
	d, ok := grid.ParseDate(date)
	if !ok {
		c.mu.RLock()
		defer c.mu.RUnlock()
		return c.week, false
	}
	return c.moveWeek(func(s views.WeekState) views.WeekState {
		s.Anchor = d
		return s.Select(d)
	}), true
}

func (c *Controller) moveWeek(step func(views.WeekState) views.WeekState) views.WeekState {
	c.mu.Lock()
	c.week = step(c.week)
	state := c.week
	c.mu.Unlock()

	c.emit(Event{Kind: EventWeekChanged})
	return state
}

// SetTimelineFilter changes the timeline status filter.
func (c *Controller) SetTimelineFilter(filter grouping.StatusFilter) bool {
	f, ok := grouping.ParseStatusFilter(string(filter))
	if !ok {
		return false
	}
	c.mu.Lock()
	c.timeline.Filter = f
	c.mu.Unlock()

	c.emit(Event{Kind: EventTimelineChanged})
	return true
}

// SetTimelineLanes changes how timeline lanes are grouped.
func (c *Controller) SetTimelineLanes(key views.LaneKey) bool {
	k, ok := views.ParseLaneKey(string(key))
	if !ok {
		return false
	}
	c.mu.Lock()
	c.timeline.LaneBy = k
	c.mu.Unlock()

	c.emit(Event{Kind: EventTimelineChanged})
	return true
}

// TimelineOptions returns the current timeline options.
func (c *Controller) TimelineOptions() views.TimelineOptions {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.timeline
}

// Palette returns the category palette.
func (c *Controller) Palette() *models.Palette {
	return c.palette
}

// Now reads the controller's clock.
func (c *Controller) Now() time.Time {
	return c.clock()
}

// Month lays out the current month.
func (c *Controller) Month() views.MonthLayout {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return views.LayoutMonth(c.month, c.tasks, c.selectedDate, c.palette, c.clock())
}

// Week lays out the current week.
func (c *Controller) Week() views.WeekLayout {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return views.LayoutWeek(c.week, c.tasks, c.palette, c.clock())
}

// Timeline lays out the timeline with the current options.
func (c *Controller) Timeline() views.TimelineLayout {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return views.LayoutTimeline(c.tasks, c.timeline, c.palette, c.clock())
}

// TimelineWith lays out the timeline with opts without changing state.
func (c *Controller) TimelineWith(opts views.TimelineOptions) views.TimelineLayout {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return views.LayoutTimeline(c.tasks, opts, c.palette, c.clock())
}

// Snapshot is the active view's layout together with the task list panel.
type Snapshot struct {
	View         models.View           `json:"view"`
	SelectedDate string                `json:"selected_date,omitempty"`
	TaskCount    int                   `json:"task_count"`
	TaskList     []views.TaskListItem  `json:"task_list"`
	Month        *views.MonthLayout    `json:"month,omitempty"`
	Week         *views.WeekLayout     `json:"week,omitempty"`
	Timeline     *views.TimelineLayout `json:"timeline,omitempty"`
}

// Snapshot renders the active view.
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.clock()
	snap := Snapshot{
		View:         c.view,
		SelectedDate: c.selectedDate,
		TaskCount:    len(c.tasks),
		TaskList:     views.BuildTaskList(grouping.FilterByDate(c.tasks, c.selectedDate), c.palette),
	}
	switch c.view {
	case models.ViewWeek:
		l := views.LayoutWeek(c.week, c.tasks, c.palette, now)
		snap.Week = &l
	case models.ViewTimeline:
		l := views.LayoutTimeline(c.tasks, c.timeline, c.palette, now)
		snap.Timeline = &l
	default:
		l := views.LayoutMonth(c.month, c.tasks, c.selectedDate, c.palette, now)
		snap.Month = &l
	}
	return snap
}

func (c *Controller) persist(save func(Persister) error) {
	if c.persister == nil {
		return
	}
	if err := save(c.persister); err != nil {
		c.logger.Warn("failed to persist preference", "error", err)
	}
}

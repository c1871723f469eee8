package views

import (
	"time"

	"github.com/fitz/taskflow/internal/grid"
	"github.com/fitz/taskflow/internal/models"
)

// WeekState is the week grid's navigation state. Anchor decides which week
// is visible; Selected only drives highlighting.
type WeekState struct {
	Anchor   time.Time `json:"anchor"`
	Selected time.Time `json:"selected"`
}

// NewWeekState anchors and selects now's date.
func NewWeekState(now time.Time) WeekState {
	day := grid.Midnight(now)
	return WeekState{Anchor: day, Selected: day}
}

// PreviousDay moves the anchor back one day.
func (s WeekState) PreviousDay() WeekState { return s.shift(-1) }

// NextDay moves the anchor forward one day.
func (s WeekState) NextDay() WeekState { return s.shift(1) }

// PreviousWeek moves the anchor back seven days.
func (s WeekState) PreviousWeek() WeekState { return s.shift(-7) }

// NextWeek moves the anchor forward seven days.
func (s WeekState) NextWeek() WeekState { return s.shift(7) }

func (s WeekState) shift(days int) WeekState {
	s.Anchor = grid.Midnight(s.Anchor).AddDate(0, 0, days)
	return s
}

// Select marks date as selected without moving the anchor.
func (s WeekState) Select(date time.Time) WeekState {
	s.Selected = grid.Midnight(date)
	return s
}

// Dates returns the visible Monday-first week.
func (s WeekState) Dates() [7]time.Time {
	return grid.StartOfWeek(s.Anchor)
}

// WeekColumn is one day header of the week grid.
type WeekColumn struct {
	Date       string `json:"date"`
	Label      string `json:"label"`
	IsToday    bool   `json:"is_today"`
	IsSelected bool   `json:"is_selected"`
}

// WeekBlock is a positioned task on the hour grid. Span counts day columns.
type WeekBlock struct {
	Task      TaskChip `json:"task"`
	Column    int      `json:"column"`
	Span      int      `json:"span"`
	Top       float64  `json:"top"`
	Height    float64  `json:"height"`
	TimeRange string   `json:"time_range"`
}

// WeekLayout is the positioned week grid.
type WeekLayout struct {
	State     WeekState     `json:"state"`
	Columns   [7]WeekColumn `json:"columns"`
	Hours     []string      `json:"hours"`
	AllDay    [7][]TaskChip `json:"all_day"`
	Blocks    []WeekBlock   `json:"blocks"`
	RowHeight float64       `json:"row_height"`
}

// LayoutWeek positions timed tasks on the visible week.
//
// A task without a parsable start time is invisible in the week view, as is
// a task whose start date is outside the week. AllDay is always a row of
// empty columns. When the end date is a
// later column in the same week the block spans through it.
func LayoutWeek(state WeekState, tasks []models.Task, palette *models.Palette, now time.Time) WeekLayout {
	week := state.Dates()
	dates := week[:]

	layout := WeekLayout{
		State:     state,
		Hours:     grid.HourLabels(),
		RowHeight: grid.RowHeight,
	}
	for i, d := range week {
		layout.Columns[i] = WeekColumn{
			Date:       grid.FormatDate(d),
			Label:      d.Format("Mon 2"),
			IsToday:    grid.IsToday(d, now),
			IsSelected: !state.Selected.IsZero() && grid.SameDay(d, state.Selected),
		}
		layout.AllDay[i] = []TaskChip{}
	}

	for _, t := range tasks {
		col := grid.IndexOf(dates, t.StartDate)
		if col == -1 {
			continue
		}

		offset, ok := grid.TimeToOffset(t.StartTime)
		if !ok {
			continue
		}

		span := 1
		if t.EndDate != "" && t.EndDate != t.StartDate {
			if end := grid.IndexOf(dates, t.EndDate); end > col {
				span = end - col + 1
			}
		}

		timeRange := t.StartTime
		if t.EndTime != "" {
			timeRange += " - " + t.EndTime
		}

		layout.Blocks = append(layout.Blocks, WeekBlock{
			Task:      chipFor(t, palette),
			Column:    col,
			Span:      span,
			Top:       offset + grid.WeekHeaderOffset,
			Height:    grid.BlockHeight(t.StartTime, t.EndTime),
			TimeRange: timeRange,
		})
	}
	return layout
}

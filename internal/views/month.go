package views

import (
	"time"

	"github.com/fitz/taskflow/internal/grid"
	"github.com/fitz/taskflow/internal/grouping"
	"github.com/fitz/taskflow/internal/models"
)

// WeekdayHeaders is the Sunday-first header row of the month grid.
var WeekdayHeaders = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// MonthState is the month grid's navigation state. Month is zero-based.
type MonthState struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// NewMonthState returns the state showing now's month.
func NewMonthState(now time.Time) MonthState {
	return MonthState{Year: now.Year(), Month: int(now.Month()) - 1}
}

// Valid reports whether Month is within 0..11.
func (s MonthState) Valid() bool {
	return s.Month >= 0 && s.Month <= 11
}

// Previous steps back one month, rolling the year at January.
func (s MonthState) Previous() MonthState {
	if s.Month <= 0 {
		return MonthState{Year: s.Year - 1, Month: 11}
	}
	return MonthState{Year: s.Year, Month: s.Month - 1}
}

// Next steps forward one month, rolling the year at December.
func (s MonthState) Next() MonthState {
	if s.Month >= 11 {
		return MonthState{Year: s.Year + 1, Month: 0}
	}
	return MonthState{Year: s.Year, Month: s.Month + 1}
}

// Title renders e.g. "June 2024".
func (s MonthState) Title() string {
	return time.Date(s.Year, grid.MonthFromIndex(s.Month), 1, 0, 0, 0, 0, time.Local).Format("January 2006")
}

// DayCell is one day of the month grid.
type DayCell struct {
	Date       string     `json:"date"`
	Day        int        `json:"day"`
	IsToday    bool       `json:"is_today"`
	IsSelected bool       `json:"is_selected"`
	Tasks      []TaskChip `json:"tasks"`
}

// MonthLayout is the positioned month grid.
type MonthLayout struct {
	State         MonthState `json:"state"`
	Title         string     `json:"title"`
	Weekdays      []string   `json:"weekdays"`
	LeadingBlanks int        `json:"leading_blanks"`
	Cells         []DayCell  `json:"cells"`
}

// LayoutMonth places tasks on the days of state's month.
// Tasks are keyed on their end date; a task without a valid end date
// appears in no cell.
func LayoutMonth(state MonthState, tasks []models.Task, selectedDate string, palette *models.Palette, now time.Time) MonthLayout {
	byEnd := grouping.GroupBy(tasks, grouping.ByEndDate)

	layout := MonthLayout{
		State:    state,
		Title:    state.Title(),
		Weekdays: WeekdayHeaders,
	}

	for d := range grid.DaysInMonth(state.Year, grid.MonthFromIndex(state.Month)) {
		key := grid.FormatDate(d)
		if len(layout.Cells) == 0 {
			layout.LeadingBlanks = int(d.Weekday())
		}

		due := byEnd.Get(key)
		chips := make([]TaskChip, 0, len(due))
		for _, t := range due {
			chips = append(chips, chipFor(t, palette))
		}

		layout.Cells = append(layout.Cells, DayCell{
			Date:       key,
			Day:        d.Day(),
			IsToday:    grid.IsToday(d, now),
			IsSelected: selectedDate != "" && selectedDate == key,
			Tasks:      chips,
		})
	}
	return layout
}

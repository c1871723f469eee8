package tools

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fitz/taskflow/internal/app"
	"github.com/fitz/taskflow/internal/grid"
	"github.com/fitz/taskflow/internal/models"
	"github.com/fitz/taskflow/internal/views"
)

// Handler provides the dependencies needed by tool handlers.
type Handler struct {
	Controller *app.Controller
	Logger     *slog.Logger
}

// NewHandler creates a new Handler with the given dependencies.
func NewHandler(controller *app.Controller, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		Controller: controller,
		Logger:     logger,
	}
}

// TaskOutput is the wire form of a task.
type TaskOutput struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Status    string `json:"status"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
	Category  string `json:"category"`
	CreatedAt string `json:"created_at"`
}

func taskOutput(t models.Task) TaskOutput {
	return TaskOutput{
		ID:        t.ID,
		Title:     t.Title,
		Status:    string(t.Status),
		StartDate: t.StartDate,
		EndDate:   t.EndDate,
		StartTime: t.StartTime,
		EndTime:   t.EndTime,
		Category:  t.Category,
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// statusList renders the accepted status spellings for error messages.
func statusList() string {
	names := make([]string, len(models.ValidTaskStatuses))
	for i, s := range models.ValidTaskStatuses {
		names[i] = strings.ReplaceAll(string(s), " ", "_")
	}
	return strings.Join(names, ", ")
}

func parseStatus(s string) (models.TaskStatus, error) {
	status, ok := models.ParseTaskStatus(s)
	if !ok {
		return "", fmt.Errorf("invalid status: %s (must be one of: %s)", s, statusList())
	}
	return status, nil
}

func validateDate(field, s string) error {
	if s == "" {
		return nil
	}
	if _, ok := grid.ParseDate(s); !ok {
		return fmt.Errorf("invalid %s: %s (expected YYYY-MM-DD)", field, s)
	}
	return nil
}

func validateTime(field, s string) error {
	if s == "" {
		return nil
	}
	if _, _, ok := grid.ParseClock(s); !ok {
		return fmt.Errorf("invalid %s: %s (expected HH:mm)", field, s)
	}
	return nil
}

// MonthViewOutput is the month grid.
type MonthViewOutput struct {
	Year          int             `json:"year"`
	Month         int             `json:"month" jsonschema:"Zero-based month index"`
	Title         string          `json:"title"`
	Weekdays      []string        `json:"weekdays"`
	LeadingBlanks int             `json:"leading_blanks"`
	Cells         []views.DayCell `json:"cells"`
}

func monthOutput(l views.MonthLayout) MonthViewOutput {
	cells := make([]views.DayCell, len(l.Cells))
	for i, c := range l.Cells {
		if c.Tasks == nil {
			c.Tasks = []views.TaskChip{}
		}
		cells[i] = c
	}
	return MonthViewOutput{
		Year:          l.State.Year,
		Month:         l.State.Month,
		Title:         l.Title,
		Weekdays:      l.Weekdays,
		LeadingBlanks: l.LeadingBlanks,
		Cells:         cells,
	}
}

// WeekViewOutput is the week grid.
type WeekViewOutput struct {
	Anchor    string             `json:"anchor"`
	Selected  string             `json:"selected"`
	Columns   []views.WeekColumn `json:"columns"`
	Hours     []string           `json:"hours"`
	AllDay    [][]views.TaskChip `json:"all_day" jsonschema:"All-day row per column, Monday first; always empty"`
	Blocks    []views.WeekBlock  `json:"blocks"`
	RowHeight float64            `json:"row_height"`
}

func weekOutput(l views.WeekLayout) WeekViewOutput {
	out := WeekViewOutput{
		Anchor:    grid.FormatDate(l.State.Anchor),
		Selected:  grid.FormatDate(l.State.Selected),
		Columns:   l.Columns[:],
		Hours:     l.Hours,
		AllDay:    make([][]views.TaskChip, len(l.AllDay)),
		Blocks:    l.Blocks,
		RowHeight: l.RowHeight,
	}
	for i, chips := range l.AllDay {
		if chips == nil {
			chips = []views.TaskChip{}
		}
		out.AllDay[i] = chips
	}
	if out.Blocks == nil {
		out.Blocks = []views.WeekBlock{}
	}
	return out
}

// TimelineViewOutput is the timeline.
type TimelineViewOutput struct {
	Weeks      int                  `json:"weeks"`
	Filter     string               `json:"filter"`
	LaneBy     string               `json:"lane_by"`
	Dates      []string             `json:"dates"`
	TodayIndex int                  `json:"today_index" jsonschema:"Column of today, or -1 when outside the horizon"`
	TotalWidth float64              `json:"total_width"`
	TaskCount  int                  `json:"task_count"`
	Lanes      []views.TimelineLane `json:"lanes"`
}

func timelineOutput(l views.TimelineLayout) TimelineViewOutput {
	lanes := l.Lanes
	if lanes == nil {
		lanes = []views.TimelineLane{}
	}
	return TimelineViewOutput{
		Weeks:      l.Options.Weeks,
		Filter:     string(l.Options.Filter),
		LaneBy:     string(l.Options.LaneBy),
		Dates:      l.Dates,
		TodayIndex: l.TodayIndex,
		TotalWidth: l.TotalWidth,
		TaskCount:  l.TaskCount,
		Lanes:      lanes,
	}
}

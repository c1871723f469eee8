package views

import (
	"time"

	"github.com/fitz/taskflow/internal/grid"
	"github.com/fitz/taskflow/internal/grouping"
	"github.com/fitz/taskflow/internal/models"
)

// DefaultTimelineWeeks is the default horizon length in weeks.
const DefaultTimelineWeeks = 16

// LaneKey selects how the timeline groups tasks into lanes.
type LaneKey string

const (
	LaneByStatus   LaneKey = "status"
	LaneByCategory LaneKey = "category"
)

// ParseLaneKey returns the LaneKey named by s, defaulting to status.
func ParseLaneKey(s string) (LaneKey, bool) {
	switch LaneKey(s) {
	case "", LaneByStatus:
		return LaneByStatus, true
	case LaneByCategory:
		return LaneByCategory, true
	}
	return "", false
}

// TimelineOptions controls the timeline layout.
type TimelineOptions struct {
	Weeks  int                   `json:"weeks"`
	Filter grouping.StatusFilter `json:"filter"`
	LaneBy LaneKey               `json:"lane_by"`
}

// DefaultTimelineOptions shows every task in status lanes over 16 weeks.
func DefaultTimelineOptions() TimelineOptions {
	return TimelineOptions{
		Weeks:  DefaultTimelineWeeks,
		Filter: grouping.FilterAll,
		LaneBy: LaneByStatus,
	}
}

// Bar is a task drawn across the horizon.
type Bar struct {
	Task       TaskChip `json:"task"`
	StartIndex int      `json:"start_index"`
	Span       int      `json:"span"`
	Left       float64  `json:"left"`
	Width      float64  `json:"width"`
	Tooltip    string   `json:"tooltip"`
}

// TimelineLane is one row of bars. Hidden counts tasks without a drawable span.
type TimelineLane struct {
	Key    string `json:"key"`
	Bars   []Bar  `json:"bars"`
	Count  int    `json:"count"`
	Hidden int    `json:"hidden"`
}

// TimelineLayout is the positioned timeline.
type TimelineLayout struct {
	Options    TimelineOptions `json:"options"`
	Dates      []string        `json:"dates"`
	TodayIndex int             `json:"today_index"`
	TotalWidth float64         `json:"total_width"`
	Lanes      []TimelineLane  `json:"lanes"`
	TaskCount  int             `json:"task_count"`
}

// HorizonStart returns the earliest valid start or end date among tasks,
// falling back to now's date.
func HorizonStart(tasks []models.Task, now time.Time) time.Time {
	var earliest time.Time
	for _, t := range tasks {
		for _, s := range [...]string{t.StartDate, t.EndDate} {
			d, ok := grid.ParseDate(s)
			if ok && (earliest.IsZero() || d.Before(earliest)) {
				earliest = d
			}
		}
	}
	if earliest.IsZero() {
		return grid.Midnight(now)
	}
	return earliest
}

// LayoutTimeline filters tasks by status, anchors the horizon at the
// earliest remaining date and lays bars out per lane. Tasks whose span is
// not entirely inside the horizon are counted as hidden.
func LayoutTimeline(tasks []models.Task, opts TimelineOptions, palette *models.Palette, now time.Time) TimelineLayout {
	if opts.Weeks <= 0 {
		opts.Weeks = DefaultTimelineWeeks
	}
	if opts.Filter == "" {
		opts.Filter = grouping.FilterAll
	}
	if opts.LaneBy == "" {
		opts.LaneBy = LaneByStatus
	}

	filtered := grouping.FilterByStatus(tasks, opts.Filter)
	horizon := grid.Range(HorizonStart(filtered, now), opts.Weeks*7)

	layout := TimelineLayout{
		Options:    opts,
		Dates:      make([]string, len(horizon)),
		TodayIndex: -1,
		TotalWidth: float64(len(horizon) * grid.DayWidth),
		TaskCount:  len(filtered),
	}
	for i, d := range horizon {
		layout.Dates[i] = grid.FormatDate(d)
		if grid.IsToday(d, now) {
			layout.TodayIndex = i
		}
	}

	var lanes []grouping.Lane
	if opts.LaneBy == LaneByCategory {
		lanes = grouping.CategoryLanes(filtered)
	} else {
		lanes = grouping.StatusLanes(filtered)
	}

	for _, lane := range lanes {
		tl := TimelineLane{Key: lane.Key, Bars: []Bar{}, Count: len(lane.Tasks)}
		for _, t := range lane.Tasks {
			start := grid.IndexOf(horizon, t.StartDate)
			end := grid.IndexOf(horizon, t.EndDate)
			if start < 0 || end < 0 || end < start {
				tl.Hidden++
				continue
			}
			span := end - start + 1
			tl.Bars = append(tl.Bars, Bar{
				Task:       chipFor(t, palette),
				StartIndex: start,
				Span:       span,
				Left:       float64(start * grid.DayWidth),
				Width:      float64(span * grid.DayWidth),
				Tooltip:    grid.FormatSpan(t.StartDate, t.EndDate),
			})
		}
		layout.Lanes = append(layout.Lanes, tl)
	}
	return layout
}

package grouping

import (
	"github.com/fitz/taskflow/internal/grid"
	"github.com/fitz/taskflow/internal/models"
)

// StatusFilter selects tasks by status; FilterAll keeps everything.
type StatusFilter string

// FilterAll is the identity status filter.
const FilterAll StatusFilter = "all"

// ParseStatusFilter accepts "all", an empty string or any task status spelling.
func ParseStatusFilter(s string) (StatusFilter, bool) {
	if s == "" || s == string(FilterAll) {
		return FilterAll, true
	}
	status, ok := models.ParseTaskStatus(s)
	if !ok {
		return "", false
	}
	return StatusFilter(status), true
}

// FilterByStatus keeps tasks whose status matches filter.
func FilterByStatus(tasks []models.Task, filter StatusFilter) []models.Task {
	if filter == FilterAll || filter == "" {
		return tasks
	}
	var out []models.Task
	for _, t := range tasks {
		if string(t.Status) == string(filter) {
			out = append(out, t)
		}
	}
	return out
}

// FilterByDate keeps tasks starting on date; an empty date keeps everything.
func FilterByDate(tasks []models.Task, date string) []models.Task {
	if date == "" {
		return tasks
	}
	want := date
	if d, ok := grid.ParseDate(date); ok {
		want = grid.FormatDate(d)
	}
	var out []models.Task
	for _, t := range tasks {
		if t.StartDate == want {
			out = append(out, t)
		}
	}
	return out
}

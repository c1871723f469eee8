package models

import (
	"strings"
	"time"
)

// TaskStatus defines the status of a task
type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "not started"
	TaskStatusInProgress TaskStatus = "in progress"
	TaskStatusDone       TaskStatus = "done"
)

// DefaultCategory is applied to tasks created without a category.
const DefaultCategory = "Uncategorized"

// ValidTaskStatuses contains all valid task status values in cycle order
var ValidTaskStatuses = []TaskStatus{
	TaskStatusNotStarted,
	TaskStatusInProgress,
	TaskStatusDone,
}

// IsValidTaskStatus checks if a status string is a valid TaskStatus.
// Underscore and hyphen spellings ("in_progress", "not-started") are accepted.
func IsValidTaskStatus(s string) bool {
	_, ok := ParseTaskStatus(s)
	return ok
}

// ParseTaskStatus normalizes s into a TaskStatus.
func ParseTaskStatus(s string) (TaskStatus, bool) {
	normalized := strings.NewReplacer("_", " ", "-", " ").Replace(strings.TrimSpace(s))
	for _, status := range ValidTaskStatuses {
		if string(status) == normalized {
			return status, true
		}
	}
	return "", false
}

// Next returns the status that follows s in the fixed cycle
// not started -> in progress -> done -> not started.
// Anything outside the enum restarts the cycle.
func (s TaskStatus) Next() TaskStatus {
	switch s {
	case TaskStatusNotStarted:
		return TaskStatusInProgress
	case TaskStatusInProgress:
		return TaskStatusDone
	default:
		return TaskStatusNotStarted
	}
}

// Task is a schedulable unit of work.
// Dates use YYYY-MM-DD and times HH:mm; all four may be empty.
type Task struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Status    TaskStatus `json:"status"`
	StartDate string     `json:"start_date,omitempty"`
	EndDate   string     `json:"end_date,omitempty"`
	StartTime string     `json:"start_time,omitempty"`
	EndTime   string     `json:"end_time,omitempty"`
	Category  string     `json:"category"`
	CreatedAt time.Time  `json:"created_at"`
}

// WithStatus returns a copy of t carrying status.
func (t Task) WithStatus(status TaskStatus) Task {
	t.Status = status
	return t
}

// CategoryOrDefault returns the task's category, or DefaultCategory when unset.
func (t Task) CategoryOrDefault() string {
	if strings.TrimSpace(t.Category) == "" {
		return DefaultCategory
	}
	return t.Category
}

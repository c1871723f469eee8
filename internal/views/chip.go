// Package views lays tasks out on the month, week and timeline grids.
// Navigation state is held in plain value types and every layout function
// is pure given its inputs and "now".
package views

import (
	"fmt"
	"strings"

	"github.com/fitz/taskflow/internal/grid"
	"github.com/fitz/taskflow/internal/models"
)

// TaskChip is the display form of a task inside a cell, block or bar.
type TaskChip struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Status      models.TaskStatus    `json:"status"`
	StatusColor string               `json:"status_color"`
	Category    models.CategoryStyle `json:"category"`
}

func chipFor(t models.Task, palette *models.Palette) TaskChip {
	return TaskChip{
		ID:          t.ID,
		Title:       t.Title,
		Status:      t.Status,
		StatusColor: models.StatusColor(t.Status),
		Category:    palette.Style(t.CategoryOrDefault()),
	}
}

// TaskListItem is one row of the task list panel.
type TaskListItem struct {
	Task     TaskChip `json:"task"`
	DateLine string   `json:"date_line"`
	Tooltip  string   `json:"tooltip"`
}

// BuildTaskList renders the task list panel rows in store order.
func BuildTaskList(tasks []models.Task, palette *models.Palette) []TaskListItem {
	items := make([]TaskListItem, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, TaskListItem{
			Task:     chipFor(t, palette),
			DateLine: dateLine(t),
			Tooltip:  string(t.Status) + " - " + durationTooltip(t.StartDate, t.EndDate, t.EndTime),
		})
	}
	return items
}

func dateLine(t models.Task) string {
	var b strings.Builder
	b.WriteString("Date: ")
	if t.StartDate != "" {
		b.WriteString(t.StartDate)
	} else {
		b.WriteString("--/--/----")
	}
	if t.StartTime != "" {
		fmt.Fprintf(&b, " @ %s", t.StartTime)
		if t.EndTime != "" {
			fmt.Fprintf(&b, " - %s", t.EndTime)
		}
	}
	return b.String()
}

func durationTooltip(start, end, endTime string) string {
	if start == "" && end == "" && endTime == "" {
		return "No dates assigned"
	}
	var parts []string
	if d, ok := grid.ParseDate(start); ok {
		parts = append(parts, "Start: "+grid.FormatDate(d))
	}
	if d, ok := grid.ParseDate(end); ok {
		parts = append(parts, "End: "+grid.FormatDate(d))
	}
	if endTime != "" {
		parts = append(parts, "End Time: "+endTime)
	}
	return strings.Join(parts, " ")
}

// Package grouping partitions and filters task collections for the views.
package grouping

import (
	"slices"

	"github.com/fitz/taskflow/internal/grid"
	"github.com/fitz/taskflow/internal/models"
)

// NoDate is the key of the group holding tasks without a usable date.
const NoDate = ""

// Groups is an ordered partition of tasks. Order lists keys by first appearance.
type Groups[K comparable] struct {
	Order []K
	Items map[K][]models.Task
}

// Get returns the tasks grouped under key.
func (g Groups[K]) Get(key K) []models.Task {
	return g.Items[key]
}

// Len returns the number of groups.
func (g Groups[K]) Len() int {
	return len(g.Order)
}

// GroupBy partitions tasks by keyFn, preserving relative order within groups.
func GroupBy[K comparable](tasks []models.Task, keyFn func(models.Task) K) Groups[K] {
	g := Groups[K]{Items: make(map[K][]models.Task)}
	for _, t := range tasks {
		k := keyFn(t)
		if _, seen := g.Items[k]; !seen {
			g.Order = append(g.Order, k)
		}
		g.Items[k] = append(g.Items[k], t)
	}
	return g
}

// ByStatus keys a task by its status.
func ByStatus(t models.Task) models.TaskStatus { return t.Status }

// ByCategory keys a task by its category, applying the default.
func ByCategory(t models.Task) string { return t.CategoryOrDefault() }

// ByStartDate keys a task by its start date, or NoDate when it does not parse.
func ByStartDate(t models.Task) string { return dateKey(t.StartDate) }

// ByEndDate keys a task by its end date, or NoDate when it does not parse.
func ByEndDate(t models.Task) string { return dateKey(t.EndDate) }

func dateKey(s string) string {
	d, ok := grid.ParseDate(s)
	if !ok {
		return NoDate
	}
	return grid.FormatDate(d)
}

// DateGroup is one date bucket produced by GroupByDate.
type DateGroup struct {
	Date  string
	Tasks []models.Task
}

// GroupByDate groups tasks by a date key, ascending, with the NoDate group last.
func GroupByDate(tasks []models.Task, keyFn func(models.Task) string) []DateGroup {
	g := GroupBy(tasks, keyFn)
	keys := slices.Clone(g.Order)
	slices.SortStableFunc(keys, func(a, b string) int {
		switch {
		case a == b:
			return 0
		case a == NoDate:
			return 1
		case b == NoDate:
			return -1
		case a < b:
			return -1
		default:
			return 1
		}
	})

	groups := make([]DateGroup, 0, len(keys))
	for _, k := range keys {
		groups = append(groups, DateGroup{Date: k, Tasks: g.Items[k]})
	}
	return groups
}

// Lane is a named bucket of tasks on the timeline.
type Lane struct {
	Key   string
	Tasks []models.Task
}

// StatusLanes returns one lane per status in cycle order, including empty ones.
func StatusLanes(tasks []models.Task) []Lane {
	g := GroupBy(tasks, ByStatus)
	lanes := make([]Lane, 0, len(models.ValidTaskStatuses))
	for _, s := range models.ValidTaskStatuses {
		lanes = append(lanes, Lane{Key: string(s), Tasks: g.Get(s)})
	}
	return lanes
}

// CategoryLanes returns one lane per category in first-appearance order.
func CategoryLanes(tasks []models.Task) []Lane {
	g := GroupBy(tasks, ByCategory)
	lanes := make([]Lane, 0, g.Len())
	for _, k := range g.Order {
		lanes = append(lanes, Lane{Key: k, Tasks: g.Get(k)})
	}
	return lanes
}

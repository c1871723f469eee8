package tools

import (
	"context"

	"github.com/fitz/taskflow/internal/grouping"
	"github.com/fitz/taskflow/internal/models"
	"github.com/fitz/taskflow/internal/views"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListTasksInput defines the input for the list_tasks tool.
type ListTasksInput struct {
	Date   string `json:"date,omitempty" jsonschema:"Only tasks starting on this YYYY-MM-DD date (default: the selected date, if any)"`
	Status string `json:"status,omitempty" jsonschema:"Filter by status: not_started, in_progress, done"`
}

// TaskListEntry is a task with its display lines.
type TaskListEntry struct {
	Task     TaskOutput `json:"task"`
	DateLine string     `json:"date_line"`
	Tooltip  string     `json:"tooltip"`
}

// ListTasksOutput defines the output for the list_tasks tool.
type ListTasksOutput struct {
	Tasks []TaskListEntry `json:"tasks"`
	Count int             `json:"count"`
	Total int             `json:"total" jsonschema:"Number of tasks in the store before filtering"`
}

// ListTasksTool returns the tool definition for list_tasks.
func ListTasksTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_tasks",
		Description: "List tasks in creation order, optionally only those starting on a date or having a status. Without a date the currently selected date applies.",
	}
}

// HandleListTasks handles the list_tasks tool call.
func (h *Handler) HandleListTasks(ctx context.Context, req *mcp.CallToolRequest, input ListTasksInput) (*mcp.CallToolResult, ListTasksOutput, error) {
	h.Logger.Info("list_tasks", "date", input.Date, "status", input.Status)

	if err := validateDate("date", input.Date); err != nil {
		return nil, ListTasksOutput{}, err
	}

	all := h.Controller.Tasks()
	var tasks []models.Task
	if input.Date != "" {
		tasks = grouping.FilterByDate(all, input.Date)
	} else {
		tasks = h.Controller.TaskList()
	}
	if input.Status != "" {
		status, err := parseStatus(input.Status)
		if err != nil {
			return nil, ListTasksOutput{}, err
		}
		tasks = grouping.FilterByStatus(tasks, grouping.StatusFilter(status))
	}

	// Initialize as empty slice (not nil) so JSON serializes as [] not null
	items := views.BuildTaskList(tasks, h.Controller.Palette())
	entries := make([]TaskListEntry, 0, len(items))
	for i, item := range items {
		entries = append(entries, TaskListEntry{
			Task:     taskOutput(tasks[i]),
			DateLine: item.DateLine,
			Tooltip:  item.Tooltip,
		})
	}

	h.Logger.Info("list_tasks complete", "count", len(entries))
	return nil, ListTasksOutput{
		Tasks: entries,
		Count: len(entries),
		Total: len(all),
	}, nil
}

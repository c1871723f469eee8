package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/fitz/taskflow/internal/app"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CreateTaskInput defines the input for the create_task tool.
type CreateTaskInput struct {
	Title     string `json:"title" jsonschema:"Title of the task"`
	Status    string `json:"status,omitempty" jsonschema:"Task status: not_started, in_progress, done (default: not_started)"`
	StartDate string `json:"start_date,omitempty" jsonschema:"Start date as YYYY-MM-DD (default: today)"`
	EndDate   string `json:"end_date,omitempty" jsonschema:"End date as YYYY-MM-DD (default: today, or start_date when that is later)"`
	StartTime string `json:"start_time,omitempty" jsonschema:"Start time as HH:mm; tasks without one stay off the week hour grid"`
	EndTime   string `json:"end_time,omitempty" jsonschema:"End time as HH:mm"`
	Category  string `json:"category,omitempty" jsonschema:"Category such as Work, Personal or Health (default: Uncategorized)"`
}

// CreateTaskTool returns the tool definition for create_task.
func CreateTaskTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "create_task",
		Description: "Create a task. Missing dates default to today, a missing category to Uncategorized and a missing status to not_started. Returns the created task with its ID.",
	}
}

// HandleCreateTask handles the create_task tool call.
func (h *Handler) HandleCreateTask(ctx context.Context, req *mcp.CallToolRequest, input CreateTaskInput) (*mcp.CallToolResult, TaskOutput, error) {
	h.Logger.Info("create_task", "title_len", len(input.Title), "status", input.Status, "category", input.Category)

	if strings.TrimSpace(input.Title) == "" {
		return nil, TaskOutput{}, fmt.Errorf("title is required")
	}

	in := app.NewTask{
		Title:     input.Title,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Category:  input.Category,
	}
	if input.Status != "" {
		status, err := parseStatus(input.Status)
		if err != nil {
			return nil, TaskOutput{}, err
		}
		in.Status = status
	}
	for _, check := range []error{
		validateDate("start_date", input.StartDate),
		validateDate("end_date", input.EndDate),
		validateTime("start_time", input.StartTime),
		validateTime("end_time", input.EndTime),
	} {
		if check != nil {
			return nil, TaskOutput{}, check
		}
	}

	created, ok := h.Controller.CreateTask(ctx, in)
	if !ok {
		h.Logger.Error("create_task failed", "title", input.Title)
		return nil, TaskOutput{}, fmt.Errorf("failed to create task")
	}

	h.Logger.Info("create_task complete", "id", created.ID, "status", created.Status)
	return nil, taskOutput(created), nil
}

package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CycleTaskStatusInput defines the input for the cycle_task_status tool.
type CycleTaskStatusInput struct {
	ID string `json:"id" jsonschema:"ID of the task to advance"`
}

// CycleTaskStatusTool returns the tool definition for cycle_task_status.
func CycleTaskStatusTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "cycle_task_status",
		Description: "Advance a task's status one step: not_started -> in_progress -> done -> not_started. Returns the updated task.",
	}
}

// HandleCycleTaskStatus handles the cycle_task_status tool call.
func (h *Handler) HandleCycleTaskStatus(ctx context.Context, req *mcp.CallToolRequest, input CycleTaskStatusInput) (*mcp.CallToolResult, TaskOutput, error) {
	h.Logger.Info("cycle_task_status", "id", input.ID)

	if input.ID == "" {
		return nil, TaskOutput{}, fmt.Errorf("id is required")
	}

	updated, ok := h.Controller.CycleStatus(ctx, input.ID)
	if !ok {
		return nil, TaskOutput{}, fmt.Errorf("task not found: %s", input.ID)
	}

	h.Logger.Info("cycle_task_status complete", "id", updated.ID, "status", updated.Status)
	return nil, taskOutput(updated), nil
}

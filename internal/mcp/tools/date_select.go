package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SelectDateInput defines the input for the select_date tool.
type SelectDateInput struct {
	Date string `json:"date,omitempty" jsonschema:"Date to filter the task list by, as YYYY-MM-DD; empty clears the filter"`
}

// SelectDateOutput defines the output for the select_date tool.
type SelectDateOutput struct {
	SelectedDate string `json:"selected_date"`
	Count        int    `json:"count" jsonschema:"Number of tasks in the filtered list"`
}

// SelectDateTool returns the tool definition for select_date.
func SelectDateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "select_date",
		Description: "Set or clear the task list date filter. The month grid highlights the selected day.",
	}
}

// HandleSelectDate handles the select_date tool call.
func (h *Handler) HandleSelectDate(ctx context.Context, req *mcp.CallToolRequest, input SelectDateInput) (*mcp.CallToolResult, SelectDateOutput, error) {
	h.Logger.Info("select_date", "date", input.Date)

	if !h.Controller.SelectDate(input.Date) {
		return nil, SelectDateOutput{}, fmt.Errorf("invalid date: %s (expected YYYY-MM-DD)", input.Date)
	}

	return nil, SelectDateOutput{
		SelectedDate: h.Controller.SelectedDate(),
		Count:        len(h.Controller.TaskList()),
	}, nil
}

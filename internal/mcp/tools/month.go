package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MonthViewInput defines the input for the month_view tool.
type MonthViewInput struct{}

// MonthViewTool returns the tool definition for month_view.
func MonthViewTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "month_view",
		Description: "Lay out the current month. Each day cell lists the tasks ending on that day.",
	}
}

// HandleMonthView handles the month_view tool call.
func (h *Handler) HandleMonthView(ctx context.Context, req *mcp.CallToolRequest, input MonthViewInput) (*mcp.CallToolResult, MonthViewOutput, error) {
	h.Logger.Info("month_view")
	return nil, monthOutput(h.Controller.Month()), nil
}

// NavigateMonthInput defines the input for the navigate_month tool.
type NavigateMonthInput struct {
	Direction string `json:"direction" jsonschema:"prev or next"`
}

// NavigateMonthTool returns the tool definition for navigate_month.
func NavigateMonthTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "navigate_month",
		Description: "Move the month grid one month back or forward and return the new layout. The position is remembered across restarts.",
	}
}

// HandleNavigateMonth handles the navigate_month tool call.
func (h *Handler) HandleNavigateMonth(ctx context.Context, req *mcp.CallToolRequest, input NavigateMonthInput) (*mcp.CallToolResult, MonthViewOutput, error) {
	h.Logger.Info("navigate_month", "direction", input.Direction)

	switch input.Direction {
	case "prev", "previous":
		h.Controller.PreviousMonth(ctx)
	case "next":
		h.Controller.NextMonth(ctx)
	default:
		return nil, MonthViewOutput{}, fmt.Errorf("invalid direction: %s (must be prev or next)", input.Direction)
	}

	return nil, monthOutput(h.Controller.Month()), nil
}

package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// WeekViewInput defines the input for the week_view tool.
type WeekViewInput struct {
	Date string `json:"date,omitempty" jsonschema:"Show the Monday-first week containing this YYYY-MM-DD date (default: the current week)"`
}

// WeekViewTool returns the tool definition for week_view.
func WeekViewTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "week_view",
		Description: "Lay out a Monday-first week. Timed tasks are placed on the hour grid; tasks without a start time do not appear.",
	}
}

// HandleWeekView handles the week_view tool call.
func (h *Handler) HandleWeekView(ctx context.Context, req *mcp.CallToolRequest, input WeekViewInput) (*mcp.CallToolResult, WeekViewOutput, error) {
	h.Logger.Info("week_view", "date", input.Date)

	if input.Date != "" {
		if _, ok := h.Controller.ShowWeekOf(input.Date); !ok {
			return nil, WeekViewOutput{}, fmt.Errorf("invalid date: %s (expected YYYY-MM-DD)", input.Date)
		}
	}
	return nil, weekOutput(h.Controller.Week()), nil
}

// NavigateWeekInput defines the input for the navigate_week tool.
type NavigateWeekInput struct {
	Direction string `json:"direction,omitempty" jsonschema:"prev_day, next_day, prev_week or next_week"`
	Select    string `json:"select,omitempty" jsonschema:"Highlight this YYYY-MM-DD day without moving the week"`
}

// NavigateWeekTool returns the tool definition for navigate_week.
func NavigateWeekTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "navigate_week",
		Description: "Move the week grid by a day or a week, or highlight a day, and return the new layout.",
	}
}

// HandleNavigateWeek handles the navigate_week tool call.
func (h *Handler) HandleNavigateWeek(ctx context.Context, req *mcp.CallToolRequest, input NavigateWeekInput) (*mcp.CallToolResult, WeekViewOutput, error) {
	h.Logger.Info("navigate_week", "direction", input.Direction, "select", input.Select)

	if input.Direction == "" && input.Select == "" {
		return nil, WeekViewOutput{}, fmt.Errorf("direction or select is required")
	}

	switch input.Direction {
	case "":
	case "prev_day":
		h.Controller.PreviousDay()
	case "next_day":
		h.Controller.NextDay()
	case "prev_week":
		h.Controller.PreviousWeek()
	case "next_week":
		h.Controller.NextWeek()
	default:
		return nil, WeekViewOutput{}, fmt.Errorf("invalid direction: %s (must be one of: prev_day, next_day, prev_week, next_week)", input.Direction)
	}

	if input.Select != "" {
		if _, ok := h.Controller.SelectWeekDay(input.Select); !ok {
			return nil, WeekViewOutput{}, fmt.Errorf("invalid date: %s (expected YYYY-MM-DD)", input.Select)
		}
	}

	return nil, weekOutput(h.Controller.Week()), nil
}

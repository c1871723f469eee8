package tools

import (
	"context"
	"fmt"

	"github.com/fitz/taskflow/internal/grouping"
	"github.com/fitz/taskflow/internal/views"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// TimelineViewInput defines the input for the timeline_view tool.
type TimelineViewInput struct {
	Status string `json:"status,omitempty" jsonschema:"Only show tasks with this status: all, not_started, in_progress, done (default: the current filter)"`
	Lanes  string `json:"lanes,omitempty" jsonschema:"Group lanes by status or category (default: the current grouping)"`
	Weeks  int    `json:"weeks,omitempty" jsonschema:"Horizon length in weeks"`
}

// TimelineViewTool returns the tool definition for timeline_view.
func TimelineViewTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "timeline_view",
		Description: "Lay out the timeline: a horizon of days starting at the earliest task date, with one lane per status or category. Tasks whose span leaves the horizon are counted as hidden.",
	}
}

// HandleTimelineView handles the timeline_view tool call.
func (h *Handler) HandleTimelineView(ctx context.Context, req *mcp.CallToolRequest, input TimelineViewInput) (*mcp.CallToolResult, TimelineViewOutput, error) {
	h.Logger.Info("timeline_view", "status", input.Status, "lanes", input.Lanes, "weeks", input.Weeks)

	opts := h.Controller.TimelineOptions()
	if input.Status != "" {
		filter, ok := grouping.ParseStatusFilter(input.Status)
		if !ok {
			return nil, TimelineViewOutput{}, fmt.Errorf("invalid status: %s (must be all or one of: %s)", input.Status, statusList())
		}
		opts.Filter = filter
	}
	if input.Lanes != "" {
		lanes, ok := views.ParseLaneKey(input.Lanes)
		if !ok {
			return nil, TimelineViewOutput{}, fmt.Errorf("invalid lanes: %s (must be status or category)", input.Lanes)
		}
		opts.LaneBy = lanes
	}
	if input.Weeks < 0 {
		return nil, TimelineViewOutput{}, fmt.Errorf("invalid weeks: %d", input.Weeks)
	}
	if input.Weeks > 0 {
		opts.Weeks = input.Weeks
	}

	layout := h.Controller.TimelineWith(opts)
	h.Logger.Info("timeline_view complete", "tasks", layout.TaskCount, "lanes", len(layout.Lanes))
	return nil, timelineOutput(layout), nil
}

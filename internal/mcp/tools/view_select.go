package tools

import (
	"context"
	"fmt"

	"github.com/fitz/taskflow/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SelectViewInput defines the input for the select_view tool.
type SelectViewInput struct {
	View string `json:"view" jsonschema:"View to activate: month, week or timeline"`
}

// SelectViewOutput defines the output for the select_view tool.
type SelectViewOutput struct {
	View  string `json:"view"`
	Label string `json:"label"`
}

// SelectViewTool returns the tool definition for select_view.
func SelectViewTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "select_view",
		Description: "Switch the active view between month, week and timeline. The choice is remembered across restarts.",
	}
}

// HandleSelectView handles the select_view tool call.
func (h *Handler) HandleSelectView(ctx context.Context, req *mcp.CallToolRequest, input SelectViewInput) (*mcp.CallToolResult, SelectViewOutput, error) {
	h.Logger.Info("select_view", "view", input.View)

	view := models.View(input.View)
	if !h.Controller.SelectView(ctx, view) {
		return nil, SelectViewOutput{}, fmt.Errorf("invalid view: %s (must be one of: month, week, timeline)", input.View)
	}

	return nil, SelectViewOutput{View: string(view), Label: view.Label()}, nil
}

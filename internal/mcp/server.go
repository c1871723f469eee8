package mcp

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/fitz/taskflow/internal/app"
	"github.com/fitz/taskflow/internal/mcp/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	ServerName    = "taskflow"
	ServerVersion = "v1.0.0"
)

// Server wraps the MCP server with taskflow-specific configuration
type Server struct {
	mcpServer *mcp.Server
	logger    *slog.Logger
	handler   *tools.Handler
}

// NewServer creates a new taskflow MCP server over controller
func NewServer(controller *app.Controller, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		logger:    logger,
		handler:   tools.NewHandler(controller, logger),
	}

	s.registerTools()
	return s
}

// registerTools adds all MCP tools to the server
func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, tools.CreateTaskTool(), s.handler.HandleCreateTask)
	mcp.AddTool(s.mcpServer, tools.CycleTaskStatusTool(), s.handler.HandleCycleTaskStatus)
	mcp.AddTool(s.mcpServer, tools.ListTasksTool(), s.handler.HandleListTasks)
	mcp.AddTool(s.mcpServer, tools.SelectViewTool(), s.handler.HandleSelectView)
	mcp.AddTool(s.mcpServer, tools.SelectDateTool(), s.handler.HandleSelectDate)
	mcp.AddTool(s.mcpServer, tools.NavigateMonthTool(), s.handler.HandleNavigateMonth)
	mcp.AddTool(s.mcpServer, tools.NavigateWeekTool(), s.handler.HandleNavigateWeek)
	mcp.AddTool(s.mcpServer, tools.MonthViewTool(), s.handler.HandleMonthView)
	mcp.AddTool(s.mcpServer, tools.WeekViewTool(), s.handler.HandleWeekView)
	mcp.AddTool(s.mcpServer, tools.TimelineViewTool(), s.handler.HandleTimelineView)
}

// HTTPHandler returns an http.Handler for the MCP server
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(
		func(r *http.Request) *mcp.Server {
			return s.mcpServer
		},
		&mcp.StreamableHTTPOptions{
			Logger: s.logger,
		},
	)
}

// Run starts the MCP server over stdio (for CLI usage)
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

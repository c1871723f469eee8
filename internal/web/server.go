// Package web serves the JSON API over the root controller.
package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fitz/taskflow/internal/app"
)

// Server is the taskflow HTTP API
type Server struct {
	controller *app.Controller
	router     *gin.Engine
	logger     *slog.Logger
}

// NewServer creates a new API server. When mcpHandler is non-nil it is
// mounted at /mcp.
func NewServer(controller *app.Controller, mcpHandler http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	s := &Server{
		controller: controller,
		router:     router,
		logger:     logger,
	}

	router.GET("/health", s.handleHealth)

	api := router.Group("/api")
	{
		api.GET("/snapshot", s.handleSnapshot)

		api.GET("/tasks", s.handleListTasks)
		api.POST("/tasks", s.handleCreateTask)
		api.POST("/tasks/:id/cycle", s.handleCycleTask)

		api.GET("/view", s.handleGetView)
		api.PUT("/view", s.handleSelectView)
		api.PUT("/date", s.handleSelectDate)

		api.GET("/month", s.handleMonth)
		api.POST("/month/prev", s.handleMonthPrev)
		api.POST("/month/next", s.handleMonthNext)

		api.GET("/week", s.handleWeek)
		api.POST("/week/prev", s.handleWeekStep)
		api.POST("/week/next", s.handleWeekStep)
		api.POST("/week/prev-week", s.handleWeekStep)
		api.POST("/week/next-week", s.handleWeekStep)
		api.PUT("/week/selected", s.handleWeekSelect)

		api.GET("/timeline", s.handleTimeline)
		api.PUT("/timeline", s.handleTimelineUpdate)
	}

	if mcpHandler != nil {
		router.Any("/mcp", gin.WrapH(mcpHandler))
	}

	return s
}

// Handler returns the router for use in an http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// requestLogger logs each request through slog.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

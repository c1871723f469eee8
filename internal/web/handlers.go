package web

import (
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fitz/taskflow/internal/app"
	"github.com/fitz/taskflow/internal/grid"
	"github.com/fitz/taskflow/internal/grouping"
	"github.com/fitz/taskflow/internal/models"
	"github.com/fitz/taskflow/internal/views"
)

func ok(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   msg,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleSnapshot(c *gin.Context) {
	ok(c, http.StatusOK, s.controller.Snapshot())
}

func (s *Server) handleListTasks(c *gin.Context) {
	date := c.Query("date")
	tasks := s.controller.TaskList()
	if date != "" {
		if _, valid := grid.ParseDate(date); !valid {
			fail(c, http.StatusBadRequest, "invalid date: "+date)
			return
		}
		tasks = grouping.FilterByDate(s.controller.Tasks(), date)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    views.BuildTaskList(tasks, s.controller.Palette()),
		"count":   len(tasks),
	})
}

type createTaskRequest struct {
	Title     string `json:"title" binding:"required"`
	Status    string `json:"status"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Category  string `json:"category"`
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	in := app.NewTask{
		Title:     req.Title,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Category:  req.Category,
	}
	if req.Status != "" {
		status, valid := models.ParseTaskStatus(req.Status)
		if !valid {
			fail(c, http.StatusBadRequest, "invalid status: "+req.Status)
			return
		}
		in.Status = status
	}

	task, created := s.controller.CreateTask(c.Request.Context(), in)
	if !created {
		fail(c, http.StatusBadRequest, "task not created: title must not be blank")
		return
	}
	ok(c, http.StatusCreated, task)
}

func (s *Server) handleCycleTask(c *gin.Context) {
	id := c.Param("id")
	task, found := s.controller.CycleStatus(c.Request.Context(), id)
	if !found {
		fail(c, http.StatusNotFound, "task not found: "+id)
		return
	}
	ok(c, http.StatusOK, task)
}

type viewResponse struct {
	View  models.View `json:"view"`
	Label string      `json:"label"`
}

func (s *Server) handleGetView(c *gin.Context) {
	view := s.controller.View()
	ok(c, http.StatusOK, viewResponse{View: view, Label: view.Label()})
}

func (s *Server) handleSelectView(c *gin.Context) {
	var req struct {
		View string `json:"view" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	view := models.View(req.View)
	if !s.controller.SelectView(c.Request.Context(), view) {
		fail(c, http.StatusBadRequest, "invalid view: "+req.View)
		return
	}
	ok(c, http.StatusOK, viewResponse{View: view, Label: view.Label()})
}

func (s *Server) handleSelectDate(c *gin.Context) {
	var req struct {
		Date string `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if !s.controller.SelectDate(req.Date) {
		fail(c, http.StatusBadRequest, "invalid date: "+req.Date)
		return
	}
	ok(c, http.StatusOK, gin.H{
		"selected_date": s.controller.SelectedDate(),
		"tasks":         views.BuildTaskList(s.controller.TaskList(), s.controller.Palette()),
	})
}

func (s *Server) handleMonth(c *gin.Context) {
	ok(c, http.StatusOK, s.controller.Month())
}

func (s *Server) handleMonthPrev(c *gin.Context) {
	s.controller.PreviousMonth(c.Request.Context())
	ok(c, http.StatusOK, s.controller.Month())
}

func (s *Server) handleMonthNext(c *gin.Context) {
	s.controller.NextMonth(c.Request.Context())
	ok(c, http.StatusOK, s.controller.Month())
}

func (s *Server) handleWeek(c *gin.Context) {
	if date := c.Query("date"); date != "" {
		if _, valid := s.controller.ShowWeekOf(date); !valid {
			fail(c, http.StatusBadRequest, "invalid date: "+date)
			return
		}
	}
	ok(c, http.StatusOK, s.controller.Week())
}

func (s *Server) handleWeekStep(c *gin.Context) {
	switch path.Base(c.FullPath()) {
	case "prev":
		s.controller.PreviousDay()
	case "next":
		s.controller.NextDay()
	case "prev-week":
		s.controller.PreviousWeek()
	case "next-week":
		s.controller.NextWeek()
	}
	ok(c, http.StatusOK, s.controller.Week())
}

func (s *Server) handleWeekSelect(c *gin.Context) {
	var req struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if _, valid := s.controller.SelectWeekDay(req.Date); !valid {
		fail(c, http.StatusBadRequest, "invalid date: "+req.Date)
		return
	}
	ok(c, http.StatusOK, s.controller.Week())
}

// timelineOptions overlays query parameters on the current options.
func (s *Server) timelineOptions(c *gin.Context) (views.TimelineOptions, string) {
	opts := s.controller.TimelineOptions()
	if status := c.Query("status"); status != "" {
		filter, valid := grouping.ParseStatusFilter(status)
		if !valid {
			return opts, "invalid status: " + status
		}
		opts.Filter = filter
	}
	if lanes := c.Query("lanes"); lanes != "" {
		key, valid := views.ParseLaneKey(lanes)
		if !valid {
			return opts, "invalid lanes: " + lanes
		}
		opts.LaneBy = key
	}
	if weeks := strings.TrimSpace(c.Query("weeks")); weeks != "" {
		n, err := strconv.Atoi(weeks)
		if err != nil || n <= 0 {
			return opts, "invalid weeks: " + weeks
		}
		opts.Weeks = n
	}
	return opts, ""
}

func (s *Server) handleTimeline(c *gin.Context) {
	opts, msg := s.timelineOptions(c)
	if msg != "" {
		fail(c, http.StatusBadRequest, msg)
		return
	}
	ok(c, http.StatusOK, s.controller.TimelineWith(opts))
}

// handleTimelineUpdate stores the filter and lane grouping.
func (s *Server) handleTimelineUpdate(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
		Lanes  string `json:"lanes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Status != "" && !s.controller.SetTimelineFilter(grouping.StatusFilter(req.Status)) {
		fail(c, http.StatusBadRequest, "invalid status: "+req.Status)
		return
	}
	if req.Lanes != "" && !s.controller.SetTimelineLanes(views.LaneKey(req.Lanes)) {
		fail(c, http.StatusBadRequest, "invalid lanes: "+req.Lanes)
		return
	}
	ok(c, http.StatusOK, s.controller.Timeline())
}

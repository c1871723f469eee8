package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fitz/taskflow/internal/app"
	"github.com/fitz/taskflow/internal/models"
	"github.com/fitz/taskflow/internal/store"
)

var fixedNow = time.Date(2024, time.June, 11, 9, 30, 0, 0, time.Local)

type testServer struct {
	server     *Server
	controller *app.Controller
}

func setupTestServer(t *testing.T, tasks ...models.Task) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c, err := app.New(context.Background(), app.Options{
		Store:  store.NewMemory(tasks...),
		Clock:  func() time.Time { return fixedNow },
		Logger: logger,
	})
	if err != nil {
		t.Fatalf("app.New failed: %v", err)
	}

	return &testServer{
		server:     NewServer(c, nil, logger),
		controller: c,
	}
}

func (ts *testServer) do(method, target string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewBuffer(data)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	ts.server.Handler().ServeHTTP(w, req)
	return w
}

type response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Count   int             `json:"count"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response {
	t.Helper()
	var resp response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestHealth(t *testing.T) {
	ts := setupTestServer(t)
	w := ts.do(http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestCreateTask(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.do(http.MethodPost, "/api/tasks", map[string]string{
		"title":      "Write report",
		"start_date": "2024-06-10",
		"end_date":   "2024-06-12",
		"category":   "Work",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	resp := decode(t, w)
	var task models.Task
	if err := json.Unmarshal(resp.Data, &task); err != nil {
		t.Fatalf("failed to decode task: %v", err)
	}
	if task.ID == "" || task.Title != "Write report" {
		t.Errorf("unexpected task: %+v", task)
	}
	if task.Status != models.TaskStatusNotStarted {
		t.Errorf("expected not started, got %q", task.Status)
	}
	if len(ts.controller.Tasks()) != 1 {
		t.Errorf("expected 1 task, got %d", len(ts.controller.Tasks()))
	}
}

func TestCreateTask_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{"missing title", map[string]string{"category": "Work"}},
		{"blank title", map[string]string{"title": "   "}},
		{"bad status", map[string]string{"title": "x", "status": "finished"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := setupTestServer(t)
			w := ts.do(http.MethodPost, "/api/tasks", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
			if resp := decode(t, w); resp.Success || resp.Error == "" {
				t.Errorf("expected error response, got %+v", resp)
			}
			if n := len(ts.controller.Tasks()); n != 0 {
				t.Errorf("expected no tasks, got %d", n)
			}
		})
	}
}

func TestListTasks_DateFilter(t *testing.T) {
	ts := setupTestServer(t,
		models.Task{ID: "a", Title: "A", StartDate: "2024-06-10", EndDate: "2024-06-10"},
		models.Task{ID: "b", Title: "B", StartDate: "2024-06-11", EndDate: "2024-06-11"},
	)

	w := ts.do(http.MethodGet, "/api/tasks", nil)
	if resp := decode(t, w); resp.Count != 2 {
		t.Errorf("expected 2 tasks, got %d", resp.Count)
	}

	w = ts.do(http.MethodGet, "/api/tasks?date=2024-06-11", nil)
	if resp := decode(t, w); resp.Count != 1 {
		t.Errorf("expected 1 task, got %d", resp.Count)
	}

	w = ts.do(http.MethodGet, "/api/tasks?date=June", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCycleTask(t *testing.T) {
	ts := setupTestServer(t, models.Task{ID: "a", Title: "A", Status: models.TaskStatusDone})

	w := ts.do(http.MethodPost, "/api/tasks/a/cycle", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	task, _ := ts.controller.Task("a")
	if task.Status != models.TaskStatusNotStarted {
		t.Errorf("expected not started, got %q", task.Status)
	}

	w = ts.do(http.MethodPost, "/api/tasks/missing/cycle", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestSelectView(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.do(http.MethodPut, "/api/view", map[string]string{"view": "timeline"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ts.controller.View() != models.ViewTimeline {
		t.Errorf("expected timeline view, got %q", ts.controller.View())
	}

	w = ts.do(http.MethodPut, "/api/view", map[string]string{"view": "agenda"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if ts.controller.View() != models.ViewTimeline {
		t.Errorf("view changed on invalid request: %q", ts.controller.View())
	}
}

func TestSelectDate(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.do(http.MethodPut, "/api/date", map[string]string{"date": "2024-06-15"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := ts.controller.SelectedDate(); got != "2024-06-15" {
		t.Errorf("expected 2024-06-15, got %q", got)
	}

	w = ts.do(http.MethodPut, "/api/date", map[string]string{"date": ""})
	if w.Code != http.StatusOK || ts.controller.SelectedDate() != "" {
		t.Errorf("expected cleared date, got %d %q", w.Code, ts.controller.SelectedDate())
	}

	w = ts.do(http.MethodPut, "/api/date", map[string]string{"date": "tomorrow"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestMonthNavigation(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.do(http.MethodPost, "/api/month/next", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var layout struct {
		State struct {
			Year  int `json:"year"`
			Month int `json:"month"`
		} `json:"state"`
	}
	if err := json.Unmarshal(decode(t, w).Data, &layout); err != nil {
		t.Fatalf("failed to decode month: %v", err)
	}
	if layout.State.Year != 2024 || layout.State.Month != 6 {
		t.Errorf("expected July 2024, got %+v", layout.State)
	}

	ts.do(http.MethodPost, "/api/month/prev", nil)
	ts.do(http.MethodPost, "/api/month/prev", nil)
	if got := ts.controller.Month().State; got.Month != 4 {
		t.Errorf("expected May, got %+v", got)
	}
}

func TestWeekNavigation(t *testing.T) {
	ts := setupTestServer(t)
	start := ts.controller.Week().State.Anchor

	steps := []struct {
		path string
		days int
	}{
		{"/api/week/next", 1},
		{"/api/week/next-week", 8},
		{"/api/week/prev-week", 1},
		{"/api/week/prev", 0},
	}
	for _, step := range steps {
		w := ts.do(http.MethodPost, step.path, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", step.path, w.Code)
		}
		want := start.AddDate(0, 0, step.days)
		if got := ts.controller.Week().State.Anchor; !got.Equal(want) {
			t.Errorf("%s: expected anchor %v, got %v", step.path, want, got)
		}
	}
}

func TestWeekSelectAndShow(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.do(http.MethodPut, "/api/week/selected", map[string]string{"date": "2024-06-13"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := ts.controller.Week().State.Selected; got.Day() != 13 {
		t.Errorf("expected 13th selected, got %v", got)
	}

	w = ts.do(http.MethodGet, "/api/week?date=2024-07-04", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := ts.controller.Week().State.Anchor; got.Month() != time.July || got.Day() != 4 {
		t.Errorf("expected anchor July 4, got %v", got)
	}

	w = ts.do(http.MethodGet, "/api/week?date=nope", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestTimeline(t *testing.T) {
	ts := setupTestServer(t,
		models.Task{ID: "a", Title: "A", Status: models.TaskStatusDone, StartDate: "2024-06-10", EndDate: "2024-06-12"},
		models.Task{ID: "b", Title: "B", StartDate: "2024-06-11", EndDate: "2024-06-11"},
	)

	w := ts.do(http.MethodGet, "/api/timeline?status=done&weeks=4", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var layout struct {
		Dates     []string `json:"dates"`
		TaskCount int      `json:"task_count"`
	}
	if err := json.Unmarshal(decode(t, w).Data, &layout); err != nil {
		t.Fatalf("failed to decode timeline: %v", err)
	}
	if len(layout.Dates) != 28 {
		t.Errorf("expected 28 dates, got %d", len(layout.Dates))
	}
	if layout.TaskCount != 1 {
		t.Errorf("expected 1 task after filter, got %d", layout.TaskCount)
	}

	// Query parameters do not change the stored options.
	if got := ts.controller.TimelineOptions().Weeks; got == 4 {
		t.Error("query parameters leaked into controller state")
	}

	for _, q := range []string{"status=finished", "lanes=owner", "weeks=0", "weeks=abc"} {
		w := ts.do(http.MethodGet, "/api/timeline?"+q, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", q, w.Code)
		}
	}
}

func TestTimelineUpdate(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.do(http.MethodPut, "/api/timeline", map[string]string{"status": "in progress", "lanes": "category"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	opts := ts.controller.TimelineOptions()
	if string(opts.Filter) != "in progress" || opts.LaneBy != "category" {
		t.Errorf("unexpected options: %+v", opts)
	}

	w = ts.do(http.MethodPut, "/api/timeline", map[string]string{"lanes": "owner"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestSnapshot(t *testing.T) {
	ts := setupTestServer(t)
	w := ts.do(http.MethodGet, "/api/snapshot", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var snap app.Snapshot
	if err := json.Unmarshal(decode(t, w).Data, &snap); err != nil {
		t.Fatalf("failed to decode snapshot: %v", err)
	}
	if snap.View != models.ViewMonth || snap.Month == nil {
		t.Errorf("expected month snapshot, got view %q", snap.View)
	}
}

func TestMCPMount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, err := app.New(context.Background(), app.Options{})
	if err != nil {
		t.Fatalf("app.New failed: %v", err)
	}

	called := false
	mcpHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusAccepted)
	})
	s := NewServer(c, mcpHandler, slog.New(slog.NewTextHandler(io.Discard, nil)))

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/mcp", nil))
	if !called || w.Code != http.StatusAccepted {
		t.Errorf("expected MCP handler to serve /mcp, got called=%v code=%d", called, w.Code)
	}
}

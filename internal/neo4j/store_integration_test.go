//go:build integration
// +build integration

package neo4j

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fitz/taskflow/internal/models"
	"github.com/fitz/taskflow/internal/prefs"
	"github.com/fitz/taskflow/internal/store"
	"github.com/google/uuid"
)

// Run with: go test -tags=integration -v ./internal/neo4j
func setupClient(t *testing.T) (*Client, context.Context) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	client, err := NewClient(ctx, ConfigFromEnv())
	if err != nil {
		t.Fatalf("Failed to connect to Neo4j: %v", err)
	}
	t.Cleanup(func() { client.Close(context.Background()) })
	return client, ctx
}

func cleanupTasks(t *testing.T, client *Client, ids ...string) {
	t.Helper()
	ctx := context.Background()
	session := client.Session(ctx)
	defer session.Close(ctx)
	if _, err := session.Run(ctx, `MATCH (t:Task) WHERE t.id IN $ids DETACH DELETE t`, map[string]any{"ids": ids}); err != nil {
		t.Logf("cleanup failed: %v", err)
	}
}

func TestTaskStore_CreateGetReplace(t *testing.T) {
	client, ctx := setupClient(t)
	s := NewTaskStore(client)

	created, err := s.Create(ctx, models.Task{
		ID:        "it-" + uuid.New().String(),
		Title:     "Write report",
		Status:    models.TaskStatusNotStarted,
		StartDate: "2024-06-10",
		EndDate:   "2024-06-12",
		StartTime: "09:00",
		EndTime:   "11:00",
		Category:  "Work",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	defer cleanupTasks(t, client, created.ID)

	if err := s.Replace(ctx, created.WithStatus(models.TaskStatusDone)); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Status != models.TaskStatusDone || got.Title != "Write report" || got.EndTime != "11:00" {
		t.Errorf("unexpected task %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected created_at to round-trip")
	}
}

func TestTaskStore_ListOrdered(t *testing.T) {
	client, ctx := setupClient(t)
	s := NewTaskStore(client)

	base := time.Now().UTC()
	var ids []string
	for i := range 3 {
		task, err := s.Create(ctx, models.Task{
			ID:        "it-" + uuid.New().String(),
			Title:     "ordered",
			Status:    models.TaskStatusNotStarted,
			CreatedAt: base.Add(time.Duration(i) * time.Millisecond),
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		ids = append(ids, task.ID)
	}
	defer cleanupTasks(t, client, ids...)

	tasks, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	pos := map[string]int{}
	for i, task := range tasks {
		pos[task.ID] = i
	}
	for i := 1; i < len(ids); i++ {
		if pos[ids[i-1]] >= pos[ids[i]] {
			t.Errorf("task %s listed after %s", ids[i-1], ids[i])
		}
	}
}

func TestTaskStore_NotFound(t *testing.T) {
	client, ctx := setupClient(t)
	s := NewTaskStore(client)

	if _, err := s.Get(ctx, "missing-"+uuid.New().String()); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := s.Replace(ctx, models.Task{ID: "missing-" + uuid.New().String()}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPrefStore_RoundTrip(t *testing.T) {
	client, ctx := setupClient(t)
	s := NewPrefStore(client)
	key := "it_" + uuid.New().String()
	defer func() {
		session := client.Session(ctx)
		defer session.Close(ctx)
		session.Run(ctx, `MATCH (p:Preference {key: $key}) DELETE p`, map[string]any{"key": key})
	}()

	if _, err := s.Get(ctx, key); !errors.Is(err, prefs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Set(ctx, key, "week"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set(ctx, key, "timeline"); err != nil {
		t.Fatalf("Set overwrite failed: %v", err)
	}
	if v, err := s.Get(ctx, key); err != nil || v != "timeline" {
		t.Errorf("Get = %q, %v", v, err)
	}
}

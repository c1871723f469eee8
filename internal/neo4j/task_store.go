package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/fitz/taskflow/internal/models"
	"github.com/fitz/taskflow/internal/store"
	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// TaskStore is a store.Store kept in Neo4j as :Task nodes.
type TaskStore struct {
	client *Client
}

var _ store.Store = (*TaskStore)(nil)

// NewTaskStore creates a new task store
func NewTaskStore(client *Client) *TaskStore {
	return &TaskStore{client: client}
}

func taskParams(task models.Task) map[string]any {
	return map[string]any{
		"id":         task.ID,
		"title":      task.Title,
		"status":     string(task.Status),
		"start_date": task.StartDate,
		"end_date":   task.EndDate,
		"start_time": task.StartTime,
		"end_time":   task.EndTime,
		"category":   task.Category,
		"created_at": task.CreatedAt.Format(time.RFC3339Nano),
	}
}

// Create implements store.Store.
func (s *TaskStore) Create(ctx context.Context, task models.Task) (models.Task, error) {
	session := s.client.Session(ctx)
	defer session.Close(ctx)

	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}

	cypher := `
CREATE (t:Task {
	id: $id,
	title: $title,
	status: $status,
	start_date: $start_date,
	end_date: $end_date,
	start_time: $start_time,
	end_time: $end_time,
	category: $category,
	created_at: datetime($created_at)
})
RETURN t
`

	result, err := session.Run(ctx, cypher, taskParams(task))
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return models.Task{}, fmt.Errorf("result iteration error: %w", err)
		}
		return models.Task{}, fmt.Errorf("no result returned from create")
	}

	node, _ := result.Record().Get("t")
	return nodeToTask(node.(neo4j.Node)), nil
}

// Get implements store.Store.
func (s *TaskStore) Get(ctx context.Context, id string) (models.Task, error) {
	session := s.client.Session(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `MATCH (t:Task {id: $id}) RETURN t`, map[string]any{"id": id})
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to get task: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return models.Task{}, fmt.Errorf("result iteration error: %w", err)
		}
		return models.Task{}, store.ErrNotFound
	}

	node, _ := result.Record().Get("t")
	return nodeToTask(node.(neo4j.Node)), nil
}

// List implements store.Store.
func (s *TaskStore) List(ctx context.Context) ([]models.Task, error) {
	session := s.client.Session(ctx)
	defer session.Close(ctx)

	cypher := `
MATCH (t:Task)
RETURN t
ORDER BY t.created_at ASC, t.id ASC
`

	result, err := session.Run(ctx, cypher, nil)
	if err != nil {
		return nil, fmt.Errorf("list failed: %w", err)
	}

	tasks := []models.Task{}
	for result.Next(ctx) {
		node, _ := result.Record().Get("t")
		tasks = append(tasks, nodeToTask(node.(neo4j.Node)))
	}

	return tasks, result.Err()
}

// Replace implements store.Store. Only the status is mutable, but every
// field is written so the node always mirrors the record.
func (s *TaskStore) Replace(ctx context.Context, task models.Task) error {
	session := s.client.Session(ctx)
	defer session.Close(ctx)

	cypher := `
MATCH (t:Task {id: $id})
SET t.title = $title,
	t.status = $status,
	t.start_date = $start_date,
	t.end_date = $end_date,
	t.start_time = $start_time,
	t.end_time = $end_time,
	t.category = $category
RETURN t
`

	result, err := session.Run(ctx, cypher, taskParams(task))
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return fmt.Errorf("result iteration error: %w", err)
		}
		return store.ErrNotFound
	}
	return nil
}

// nodeToTask converts a Neo4j node to a Task struct
func nodeToTask(node neo4j.Node) models.Task {
	props := node.Props

	task := models.Task{
		ID:        getString(props, "id"),
		Title:     getString(props, "title"),
		Status:    models.TaskStatus(getString(props, "status")),
		StartDate: getString(props, "start_date"),
		EndDate:   getString(props, "end_date"),
		StartTime: getString(props, "start_time"),
		EndTime:   getString(props, "end_time"),
		Category:  getString(props, "category"),
	}

	if createdAt, ok := props["created_at"].(time.Time); ok {
		task.CreatedAt = createdAt
	}

	return task
}

// Package store holds the ordered task collection.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fitz/taskflow/internal/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned when no task has the requested id.
var ErrNotFound = errors.New("task not found")

// Store persists tasks in creation order.
type Store interface {
	// Create assigns an id and creation time when missing and appends the task.
	Create(ctx context.Context, task models.Task) (models.Task, error)
	// Get returns the task with id, or ErrNotFound.
	Get(ctx context.Context, id string) (models.Task, error)
	// List returns every task in creation order.
	List(ctx context.Context) ([]models.Task, error)
	// Replace swaps the stored record with the same id, or returns ErrNotFound.
	Replace(ctx context.Context, task models.Task) error
}

// Memory is an in-process Store.
type Memory struct {
	mu    sync.RWMutex
	tasks []models.Task
	index map[string]int
	now   func() time.Time
}

// NewMemory returns an empty store seeded with tasks, which keep their ids.
func NewMemory(tasks ...models.Task) *Memory {
	m := &Memory{
		index: make(map[string]int, len(tasks)),
		now:   time.Now,
	}
	for _, t := range tasks {
		m.append(t)
	}
	return m
}

// Create implements Store.
func (m *Memory) Create(_ context.Context, task models.Task) (models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.append(task), nil
}

func (m *Memory) append(task models.Task) models.Task {
	for task.ID == "" || m.has(task.ID) {
		task.ID = uuid.New().String()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = m.now().UTC()
	}
	m.index[task.ID] = len(m.tasks)
	m.tasks = append(m.tasks, task)
	return task
}

func (m *Memory) has(id string) bool {
	_, ok := m.index[id]
	return ok
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, id string) (models.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.index[id]
	if !ok {
		return models.Task{}, ErrNotFound
	}
	return m.tasks[i], nil
}

// List implements Store.
func (m *Memory) List(_ context.Context) ([]models.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Task, len(m.tasks))
	copy(out, m.tasks)
	return out, nil
}

// Replace implements Store.
func (m *Memory) Replace(_ context.Context, task models.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, ok := m.index[task.ID]
	if !ok {
		return ErrNotFound
	}
	m.tasks[i] = task
	return nil
}

// Len returns the number of stored tasks.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tasks)
}

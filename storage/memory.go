package storage

import (
	"context"
	"sync"
	"time"

	"tasker-api/domain"
)

// Memory is the in-memory task store. Each caller owns its own instance, so
// tests can run against independent boards.
type Memory struct {
	mu    sync.RWMutex
	tasks map[string]domain.Task
	order []string

	now func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		tasks: make(map[string]domain.Task),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// CreateTask adds a new task in the todo column.
func (m *Memory) CreateTask(_ context.Context, req domain.TaskCreate) (domain.Task, error) {
	task, err := newTask(req, m.now())
	if err != nil {
		return domain.Task{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[task.ID] = task
	m.order = append(m.order, task.ID)
	return task, nil
}

// GetTask returns a single task by id.
func (m *Memory) GetTask(_ context.Context, id string) (domain.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	task, ok := m.tasks[id]
	if !ok {
		return domain.Task{}, NotFoundError{ID: id}
	}
	return task, nil
}

// UpdateTask merges a partial update into an existing task. Concurrent
// updates to the same id resolve last-write-wins.
func (m *Memory) UpdateTask(_ context.Context, id string, upd domain.TaskUpdate) (domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[id]
	if !ok {
		return domain.Task{}, NotFoundError{ID: id}
	}
	updated, err := applyUpdate(task, upd, m.now())
	if err != nil {
		return domain.Task{}, err
	}
	m.tasks[id] = updated
	return updated, nil
}

// DeleteTask removes a task permanently.
func (m *Memory) DeleteTask(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[id]; !ok {
		return NotFoundError{ID: id}
	}
	delete(m.tasks, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// ListTasks returns every task in insertion order.
func (m *Memory) ListTasks(_ context.Context) ([]domain.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tasks := make([]domain.Task, 0, len(m.order))
	for _, id := range m.order {
		tasks = append(tasks, m.tasks[id])
	}
	return tasks, nil
}

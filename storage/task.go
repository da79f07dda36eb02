package storage

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"tasker-api/domain"
)

// newTask builds a fresh task from a create request. New tasks always start
// in the todo column.
func newTask(req domain.TaskCreate, now time.Time) (domain.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Task{}, ValidationError{Reason: "title must not be empty"}
	}
	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	} else if _, err := domain.ParsePriority(string(priority)); err != nil {
		return domain.Task{}, ValidationError{Reason: err.Error()}
	}
	return domain.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Status:      domain.StatusTodo,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// applyUpdate merges a partial update into a task, bumping UpdatedAt. ID and
// CreatedAt are never touched.
func applyUpdate(t domain.Task, upd domain.TaskUpdate, now time.Time) (domain.Task, error) {
	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			return domain.Task{}, ValidationError{Reason: "title must not be empty"}
		}
		t.Title = title
	}
	if upd.Description != nil {
		t.Description = strings.TrimSpace(*upd.Description)
	}
	if upd.Status != nil {
		if _, err := domain.ParseStatus(string(*upd.Status)); err != nil {
			return domain.Task{}, ValidationError{Reason: err.Error()}
		}
		t.Status = *upd.Status
	}
	if upd.Priority != nil {
		if _, err := domain.ParsePriority(string(*upd.Priority)); err != nil {
			return domain.Task{}, ValidationError{Reason: err.Error()}
		}
		t.Priority = *upd.Priority
	}
	t.UpdatedAt = now
	return t, nil
}

// sortByCreation orders tasks oldest first, falling back to id so listings
// are deterministic when timestamps collide.
func sortByCreation(tasks []domain.Task) {
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].ID < tasks[j].ID
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
}

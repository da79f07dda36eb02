package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"tasker-api/domain"
)

func TestMemoryCreateDefaults(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	task, err := store.CreateTask(ctx, domain.TaskCreate{Title: "Write spec"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.ID == "" {
		t.Fatal("expected a generated id")
	}
	if task.Status != domain.StatusTodo {
		t.Fatalf("expected new task in todo, got %q", task.Status)
	}
	if task.Priority != domain.PriorityMedium {
		t.Fatalf("expected default priority medium, got %q", task.Priority)
	}
	if !task.UpdatedAt.Equal(task.CreatedAt) {
		t.Fatalf("expected UpdatedAt == CreatedAt on creation")
	}

	other, err := store.CreateTask(ctx, domain.TaskCreate{Title: "Another"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if other.ID == task.ID {
		t.Fatalf("expected unique ids, both were %q", task.ID)
	}
}

func TestMemoryCreateValidation(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	if _, err := store.CreateTask(ctx, domain.TaskCreate{Title: "   "}); err == nil {
		t.Fatal("expected validation error for blank title")
	} else if !errors.As(err, &ValidationError{}) {
		t.Fatalf("expected ValidationError, got %T", err)
	}

	if _, err := store.CreateTask(ctx, domain.TaskCreate{Title: "t", Priority: "urgent"}); err == nil {
		t.Fatal("expected validation error for unknown priority")
	}
}

func TestMemoryTaskLifecycle(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	created := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return created }

	task, err := store.CreateTask(ctx, domain.TaskCreate{Title: "Write spec"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	moved := created.Add(90 * time.Second)
	store.now = func() time.Time { return moved }

	status := domain.StatusInProgress
	updated, err := store.UpdateTask(ctx, task.ID, domain.TaskUpdate{Status: &status})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != domain.StatusInProgress {
		t.Fatalf("expected in_progress, got %q", updated.Status)
	}
	if updated.ID != task.ID {
		t.Fatal("id changed on update")
	}
	if !updated.CreatedAt.Equal(task.CreatedAt) {
		t.Fatal("CreatedAt changed on update")
	}
	if !updated.UpdatedAt.Equal(moved) {
		t.Fatalf("expected UpdatedAt %v, got %v", moved, updated.UpdatedAt)
	}

	if err := store.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.UpdateTask(ctx, task.ID, domain.TaskUpdate{Status: &status}); !errors.As(err, &NotFoundError{}) {
		t.Fatalf("expected NotFoundError after delete, got %v", err)
	}
	if err := store.DeleteTask(ctx, task.ID); !errors.As(err, &NotFoundError{}) {
		t.Fatalf("expected NotFoundError on second delete, got %v", err)
	}
}

func TestMemoryUpdateUnknownID(t *testing.T) {
	store := NewMemory()
	title := "t"
	_, err := store.UpdateTask(context.Background(), "nope", domain.TaskUpdate{Title: &title})
	if !errors.As(err, &NotFoundError{}) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestMemoryUpdateValidation(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	task, err := store.CreateTask(ctx, domain.TaskCreate{Title: "t"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	blank := " "
	if _, err := store.UpdateTask(ctx, task.ID, domain.TaskUpdate{Title: &blank}); !errors.As(err, &ValidationError{}) {
		t.Fatalf("expected ValidationError for blank title, got %v", err)
	}

	bogus := domain.Status("archived")
	if _, err := store.UpdateTask(ctx, task.ID, domain.TaskUpdate{Status: &bogus}); !errors.As(err, &ValidationError{}) {
		t.Fatalf("expected ValidationError for unknown status, got %v", err)
	}

	got, err := store.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "t" || got.Status != domain.StatusTodo {
		t.Fatalf("rejected update must not change the task, got %+v", got)
	}
}

func TestMemoryListInsertionOrder(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	titles := []string{"first", "second", "third"}
	ids := make([]string, len(titles))
	for i, title := range titles {
		task, err := store.CreateTask(ctx, domain.TaskCreate{Title: title})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		ids[i] = task.ID
	}

	if err := store.DeleteTask(ctx, ids[1]); err != nil {
		t.Fatalf("delete: %v", err)
	}

	tasks, err := store.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].Title != "first" || tasks[1].Title != "third" {
		t.Fatalf("unexpected order: %q, %q", tasks[0].Title, tasks[1].Title)
	}
}

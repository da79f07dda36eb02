package api

import (
	"context"

	"tasker-api/domain"
)

// Storage abstracts task persistence for handlers.
type Storage interface {
	CreateTask(ctx context.Context, req domain.TaskCreate) (domain.Task, error)
	GetTask(ctx context.Context, id string) (domain.Task, error)
	UpdateTask(ctx context.Context, id string, upd domain.TaskUpdate) (domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
	ListTasks(ctx context.Context) ([]domain.Task, error)
}

// NotFoundError is returned by stores when a task id is unknown.
type NotFoundError interface {
	error
	NotFound()
}

// ValidationError is returned by stores when create or update input is
// rejected.
type ValidationError interface {
	error
	InvalidInput()
}

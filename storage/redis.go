package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"tasker-api/domain"
)

const taskOrderKey = "tasks:order"

// Redis keeps the board in Redis so tasks survive process restarts and can
// be shared between instances. Tasks are stored as JSON values under
// per-task keys; insertion order lives in a list.
type Redis struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedis creates a Redis-backed task store using the provided client.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{
		client: client,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func taskKey(id string) string {
	return fmt.Sprintf("task:%s", id)
}

// CreateTask adds a new task in the todo column.
func (r *Redis) CreateTask(ctx context.Context, req domain.TaskCreate) (domain.Task, error) {
	task, err := newTask(req, r.now())
	if err != nil {
		return domain.Task{}, err
	}
	payload, err := sonic.Marshal(task)
	if err != nil {
		return domain.Task{}, err
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, taskKey(task.ID), payload, 0)
		pipe.RPush(ctx, taskOrderKey, task.ID)
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// GetTask returns a single task by id.
func (r *Redis) GetTask(ctx context.Context, id string) (domain.Task, error) {
	data, err := r.client.Get(ctx, taskKey(id)).Bytes()
	if err == redis.Nil {
		return domain.Task{}, NotFoundError{ID: id}
	}
	if err != nil {
		return domain.Task{}, err
	}
	var task domain.Task
	if err := sonic.Unmarshal(data, &task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// UpdateTask merges a partial update into an existing task. The write is a
// plain SET, so concurrent updates to the same id resolve last-write-wins.
func (r *Redis) UpdateTask(ctx context.Context, id string, upd domain.TaskUpdate) (domain.Task, error) {
	task, err := r.GetTask(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	updated, err := applyUpdate(task, upd, r.now())
	if err != nil {
		return domain.Task{}, err
	}
	payload, err := sonic.Marshal(updated)
	if err != nil {
		return domain.Task{}, err
	}
	if err := r.client.Set(ctx, taskKey(id), payload, 0).Err(); err != nil {
		return domain.Task{}, err
	}
	return updated, nil
}

// DeleteTask removes a task permanently.
func (r *Redis) DeleteTask(ctx context.Context, id string) error {
	removed, err := r.client.Del(ctx, taskKey(id)).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return NotFoundError{ID: id}
	}
	return r.client.LRem(ctx, taskOrderKey, 1, id).Err()
}

// ListTasks returns every task in insertion order. Ids left in the order
// list without a backing value are skipped.
func (r *Redis) ListTasks(ctx context.Context) ([]domain.Task, error) {
	ids, err := r.client.LRange(ctx, taskOrderKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	tasks := make([]domain.Task, 0, len(ids))
	if len(ids) == 0 {
		return tasks, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = taskKey(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var task domain.Task
		if err := sonic.Unmarshal([]byte(raw), &task); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

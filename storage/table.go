package storage

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"

	"tasker-api/domain"
)

// All tasks share one partition; the board is small and this keeps listing a
// single-partition scan.
const taskPartition = "board"

// Table stores tasks in Azure Table Storage.
type Table struct {
	taskTable *aztables.Client
	now       func() time.Time
}

// NewTable creates a Table store from the given connection string.
func NewTable(connStr, tasksTable string) (*Table, error) {
	clientOptions := aztables.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Retry: policy.RetryOptions{
				MaxRetries:    3,
				TryTimeout:    time.Minute * 3,
				RetryDelay:    time.Second * 1,
				MaxRetryDelay: time.Second * 15,
				StatusCodes:   []int{408, 429, 500, 502, 503, 504},
			},
		},
	}
	svc, err := aztables.NewServiceClientFromConnectionString(connStr, &clientOptions)
	if err != nil {
		return nil, err
	}
	return &Table{
		taskTable: svc.NewClient(tasksTable),
		now:       func() time.Time { return time.Now().UTC() },
	}, nil
}

type taskEntity struct {
	aztables.Entity
	Title       string `json:"Title"`
	Description string `json:"Description"`
	Status      string `json:"Status"`
	Priority    string `json:"Priority"`
	CreatedAt   string `json:"CreatedAt"`
	UpdatedAt   string `json:"UpdatedAt"`
}

func encodeTaskEntity(t domain.Task) ([]byte, error) {
	return json.Marshal(taskEntity{
		Entity: aztables.Entity{
			PartitionKey: taskPartition,
			RowKey:       t.ID,
		},
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339Nano),
	})
}

func decodeTaskEntity(data []byte) (domain.Task, error) {
	var ent taskEntity
	if err := json.Unmarshal(data, &ent); err != nil {
		return domain.Task{}, err
	}
	createdAt, err := time.Parse(time.RFC3339Nano, ent.CreatedAt)
	if err != nil {
		return domain.Task{}, err
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, ent.UpdatedAt)
	if err != nil {
		return domain.Task{}, err
	}
	return domain.Task{
		ID:          ent.RowKey,
		Title:       ent.Title,
		Description: ent.Description,
		Status:      domain.Status(ent.Status),
		Priority:    domain.Priority(ent.Priority),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

func isTableNotFound(err error) bool {
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound
}

// CreateTask adds a new task in the todo column.
func (t *Table) CreateTask(ctx context.Context, req domain.TaskCreate) (domain.Task, error) {
	task, err := newTask(req, t.now())
	if err != nil {
		return domain.Task{}, err
	}
	payload, err := encodeTaskEntity(task)
	if err != nil {
		return domain.Task{}, err
	}
	if _, err := t.taskTable.AddEntity(ctx, payload, nil); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// GetTask returns a single task by id.
func (t *Table) GetTask(ctx context.Context, id string) (domain.Task, error) {
	resp, err := t.taskTable.GetEntity(ctx, taskPartition, id, nil)
	if err != nil {
		if isTableNotFound(err) {
			return domain.Task{}, NotFoundError{ID: id}
		}
		return domain.Task{}, err
	}
	return decodeTaskEntity(resp.Value)
}

// UpdateTask merges a partial update into an existing task. The replace
// write is unconditional, so concurrent updates resolve last-write-wins.
func (t *Table) UpdateTask(ctx context.Context, id string, upd domain.TaskUpdate) (domain.Task, error) {
	task, err := t.GetTask(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	updated, err := applyUpdate(task, upd, t.now())
	if err != nil {
		return domain.Task{}, err
	}
	payload, err := encodeTaskEntity(updated)
	if err != nil {
		return domain.Task{}, err
	}
	et := azcore.ETagAny
	_, err = t.taskTable.UpdateEntity(ctx, payload, &aztables.UpdateEntityOptions{
		IfMatch:    &et,
		UpdateMode: aztables.UpdateModeReplace,
	})
	if err != nil {
		if isTableNotFound(err) {
			return domain.Task{}, NotFoundError{ID: id}
		}
		return domain.Task{}, err
	}
	return updated, nil
}

// DeleteTask removes a task permanently.
func (t *Table) DeleteTask(ctx context.Context, id string) error {
	et := azcore.ETagAny
	_, err := t.taskTable.DeleteEntity(ctx, taskPartition, id, &aztables.DeleteEntityOptions{IfMatch: &et})
	if err != nil {
		if isTableNotFound(err) {
			return NotFoundError{ID: id}
		}
		return err
	}
	return nil
}

// ListTasks returns every task on the board, oldest first. Table listings
// come back in row-key order, so the result is re-sorted by creation time.
func (t *Table) ListTasks(ctx context.Context) ([]domain.Task, error) {
	filter := "PartitionKey eq '" + taskPartition + "'"
	pager := t.taskTable.NewListEntitiesPager(&aztables.ListEntitiesOptions{Filter: &filter})
	tasks := []domain.Task{}
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, e := range resp.Entities {
			task, err := decodeTaskEntity(e)
			if err != nil {
				return nil, err
			}
			tasks = append(tasks, task)
		}
	}
	sortByCreation(tasks)
	return tasks, nil
}

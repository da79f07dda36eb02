package domain

import "testing"

func TestGroupByStatusEmpty(t *testing.T) {
	grouped := GroupByStatus(nil)
	if len(grouped) != len(Statuses) {
		t.Fatalf("expected %d keys, got %d", len(Statuses), len(grouped))
	}
	for _, s := range Statuses {
		bucket, ok := grouped[s]
		if !ok {
			t.Fatalf("missing key %q", s)
		}
		if len(bucket) != 0 {
			t.Fatalf("expected empty bucket for %q, got %d tasks", s, len(bucket))
		}
	}
}

func TestGroupByStatusPartitions(t *testing.T) {
	tasks := []Task{
		{ID: "a", Status: StatusTodo},
		{ID: "b", Status: StatusDone},
		{ID: "c", Status: StatusTodo},
		{ID: "d", Status: StatusInProgress},
	}
	grouped := GroupByStatus(tasks)

	if len(grouped) != len(Statuses) {
		t.Fatalf("expected exactly %d keys, got %d", len(Statuses), len(grouped))
	}

	total := 0
	seen := map[string]bool{}
	for _, s := range Statuses {
		for _, task := range grouped[s] {
			if task.Status != s {
				t.Fatalf("task %s in wrong bucket %q", task.ID, s)
			}
			if seen[task.ID] {
				t.Fatalf("task %s appears twice", task.ID)
			}
			seen[task.ID] = true
			total++
		}
	}
	if total != len(tasks) {
		t.Fatalf("expected %d tasks across buckets, got %d", len(tasks), total)
	}

	todo := grouped[StatusTodo]
	if todo[0].ID != "a" || todo[1].ID != "c" {
		t.Fatalf("expected input order preserved, got %s then %s", todo[0].ID, todo[1].ID)
	}
}

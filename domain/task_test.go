package domain

import (
	"testing"

	"github.com/bytedance/sonic"
)

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"todo", "in_progress", "done"} {
		s, err := ParseStatus(raw)
		if err != nil {
			t.Fatalf("ParseStatus(%q): %v", raw, err)
		}
		if string(s) != raw {
			t.Fatalf("expected %q, got %q", raw, s)
		}
	}
	for _, raw := range []string{"", "backlog", "Done", "in-progress"} {
		if _, err := ParseStatus(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestParsePriority(t *testing.T) {
	for _, raw := range []string{"low", "medium", "high"} {
		if _, err := ParsePriority(raw); err != nil {
			t.Fatalf("ParsePriority(%q): %v", raw, err)
		}
	}
	if _, err := ParsePriority("urgent"); err == nil {
		t.Fatal("expected error for unknown priority")
	}
}

func TestStatusUnmarshalRejectsUnknown(t *testing.T) {
	var task Task
	if err := sonic.Unmarshal([]byte(`{"title":"t","status":"archived"}`), &task); err == nil {
		t.Fatal("expected decode error for unknown status")
	}
	if err := sonic.Unmarshal([]byte(`{"title":"t","status":"in_progress"}`), &task); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if task.Status != StatusInProgress {
		t.Fatalf("unexpected status %q", task.Status)
	}
}

func TestStatusLabel(t *testing.T) {
	labels := map[Status]string{
		StatusTodo:       "To Do",
		StatusInProgress: "In Progress",
		StatusDone:       "Done",
	}
	for s, want := range labels {
		if got := s.Label(); got != want {
			t.Fatalf("label for %q: expected %q, got %q", s, want, got)
		}
	}
}

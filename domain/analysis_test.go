package domain

import (
	"testing"
	"time"
)

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, time.Now())
	for _, status := range Statuses {
		if s.Counts[status] != 0 {
			t.Fatalf("expected zero count for %q, got %d", status, s.Counts[status])
		}
		if s.AvgAgeSeconds[status] != 0 {
			t.Fatalf("expected zero avg age for %q, got %f", status, s.AvgAgeSeconds[status])
		}
	}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	tasks := []Task{
		{ID: "a", Status: StatusTodo, UpdatedAt: now.Add(-10 * time.Second)},
		{ID: "b", Status: StatusTodo, UpdatedAt: now.Add(-30 * time.Second)},
		{ID: "c", Status: StatusDone, UpdatedAt: now.Add(-60 * time.Second)},
	}

	s := Summarize(tasks, now)

	if s.Counts[StatusTodo] != 2 || s.Counts[StatusInProgress] != 0 || s.Counts[StatusDone] != 1 {
		t.Fatalf("unexpected counts: %#v", s.Counts)
	}
	if got := s.AvgAgeSeconds[StatusTodo]; got != 20 {
		t.Fatalf("expected avg todo age 20s, got %f", got)
	}
	if got := s.AvgAgeSeconds[StatusDone]; got != 60 {
		t.Fatalf("expected avg done age 60s, got %f", got)
	}
	if got := s.AvgAgeSeconds[StatusInProgress]; got != 0 {
		t.Fatalf("expected zero avg age for empty bucket, got %f", got)
	}
}

func TestAnalyzeTaskCategory(t *testing.T) {
	now := time.Now()
	cases := map[string]string{
		"Fix login bug":    "bugfix",
		"Write spec":       "documentation",
		"Add unit tests":   "testing",
		"Plan the offsite": "general",
	}
	for title, want := range cases {
		insights := AnalyzeTask(Task{Title: title, Status: StatusTodo, UpdatedAt: now}, now)
		if insights.Category != want {
			t.Fatalf("category for %q: expected %q, got %q", title, want, insights.Category)
		}
		if len(insights.SuggestedTodos) == 0 {
			t.Fatalf("expected suggestions for %q", title)
		}
	}
}

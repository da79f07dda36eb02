package domain

import (
	"fmt"
	"strings"
	"time"
)

// Summary holds per-status aggregates for the analysis view.
type Summary struct {
	Counts        map[Status]int     `json:"counts"`
	AvgAgeSeconds map[Status]float64 `json:"avgAgeSeconds"`
}

// Summarize computes task counts and the mean time since last update per
// status. Empty buckets report an average age of zero. The reference time is
// passed in so callers and tests agree on "now".
func Summarize(tasks []Task, now time.Time) Summary {
	counts := make(map[Status]int, len(Statuses))
	ages := make(map[Status]float64, len(Statuses))
	totals := make(map[Status]float64, len(Statuses))
	for _, s := range Statuses {
		counts[s] = 0
		ages[s] = 0
	}
	for _, t := range tasks {
		counts[t.Status]++
		totals[t.Status] += now.Sub(t.UpdatedAt).Seconds()
	}
	for _, s := range Statuses {
		if counts[s] > 0 {
			ages[s] = totals[s] / float64(counts[s])
		}
	}
	return Summary{Counts: counts, AvgAgeSeconds: ages}
}

// TaskInsights is the per-task breakdown shown in the analysis partial.
type TaskInsights struct {
	Summary        string   `json:"summary"`
	SuggestedTodos []string `json:"suggestedTodos"`
	Category       string   `json:"category"`
}

// AnalyzeTask derives insights for a single task from its title and current
// state. The categorization is keyword-based until a real analyzer lands.
func AnalyzeTask(t Task, now time.Time) TaskInsights {
	age := now.Sub(t.UpdatedAt)
	if age < 0 {
		age = 0
	}
	return TaskInsights{
		Summary:        fmt.Sprintf("%q has been in %s for %s.", t.Title, t.Status.Label(), age.Round(time.Second)),
		SuggestedTodos: suggestTodos(t.Status),
		Category:       categorize(t.Title),
	}
}

func suggestTodos(s Status) []string {
	switch s {
	case StatusTodo:
		return []string{
			"Clarify requirements",
			"Identify dependencies",
			"Break down into actionable steps",
		}
	case StatusInProgress:
		return []string{
			"Note remaining blockers",
			"Split off anything that can ship separately",
		}
	default:
		return []string{"Capture follow-ups before archiving"}
	}
}

func categorize(title string) string {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "bug") || strings.Contains(lower, "fix"):
		return "bugfix"
	case strings.Contains(lower, "doc") || strings.Contains(lower, "spec"):
		return "documentation"
	case strings.Contains(lower, "test"):
		return "testing"
	}
	return "general"
}

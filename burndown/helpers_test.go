package burndown_test

import (
	"time"

	"jira-burndown/burndown"
)

// day returns October n, 2025 as a calendar date.
func day(n int) time.Time {
	return time.Date(2025, time.October, n, 0, 0, 0, 0, time.UTC)
}

// sprint covers Monday 20 to Friday 24 October 2025.
func sprint() burndown.Sprint {
	return burndown.Sprint{ID: "42", Name: "Sprint 7", Start: day(20), End: day(24)}
}

func defaultPolicy(permanent bool) burndown.Policy {
	return burndown.NewPolicy([]string{"To Do", "In Progress", "Code Review"}, "UAT", permanent)
}

func change(n int, from, to string) burndown.StatusChange {
	return burndown.StatusChange{Date: day(n), From: from, To: to}
}

func strPtr(s string) *string { return &s }

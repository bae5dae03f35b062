package burndown

import (
	"fmt"
	"sort"
	"time"

	"jira-burndown/atlassian"
)

const statusField = "status"

// StatusChange is a status transition reduced to calendar-day precision.
type StatusChange struct {
	Date time.Time
	From string
	To   string
}

// ExtractStatusChanges keeps the status items of a changelog and orders them
// by day. Changes recorded on the same day keep the order Jira reported them in.
func ExtractStatusChanges(events []atlassian.JiraChangelogEvent) ([]StatusChange, error) {
	var out []StatusChange
	for _, ev := range events {
		var day time.Time
		parsed := false
		for _, item := range ev.Items {
			if item.Field != statusField {
				continue
			}
			if !parsed {
				d, err := ParseDate(ev.CreatedAt)
				if err != nil {
					return nil, fmt.Errorf("changelog %s of %s: %w", ev.EventID, ev.IssueKey, err)
				}
				day, parsed = d, true
			}
			out = append(out, StatusChange{
				Date: day,
				From: deref(item.FromString),
				To:   deref(item.ToString),
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

// Timeline answers what status an issue held on a given day.
type Timeline struct {
	Initial string
	Changes []StatusChange
}

// NewTimeline derives the status at creation time from the first recorded
// transition; an issue that never changed status still holds current.
func NewTimeline(current string, changes []StatusChange) Timeline {
	initial := current
	if len(changes) > 0 && changes[0].From != "" {
		initial = changes[0].From
	}
	return Timeline{Initial: initial, Changes: changes}
}

// StatusOn returns the status as of the end of day: every change dated on or
// before day has been applied.
func (t Timeline) StatusOn(day time.Time) string {
	current := t.Initial
	for _, ch := range t.Changes {
		if ch.Date.After(day) {
			break
		}
		current = ch.To
	}
	return current
}

// FirstDateReaching returns the day of the first transition into target.
func FirstDateReaching(changes []StatusChange, target string) (time.Time, bool) {
	for _, ch := range changes {
		if ch.To == target {
			return ch.Date, true
		}
	}
	return time.Time{}, false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package burndown

import (
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"
)

// DateLayout is the calendar date format used in the output tables.
const DateLayout = "2006-01-02"

var timestampLayouts = []string{
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02T15:04:05Z0700",
	time.RFC3339Nano,
	time.RFC3339,
	DateLayout,
}

// ParseDate reduces a Jira timestamp such as 2025-10-24T11:23:00.000+0000 to
// its calendar date. The date is taken in the timestamp's own offset, not
// converted to UTC first.
func ParseDate(value string) (time.Time, error) {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, cleaned); err == nil {
			return DateOf(parsed), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

// DateOf truncates t to midnight UTC of the calendar day t falls on in its own
// location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Days yields every calendar day from start to end inclusive.
func Days(start, end time.Time) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		for day := DateOf(start); !day.After(end); day = day.AddDate(0, 0, 1) {
			if !yield(day) {
				return
			}
		}
	}
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

package burndown

import (
	"sort"
	"time"
)

type Sprint struct {
	ID    string
	Name  string
	Start time.Time
	End   time.Time
}

type Issue struct {
	Key         string
	StoryPoints float64
	Created     time.Time
	Timeline    Timeline
}

// DailyRecord is one issue on one sprint day.
type DailyRecord struct {
	Date        time.Time
	Issue       string
	Status      string
	StoryPoints float64
	Remaining   float64
}

type DailyTotal struct {
	Date      time.Time
	Remaining float64
}

type Report struct {
	Sprint  Sprint
	Totals  []DailyTotal
	Details []DailyRecord
}

// Build evaluates every issue on every sprint day from its creation onward.
// Totals cover every sprint day, including days nothing was open.
func Build(sprint Sprint, issues []Issue, policy Policy) Report {
	byDay := map[time.Time]float64{}
	var totals []DailyTotal
	for day := range Days(sprint.Start, sprint.End) {
		byDay[day] = 0
		totals = append(totals, DailyTotal{Date: day})
	}

	var details []DailyRecord
	for _, issue := range issues {
		from := laterOf(DateOf(issue.Created), sprint.Start)
		for day := range Days(from, sprint.End) {
			status, remaining := policy.Evaluate(issue.StoryPoints, issue.Timeline, day)
			details = append(details, DailyRecord{
				Date:        day,
				Issue:       issue.Key,
				Status:      status,
				StoryPoints: issue.StoryPoints,
				Remaining:   remaining,
			})
			byDay[day] += remaining
		}
	}

	for i := range totals {
		totals[i].Remaining = byDay[totals[i].Date]
	}
	sort.SliceStable(details, func(i, j int) bool {
		if !details[i].Date.Equal(details[j].Date) {
			return details[i].Date.Before(details[j].Date)
		}
		return details[i].Issue < details[j].Issue
	})

	return Report{Sprint: sprint, Totals: totals, Details: details}
}

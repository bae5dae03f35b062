package burndown

import (
	"fmt"

	"jira-burndown/atlassian"
)

// SprintFromJira converts sprint metadata into calendar bounds. Sprints that
// were never timeboxed are rejected with a ConfigError.
func SprintFromJira(s atlassian.JiraSprint) (Sprint, error) {
	end := s.EndAt
	if end == nil {
		end = s.CompleteAt
	}
	if s.StartAt == nil || end == nil {
		return Sprint{}, &atlassian.ConfigError{
			Reason: fmt.Sprintf("sprint %s has no start/end date; the board must be a Scrum board with timeboxed sprints", s.ID),
		}
	}
	start, err := ParseDate(*s.StartAt)
	if err != nil {
		return Sprint{}, fmt.Errorf("sprint %s startDate: %w", s.ID, err)
	}
	finish, err := ParseDate(*end)
	if err != nil {
		return Sprint{}, fmt.Errorf("sprint %s endDate: %w", s.ID, err)
	}
	if finish.Before(start) {
		return Sprint{}, &atlassian.ConfigError{
			Reason: fmt.Sprintf("sprint %s ends (%s) before it starts (%s)", s.ID, finish.Format(DateLayout), start.Format(DateLayout)),
		}
	}
	return Sprint{ID: s.ID, Name: s.Name, Start: start, End: finish}, nil
}

// IssueFromJira builds the status timeline of an issue. Missing story points
// count as zero.
func IssueFromJira(issue atlassian.JiraIssue, events []atlassian.JiraChangelogEvent) (Issue, error) {
	created, err := ParseDate(issue.CreatedAt)
	if err != nil {
		return Issue{}, fmt.Errorf("issue %s created: %w", issue.Key, err)
	}
	changes, err := ExtractStatusChanges(events)
	if err != nil {
		return Issue{}, err
	}
	points := 0.0
	if issue.StoryPoints != nil {
		points = *issue.StoryPoints
	}
	return Issue{
		Key:         issue.Key,
		StoryPoints: points,
		Created:     created,
		Timeline:    NewTimeline(issue.Status, changes),
	}, nil
}

package mappers

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"jira-burndown/atlassian"
)

// JiraIssueFromREST maps an issue resource. StoryPoints is left nil when the
// story points field is missing or does not hold a usable number.
func JiraIssueFromREST(issue map[string]any, storyPointsField string) (atlassian.JiraIssue, error) {
	if issue == nil {
		return atlassian.JiraIssue{}, errors.New("issue is required")
	}
	issueKey, err := requireStringField(issue, "key", "issue")
	if err != nil {
		return atlassian.JiraIssue{}, err
	}
	fields, err := requireMapField(issue, "fields", "issue")
	if err != nil {
		return atlassian.JiraIssue{}, err
	}

	statusObj, err := requireMapField(fields, "status", "issue.fields")
	if err != nil {
		return atlassian.JiraIssue{}, err
	}
	status, err := requireStringField(statusObj, "name", "issue.fields.status")
	if err != nil {
		return atlassian.JiraIssue{}, err
	}

	createdAt, err := requireStringField(fields, "created", "issue.fields")
	if err != nil {
		return atlassian.JiraIssue{}, err
	}

	out := atlassian.JiraIssue{
		Key:       issueKey,
		Status:    status,
		CreatedAt: createdAt,
	}
	if field := strings.TrimSpace(storyPointsField); field != "" {
		if sp, ok := ParseStoryPoints(fields[field]); ok {
			out.StoryPoints = &sp
		}
	}
	return out, nil
}

// ParseStoryPoints accepts JSON numbers and numeric strings. Negative and
// non-finite values are rejected.
func ParseStoryPoints(raw any) (float64, bool) {
	var v float64
	switch t := raw.(type) {
	case float64:
		v = t
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		v = parsed
	default:
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

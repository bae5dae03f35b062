package rest

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"jira-burndown/atlassian"
	"jira-burndown/atlassian/rest/mappers"
)

// ListIssueChangelogViaREST reads the changelog sub-resource of an issue,
// starting at startAt, until the reported total is reached.
func (c *JiraRESTClient) ListIssueChangelogViaREST(ctx context.Context, issueKey string, startAt, pageSize int) ([]atlassian.JiraChangelogEvent, error) {
	issue := strings.TrimSpace(issueKey)
	if issue == "" {
		return nil, errors.New("issueKey is required")
	}
	if pageSize <= 0 {
		pageSize = 100
	}
	if startAt < 0 {
		startAt = 0
	}

	path := "/rest/api/3/issue/" + url.PathEscape(issue) + "/changelog"
	var out []atlassian.JiraChangelogEvent
	for values, err := range c.pages(ctx, path, nil, "values", startAt, pageSize) {
		if err != nil {
			return nil, err
		}
		for _, it := range values {
			mapped, err := mappers.JiraChangelogEventFromREST(issue, it)
			if err != nil {
				return nil, err
			}
			out = append(out, mapped)
		}
	}
	return out, nil
}

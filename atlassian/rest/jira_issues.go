package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"jira-burndown/atlassian"
	"jira-burndown/atlassian/rest/mappers"
)

const changelogPageSize = 100

// GetIssueWithChangelog fetches an issue with its embedded changelog and then
// pages through the changelog sub-resource when the embedded block is
// truncated. Events are returned in the order Jira reports them.
func (c *JiraRESTClient) GetIssueWithChangelog(ctx context.Context, issueKey string, storyPointsField string) (atlassian.JiraIssue, []atlassian.JiraChangelogEvent, error) {
	issue := strings.TrimSpace(issueKey)
	if issue == "" {
		return atlassian.JiraIssue{}, nil, errors.New("issueKey is required")
	}

	if waited, err := c.issueBucket().take(ctx); err != nil {
		return atlassian.JiraIssue{}, nil, err
	} else if waited > 0 {
		c.logger().Debug("paced issue fetch", zap.String("issue", issue), zap.Duration("waited", waited))
	}

	fields := []string{"status", "created"}
	if sp := strings.TrimSpace(storyPointsField); sp != "" {
		fields = append(fields, sp)
	}
	payload, err := c.GetJSON(ctx, "/rest/api/3/issue/"+url.PathEscape(issue), map[string]string{
		"expand": "changelog",
		"fields": strings.Join(fields, ","),
	})
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return atlassian.JiraIssue{}, nil, &atlassian.NotFoundError{Resource: "issue", ID: issue}
		}
		return atlassian.JiraIssue{}, nil, err
	}

	mapped, err := mappers.JiraIssueFromREST(payload, storyPointsField)
	if err != nil {
		return atlassian.JiraIssue{}, nil, fmt.Errorf("decode issue %s: %w", issue, err)
	}

	var changelog map[string]any
	if raw, ok := payload["changelog"]; ok && raw != nil {
		changelog, ok = raw.(map[string]any)
		if !ok {
			return atlassian.JiraIssue{}, nil, fmt.Errorf("decode issue %s: issue.changelog must be an object", issue)
		}
	}
	histories, err := mappers.ObjectList(changelog, "histories", "issue.changelog")
	if err != nil {
		return atlassian.JiraIssue{}, nil, fmt.Errorf("decode issue %s: %w", issue, err)
	}
	total, err := mappers.OptionalInt(changelog, "total")
	if err != nil {
		return atlassian.JiraIssue{}, nil, fmt.Errorf("decode issue %s: issue.changelog.%w", issue, err)
	}

	events := make([]atlassian.JiraChangelogEvent, 0, len(histories))
	for _, h := range histories {
		ev, err := mappers.JiraChangelogEventFromREST(mapped.Key, h)
		if err != nil {
			return atlassian.JiraIssue{}, nil, fmt.Errorf("decode issue %s: %w", issue, err)
		}
		events = append(events, ev)
	}

	if total != nil && len(events) < *total {
		more, err := c.ListIssueChangelogViaREST(ctx, mapped.Key, len(events), changelogPageSize)
		if err != nil {
			return atlassian.JiraIssue{}, nil, err
		}
		events = append(events, more...)
	}
	return mapped, events, nil
}

func (c *JiraRESTClient) issueBucket() *tokenBucket {
	c.pacerOnce.Do(func() {
		c.pacer = newTokenBucket(c.IssueInterval, c.Now, c.sleeper())
	})
	return c.pacer
}

package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"jira-burndown/atlassian"
	"jira-burndown/atlassian/rest/mappers"
)

// GetSprint fetches sprint metadata from the Agile API.
func (c *JiraRESTClient) GetSprint(ctx context.Context, sprintID string) (atlassian.JiraSprint, error) {
	id := strings.TrimSpace(sprintID)
	if id == "" {
		return atlassian.JiraSprint{}, errors.New("sprintID is required")
	}

	payload, err := c.GetJSON(ctx, "/rest/agile/1.0/sprint/"+url.PathEscape(id), nil)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return atlassian.JiraSprint{}, &atlassian.NotFoundError{Resource: "sprint", ID: id}
		}
		return atlassian.JiraSprint{}, err
	}
	sprint, err := mappers.JiraSprintFromREST(payload)
	if err != nil {
		return atlassian.JiraSprint{}, fmt.Errorf("decode sprint response: %w", err)
	}
	return sprint, nil
}

// ListSprintIssueKeys returns the keys of every issue in the sprint, in the
// order the Agile API reports them.
func (c *JiraRESTClient) ListSprintIssueKeys(ctx context.Context, sprintID string, pageSize int) ([]string, error) {
	id := strings.TrimSpace(sprintID)
	if id == "" {
		return nil, errors.New("sprintID is required")
	}
	if pageSize <= 0 {
		pageSize = 50
	}

	path := "/rest/agile/1.0/sprint/" + url.PathEscape(id) + "/issue"
	var out []string
	for issues, err := range c.pages(ctx, path, map[string]string{"fields": "key"}, "issues", 0, pageSize) {
		if err != nil {
			if isStatus(err, http.StatusNotFound) {
				return nil, &atlassian.NotFoundError{Resource: "sprint", ID: id}
			}
			return nil, err
		}
		for idx, it := range issues {
			key, ok := it["key"].(string)
			if !ok || strings.TrimSpace(key) == "" {
				return nil, fmt.Errorf("decode sprint issues response: issues[%d].key is required", idx)
			}
			out = append(out, strings.TrimSpace(key))
		}
	}
	return out, nil
}

func isStatus(err error, status int) bool {
	var reqErr *atlassian.RequestError
	return errors.As(err, &reqErr) && reqErr.StatusCode == status
}

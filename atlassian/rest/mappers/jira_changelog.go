package mappers

import (
	"errors"
	"fmt"
	"strings"

	"jira-burndown/atlassian"
)

// JiraChangelogEventFromREST maps one changelog history, either from the
// expand=changelog block of an issue or from the changelog sub-resource.
func JiraChangelogEventFromREST(issueKey string, changelog map[string]any) (atlassian.JiraChangelogEvent, error) {
	issue := strings.TrimSpace(issueKey)
	if issue == "" {
		return atlassian.JiraChangelogEvent{}, errors.New("issueKey is required")
	}
	if changelog == nil {
		return atlassian.JiraChangelogEvent{}, errors.New("changelog is required")
	}
	eventID, err := requireIDField(changelog, "id", "changelog")
	if err != nil {
		return atlassian.JiraChangelogEvent{}, err
	}
	createdAt, err := requireStringField(changelog, "created", "changelog")
	if err != nil {
		return atlassian.JiraChangelogEvent{}, err
	}

	rawItems, err := ObjectList(changelog, "items", "changelog")
	if err != nil {
		return atlassian.JiraChangelogEvent{}, err
	}
	items := make([]atlassian.JiraChangelogItem, 0, len(rawItems))
	for idx, it := range rawItems {
		path := fmt.Sprintf("changelog.items[%d]", idx)
		field, err := requireStringField(it, "field", path)
		if err != nil {
			return atlassian.JiraChangelogEvent{}, err
		}
		item := atlassian.JiraChangelogItem{Field: field}
		if item.FromString, err = optionalStringField(it, "fromString"); err != nil {
			return atlassian.JiraChangelogEvent{}, fmt.Errorf("%s: %w", path, err)
		}
		if item.ToString, err = optionalStringField(it, "toString"); err != nil {
			return atlassian.JiraChangelogEvent{}, fmt.Errorf("%s: %w", path, err)
		}
		items = append(items, item)
	}

	return atlassian.JiraChangelogEvent{
		IssueKey:  issue,
		EventID:   eventID,
		CreatedAt: createdAt,
		Items:     items,
	}, nil
}

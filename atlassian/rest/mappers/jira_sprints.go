package mappers

import (
	"errors"

	"jira-burndown/atlassian"
)

func JiraSprintFromREST(sprint map[string]any) (atlassian.JiraSprint, error) {
	if sprint == nil {
		return atlassian.JiraSprint{}, errors.New("sprint is required")
	}
	id, err := requireIDField(sprint, "id", "sprint")
	if err != nil {
		return atlassian.JiraSprint{}, err
	}
	name, err := requireStringField(sprint, "name", "sprint")
	if err != nil {
		return atlassian.JiraSprint{}, err
	}

	out := atlassian.JiraSprint{ID: id, Name: name}
	if state, err := optionalStringField(sprint, "state"); err != nil {
		return atlassian.JiraSprint{}, err
	} else if state != nil {
		out.State = *state
	}
	if out.StartAt, err = optionalStringField(sprint, "startDate"); err != nil {
		return atlassian.JiraSprint{}, err
	}
	if out.EndAt, err = optionalStringField(sprint, "endDate"); err != nil {
		return atlassian.JiraSprint{}, err
	}
	if out.CompleteAt, err = optionalStringField(sprint, "completeDate"); err != nil {
		return atlassian.JiraSprint{}, err
	}
	return out, nil
}

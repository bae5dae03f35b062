package atlassian

type JiraSprint struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	State      string  `json:"state"`
	StartAt    *string `json:"startAt,omitempty"`
	EndAt      *string `json:"endAt,omitempty"`
	CompleteAt *string `json:"completeAt,omitempty"`
}

// JiraIssue is the slice of an issue the burndown needs. StoryPoints is nil
// when the configured field is absent, null or not numeric.
type JiraIssue struct {
	Key         string   `json:"key"`
	Status      string   `json:"status"`
	CreatedAt   string   `json:"createdAt"`
	StoryPoints *float64 `json:"storyPoints,omitempty"`
}

type JiraChangelogItem struct {
	Field      string  `json:"field"`
	FromString *string `json:"fromString,omitempty"`
	ToString   *string `json:"toString,omitempty"`
}

type JiraChangelogEvent struct {
	IssueKey  string              `json:"issueKey"`
	EventID   string              `json:"eventId"`
	CreatedAt string              `json:"createdAt"`
	Items     []JiraChangelogItem `json:"items"`
}

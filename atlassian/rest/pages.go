package rest

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strconv"

	"jira-burndown/atlassian/rest/mappers"
)

// pages lazily walks a startAt/maxResults collection, yielding the objects
// stored under itemsKey one page at a time. Iteration stops once the reported
// total is reached, the server flags the last page, or a page comes back
// empty. Any error is yielded once and ends the sequence.
func (c *JiraRESTClient) pages(ctx context.Context, path string, query map[string]string, itemsKey string, startAt, pageSize int) iter.Seq2[[]map[string]any, error] {
	return func(yield func([]map[string]any, error) bool) {
		startAt := startAt
		seenStart := map[int]struct{}{}
		for {
			if _, ok := seenStart[startAt]; ok {
				yield(nil, errors.New("pagination startAt repeated; aborting to prevent infinite loop"))
				return
			}
			seenStart[startAt] = struct{}{}

			params := map[string]string{
				"startAt":    strconv.Itoa(startAt),
				"maxResults": strconv.Itoa(pageSize),
			}
			for k, v := range query {
				params[k] = v
			}

			payload, err := c.GetJSON(ctx, path, params)
			if err != nil {
				yield(nil, err)
				return
			}
			items, err := mappers.ObjectList(payload, itemsKey, "response")
			if err != nil {
				yield(nil, fmt.Errorf("decode %s page: %w", path, err))
				return
			}
			total, err := mappers.OptionalInt(payload, "total")
			if err != nil {
				yield(nil, fmt.Errorf("decode %s page: %w", path, err))
				return
			}
			isLast, _ := payload["isLast"].(bool)

			if !yield(items, nil) {
				return
			}

			if isLast {
				return
			}
			if total != nil && *total >= 0 {
				if startAt+len(items) >= *total {
					return
				}
			} else if len(items) < pageSize {
				return
			}
			if len(items) == 0 {
				return
			}
			startAt += len(items)
		}
	}
}

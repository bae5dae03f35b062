package runner

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"jira-burndown/atlassian"
	"jira-burndown/burndown"
)

const sprintIssuesPageSize = 50

// Source is the slice of the Jira client the burndown needs.
type Source interface {
	GetSprint(ctx context.Context, sprintID string) (atlassian.JiraSprint, error)
	ListSprintIssueKeys(ctx context.Context, sprintID string, pageSize int) ([]string, error)
	GetIssueWithChangelog(ctx context.Context, issueKey string, storyPointsField string) (atlassian.JiraIssue, []atlassian.JiraChangelogEvent, error)
}

type Runner struct {
	Source           Source
	Policy           burndown.Policy
	StoryPointsField string
	OutDir           string
	// Concurrency bounds parallel history fetches; values below 2 fetch
	// sequentially.
	Concurrency int
	Logger      *zap.Logger
	// Out receives the progress lines. Nil discards them.
	Out io.Writer
}

type Result struct {
	Report      burndown.Report
	TotalsPath  string
	DetailsPath string
}

// Run computes the burndown of one sprint and writes both tables to OutDir.
// Nothing is written unless every fetch succeeds.
func (r *Runner) Run(ctx context.Context, sprintID string) (Result, error) {
	log := r.logger()
	out := r.Out
	if out == nil {
		out = io.Discard
	}

	jiraSprint, err := r.Source.GetSprint(ctx, sprintID)
	if err != nil {
		return Result{}, fmt.Errorf("get sprint %s: %w", sprintID, err)
	}
	sprint, err := burndown.SprintFromJira(jiraSprint)
	if err != nil {
		return Result{}, err
	}

	keys, err := r.Source.ListSprintIssueKeys(ctx, sprint.ID, sprintIssuesPageSize)
	if err != nil {
		return Result{}, fmt.Errorf("list issues of sprint %s: %w", sprint.ID, err)
	}
	fmt.Fprintf(out, "Found %d issues in sprint %s (%s).\n", len(keys), sprint.Name, sprint.ID)
	log.Info("sprint loaded",
		zap.String("sprint", sprint.ID),
		zap.String("state", jiraSprint.State),
		zap.String("start", sprint.Start.Format(burndown.DateLayout)),
		zap.String("end", sprint.End.Format(burndown.DateLayout)),
		zap.Int("issues", len(keys)),
	)

	issues, err := r.collect(ctx, keys)
	if err != nil {
		return Result{}, err
	}

	report := burndown.Build(sprint, issues, r.Policy)
	totalsPath, detailsPath, err := report.WriteFiles(r.OutDir)
	if err != nil {
		return Result{}, err
	}
	fmt.Fprintf(out, "Wrote %s\n", totalsPath)
	fmt.Fprintf(out, "Wrote %s\n", detailsPath)

	return Result{Report: report, TotalsPath: totalsPath, DetailsPath: detailsPath}, nil
}

// collect fetches every issue history. Results are stored by position so the
// report does not depend on the order fetches complete in.
func (r *Runner) collect(ctx context.Context, keys []string) ([]burndown.Issue, error) {
	issues := make([]burndown.Issue, len(keys))

	g, gctx := errgroup.WithContext(ctx)
	limit := r.Concurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for i, key := range keys {
		g.Go(func() error {
			issue, err := r.fetchIssue(gctx, key)
			if err != nil {
				return err
			}
			issues[i] = issue
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return issues, nil
}

func (r *Runner) fetchIssue(ctx context.Context, key string) (burndown.Issue, error) {
	log := r.logger()

	jiraIssue, events, err := r.Source.GetIssueWithChangelog(ctx, key, r.StoryPointsField)
	if err != nil {
		return burndown.Issue{}, fmt.Errorf("get issue %s: %w", key, err)
	}
	if jiraIssue.StoryPoints == nil {
		log.Debug("issue has no usable story points, counting 0",
			zap.String("issue", key),
			zap.String("field", r.StoryPointsField),
		)
	}
	issue, err := burndown.IssueFromJira(jiraIssue, events)
	if err != nil {
		return burndown.Issue{}, err
	}
	log.Debug("issue history loaded",
		zap.String("issue", key),
		zap.Float64("storyPoints", issue.StoryPoints),
		zap.Int("statusChanges", len(issue.Timeline.Changes)),
	)
	return issue, nil
}

func (r *Runner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"jira-burndown/atlassian"
)

const defaultTimeout = 30 * time.Second
const defaultRateLimitBackoff = 5 * time.Second
const defaultJiraRESTUserAgent = "jira-burndown/0.1.0"
const maxBodySnippet = 512

// JiraRESTClient talks to the Jira Cloud REST and Agile APIs. A throttled
// request (HTTP 429) is retried exactly once after RateLimitBackoff; every other
// non-2xx response fails immediately.
type JiraRESTClient struct {
	BaseURL          string
	HTTPClient       *http.Client
	Auth             atlassian.AuthProvider
	Logger           *zap.Logger
	RateLimitBackoff time.Duration
	UserAgent        string
	Now              func() time.Time
	Sleep            func(time.Duration)

	// IssueInterval spaces successive issue history fetches. Zero disables it.
	IssueInterval time.Duration

	pacerOnce sync.Once
	pacer     *tokenBucket
}

func (c *JiraRESTClient) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// sleeper returns a context-aware wait. An injected Sleep runs to completion
// and the context is checked afterwards.
func (c *JiraRESTClient) sleeper() func(context.Context, time.Duration) error {
	if c.Sleep == nil {
		return sleepContext
	}
	return func(ctx context.Context, d time.Duration) error {
		c.Sleep(d)
		return ctx.Err()
	}
}

func (c *JiraRESTClient) GetJSON(ctx context.Context, path string, query map[string]string) (map[string]any, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("BaseURL is required")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("path is required")
	}
	cleanedPath := path
	if !strings.HasPrefix(cleanedPath, "/") {
		cleanedPath = "/" + cleanedPath
	}
	url := baseURL + cleanedPath

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	nowFn := c.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	sleepFn := c.sleeper()

	backoff := c.RateLimitBackoff
	if backoff <= 0 {
		backoff = defaultRateLimitBackoff
	}

	ua := strings.TrimSpace(c.UserAgent)
	if ua == "" {
		ua = defaultJiraRESTUserAgent
	}

	log := c.logger()
	attempt := 0
	for {
		attempt++
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}

		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", ua)

		if len(query) > 0 {
			q := req.URL.Query()
			for k, v := range query {
				if strings.TrimSpace(k) != "" {
					q.Set(k, v)
				}
			}
			req.URL.RawQuery = q.Encode()
		}

		if c.Auth != nil {
			if err := c.Auth.Apply(req); err != nil {
				return nil, fmt.Errorf("apply auth: %w", err)
			}
		}

		start := nowFn()
		resp, err := httpClient.Do(req)
		duration := nowFn().Sub(start)
		log.Debug(
			"jira rest request",
			zap.String("method", http.MethodGet),
			zap.String("path", cleanedPath),
			zap.Int("attempt", attempt),
			zap.Duration("duration", duration),
			atlassian.Headers("headers", req.Header),
		)
		if err != nil {
			return nil, fmt.Errorf("execute request: %w", err)
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, fmt.Errorf("read response: %w", readErr)
		}

		if resp.StatusCode == http.StatusTooManyRequests && attempt == 1 {
			log.Warn(
				"rate limited on Jira REST request",
				zap.String("path", cleanedPath),
				zap.Duration("backoff", backoff),
			)
			if err := sleepFn(ctx, backoff); err != nil {
				return nil, err
			}
			continue
		}

		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			return nil, &atlassian.RequestError{
				StatusCode:  resp.StatusCode,
				Path:        cleanedPath,
				Attempts:    attempt,
				BodySnippet: snippet(body),
			}
		}

		var out map[string]any
		if len(body) > 0 {
			if err := json.Unmarshal(body, &out); err != nil {
				return nil, &atlassian.JSONError{Err: err}
			}
		} else {
			out = map[string]any{}
		}
		return out, nil
	}
}

func snippet(body []byte) string {
	if len(body) > maxBodySnippet {
		return string(body[:maxBodySnippet])
	}
	return string(body)
}

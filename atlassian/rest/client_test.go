package rest_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"jira-burndown/atlassian"
	"jira-burndown/atlassian/rest"
)

func TestGetJSONRetriesOnceAfterFixedBackoff(t *testing.T) {
	attempts := 0
	var slept []time.Duration

	client := rest.JiraRESTClient{
		BaseURL: "http://example",
		Auth:    noAuth{},
		HTTPClient: newHTTPClient(func(req *http.Request) *http.Response {
			attempts++
			if attempts == 1 {
				headers := http.Header{}
				headers.Set("Retry-After", "120")
				return jsonResponse(req, http.StatusTooManyRequests, `{}`, headers)
			}
			return jsonResponse(req, http.StatusOK, `{"ok":true}`, nil)
		}),
		Sleep: func(d time.Duration) { slept = append(slept, d) },
	}

	out, err := client.GetJSON(context.Background(), "/rest/api/3/myself", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["ok"] != true {
		t.Fatalf("unexpected payload %+v", out)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
	if len(slept) != 1 || slept[0] != 5*time.Second {
		t.Fatalf("expected single 5s sleep, got %v", slept)
	}
}

func TestGetJSONGivesUpAfterSecond429(t *testing.T) {
	attempts := 0
	var slept []time.Duration

	client := rest.JiraRESTClient{
		BaseURL:          "http://example",
		Auth:             noAuth{},
		RateLimitBackoff: 2 * time.Second,
		HTTPClient: newHTTPClient(func(req *http.Request) *http.Response {
			attempts++
			return jsonResponse(req, http.StatusTooManyRequests, `{"errorMessages":["slow down"]}`, nil)
		}),
		Sleep: func(d time.Duration) { slept = append(slept, d) },
	}

	_, err := client.GetJSON(context.Background(), "/rest/api/3/myself", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	var reqErr *atlassian.RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %T", err)
	}
	if reqErr.StatusCode != http.StatusTooManyRequests || reqErr.Attempts != 2 {
		t.Fatalf("unexpected error %+v", reqErr)
	}
	if !errors.Is(err, atlassian.ErrRateLimited) {
		t.Fatalf("expected error to match ErrRateLimited")
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
	if len(slept) != 1 || slept[0] != 2*time.Second {
		t.Fatalf("expected single 2s sleep, got %v", slept)
	}
}

func TestGetJSONBackoffStopsOnCancellation(t *testing.T) {
	attempts := 0
	client := rest.JiraRESTClient{
		BaseURL:          "http://example",
		Auth:             noAuth{},
		RateLimitBackoff: time.Hour,
		HTTPClient: newHTTPClient(func(req *http.Request) *http.Response {
			attempts++
			return jsonResponse(req, http.StatusTooManyRequests, `{}`, nil)
		}),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := client.GetJSON(ctx, "/rest/api/3/myself", nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("backoff ran %v past cancellation", elapsed)
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}
func TestGetJSONDoesNotRetryOtherStatuses(t *testing.T) {
	statuses := []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusInternalServerError, http.StatusServiceUnavailable}
	for _, status := range statuses {
		t.Run(http.StatusText(status), func(t *testing.T) {
			attempts := 0
			client := rest.JiraRESTClient{
				BaseURL: "http://example",
				Auth:    noAuth{},
				HTTPClient: newHTTPClient(func(req *http.Request) *http.Response {
					attempts++
					return jsonResponse(req, status, "", nil)
				}),
				Sleep: func(time.Duration) { t.Fatal("unexpected sleep") },
			}
			_, err := client.GetJSON(context.Background(), "/rest/api/3/myself", nil)
			var reqErr *atlassian.RequestError
			if !errors.As(err, &reqErr) {
				t.Fatalf("expected RequestError, got %v", err)
			}
			if reqErr.StatusCode != status {
				t.Fatalf("expected status %d, got %d", status, reqErr.StatusCode)
			}
			if errors.Is(err, atlassian.ErrRateLimited) {
				t.Fatalf("status %d must not be reported as rate limited", status)
			}
			if attempts != 1 {
				t.Fatalf("expected one attempt, got %d", attempts)
			}
		})
	}
}

func TestGetJSONInvalidJSONReturnsJSONError(t *testing.T) {
	client := rest.JiraRESTClient{
		BaseURL: "http://example",
		Auth:    noAuth{},
		HTTPClient: newHTTPClient(func(req *http.Request) *http.Response {
			return jsonResponse(req, http.StatusOK, `not-json`, nil)
		}),
	}
	_, err := client.GetJSON(context.Background(), "/rest/api/3/myself", nil)
	if _, ok := err.(*atlassian.JSONError); !ok {
		t.Fatalf("expected JSONError, got %T", err)
	}
}

func TestGetJSONAppliesBasicAuthAndHeaders(t *testing.T) {
	client := rest.JiraRESTClient{
		BaseURL: "http://example/",
		Auth:    atlassian.BasicAPITokenAuth{Email: "me@example.com", Token: "secret"},
		HTTPClient: newHTTPClient(func(req *http.Request) *http.Response {
			user, pass, ok := req.BasicAuth()
			if !ok || user != "me@example.com" || pass != "secret" {
				t.Fatalf("unexpected basic auth %q %q %v", user, pass, ok)
			}
			if req.Header.Get("Accept") != "application/json" {
				t.Fatalf("unexpected Accept header %q", req.Header.Get("Accept"))
			}
			if req.URL.String() != "http://example/rest/api/3/myself?a=1" {
				t.Fatalf("unexpected url %s", req.URL)
			}
			return jsonResponse(req, http.StatusOK, `{}`, nil)
		}),
	}
	if _, err := client.GetJSON(context.Background(), "rest/api/3/myself", map[string]string{"a": "1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSanitizeHeadersRedactsCredentials(t *testing.T) {
	h := http.Header{}
	h.Set("Authorization", "Basic abc")
	h.Set("Accept", "application/json")
	clean := atlassian.SanitizeHeaders(h)
	if clean.Get("Authorization") != "<redacted>" {
		t.Fatalf("authorization not redacted: %q", clean.Get("Authorization"))
	}
	if clean.Get("Accept") != "application/json" {
		t.Fatalf("unexpected accept %q", clean.Get("Accept"))
	}
	if h.Get("Authorization") != "Basic abc" {
		t.Fatalf("original header mutated")
	}
}

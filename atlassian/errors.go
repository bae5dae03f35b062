package atlassian

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRateLimited is reported through RequestError when the final attempt of a
// request was throttled with HTTP 429.
var ErrRateLimited = errors.New("rate limited")

type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Reason
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

type RequestError struct {
	StatusCode  int
	Path        string
	Attempts    int
	BodySnippet string
}

func (e *RequestError) Error() string {
	builder := strings.Builder{}
	builder.WriteString(fmt.Sprintf("unexpected HTTP status %d", e.StatusCode))
	if e.Path != "" {
		builder.WriteString(" for ")
		builder.WriteString(e.Path)
	}
	if e.Attempts > 1 {
		builder.WriteString(fmt.Sprintf(" after %d attempts", e.Attempts))
	}
	return builder.String()
}

func (e *RequestError) Unwrap() error {
	if e.StatusCode == 429 {
		return ErrRateLimited
	}
	return nil
}

type JSONError struct {
	Err error
}

func (e *JSONError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

func (e *JSONError) Unwrap() error {
	return e.Err
}

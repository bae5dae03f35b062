package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"jira-burndown/atlassian"
	"jira-burndown/burndown"
	"jira-burndown/internal/logger"
)

type Config struct {
	Jira     JiraConfig
	Burndown BurndownConfig
	Logger   logger.Config
}

type JiraConfig struct {
	BaseURL          string        `env:"JIRA_BASE_URL" env-required:"true"`
	Email            string        `env:"JIRA_EMAIL" env-required:"true"`
	APIToken         string        `env:"JIRA_API_TOKEN" env-required:"true"`
	StoryPointsField string        `env:"STORY_POINTS_FIELD" env-required:"true"`
	Timeout          time.Duration `env:"JIRA_HTTP_TIMEOUT" env-default:"30s"`
	RateLimitBackoff time.Duration `env:"JIRA_RATE_LIMIT_BACKOFF" env-default:"5s"`
	IssueInterval    time.Duration `env:"JIRA_ISSUE_INTERVAL" env-default:"100ms"`
	Concurrency      int           `env:"JIRA_CONCURRENCY" env-default:"1"`
}

type BurndownConfig struct {
	SprintID         string   `env:"SPRINT_ID"`
	BoardID          string   `env:"BOARD_ID"`
	TrackStatusNames []string `env:"TRACK_STATUS_NAMES" env-default:"To Do,In Progress,Code Review"`
	UATStatusName    string   `env:"UAT_STATUS_NAME" env-default:"UAT"`
	UATIsPermanent   bool     `env:"UAT_IS_PERMANENT" env-default:"true"`
	OutDir           string   `env:"OUT_DIR" env-default:"data"`
}

// New reads the configuration from configPath (a .env or yaml file) when it is
// set, otherwise from the environment alone. Every failure is a
// *atlassian.ConfigError.
func New(configPath string) (*Config, error) {
	var cfg Config
	var err error
	if strings.TrimSpace(configPath) != "" {
		err = cleanenv.ReadConfig(configPath, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, &atlassian.ConfigError{Reason: err.Error()}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDotEnv exports the variables of a .env file that are not already set.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"JIRA_BASE_URL", c.Jira.BaseURL},
		{"JIRA_EMAIL", c.Jira.Email},
		{"JIRA_API_TOKEN", c.Jira.APIToken},
		{"STORY_POINTS_FIELD", c.Jira.StoryPointsField},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &atlassian.ConfigError{Reason: "missing " + strings.Join(missing, ", ")}
	}

	u, err := url.Parse(strings.TrimSpace(c.Jira.BaseURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &atlassian.ConfigError{Reason: fmt.Sprintf("JIRA_BASE_URL %q must be an absolute http(s) URL", c.Jira.BaseURL)}
	}

	sprint := strings.TrimSpace(c.Burndown.SprintID)
	board := strings.TrimSpace(c.Burndown.BoardID)
	switch {
	case sprint == "" && board != "":
		return &atlassian.ConfigError{Reason: "BOARD_ID was provided without SPRINT_ID; set SPRINT_ID to run for a specific sprint"}
	case sprint == "":
		return &atlassian.ConfigError{Reason: "missing SPRINT_ID"}
	}
	c.Burndown.SprintID = sprint

	if c.Jira.Concurrency < 1 {
		return &atlassian.ConfigError{Reason: fmt.Sprintf("JIRA_CONCURRENCY must be at least 1, got %d", c.Jira.Concurrency)}
	}
	if c.Jira.Timeout <= 0 {
		return &atlassian.ConfigError{Reason: "JIRA_HTTP_TIMEOUT must be positive"}
	}
	if strings.TrimSpace(c.Burndown.OutDir) == "" {
		c.Burndown.OutDir = "data"
	}
	return nil
}

func (c BurndownConfig) Policy() burndown.Policy {
	return burndown.NewPolicy(c.TrackStatusNames, c.UATStatusName, c.UATIsPermanent)
}

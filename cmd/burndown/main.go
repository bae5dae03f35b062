package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"jira-burndown/atlassian"
	"jira-burndown/atlassian/rest"
	"jira-burndown/internal/config"
	"jira-burndown/internal/logger"
	"jira-burndown/internal/runner"
)

const (
	exitFailure = 1
	exitConfig  = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer cancel()

	stderr := stdlog.New(os.Stderr, "", 0)

	configPath := fetchConfigPath()
	if err := config.LoadDotEnv(".env"); err != nil {
		stderr.Printf("cannot load .env: %v", err)
		return exitConfig
	}

	cfg, err := config.New(configPath)
	if err != nil {
		stderr.Print(err)
		return exitConfig
	}

	log, err := logger.New(&cfg.Logger)
	if err != nil {
		stderr.Printf("cannot initialize logger: %v", err)
		return exitConfig
	}
	defer log.Sync()

	client := &rest.JiraRESTClient{
		BaseURL:          cfg.Jira.BaseURL,
		HTTPClient:       &http.Client{Timeout: cfg.Jira.Timeout},
		Auth:             atlassian.BasicAPITokenAuth{Email: cfg.Jira.Email, Token: cfg.Jira.APIToken},
		Logger:           log.Named("jira"),
		RateLimitBackoff: cfg.Jira.RateLimitBackoff,
		IssueInterval:    cfg.Jira.IssueInterval,
	}

	r := runner.Runner{
		Source:           client,
		Policy:           cfg.Burndown.Policy(),
		StoryPointsField: cfg.Jira.StoryPointsField,
		OutDir:           cfg.Burndown.OutDir,
		Concurrency:      cfg.Jira.Concurrency,
		Logger:           log,
		Out:              os.Stdout,
	}

	log.Debug("starting burndown",
		zap.String("sprint", cfg.Burndown.SprintID),
		zap.Strings("tracked", cfg.Burndown.TrackStatusNames),
		zap.String("uat", cfg.Burndown.UATStatusName),
		zap.Stringer("uatMode", r.Policy.UAT),
	)

	if _, err := r.Run(ctx, cfg.Burndown.SprintID); err != nil {
		log.Error("burndown failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		var cfgErr *atlassian.ConfigError
		if errors.As(err, &cfgErr) {
			return exitConfig
		}
		return exitFailure
	}
	return 0
}

func fetchConfigPath() string {
	var path string

	flag.StringVar(&path, "config_path", "", "Optional env or yaml file with the configuration")
	flag.Parse()

	return path
}

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resuflux/internal/advice"
	"github.com/jonathan/resuflux/internal/config"
	"github.com/jonathan/resuflux/internal/fetch"
	"github.com/jonathan/resuflux/internal/ingestion"
	"github.com/jonathan/resuflux/internal/lexicon"
	"github.com/jonathan/resuflux/internal/llm"
	"github.com/jonathan/resuflux/internal/logger"
	"github.com/jonathan/resuflux/internal/scoring"
)

// loadSettings layers the --config file over the environment. Command flags are applied
// on top by each command.
func loadSettings() (config.Config, error) {
	env := config.FromEnv()
	fileCfg := &config.Config{}
	if configPath != "" {
		var err error
		if fileCfg, err = config.LoadConfig(configPath); err != nil {
			return config.Config{}, err
		}
	}

	merged := fileCfg.MergeWithDefaults(env)
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

// firstNonEmpty returns the flag value when set and the configured value otherwise.
func firstNonEmpty(flag, configured string) string {
	if flag != "" {
		return flag
	}
	return configured
}

func newLogger(settings config.Config) logger.Logger {
	return logger.New(settings.LogLevel, settings.LogFormat)
}

func newScorer(settings config.Config) (*scoring.Scorer, error) {
	if settings.LexiconPath == "" {
		return scoring.NewScorer(nil), nil
	}
	lex, err := lexicon.Load(settings.LexiconPath)
	if err != nil {
		return nil, err
	}
	return scoring.NewScorer(lex), nil
}

// newAdvisor builds the configured advisor. The returned close function releases the
// model client when one was opened.
func newAdvisor(ctx context.Context, settings config.Config, log logger.Logger) (advice.Advisor, func(), error) {
	if settings.Advisor != advice.ModeLLM || settings.APIKey == "" {
		return advice.NewAdvisor(settings.Advisor, nil, log), func() {}, nil
	}
	client, err := llm.NewGeminiClient(ctx, llm.ConfigFromEnv(), settings.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return advice.NewAdvisor(settings.Advisor, client, log), func() { _ = client.Close() }, nil
}

// jobSource returns the job file and URL, preferring the command flags over the config
// file as a pair so a flag never combines with a configured value.
func jobSource(settings config.Config) (path, url string) {
	if jobFile != "" || jobURL != "" {
		return jobFile, jobURL
	}
	return settings.Job, settings.JobURL
}

// readResume extracts and checks the résumé text from a pdf, docx or text file.
func readResume(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("--resume is required")
	}
	text, err := ingestion.ExtractFile(path)
	if err != nil {
		return "", err
	}
	if err := ingestion.ValidateResumeText(text); err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return text, nil
}

// readJob loads the job description from a file or scrapes it from a URL.
func readJob(ctx context.Context, path, url string, useBrowser bool, log logger.Logger) (string, error) {
	switch {
	case path != "" && url != "":
		return "", fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	case path != "":
		text, err := ingestion.ExtractFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		return ingestion.TruncateJobText(ingestion.CleanText(text)), nil
	case url != "":
		job, err := fetch.NewScraper(log).ScrapeJob(ctx, url, useBrowser)
		if err != nil {
			return "", err
		}
		return job.Text, nil
	default:
		return "", fmt.Errorf("either --job or --job-url must be provided")
	}
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// Package config provides configuration loading and validation for the CLI and API server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jonathan/resuflux/internal/advice"
)

// Defaults applied by MergeWithDefaults when neither the file nor the environment sets a value
const (
	DefaultPort        = 8080
	DefaultConcurrency = 4
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "console"
)

// Config holds settings that can come from a JSON file, environment variables or CLI flags.
// All fields are optional; the CLI layers flags over the file, and the file over the environment.
type Config struct {
	// Inputs
	Resume string `json:"resume,omitempty"`  // Path to the résumé file (pdf, docx or text)
	Job    string `json:"job,omitempty"`     // Path to the job description text file
	JobURL string `json:"job_url,omitempty"` // URL to scrape the job description from
	Out    string `json:"out,omitempty"`     // Output path for JSON results

	// Collaborators
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	RedisURL    string `json:"redis_url,omitempty"`    // Redis URL for score cache and history
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key

	// Scoring
	Advisor       string `json:"advisor,omitempty"`        // heuristic, llm or placeholder
	LexiconPath   string `json:"lexicon_path,omitempty"`   // Custom lexicon JSON; empty uses the built-in one
	EmailTemplate string `json:"email_template,omitempty"` // Path to the saved email template

	// Runtime
	Port        int    `json:"port,omitempty"`
	Concurrency int    `json:"concurrency,omitempty"` // Parallel workers for bulk upload
	LogLevel    string `json:"log_level,omitempty"`
	LogFormat   string `json:"log_format,omitempty"` // json or console
	UseBrowser  bool   `json:"use_browser,omitempty"`
	Verbose     bool   `json:"verbose,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads the settings exposed as environment variables.
// Malformed numbers are ignored so that Validate reports only real conflicts.
func FromEnv() Config {
	cfg := Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		Advisor:     os.Getenv("RESUFLUX_ADVISOR"),
		LexiconPath: os.Getenv("LEXICON_PATH"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
		LogFormat:   os.Getenv("LOG_FORMAT"),
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	return cfg
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}

	switch c.Advisor {
	case "", advice.ModeHeuristic, advice.ModeLLM, advice.ModePlaceholder:
	default:
		return fmt.Errorf("config error: unknown advisor %q", c.Advisor)
	}

	switch c.LogFormat {
	case "", "json", "console":
	default:
		return fmt.Errorf("config error: 'log_format' must be json or console, got %q", c.LogFormat)
	}

	for name, path := range map[string]string{
		"resume":       c.Resume,
		"job":          c.Job,
		"lexicon_path": c.LexiconPath,
	} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", name, path)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults,
// then from the package defaults for fields that stay empty.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	strs := []struct {
		dst *string
		src string
	}{
		{&result.Resume, defaults.Resume},
		{&result.Job, defaults.Job},
		{&result.JobURL, defaults.JobURL},
		{&result.Out, defaults.Out},
		{&result.DatabaseURL, defaults.DatabaseURL},
		{&result.RedisURL, defaults.RedisURL},
		{&result.APIKey, defaults.APIKey},
		{&result.Advisor, defaults.Advisor},
		{&result.LexiconPath, defaults.LexiconPath},
		{&result.EmailTemplate, defaults.EmailTemplate},
		{&result.LogLevel, defaults.LogLevel},
		{&result.LogFormat, defaults.LogFormat},
	}
	for _, s := range strs {
		if *s.dst == "" {
			*s.dst = s.src
		}
	}

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}

	// Package-level fallbacks
	if result.Advisor == "" {
		result.Advisor = advice.ModeHeuristic
	}
	if result.LogLevel == "" {
		result.LogLevel = DefaultLogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = DefaultLogFormat
	}
	if result.Port == 0 {
		result.Port = DefaultPort
	}
	if result.Concurrency == 0 {
		result.Concurrency = DefaultConcurrency
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Package llm wraps the generative model used for optional advice enrichment.
package llm

import (
	"os"
	"strconv"
)

// ModelTier selects a model by capability.
type ModelTier string

const (
	// TierLite is for short classification or rewording tasks.
	TierLite ModelTier = "lite"
	// TierStandard is for structured output such as advice lists.
	TierStandard ModelTier = "standard"
)

const defaultTemperature = 0.2

// Config holds the model selection for the Gemini client.
type Config struct {
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the default Gemini models.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
		Temperature: defaultTemperature,
	}
}

// ConfigFromEnv applies GEMINI_MODEL and GEMINI_TEMPERATURE on top of the defaults.
// GEMINI_MODEL overrides the standard tier.
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		cfg.Models[TierStandard] = model
	}
	if raw := os.Getenv("GEMINI_TEMPERATURE"); raw != "" {
		if t, err := strconv.ParseFloat(raw, 32); err == nil && t >= 0 && t <= 2 {
			cfg.Temperature = float32(t)
		}
	}
	return cfg
}

// GetModel returns the model for tier, falling back to the standard tier.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	return c.Models[TierStandard]
}

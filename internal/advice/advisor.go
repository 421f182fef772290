package advice

import (
	"context"
	"fmt"

	"github.com/jonathan/resuflux/internal/llm"
	"github.com/jonathan/resuflux/internal/logger"
	"github.com/jonathan/resuflux/internal/types"
)

// MaxAdvice caps the number of suggestions any advisor returns.
const MaxAdvice = 3

// Advisor modes accepted by NewAdvisor.
const (
	ModeHeuristic   = "heuristic"
	ModeLLM         = "llm"
	ModePlaceholder = "placeholder"
)

const (
	polishThreshold  = 80
	framingThreshold = 50
	fallbackFocus    = "core competencies"
)

// Advisor produces located, strategic advice for a score result.
type Advisor interface {
	Suggest(ctx context.Context, result *types.ScoreResult) ([]types.AdviceSuggestion, error)
}

// NewAdvisor selects an advisor by mode. The llm mode needs a client; without one the
// placeholder advisor is returned so callers can tell enrichment is not configured.
// Unknown modes fall back to the heuristic advisor.
func NewAdvisor(mode string, client llm.Client, log logger.Logger) Advisor {
	if log == nil {
		log = logger.NewNop()
	}
	switch mode {
	case ModeLLM:
		if client == nil {
			log.Warn("llm advisor requested without a client", nil)
			return PlaceholderAdvisor{}
		}
		return NewLLMAdvisor(client, log)
	case ModePlaceholder:
		return PlaceholderAdvisor{}
	default:
		return HeuristicAdvisor{}
	}
}

// HeuristicAdvisor tiers advice on the total score.
type HeuristicAdvisor struct{}

// Suggest never fails.
func (HeuristicAdvisor) Suggest(_ context.Context, result *types.ScoreResult) ([]types.AdviceSuggestion, error) {
	return heuristicAdvice(result), nil
}

func heuristicAdvice(result *types.ScoreResult) []types.AdviceSuggestion {
	var out []types.AdviceSuggestion

	switch {
	case result.Total >= polishThreshold:
		out = []types.AdviceSuggestion{
			{
				Tip:      "Optimize for the Interviewer, not just the Bot.",
				Reason:   "Your score is high enough to pass most filters. Now focus on making your achievements 'pop' for human eyes.",
				Location: "Summary / Experience",
			},
			{
				Tip:      "Quantify your impact using 'X by Y through Z' formula.",
				Reason:   "Technical match is solid. Adding metrics (%, $) will make this resume undeniable.",
				Location: "Experience",
			},
		}
	case result.Total >= framingThreshold:
		focus := fallbackFocus
		if len(result.KeywordData.Missing) > 0 {
			focus = result.KeywordData.Missing[0]
		}
		out = []types.AdviceSuggestion{
			{
				Tip:      fmt.Sprintf("Explicitly frame your work around \"%s\".", focus),
				Reason:   fmt.Sprintf("The JD mentions %s frequently. Your experience likely covers this, but the wording needs to match exactly.", focus),
				Location: "Skills / Bullet Points",
			},
			{
				Tip:      "Consider a 'Core Competencies' section.",
				Reason:   "A dedicated skill cloud helps the ATS group your expertise faster.",
				Location: "Top of Resume",
			},
		}
	default:
		out = []types.AdviceSuggestion{
			{
				Tip:      "Pivot your resume summary to match this industry.",
				Reason:   fmt.Sprintf("The ATS detects a significant gap for this %s role. A tailored summary can bridge the relevance gap.", result.Field),
				Location: "Summary",
			},
			{
				Tip:      "Reorder your experience to lead with relevant projects.",
				Reason:   "The current structure masks your most relevant work. Bring the JD-aligned items to the top.",
				Location: "Experience",
			},
		}
	}

	return capAdvice(out)
}

// PlaceholderAdvisor answers when enrichment was requested but is not configured.
type PlaceholderAdvisor struct{}

// Suggest returns the fixed placeholder list.
func (PlaceholderAdvisor) Suggest(context.Context, *types.ScoreResult) ([]types.AdviceSuggestion, error) {
	return []types.AdviceSuggestion{
		{Tip: "AI Upgrade pending...", Reason: "Manual toggle required.", Location: "Config"},
	}, nil
}

func capAdvice(in []types.AdviceSuggestion) []types.AdviceSuggestion {
	if len(in) > MaxAdvice {
		return in[:MaxAdvice]
	}
	return in
}

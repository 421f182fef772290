package advice

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/resuflux/internal/llm"
	"github.com/jonathan/resuflux/internal/logger"
	"github.com/jonathan/resuflux/internal/prompts"
	"github.com/jonathan/resuflux/internal/types"
)

// LLMAdvisor asks a language model for advice and falls back to the heuristic tiers
// when the model fails or returns nothing usable.
type LLMAdvisor struct {
	client llm.Client
	log    logger.Logger
}

// NewLLMAdvisor creates an advisor backed by client.
func NewLLMAdvisor(client llm.Client, log logger.Logger) *LLMAdvisor {
	if log == nil {
		log = logger.NewNop()
	}
	return &LLMAdvisor{client: client, log: log}
}

// Suggest returns model advice, or heuristic advice if the model call fails.
func (a *LLMAdvisor) Suggest(ctx context.Context, result *types.ScoreResult) ([]types.AdviceSuggestion, error) {
	out, err := a.generate(ctx, result)
	if err != nil {
		a.log.WithError(err).Warn("llm advice failed, using heuristic advice", logger.Fields{
			"model": a.client.GetModel(llm.TierStandard),
		})
		return heuristicAdvice(result), nil
	}
	return out, nil
}

func (a *LLMAdvisor) generate(ctx context.Context, result *types.ScoreResult) ([]types.AdviceSuggestion, error) {
	template, err := prompts.Get("advice.json", "suggest-improvements")
	if err != nil {
		return nil, err
	}
	prompt := prompts.Format(template, promptData(result))

	raw, err := a.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, err
	}

	var suggestions []types.AdviceSuggestion
	if err := json.Unmarshal([]byte(raw), &suggestions); err != nil {
		return nil, fmt.Errorf("failed to parse advice response: %w", err)
	}

	usable := suggestions[:0]
	for _, s := range suggestions {
		if strings.TrimSpace(s.Tip) != "" {
			usable = append(usable, s)
		}
	}
	if len(usable) == 0 {
		return nil, fmt.Errorf("advice response contained no suggestions")
	}
	return capAdvice(usable), nil
}

func promptData(result *types.ScoreResult) map[string]string {
	field := result.Field
	if field == "" {
		field = "General"
	}
	return map[string]string{
		"Field":    field,
		"Total":    strconv.Itoa(result.Total),
		"Coverage": strconv.Itoa(result.KeywordData.Score),
		"Matches":  joinOrNone(result.KeywordData.Matches),
		"Missing":  joinOrNone(result.KeywordData.Missing),
	}
}

func joinOrNone(terms []string) string {
	if len(terms) == 0 {
		return "none"
	}
	return strings.Join(terms, ", ")
}

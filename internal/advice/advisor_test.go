package advice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resuflux/internal/llm"
	"github.com/jonathan/resuflux/internal/logger"
	"github.com/jonathan/resuflux/internal/types"
)

type fakeClient struct {
	response   string
	err        error
	lastPrompt string
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.lastPrompt = prompt
	return f.response, f.err
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.lastPrompt = prompt
	return f.response, f.err
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }
func (f *fakeClient) Close() error                  { return nil }

func TestHeuristicAdvisor(t *testing.T) {
	tests := []struct {
		name      string
		result    types.ScoreResult
		firstTip  string
		firstWhy  string
		locations []string
	}{
		{
			name:      "high score polishes",
			result:    types.ScoreResult{Total: 80},
			firstTip:  "Optimize for the Interviewer, not just the Bot.",
			locations: []string{"Summary / Experience", "Experience"},
		},
		{
			name: "mid score frames top missing keyword",
			result: types.ScoreResult{
				Total:       57,
				KeywordData: types.KeywordData{Missing: []string{"kubernetes", "helm"}},
			},
			firstTip:  `Explicitly frame your work around "kubernetes".`,
			firstWhy:  "The JD mentions kubernetes frequently.",
			locations: []string{"Skills / Bullet Points", "Top of Resume"},
		},
		{
			name:      "mid score without gaps uses fallback focus",
			result:    types.ScoreResult{Total: 50},
			firstTip:  `Explicitly frame your work around "core competencies".`,
			locations: []string{"Skills / Bullet Points", "Top of Resume"},
		},
		{
			name:      "low score pivots",
			result:    types.ScoreResult{Total: 49, Field: "Legal"},
			firstTip:  "Pivot your resume summary to match this industry.",
			firstWhy:  "significant gap for this Legal role",
			locations: []string{"Summary", "Experience"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.result
			got, err := HeuristicAdvisor{}.Suggest(context.Background(), &result)
			require.NoError(t, err)
			require.Len(t, got, len(tt.locations))
			assert.LessOrEqual(t, len(got), MaxAdvice)

			assert.Equal(t, tt.firstTip, got[0].Tip)
			if tt.firstWhy != "" {
				assert.Contains(t, got[0].Reason, tt.firstWhy)
			}
			for i, loc := range tt.locations {
				assert.Equal(t, loc, got[i].Location)
			}
		})
	}
}

func TestPlaceholderAdvisor(t *testing.T) {
	got, err := PlaceholderAdvisor{}.Suggest(context.Background(), &types.ScoreResult{Total: 99})
	require.NoError(t, err)
	assert.Equal(t, []types.AdviceSuggestion{
		{Tip: "AI Upgrade pending...", Reason: "Manual toggle required.", Location: "Config"},
	}, got)
}

func TestNewAdvisor(t *testing.T) {
	log := logger.NewTestLogger(t)

	assert.IsType(t, HeuristicAdvisor{}, NewAdvisor(ModeHeuristic, nil, log))
	assert.IsType(t, HeuristicAdvisor{}, NewAdvisor("", nil, log))
	assert.IsType(t, PlaceholderAdvisor{}, NewAdvisor(ModePlaceholder, &fakeClient{}, log))
	assert.IsType(t, PlaceholderAdvisor{}, NewAdvisor(ModeLLM, nil, log))
	assert.IsType(t, &LLMAdvisor{}, NewAdvisor(ModeLLM, &fakeClient{}, nil))
}

func TestLLMAdvisor(t *testing.T) {
	result := &types.ScoreResult{
		Total: 57,
		Field: "Technology",
		KeywordData: types.KeywordData{
			Matches: []string{"react", "aws"},
			Missing: []string{"kubernetes"},
			Score:   63,
		},
	}

	t.Run("parses model output and caps it", func(t *testing.T) {
		client := &fakeClient{response: `[
			{"tip": "Add Kubernetes", "reason": "Missing", "location": "Skills"},
			{"tip": "Lead with AWS", "reason": "Matched", "location": "Summary"},
			{"tip": "", "reason": "blank tips are dropped", "location": "Skills"},
			{"tip": "Mention GitHub", "reason": "Tech role", "location": "Header"},
			{"tip": "Fourth", "reason": "over the cap", "location": "Experience"}
		]`}
		advisor := NewLLMAdvisor(client, logger.NewTestLogger(t))

		got, err := advisor.Suggest(context.Background(), result)
		require.NoError(t, err)
		require.Len(t, got, MaxAdvice)
		assert.Equal(t, "Add Kubernetes", got[0].Tip)
		assert.Equal(t, "Mention GitHub", got[2].Tip)

		assert.Contains(t, client.lastPrompt, "Field: Technology")
		assert.Contains(t, client.lastPrompt, "Missing keywords: kubernetes")
		assert.Contains(t, client.lastPrompt, "Keyword coverage: 63/100")
	})

	t.Run("model error falls back to heuristics", func(t *testing.T) {
		client := &fakeClient{err: errors.New("quota exceeded")}
		got, err := NewLLMAdvisor(client, logger.NewTestLogger(t)).Suggest(context.Background(), result)
		require.NoError(t, err)
		assert.Equal(t, heuristicAdvice(result), got)
	})

	t.Run("unparseable output falls back to heuristics", func(t *testing.T) {
		client := &fakeClient{response: "Sure! Here are some tips."}
		got, err := NewLLMAdvisor(client, nil).Suggest(context.Background(), result)
		require.NoError(t, err)
		assert.Equal(t, heuristicAdvice(result), got)
	})

	t.Run("empty list falls back to heuristics", func(t *testing.T) {
		client := &fakeClient{response: "[]"}
		got, err := NewLLMAdvisor(client, nil).Suggest(context.Background(), result)
		require.NoError(t, err)
		assert.Equal(t, heuristicAdvice(result), got)
	})
}

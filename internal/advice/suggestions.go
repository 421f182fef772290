// Package advice turns score results into suggestions and plain-language explanations.
package advice

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resuflux/internal/types"
)

const lowRelevanceThreshold = 50

// Suggestion messages produced by GenerateSuggestions.
const (
	LowRelevanceTip = "Low Relevance: Try adding more specific keywords from the job description."
	MedicalTip      = "Tip: Medical roles often require explicit license/certification info."
	TechnologyTip   = "Tip: Adding a GitHub link can boost credibility for tech roles."
	DesignTip       = "Tip: Ensure your portfolio link is clearly visible."
	considerPrefix  = "Consider adding: "
)

// suggestionContext is what each rule inspects.
type suggestionContext struct {
	coverage *types.CoverageResult
	resume   string
	field    string
}

type suggestionRule struct {
	applies func(c suggestionContext) bool
	message func(c suggestionContext) string
}

func fixed(msg string) func(suggestionContext) string {
	return func(suggestionContext) string { return msg }
}

func fieldLacks(field, cue string) func(c suggestionContext) bool {
	return func(c suggestionContext) bool {
		return c.field == field && !strings.Contains(c.resume, cue)
	}
}

// Rules are evaluated in order and every matching rule contributes one message.
var suggestionRules = []suggestionRule{
	{
		applies: func(c suggestionContext) bool { return c.coverage.Score < lowRelevanceThreshold },
		message: fixed(LowRelevanceTip),
	},
	{applies: fieldLacks("Medical", "license"), message: fixed(MedicalTip)},
	{applies: fieldLacks("Technology", "github"), message: fixed(TechnologyTip)},
	{applies: fieldLacks("Design", "portfolio"), message: fixed(DesignTip)},
	{
		applies: func(c suggestionContext) bool { return len(c.coverage.Missing) > 0 },
		message: func(c suggestionContext) string {
			terms := make([]string, len(c.coverage.Missing))
			for i, term := range c.coverage.Missing {
				terms[i] = capitalize(term)
			}
			return considerPrefix + strings.Join(terms, ", ")
		},
	},
}

// GenerateSuggestions returns the ordered improvement tips for a scored résumé.
func GenerateSuggestions(coverage *types.CoverageResult, resume *types.ResumeProfile, field string) []string {
	ctx := suggestionContext{coverage: coverage, resume: resume.NormalizedText, field: field}

	tips := make([]string, 0, len(suggestionRules))
	for _, rule := range suggestionRules {
		if rule.applies(ctx) {
			tips = append(tips, rule.message(ctx))
		}
	}
	return tips
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

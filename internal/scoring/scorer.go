// Package scoring composes the field detector, keyword extraction, résumé analysis and
// coverage matching into a single ATS score.
package scoring

import (
	"github.com/jonathan/resuflux/internal/advice"
	"github.com/jonathan/resuflux/internal/industry"
	"github.com/jonathan/resuflux/internal/lexicon"
	"github.com/jonathan/resuflux/internal/matching"
	"github.com/jonathan/resuflux/internal/parsing"
	"github.com/jonathan/resuflux/internal/structure"
	"github.com/jonathan/resuflux/internal/types"
)

const (
	coverageWeight  = 0.80
	structureWeight = 0.20
	maxTotal        = 100
)

// EmptyInputSuggestion is the only suggestion returned when either text is missing.
const EmptyInputSuggestion = "Please upload a resume and ensure a job description is loaded."

// Scorer scores résumés against job descriptions using a fixed lexicon.
// A Scorer holds no mutable state and is safe for concurrent use.
type Scorer struct {
	lex *lexicon.Lexicon
}

// NewScorer creates a scorer. A nil lexicon selects lexicon.Default().
func NewScorer(lex *lexicon.Lexicon) *Scorer {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Scorer{lex: lex}
}

// Lexicon returns the lexicon the scorer was built with.
func (s *Scorer) Lexicon() *lexicon.Lexicon {
	return s.lex
}

// ScoreResume runs the full pipeline and never fails. Empty input yields EmptyResult.
func (s *Scorer) ScoreResume(resumeText, jdText string) *types.ScoreResult {
	if resumeText == "" || jdText == "" {
		return EmptyResult()
	}

	field := industry.Detect(s.lex, jdText)
	jd := parsing.AnalyzeJobDescription(s.lex, jdText, field)
	resume := structure.AnalyzeResume(resumeText, field)
	coverage := matching.CalculateCoverage(resume, jd)

	return &types.ScoreResult{
		Total: Total(coverage.Score, resume.StructureScore),
		Field: field,
		KeywordData: types.KeywordData{
			Matches: coverage.Matches,
			Missing: coverage.Missing,
			Score:   coverage.Score,
		},
		Suggestions: advice.GenerateSuggestions(coverage, resume, field),
		Details:     coverage,
	}
}

// Total blends coverage and structure scores and clamps the result to [0, 100].
func Total(coverageScore, structureScore int) int {
	// Each product is stored before the sum so the compiler cannot fuse the
	// operations and change how halves round.
	cov := float64(float64(coverageScore) * coverageWeight)
	str := float64(float64(structureScore) * structureWeight)
	total := matching.RoundHalfUp(cov + str)

	if total < 0 {
		return 0
	}
	if total > maxTotal {
		return maxTotal
	}
	return total
}

// EmptyResult is the result for missing input.
func EmptyResult() *types.ScoreResult {
	return &types.ScoreResult{
		Total: 0,
		KeywordData: types.KeywordData{
			Matches: []string{},
			Missing: []string{},
		},
		Suggestions: []string{EmptyInputSuggestion},
	}
}

// ScoreResume scores with the default lexicon.
func ScoreResume(resumeText, jdText string) *types.ScoreResult {
	return NewScorer(nil).ScoreResume(resumeText, jdText)
}

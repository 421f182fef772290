// Package structure scores how complete a résumé looks based on the sections it mentions.
package structure

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resuflux/internal/types"
)

const (
	baseScore         = 50
	shortResumeLength = 500
	shortPenalty      = 30
)

// sectionRule awards points when any of its cues appears in the lowercased résumé.
type sectionRule struct {
	field  string // empty applies to every field
	cues   []string
	points int
}

var sectionRules = []sectionRule{
	{cues: []string{"experience", "employment"}, points: 15},
	{cues: []string{"education", "university"}, points: 10},
	{cues: []string{"skills", "technologies"}, points: 15},
	{field: "Medical", cues: []string{"certification", "licensed"}, points: 10},
	{field: "Design", cues: []string{"portfolio", "behance"}, points: 10},
	{field: "Technology", cues: []string{"projects", "github"}, points: 10},
}

// AnalyzeResume lowercases the résumé and computes its structure score. Text shorter than
// 500 characters loses 30 points. The score is not clamped.
func AnalyzeResume(resumeText string, field string) *types.ResumeProfile {
	lower := strings.ToLower(resumeText)
	score := baseScore

	for _, rule := range sectionRules {
		if rule.field != "" && rule.field != field {
			continue
		}
		if containsAny(lower, rule.cues) {
			score += rule.points
		}
	}

	if utf8.RuneCountInString(resumeText) < shortResumeLength {
		score -= shortPenalty
	}

	return &types.ResumeProfile{
		NormalizedText: lower,
		StructureScore: score,
	}
}

func containsAny(text string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(text, cue) {
			return true
		}
	}
	return false
}

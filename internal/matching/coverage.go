// Package matching measures how much of a job description's keyword set a résumé covers.
package matching

import (
	"math"
	"strings"

	"github.com/jonathan/resuflux/internal/types"
)

// CalculateCoverage returns the weighted share of JD keywords found in the résumé.
// A keyword counts as matched when it occurs anywhere in the lowercased résumé text,
// including inside longer words. Missing terms keep JD order and are capped at
// types.MaxMissingTerms.
func CalculateCoverage(resume *types.ResumeProfile, jd *types.JDProfile) *types.CoverageResult {
	result := &types.CoverageResult{
		Matches: []string{},
		Missing: []string{},
	}

	var totalWeight, matchedWeight int
	for _, kw := range jd.Keywords {
		totalWeight += kw.Weight
		if strings.Contains(resume.NormalizedText, kw.Term) {
			matchedWeight += kw.Weight
			result.Matches = append(result.Matches, kw.Term)
		} else {
			result.Missing = append(result.Missing, kw.Term)
		}
	}

	if len(result.Missing) > types.MaxMissingTerms {
		result.Missing = result.Missing[:types.MaxMissingTerms]
	}
	if totalWeight > 0 {
		result.Score = RoundHalfUp(float64(matchedWeight) / float64(totalWeight) * 100)
	}
	return result
}

// RoundHalfUp rounds to the nearest integer with halves rounded towards positive infinity.
func RoundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
